package service_catalog

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CrewBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CrewBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CrewBooking/internal/service/catalog"
	"github.com/m04kA/SMC-CrewBooking/internal/service/catalog/models"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidService     = "название обязательно (до 255 символов), стоимость часа должна быть положительной"
	msgUnauthorized       = "требуется аутентификация"
	msgForbidden          = "управлять каталогом может только администратор"
	msgNotFound           = "услуга не найдена"
	msgServiceInUse       = "на услугу есть бронирования, удаление невозможно"
)

// Handler обслуживает каталог услуг: чтение публичное, изменение только для admin
type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/services?tag=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var tag *string
	if raw := r.URL.Query().Get("tag"); raw != "" {
		tag = &raw
	}

	result, err := h.service.List(r.Context(), tag)
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/services/{serviceId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "GET /services/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/services
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		h.respondServiceError(w, "POST /services", 0, err)
		return
	}

	h.logger.Info("POST /services - Service created: service_id=%d, actor=%s", result.ID, actor.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/services/{serviceId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), actor, id, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /services/{id}", id, err)
		return
	}

	h.logger.Info("PUT /services/{id} - Service updated: service_id=%d, actor=%s", id, actor.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/services/{serviceId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		h.respondServiceError(w, "DELETE /services/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /services/{id} - Service deleted: service_id=%d, actor=%s", id, actor.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid service: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidService)

	case errors.Is(err, catalog.ErrAccessDenied):
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, catalog.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, catalog.ErrServiceInUse):
		handlers.RespondConflict(w, msgServiceInUse)

	default:
		h.logger.Error("%s - Catalog error: service_id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
