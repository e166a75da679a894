package update_crew_schedule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CrewBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CrewBooking/internal/service/schedule"
	"github.com/m04kA/SMC-CrewBooking/internal/service/schedule/models"
)

const (
	msgInvalidCrewID      = "некорректный ID исполнителя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректное расписание: dayStart должно быть раньше dayEnd, quantumMinutes от 0 до 1440"
	msgUnauthorized       = "требуется аутентификация"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/crew/{crewId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	crewID, err := handlers.PathUUID(r, "crewId")
	if err != nil {
		h.logger.Warn("PUT /crew/{id}/schedule - Invalid crew ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCrewID)
		return
	}

	h.update(w, r, "PUT /crew/{id}/schedule", &crewID)
}

// HandleGlobal PUT /api/v1/schedule
func (h *Handler) HandleGlobal(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, "PUT /schedule", nil)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, route string, crewID *uuid.UUID) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), actor, crewID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("%s - Invalid schedule: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: actor=%s", route, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("%s - Failed to update schedule: %v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Schedule updated: actor=%s, source=%s", route, actor.ID, result.Source)
	handlers.RespondJSON(w, http.StatusOK, result)
}
