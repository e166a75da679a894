package list_crew

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CrewBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CrewBooking/internal/service/crew"
)

const msgDirectoryUnavailable = "сервис пользователей временно недоступен"

type Handler struct {
	service CrewService
	logger  Logger
}

func NewHandler(service CrewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/crew
// Список исполнителей, отсортированный по рейтингу
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		if errors.Is(err, crew.ErrDirectoryUnavailable) {
			h.logger.Warn("GET /crew - Directory unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgDirectoryUnavailable)
			return
		}
		h.logger.Error("GET /crew - Failed to list crew: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /crew - Crew retrieved: count=%d", len(result.Crew))
	handlers.RespondJSON(w, http.StatusOK, result)
}
