package list_crew_reviews

import (
	"net/http"

	"github.com/m04kA/SMC-CrewBooking/internal/api/handlers"
)

const msgInvalidCrewID = "некорректный ID исполнителя"

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/crew/{crewId}/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	crewID, err := handlers.PathUUID(r, "crewId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCrewID)
		return
	}

	result, err := h.service.ListByCrew(r.Context(), crewID)
	if err != nil {
		h.logger.Error("GET /crew/{id}/reviews - Failed to list reviews: crew_id=%s, error=%v", crewID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /crew/{id}/reviews - Reviews retrieved: crew_id=%s, count=%d", crewID, len(result.Reviews))
	handlers.RespondJSON(w, http.StatusOK, result)
}
