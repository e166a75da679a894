package get_crew_schedule

import (
	"net/http"

	"github.com/m04kA/SMC-CrewBooking/internal/api/handlers"
)

const msgInvalidCrewID = "некорректный ID исполнителя"

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

// Handle GET /api/v1/crew/{crewId}/schedule
// Возвращает действующее расписание: собственное, глобальное или значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	crewID, err := handlers.PathUUID(r, "crewId")
	if err != nil {
		h.logger.Warn("GET /crew/{id}/schedule - Invalid crew ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCrewID)
		return
	}

	schedule, err := h.service.Get(r.Context(), crewID)
	if err != nil {
		h.logger.Error("GET /crew/{id}/schedule - Failed to get schedule: crew_id=%s, error=%v", crewID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /crew/{id}/schedule - Schedule retrieved: crew_id=%s, source=%s", crewID, schedule.Source)
	handlers.RespondJSON(w, http.StatusOK, schedule)
}

// HandleGlobal GET /api/v1/schedule
func (h *Handler) HandleGlobal(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.service.GetGlobal(r.Context())
	if err != nil {
		h.logger.Error("GET /schedule - Failed to get global schedule: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule - Global schedule retrieved: source=%s", schedule.Source)
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
