package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CrewBooking/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-CrewBooking/internal/usecase/check_availability"
)

const (
	msgInvalidCrewID   = "некорректный ID исполнителя"
	msgInvalidParams   = "некорректные параметры: date (YYYY-MM-DD), start и end (HH:MM) обязательны"
	msgInvalidInterval = "время начала должно быть раньше времени окончания"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/crew/{crewId}/availability
// Query params: date, start, end (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	crewID, err := handlers.PathUUID(r, "crewId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCrewID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(r, crewID)
	if err != nil {
		h.logger.Warn("GET /crew/{id}/availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInterval):
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /crew/{id}/availability - Failed to check availability: crew_id=%s, error=%v", crewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /crew/{id}/availability - Checked: crew_id=%s, interval=[%s, %s), available=%t, conflicts=%v",
		crewID, result.StartTime, result.EndTime, result.Accepted, result.Conflicts)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
