package find_available_crew

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CrewBooking/internal/api/handlers"
	findAvailableCrew "github.com/m04kA/SMC-CrewBooking/internal/usecase/find_available_crew"
)

const (
	msgInvalidParams        = "некорректные параметры: date (YYYY-MM-DD), start и end (HH:MM) обязательны, crewId - uuid"
	msgInvalidInterval      = "время начала должно быть раньше времени окончания"
	msgDirectoryUnavailable = "сервис пользователей временно недоступен"
)

type Handler struct {
	useCase FindAvailableCrewUseCase
	logger  Logger
}

func NewHandler(useCase FindAvailableCrewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/crew/available
// Query params: date, start, end (required), crewId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r)
	if err != nil {
		h.logger.Warn("GET /crew/available - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, findAvailableCrew.ErrInvalidInterval):
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, findAvailableCrew.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, findAvailableCrew.ErrCrewUnavailable):
			h.logger.Warn("GET /crew/available - Directory unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgDirectoryUnavailable)

		default:
			h.logger.Error("GET /crew/available - Failed to find crew: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /crew/available - Found %d available crew for [%s, %s)",
		len(result.Available), result.StartTime, result.EndTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
