package get_free_windows

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CrewBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	getFreeWindows "github.com/m04kA/SMC-CrewBooking/internal/usecase/get_free_windows"
)

const (
	msgInvalidCrewID = "некорректный ID исполнителя"
	msgInvalidParams = "некорректные параметры: date (YYYY-MM-DD) обязательна, dayStart/dayEnd в формате HH:MM, quantum в минутах"
	msgInvalidWindow = "некорректное операционное окно или квант"
)

type Handler struct {
	useCase GetFreeWindowsUseCase
	logger  Logger
}

func NewHandler(useCase GetFreeWindowsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/crew/{crewId}/free-windows
// Query params: date (required), dayStart, dayEnd, quantum (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	crewID, err := handlers.PathUUID(r, "crewId")
	if err != nil {
		h.logger.Warn("GET /crew/{id}/free-windows - Invalid crew ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCrewID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(r, crewID)
	if err != nil {
		h.logger.Warn("GET /crew/{id}/free-windows - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getFreeWindows.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getFreeWindows.ErrInvalidWindow):
			h.logger.Warn("GET /crew/{id}/free-windows - Invalid window: crew_id=%s, error=%v", crewID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("GET /crew/{id}/free-windows - Failed to get windows: crew_id=%s, error=%v", crewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /crew/{id}/free-windows - Windows retrieved successfully: crew_id=%s, date=%s, windows_count=%d, cached=%t",
		crewID, result.Date.Format(domain.DateFormat), len(result.Windows), result.Cached)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
