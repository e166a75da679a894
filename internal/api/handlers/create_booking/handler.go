package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CrewBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CrewBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CrewBooking/internal/usecase/create_booking"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInterval    = "время начала должно быть раньше времени окончания"
	msgInvalidInput       = "некорректные данные бронирования"
	msgSlotNotAvailable   = "выбранный интервал недоступен"
	msgServiceNotFound    = "услуга не найдена"
	msgCrewNotFound       = "исполнитель не найден"
	msgInvalidBookingDate = "нельзя бронировать на прошедшую дату"
	msgTooLateToBook      = "время начала уже прошло"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflict *createBooking.ConflictError
		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /bookings - Slot not available: crew_id=%s, conflicts=%v", req.CrewID, conflict.Conflicts)
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Code:      http.StatusConflict,
				Message:   msgSlotNotAvailable,
				Conflicts: conflict.Conflicts,
			})

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot taken concurrently: crew_id=%s", req.CrewID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrInvalidInterval):
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrForbidden):
			h.logger.Warn("POST /bookings - Forbidden: actor=%s", actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrCrewNotFound):
			h.logger.Warn("POST /bookings - Crew not found: crew_id=%s", req.CrewID)
			handlers.RespondNotFound(w, msgCrewNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: actor=%s, crew_id=%s, error=%v",
				actor.ID, req.CrewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, number=%s, crew_id=%s",
		result.ID, result.Number, result.CrewID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
