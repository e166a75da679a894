package create_review

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CrewBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CrewBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CrewBooking/internal/service/reviews"
	"github.com/m04kA/SMC-CrewBooking/internal/service/reviews/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidReview      = "оценка должна быть от 1 до 5, комментарий не длиннее 2000 символов"
	msgUnauthorized       = "требуется аутентификация"
	msgForbidden          = "оставить отзыв может только клиент бронирования"
	msgNotFound           = "бронирование не найдено"
	msgNotServed          = "отзыв можно оставить только после выполнения бронирования"
	msgAlreadyReviewed    = "отзыв на это бронирование уже оставлен"
)

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

// Handle POST /api/v1/bookings/{bookingId}/review
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/review - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), actor, bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReview)

		case errors.Is(err, reviews.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reviews.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/review - Access denied: booking_id=%d, actor=%s", bookingID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reviews.ErrBookingNotServed):
			handlers.RespondConflict(w, msgNotServed)

		case errors.Is(err, reviews.ErrAlreadyReviewed):
			handlers.RespondConflict(w, msgAlreadyReviewed)

		default:
			h.logger.Error("POST /bookings/{id}/review - Failed to create review: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/review - Review created: booking_id=%d, review_id=%d, crew_id=%s",
		bookingID, result.Review.ID, result.Review.CrewID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
