package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// Ключи маршрутизации доменных событий в topic exchange
const (
	RoutingBookingCreated       = "booking.created"
	RoutingBookingStatusChanged = "booking.status_changed"
	RoutingBookingPaid          = "booking.paid"
	RoutingReviewCreated        = "review.created"
)

// Envelope общая оболочка события
type Envelope struct {
	EventID    uuid.UUID   `json:"event_id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// BookingPayload снимок бронирования в событии
type BookingPayload struct {
	BookingID     int64                `json:"booking_id"`
	BookingNumber string               `json:"booking_number"`
	ClientID      uuid.UUID            `json:"client_id"`
	CrewID        uuid.UUID            `json:"crew_id"`
	ServiceID     int64                `json:"service_id"`
	BookingDate   string               `json:"booking_date"`
	StartTime     types.TimeOfDay      `json:"start_time"`
	EndTime       types.TimeOfDay      `json:"end_time"`
	Status        domain.BookingStatus `json:"status"`
	IsPaid        bool                 `json:"is_paid"`
	TotalPrice    decimal.Decimal      `json:"total_price"`
}

// StatusChangedPayload смена статуса бронирования
type StatusChangedPayload struct {
	BookingPayload
	PreviousStatus     domain.BookingStatus `json:"previous_status"`
	CancellationReason *string              `json:"cancellation_reason,omitempty"`
}

// ReviewPayload созданный отзыв
type ReviewPayload struct {
	ReviewID  int64     `json:"review_id"`
	BookingID int64     `json:"booking_id"`
	CrewID    uuid.UUID `json:"crew_id"`
	Rating    int       `json:"rating"`
}

// NewEnvelope создает событие с новым идентификатором
func NewEnvelope(eventType string, occurredAt time.Time, payload interface{}) Envelope {
	return Envelope{
		EventID:    uuid.New(),
		Type:       eventType,
		OccurredAt: occurredAt.UTC(),
		Payload:    payload,
	}
}

// BookingSnapshot переводит бронирование в полезную нагрузку события
func BookingSnapshot(b *domain.Booking) BookingPayload {
	return BookingPayload{
		BookingID:     b.ID,
		BookingNumber: b.Number,
		ClientID:      b.ClientID,
		CrewID:        b.CrewID,
		ServiceID:     b.ServiceID,
		BookingDate:   b.BookingDate.Format(domain.DateFormat),
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        b.Status,
		IsPaid:        b.IsPaid,
		TotalPrice:    b.TotalPrice,
	}
}
