package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending  BookingStatus = "pending"
	StatusServed   BookingStatus = "served"
	StatusCanceled BookingStatus = "canceled"
)

var (
	// ErrInvalidStatus is returned for a status outside the known set
	ErrInvalidStatus = errors.New("domain: invalid booking status")
	// ErrInvalidTransition is returned when the state machine forbids the move
	ErrInvalidTransition = errors.New("domain: invalid status transition")
	// ErrAlreadyPaid is returned when payment is recorded twice
	ErrAlreadyPaid = errors.New("domain: booking is already paid")
	// ErrPaymentOnCanceled is returned when paying for a canceled booking
	ErrPaymentOnCanceled = errors.New("domain: canceled booking cannot be paid")
)

// transitions lists allowed exits per state; served and canceled are terminal.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:  {StatusServed, StatusCanceled},
	StatusServed:   {},
	StatusCanceled: {},
}

// Valid reports whether the status is one of the known values
func (s BookingStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal returns true for states without exits
func (s BookingStatus) IsTerminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// CanTransitionTo reports whether the move s -> next is allowed
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseBookingStatus converts a raw value into a BookingStatus
func ParseBookingStatus(raw string) (BookingStatus, error) {
	s := BookingStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// Booking represents a reserved interval of a crew member on a date.
// The interval is half-open [StartTime, EndTime) and never changes after creation.
type Booking struct {
	ID          int64
	Number      string
	ClientID    uuid.UUID
	CrewID      uuid.UUID
	ServiceID   int64
	BookingDate time.Time
	StartTime   types.TimeOfDay
	EndTime     types.TimeOfDay
	Status      BookingStatus

	// Payment is orthogonal to Status
	IsPaid     bool
	PaidAt     *time.Time
	TotalPrice decimal.Decimal

	Notes              *string
	CancellationReason *string
	CanceledAt         *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies the crew calendar
func (b *Booking) IsActive() bool {
	return b.Status != StatusCanceled
}

// Duration returns the length of the booked interval
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// TransitionTo validates the move to next
func (b *Booking) TransitionTo(next BookingStatus) error {
	if !next.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, next)
	}
	return nil
}

// CheckPayable validates that payment can be recorded.
// Pending and served bookings are payable once; canceled bookings are not.
func (b *Booking) CheckPayable() error {
	if b.IsPaid {
		return ErrAlreadyPaid
	}
	if b.Status == StatusCanceled {
		return ErrPaymentOnCanceled
	}
	return nil
}

// CalculatePrice returns rate per hour multiplied by the interval length, rounded to cents.
// The length is taken to the second.
func CalculatePrice(ratePerHour decimal.Decimal, start, end types.TimeOfDay) decimal.Decimal {
	seconds := decimal.NewFromInt(int64(end.Sub(start) / time.Second))
	return ratePerHour.Mul(seconds).Div(decimal.NewFromInt(int64(time.Hour / time.Second))).Round(2)
}

// BookingsFilter describes optional predicates for listing bookings.
// Nil fields are not applied.
type BookingsFilter struct {
	ClientID  *uuid.UUID
	CrewID    *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Statuses  []BookingStatus
	IsPaid    *bool
}
