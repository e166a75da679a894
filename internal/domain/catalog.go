package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// Role of an authenticated actor
type Role string

const (
	RoleClient Role = "client"
	RoleCrew   Role = "crew"
	RoleAdmin  Role = "admin"
)

// Valid reports whether the role is known
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleCrew || r == RoleAdmin
}

// Service is a bookable offering (photo session, video shooting, ...)
type Service struct {
	ID          int64
	Name        string
	Tag         string
	Description string
	RatePerHour decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Review is left by the client once the booking has been served
type Review struct {
	ID        int64
	BookingID int64
	ClientID  uuid.UUID
	CrewID    uuid.UUID
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// CrewRating aggregated rating of a crew member
type CrewRating struct {
	CrewID        uuid.UUID
	AverageRating decimal.Decimal
	ReviewsCount  int
}

// CrewMember is a bookable provider resolved from the identity service
type CrewMember struct {
	ID       uuid.UUID
	FullName string
	Email    string
	Role     Role
}

// CrewSchedule is the operating window of a crew member.
// A nil CrewID marks the global fallback row.
type CrewSchedule struct {
	ID             int64
	CrewID         *uuid.UUID
	DayStart       types.TimeOfDay
	DayEnd         types.TimeOfDay
	QuantumMinutes int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsGlobal returns true for the fallback schedule
func (s *CrewSchedule) IsGlobal() bool {
	return s.CrewID == nil
}
