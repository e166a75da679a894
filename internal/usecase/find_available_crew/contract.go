package find_available_crew

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписаний crew
type ScheduleRepository interface {
	GetWithFallback(ctx context.Context, crewID uuid.UUID) (*domain.CrewSchedule, error)
}

// CrewDirectory интерфейс клиента сервиса пользователей
type CrewDirectory interface {
	ListCrewMembers(ctx context.Context) ([]*domain.CrewMember, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
