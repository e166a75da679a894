package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/availability"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/internal/infra/events"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	NextNumberSeq(ctx context.Context) (int64, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// AvailabilityChecker проверка допуска интервала
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, crewID uuid.UUID, date time.Time, start, end types.TimeOfDay) (availability.Decision, error)
}

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// CrewDirectory интерфейс клиента сервиса пользователей
type CrewDirectory interface {
	GetCrewMember(ctx context.Context, crewID uuid.UUID) (*domain.CrewMember, error)
}

// WindowsCache интерфейс кэша свободных окон
type WindowsCache interface {
	Invalidate(ctx context.Context, crewID uuid.UUID, date time.Time) error
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Envelope) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
