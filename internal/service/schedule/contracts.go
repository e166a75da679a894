package schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний crew
type ScheduleRepository interface {
	GetWithFallback(ctx context.Context, crewID uuid.UUID) (*domain.CrewSchedule, error)
	GetByCrew(ctx context.Context, crewID *uuid.UUID) (*domain.CrewSchedule, error)
	Upsert(ctx context.Context, schedule *domain.CrewSchedule) (*domain.CrewSchedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
