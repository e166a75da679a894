package check_availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/availability"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// AvailabilityChecker проверка допуска интервала
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, crewID uuid.UUID, date time.Time, start, end types.TimeOfDay) (availability.Decision, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
