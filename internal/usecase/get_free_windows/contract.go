package get_free_windows

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/availability"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	windowsCache "github.com/m04kA/SMC-CrewBooking/internal/infra/cache/windows"
)

// WindowsEngine построение свободных окон
type WindowsEngine interface {
	ListFreeWindows(ctx context.Context, crewID uuid.UUID, date time.Time, opts availability.WindowOptions) ([]availability.Interval, error)
}

// ScheduleRepository интерфейс репозитория расписаний crew
type ScheduleRepository interface {
	GetWithFallback(ctx context.Context, crewID uuid.UUID) (*domain.CrewSchedule, error)
}

// WindowsCache интерфейс кэша свободных окон.
// Set принимает поколение, прочитанное в Get до построения окон.
type WindowsCache interface {
	Get(ctx context.Context, crewID uuid.UUID, date time.Time, variant string) (windowsCache.Lookup, error)
	Set(ctx context.Context, crewID uuid.UUID, date time.Time, variant string, generation int64, windows []availability.Interval) error
}

// CacheRecorder метрики попаданий в кэш
type CacheRecorder interface {
	ObserveCacheLookup(hit bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
