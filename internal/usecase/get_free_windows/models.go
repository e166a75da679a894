package get_free_windows

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/availability"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// Defaults операционное окно из конфигурации сервиса.
// Применяется, если в запросе нет переопределений и в БД нет расписания.
type Defaults struct {
	DayStart types.TimeOfDay
	DayEnd   types.TimeOfDay
	Quantum  *time.Duration // nil - максимальные окна
}

// Request модель запроса свободных окон
type Request struct {
	CrewID   uuid.UUID        // Crew
	Date     time.Time        // Дата (без времени)
	DayStart *types.TimeOfDay // Переопределение начала окна (опционально)
	DayEnd   *types.TimeOfDay // Переопределение конца окна (опционально)
	Quantum  *time.Duration   // Переопределение кванта; 0 - квант по умолчанию (1 час)
}

// Response модель ответа со свободными окнами
type Response struct {
	CrewID   uuid.UUID
	Date     time.Time
	DayStart types.TimeOfDay
	DayEnd   types.TimeOfDay
	Quantum  *time.Duration
	Windows  []availability.Interval // В хронологическом порядке
	Cached   bool
}
