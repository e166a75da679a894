package find_available_crew

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/availability"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// Defaults операционное окно из конфигурации сервиса.
// Применяется, если в БД нет ни расписания crew, ни глобального.
type Defaults struct {
	DayStart types.TimeOfDay
	DayEnd   types.TimeOfDay
}

// Request модель запроса поиска свободных crew
type Request struct {
	Date      time.Time
	StartTime types.TimeOfDay
	EndTime   types.TimeOfDay
	CrewID    *uuid.UUID // Если задан, для этого crew ищется ближайший свободный интервал той же длины
}

// Response модель ответа
type Response struct {
	Date      time.Time
	StartTime types.TimeOfDay
	EndTime   types.TimeOfDay
	Available []*domain.CrewMember // Crew без конфликтов, по имени

	// Для запрошенного crew
	RequestedAvailable *bool
	NextFree           *availability.Interval // nil, если до конца рабочего дня crew интервала такой длины нет
}
