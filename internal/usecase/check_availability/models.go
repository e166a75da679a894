package check_availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// Request модель запроса проверки интервала
type Request struct {
	CrewID    uuid.UUID
	Date      time.Time
	StartTime types.TimeOfDay
	EndTime   types.TimeOfDay
}

// Response результат проверки.
// Conflicts пуст при Accepted = true и упорядочен по началу бронирования иначе.
type Response struct {
	CrewID    uuid.UUID
	Date      time.Time
	StartTime types.TimeOfDay
	EndTime   types.TimeOfDay
	Accepted  bool
	Conflicts []int64
}
