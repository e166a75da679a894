package create_booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CrewBooking/internal/authz"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor     authz.Actor     // Кто создает бронирование
	ClientID  uuid.UUID       // Клиент; для роли client совпадает с Actor.ID
	CrewID    uuid.UUID       // Crew, которого бронируют
	ServiceID int64           // ID услуги
	Date      time.Time       // Дата бронирования (без времени)
	StartTime types.TimeOfDay // Начало интервала
	EndTime   types.TimeOfDay // Конец интервала (не включается)
	Notes     *string         // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	Number      string
	ClientID    uuid.UUID
	CrewID      uuid.UUID
	ServiceID   int64
	BookingDate time.Time
	StartTime   types.TimeOfDay
	EndTime     types.TimeOfDay
	Status      string
	IsPaid      bool
	TotalPrice  decimal.Decimal

	// Денормализованные данные
	ServiceName  string
	CrewFullName *string // nil, если сервис пользователей недоступен
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
