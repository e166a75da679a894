package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
)

// BookingSource источник неотмененных бронирований crew на дату.
// Внутри транзакции реализация должна блокировать прочитанные строки.
type BookingSource interface {
	ListActiveForCrewDay(ctx context.Context, crewID uuid.UUID, date time.Time) ([]*domain.Booking, error)
}

// Recorder приемник метрик решений о допуске
type Recorder interface {
	ObserveAdmission(accepted bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NopRecorder не собирает метрики
type NopRecorder struct{}

// ObserveAdmission ничего не делает
func (NopRecorder) ObserveAdmission(bool) {}
