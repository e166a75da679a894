package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrCrewNotFound возвращается, когда crew не найден или пользователь не является crew
	ErrCrewNotFound = errors.New("create_booking: crew member not found")

	// ErrInvalidInterval возвращается, когда начало интервала не раньше конца
	ErrInvalidInterval = errors.New("create_booking: invalid interval")

	// ErrInvalidDate возвращается при бронировании на прошедшую дату
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrTooLateToBook возвращается, когда время начала сегодня уже прошло
	ErrTooLateToBook = errors.New("create_booking: too late to book this interval")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с другим бронированием crew
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrForbidden возвращается, когда актор не может создать бронирование
	ErrForbidden = errors.New("create_booking: forbidden")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ConflictError отказ в допуске с перечнем конфликтующих бронирований.
// Сопоставляется с ErrSlotNotAvailable через errors.Is.
type ConflictError struct {
	Conflicts []int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: conflicts with bookings %v", ErrSlotNotAvailable, e.Conflicts)
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotNotAvailable
}
