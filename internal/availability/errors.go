package availability

import "errors"

var (
	// ErrInvalidInterval возвращается, когда start >= end или время вне суток
	ErrInvalidInterval = errors.New("availability: invalid interval")

	// ErrInvalidQuantum возвращается при некорректном размере кванта
	ErrInvalidQuantum = errors.New("availability: invalid quantum")

	// ErrFetchBookings возвращается при ошибке чтения бронирований из хранилища
	ErrFetchBookings = errors.New("availability: failed to fetch bookings")
)
