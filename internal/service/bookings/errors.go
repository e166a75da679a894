package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается, когда переход статуса запрещен
	ErrInvalidTransition = errors.New("booking status transition is not allowed")

	// ErrAlreadyPaid возвращается при повторной оплате
	ErrAlreadyPaid = errors.New("booking is already paid")

	// ErrPaymentOnCanceled возвращается при оплате отмененного бронирования
	ErrPaymentOnCanceled = errors.New("canceled booking cannot be paid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
