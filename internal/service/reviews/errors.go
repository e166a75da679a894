package reviews

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBookingNotServed возвращается при отзыве на невыполненное бронирование
	ErrBookingNotServed = errors.New("booking is not served yet")

	// ErrAlreadyReviewed возвращается при повторном отзыве на бронирование
	ErrAlreadyReviewed = errors.New("booking already reviewed")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
