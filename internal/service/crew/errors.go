package crew

import "errors"

var (
	// ErrDirectoryUnavailable возвращается, когда сервис пользователей недоступен
	ErrDirectoryUnavailable = errors.New("crew directory unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
