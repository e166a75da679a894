package identity

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден в сервисе пользователей
	ErrUserNotFound = errors.New("identity client: user not found")

	// ErrNotCrew возвращается, когда пользователь не является crew
	ErrNotCrew = errors.New("identity client: user is not a crew member")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identity client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("identity client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что сервис пользователей недоступен и профиль crew не проверен
	ErrServiceDegraded = errors.New("identity service unavailable: graceful degradation applied")
)
