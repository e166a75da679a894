package find_available_crew

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("find_available_crew: invalid input data")

	// ErrInvalidInterval возвращается, когда начало интервала не раньше конца
	ErrInvalidInterval = errors.New("find_available_crew: invalid interval")

	// ErrCrewUnavailable возвращается, когда список crew недоступен
	ErrCrewUnavailable = errors.New("find_available_crew: crew directory unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("find_available_crew: internal error")
)
