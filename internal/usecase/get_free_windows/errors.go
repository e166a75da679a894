package get_free_windows

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_free_windows: invalid input data")

	// ErrInvalidWindow возвращается при некорректном операционном окне или кванте
	ErrInvalidWindow = errors.New("get_free_windows: invalid operating window")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_free_windows: internal error")
)
