package review

import "errors"

var (
	// ErrDuplicateReview возвращается при повторном отзыве на то же бронирование
	ErrDuplicateReview = errors.New("review.repository: booking already reviewed")

	// ErrRatingNotFound возвращается, когда у crew еще нет рейтинга
	ErrRatingNotFound = errors.New("review.repository: rating not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("review.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("review.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("review.repository: failed to scan row")
)
