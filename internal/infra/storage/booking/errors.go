package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда вставка нарушает ограничение исключения по интервалу crew
	ErrSlotTaken = errors.New("booking.repository: slot is already taken")

	// ErrDuplicateNumber возвращается при коллизии номера бронирования
	ErrDuplicateNumber = errors.New("booking.repository: duplicate booking number")

	// ErrStatusConflict возвращается, когда статус изменился между чтением и обновлением
	ErrStatusConflict = errors.New("booking.repository: booking status changed concurrently")

	// ErrPaymentConflict возвращается, когда бронирование уже оплачено или отменено
	ErrPaymentConflict = errors.New("booking.repository: booking cannot be marked paid")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
