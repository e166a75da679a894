package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CrewBooking/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"booking_number",
	"client_id",
	"crew_id",
	"service_id",
	"booking_date",
	"start_time",
	"end_time",
	"status",
	"is_paid",
	"paid_at",
	"total_price",
	"notes",
	"cancellation_reason",
	"canceled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// NextNumberSeq возвращает следующее значение последовательности номеров бронирований
func (r *Repository) NextNumberSeq(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var seq int64
	if err := executor.QueryRowContext(ctx, "SELECT nextval('booking_number_seq')").Scan(&seq); err != nil {
		return 0, fmt.Errorf("%w: NextNumberSeq - nextval: %v", ErrExecQuery, err)
	}

	return seq, nil
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
// Нарушение ограничения bookings_no_overlap возвращается как ErrSlotTaken:
// это последний рубеж защиты инварианта непересечения, если проверка доступности
// была выполнена вне сериализуемой транзакции.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_number",
			"client_id",
			"crew_id",
			"service_id",
			"booking_date",
			"start_time",
			"end_time",
			"status",
			"is_paid",
			"total_price",
			"notes",
		).
		Values(
			booking.Number,
			booking.ClientID,
			booking.CrewID,
			booking.ServiceID,
			booking.BookingDate,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.IsPaid,
			booking.TotalPrice,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pgExclusionViolation:
				return nil, fmt.Errorf("%w: Create - %s", ErrSlotTaken, pqErr.Constraint)
			case pgUniqueViolation:
				return nil, fmt.Errorf("%w: Create - %s", ErrDuplicateNumber, pqErr.Constraint)
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку до смены статуса/оплаты
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру.
// Сортировка: сначала новые (booking_date DESC, start_time DESC).
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("booking_date DESC", "start_time DESC", "id DESC")

	if cond := buildFilter(filter); len(cond) > 0 {
		selectBuilder = selectBuilder.Where(cond)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListActiveForCrewDay получает неотмененные бронирования crew на дату по возрастанию времени.
// Если используется транзакция, добавляет FOR UPDATE для блокировки строк дня.
func (r *Repository) ListActiveForCrewDay(ctx context.Context, crewID uuid.UUID, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"crew_id": crewID}).
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.NotEq{"status": domain.StatusCanceled}).
		OrderBy("start_time ASC", "end_time ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveForCrewDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveForCrewDay - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus переводит бронирование из статуса from в to.
// Обновление условное: если статус уже изменился, возвращается ErrStatusConflict.
// При отмене сохраняются причина и время отмены.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from})

	if to == domain.StatusCanceled {
		updateBuilder = updateBuilder.
			Set("cancellation_reason", reason).
			Set("canceled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// MarkPaid отмечает бронирование оплаченным.
// Отмененные и уже оплаченные бронирования не изменяются (ErrPaymentConflict).
func (r *Repository) MarkPaid(ctx context.Context, id int64, paidAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("is_paid", true).
		Set("paid_at", paidAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_paid": false}).
		Where(squirrel.NotEq{"status": domain.StatusCanceled}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentConflict
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking

	err := row.Scan(
		&booking.ID,
		&booking.Number,
		&booking.ClientID,
		&booking.CrewID,
		&booking.ServiceID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.IsPaid,
		&booking.PaidAt,
		&booking.TotalPrice,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CanceledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
