package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CrewBooking/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

var scheduleColumns = []string{
	"id",
	"crew_id",
	"day_start",
	"day_end",
	"quantum_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий операционных окон crew
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCrew получает расписание crew.
// crewID == nil запрашивает глобальное расписание по умолчанию.
func (r *Repository) GetByCrew(ctx context.Context, crewID *uuid.UUID) (*domain.CrewSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(scheduleColumns...).From("crew_schedules")

	// Фильтрация по crew_id (NULL или конкретное значение)
	if crewID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"crew_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"crew_id": *crewID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCrew - build select query: %v", ErrBuildQuery, err)
	}

	var schedule domain.CrewSchedule
	var crew uuid.NullUUID
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&crew,
		&schedule.DayStart,
		&schedule.DayEnd,
		&schedule.QuantumMinutes,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCrew - scan schedule: %v", ErrScanRow, err)
	}

	if crew.Valid {
		id := crew.UUID
		schedule.CrewID = &id
	}
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}

// GetWithFallback получает расписание с учетом приоритетов:
// 1. Расписание конкретного crew
// 2. Глобальное расписание (crew_id IS NULL)
//
// Если расписание не найдено ни на одном уровне, возвращает ErrScheduleNotFound
func (r *Repository) GetWithFallback(ctx context.Context, crewID uuid.UUID) (*domain.CrewSchedule, error) {
	// 1. Пробуем получить расписание crew
	schedule, err := r.GetByCrew(ctx, &crewID)
	if err == nil {
		return schedule, nil
	}
	if !errors.Is(err, ErrScheduleNotFound) {
		return nil, fmt.Errorf("%w: GetWithFallback - crew level: %v", ErrExecQuery, err)
	}

	// 2. Пробуем получить глобальное расписание
	schedule, err = r.GetByCrew(ctx, nil)
	if err == nil {
		return schedule, nil
	}
	if !errors.Is(err, ErrScheduleNotFound) {
		return nil, fmt.Errorf("%w: GetWithFallback - global level: %v", ErrExecQuery, err)
	}

	return nil, ErrScheduleNotFound
}

// Upsert создает или обновляет расписание crew (или глобальное, если CrewID == nil)
func (r *Repository) Upsert(ctx context.Context, schedule *domain.CrewSchedule) (*domain.CrewSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Для глобальной строки уникальность обеспечивается частичным индексом по выражению
	conflictTarget := "ON CONFLICT (crew_id)"
	if schedule.IsGlobal() {
		conflictTarget = "ON CONFLICT ((crew_id IS NULL)) WHERE crew_id IS NULL"
	}

	query, args, err := psqlbuilder.Insert("crew_schedules").
		Columns("crew_id", "day_start", "day_end", "quantum_minutes").
		Values(schedule.CrewID, schedule.DayStart, schedule.DayEnd, schedule.QuantumMinutes).
		Suffix(conflictTarget + " DO UPDATE SET " +
			"day_start = EXCLUDED.day_start, " +
			"day_end = EXCLUDED.day_end, " +
			"quantum_minutes = EXCLUDED.quantum_minutes, " +
			"updated_at = NOW() " +
			"RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&schedule.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}
