package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CrewBooking/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

const pgUniqueViolation = "23505"

// lockRatingQuery блокирует пересчет рейтинга crew до конца транзакции.
// Следующий запрос пересчета берет новый снимок и видит отзывы, зафиксированные до получения блокировки.
const lockRatingQuery = `SELECT pg_advisory_xact_lock(hashtext('crew_rating:' || $1::text))`

// recalculateRatingQuery пересчитывает агрегат по всем отзывам crew
const recalculateRatingQuery = `
INSERT INTO crew_ratings (crew_id, average_rating, reviews_count, updated_at)
SELECT $1, COALESCE(ROUND(AVG(rating)::numeric, 2), 0), COUNT(*), NOW()
FROM reviews
WHERE crew_id = $1
ON CONFLICT (crew_id) DO UPDATE SET
    average_rating = EXCLUDED.average_rating,
    reviews_count = EXCLUDED.reviews_count,
    updated_at = NOW()
RETURNING average_rating, reviews_count`

var reviewColumns = []string{
	"id",
	"booking_id",
	"client_id",
	"crew_id",
	"rating",
	"comment",
	"created_at",
}

// Repository репозиторий отзывов и рейтингов crew
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает отзыв. Один отзыв на бронирование (ErrDuplicateReview).
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns("booking_id", "client_id", "crew_id", "rating", "comment").
		Values(review.BookingID, review.ClientID, review.CrewID, review.Rating, review.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return review, nil
}

// ListByCrew получает отзывы о crew, сначала новые
func (r *Repository) ListByCrew(ctx context.Context, crewID uuid.UUID) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"crew_id": crewID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByCrew - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCrew - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		err := rows.Scan(
			&review.ID,
			&review.BookingID,
			&review.ClientID,
			&review.CrewID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByCrew - scan row: %v", ErrScanRow, err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByCrew - rows error: %v", ErrScanRow, err)
	}

	return reviews, nil
}

// RecalculateRating пересчитывает средний рейтинг crew и сохраняет его.
// Вызывается внутри транзакции: пересчеты одного crew выполняются по очереди.
func (r *Repository) RecalculateRating(ctx context.Context, crewID uuid.UUID) (*domain.CrewRating, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, lockRatingQuery, crewID); err != nil {
		return nil, fmt.Errorf("%w: RecalculateRating - lock rating: %v", ErrExecQuery, err)
	}

	rating := domain.CrewRating{CrewID: crewID}
	err := executor.QueryRowContext(ctx, recalculateRatingQuery, crewID).Scan(&rating.AverageRating, &rating.ReviewsCount)
	if err != nil {
		return nil, fmt.Errorf("%w: RecalculateRating - execute upsert: %v", ErrExecQuery, err)
	}

	return &rating, nil
}

// GetRating получает рейтинг crew
func (r *Repository) GetRating(ctx context.Context, crewID uuid.UUID) (*domain.CrewRating, error) {
	ratings, err := r.GetRatings(ctx, []uuid.UUID{crewID})
	if err != nil {
		return nil, err
	}

	rating, ok := ratings[crewID]
	if !ok {
		return nil, ErrRatingNotFound
	}

	return rating, nil
}

// GetRatings получает рейтинги набора crew. Crew без отзывов в результат не попадают.
func (r *Repository) GetRatings(ctx context.Context, crewIDs []uuid.UUID) (map[uuid.UUID]*domain.CrewRating, error) {
	ratings := make(map[uuid.UUID]*domain.CrewRating, len(crewIDs))
	if len(crewIDs) == 0 {
		return ratings, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("crew_id", "average_rating", "reviews_count").
		From("crew_ratings").
		Where(squirrel.Eq{"crew_id": crewIDs}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRatings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRatings - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rating domain.CrewRating
		if err := rows.Scan(&rating.CrewID, &rating.AverageRating, &rating.ReviewsCount); err != nil {
			return nil, fmt.Errorf("%w: GetRatings - scan row: %v", ErrScanRow, err)
		}
		ratings[rating.CrewID] = &rating
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRatings - rows error: %v", ErrScanRow, err)
	}

	return ratings, nil
}
