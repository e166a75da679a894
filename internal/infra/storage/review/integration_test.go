//go:build integration

package review_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	reviewRepo "github.com/m04kA/SMC-CrewBooking/internal/infra/storage/review"
	"github.com/m04kA/SMC-CrewBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CrewBooking/pkg/txmanager"
)

var testDB *sql.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5432"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "crew_booking_test"),
	)

	var err error
	testDB, err = sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	schema, err := os.ReadFile("../../../../migrations/001_init.sql")
	if err != nil {
		log.Fatalf("failed to read migration: %v", err)
	}

	dropTables()
	if _, err := testDB.Exec(string(schema)); err != nil {
		log.Fatalf("failed to apply migration: %v", err)
	}

	code := m.Run()

	dropTables()
	testDB.Close()
	os.Exit(code)
}

func dropTables() {
	testDB.Exec("DROP TABLE IF EXISTS reviews, crew_ratings, crew_schedules, bookings, services")
	testDB.Exec("DROP SEQUENCE IF EXISTS booking_number_seq")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// servedBookings создает выполненные бронирования crew с непересекающимися интервалами
func servedBookings(t *testing.T, crewID uuid.UUID, n int) []int64 {
	t.Helper()

	var serviceID int64
	require.NoError(t, testDB.QueryRow(
		"INSERT INTO services (name, rate_per_hour) VALUES ('Видеосъемка', 2000) RETURNING id",
	).Scan(&serviceID))

	ids := make([]int64, n)
	for i := range ids {
		require.NoError(t, testDB.QueryRow(
			`INSERT INTO bookings (booking_number, client_id, crew_id, service_id, booking_date, start_time, end_time, status)
			 VALUES ($1, $2, $3, $4, DATE '2025-10-16', make_time($5, 0, 0), make_time($5 + 1, 0, 0), 'served')
			 RETURNING id`,
			fmt.Sprintf("RVW%s%04d", crewID.String()[:3], i), uuid.New(), crewID, serviceID, i,
		).Scan(&ids[i]))
	}
	return ids
}

// Одновременные отзывы об одном crew: рейтинг учитывает каждый из них
func TestRecalculateRating_ConcurrentReviews(t *testing.T) {
	db := dbmetrics.Wrap(testDB)
	repo := reviewRepo.NewRepository(db)
	txManager := txmanager.NewTransactionManager(db)

	const reviewsCount = 8
	crewID := uuid.New()
	bookingIDs := servedBookings(t, crewID, reviewsCount)

	var (
		inserted sync.WaitGroup
		done     sync.WaitGroup
	)
	inserted.Add(reviewsCount)
	done.Add(reviewsCount)

	errs := make([]error, reviewsCount)
	for i, bookingID := range bookingIDs {
		go func() {
			defer done.Done()
			errs[i] = txManager.Do(context.Background(), func(txCtx context.Context) error {
				_, err := repo.Create(txCtx, &domain.Review{
					BookingID: bookingID,
					ClientID:  uuid.New(),
					CrewID:    crewID,
					Rating:    1 + i%5,
				})
				inserted.Done()
				if err != nil {
					return err
				}

				// Все отзывы вставлены и не зафиксированы до начала пересчета
				inserted.Wait()
				_, err = repo.RecalculateRating(txCtx, crewID)
				return err
			})
		}()
	}
	done.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	rating, err := repo.GetRating(context.Background(), crewID)
	require.NoError(t, err)
	assert.Equal(t, reviewsCount, rating.ReviewsCount)

	var expected decimal.Decimal
	require.NoError(t, testDB.QueryRow(
		"SELECT ROUND(AVG(rating)::numeric, 2) FROM reviews WHERE crew_id = $1", crewID,
	).Scan(&expected))
	assert.True(t, expected.Equal(rating.AverageRating), "%s != %s", expected, rating.AverageRating)
}
