package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CrewBooking/internal/authz"
	"github.com/m04kA/SMC-CrewBooking/internal/availability"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-CrewBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-CrewBooking/internal/infra/storage/catalog"
	identityClient "github.com/m04kA/SMC-CrewBooking/internal/integrations/identity"
	"github.com/m04kA/SMC-CrewBooking/pkg/logger"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

type mockBookingRepo struct {
	createFn func(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	created  []*domain.Booking
}

func (m *mockBookingRepo) NextNumberSeq(context.Context) (int64, error) { return 7, nil }

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if m.createFn != nil {
		return m.createFn(ctx, b)
	}
	b.ID = int64(len(m.created) + 1)
	m.created = append(m.created, b)
	return b, nil
}

type mockChecker struct {
	checkFn func(ctx context.Context, crewID uuid.UUID, date time.Time, start, end types.TimeOfDay) (availability.Decision, error)
}

func (m *mockChecker) CheckAvailability(ctx context.Context, crewID uuid.UUID, date time.Time, start, end types.TimeOfDay) (availability.Decision, error) {
	return m.checkFn(ctx, crewID, date, start, end)
}

type mockServiceRepo struct {
	getFn func(ctx context.Context, id int64) (*domain.Service, error)
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	return m.getFn(ctx, id)
}

type mockCrew struct {
	getFn func(ctx context.Context, id uuid.UUID) (*domain.CrewMember, error)
}

func (m *mockCrew) GetCrewMember(ctx context.Context, id uuid.UUID) (*domain.CrewMember, error) {
	return m.getFn(ctx, id)
}

type mockCache struct {
	invalidated int
}

func (m *mockCache) Invalidate(context.Context, uuid.UUID, time.Time) error {
	m.invalidated++
	return nil
}

type mockPublisher struct {
	published []events.Envelope
	err       error
}

func (m *mockPublisher) Publish(_ context.Context, e events.Envelope) error {
	m.published = append(m.published, e)
	return m.err
}

type mockTxManager struct {
	commitErr error
}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return m.commitErr
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	bookings  *mockBookingRepo
	checker   *mockChecker
	services  *mockServiceRepo
	crew      *mockCrew
	cache     *mockCache
	publisher *mockPublisher
	tx        *mockTxManager
	uc        *UseCase
}

var today = time.Date(2025, 10, 15, 12, 30, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		bookings: &mockBookingRepo{},
		checker: &mockChecker{checkFn: func(context.Context, uuid.UUID, time.Time, types.TimeOfDay, types.TimeOfDay) (availability.Decision, error) {
			return availability.Decision{Accepted: true}, nil
		}},
		services: &mockServiceRepo{getFn: func(_ context.Context, id int64) (*domain.Service, error) {
			return &domain.Service{ID: id, Name: "Фотосессия", RatePerHour: decimal.RequireFromString("1500")}, nil
		}},
		crew: &mockCrew{getFn: func(_ context.Context, id uuid.UUID) (*domain.CrewMember, error) {
			return &domain.CrewMember{ID: id, FullName: "Anna Petrova", Role: domain.RoleCrew}, nil
		}},
		cache:     &mockCache{},
		publisher: &mockPublisher{},
		tx:        &mockTxManager{},
	}
	f.uc = NewUseCase(f.bookings, f.services, f.checker, f.crew, f.cache, f.publisher, f.tx, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: today}
	return f
}

func validRequest() *Request {
	clientID := uuid.New()
	return &Request{
		Actor:     authz.Actor{ID: clientID, Role: domain.RoleClient},
		ClientID:  clientID,
		CrewID:    uuid.New(),
		ServiceID: 1,
		Date:      time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		StartTime: types.MustParseTimeOfDay("10:00"),
		EndTime:   types.MustParseTimeOfDay("11:30"),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()
	req := validRequest()

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Regexp(t, `^[A-Z]{6}0007$`, resp.Number)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.True(t, decimal.RequireFromString("2250").Equal(resp.TotalPrice))
	assert.Equal(t, "Фотосессия", resp.ServiceName)
	require.NotNil(t, resp.CrewFullName)
	assert.Equal(t, "Anna Petrova", *resp.CrewFullName)

	assert.Equal(t, 1, f.cache.invalidated)
	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, events.RoutingBookingCreated, f.publisher.published[0].Type)
}

func TestExecute_Rejected(t *testing.T) {
	f := newFixture()
	f.checker.checkFn = func(context.Context, uuid.UUID, time.Time, types.TimeOfDay, types.TimeOfDay) (availability.Decision, error) {
		return availability.Decision{Accepted: false, Conflicts: []int64{3, 9}}, nil
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNotAvailable)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []int64{3, 9}, conflict.Conflicts)

	assert.Empty(t, f.bookings.created)
	assert.Zero(t, f.cache.invalidated)
	assert.Empty(t, f.publisher.published)
}

func TestExecute_InvalidInterval(t *testing.T) {
	for _, tc := range []struct {
		name       string
		start, end string
	}{
		{"equal", "10:00", "10:00"},
		{"reversed", "11:00", "10:00"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			req.StartTime = types.MustParseTimeOfDay(tc.start)
			req.EndTime = types.MustParseTimeOfDay(tc.end)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInterval)
			assert.Empty(t, f.bookings.created)
		})
	}
}

func TestExecute_Forbidden(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.ClientID = uuid.New()

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_AdminBooksForClient(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Actor = authz.Actor{ID: uuid.New(), Role: domain.RoleAdmin}

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_PastDate(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Date = today.AddDate(0, 0, -1)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_TodayAlreadyStarted(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Date = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)

	req.StartTime = types.MustParseTimeOfDay("13:00")
	req.EndTime = types.MustParseTimeOfDay("14:00")
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture()
	f.services.getFn = func(context.Context, int64) (*domain.Service, error) {
		return nil, catalogRepo.ErrServiceNotFound
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_CrewLookup(t *testing.T) {
	t.Run("not crew", func(t *testing.T) {
		f := newFixture()
		f.crew.getFn = func(context.Context, uuid.UUID) (*domain.CrewMember, error) {
			return nil, fmt.Errorf("%w: role=client", identityClient.ErrNotCrew)
		}
		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrCrewNotFound)
	})

	t.Run("degraded", func(t *testing.T) {
		f := newFixture()
		f.crew.getFn = func(context.Context, uuid.UUID) (*domain.CrewMember, error) {
			return nil, fmt.Errorf("%w: timeout", identityClient.ErrServiceDegraded)
		}
		resp, err := f.uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Nil(t, resp.CrewFullName)
	})
}

func TestExecute_ConcurrentInsertMapsToSlotNotAvailable(t *testing.T) {
	t.Run("exclusion constraint", func(t *testing.T) {
		f := newFixture()
		f.bookings.createFn = func(context.Context, *domain.Booking) (*domain.Booking, error) {
			return nil, fmt.Errorf("%w: Create - bookings_no_overlap", bookingRepo.ErrSlotTaken)
		}
		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		assert.Empty(t, f.publisher.published)
	})

	t.Run("serialization failure on commit", func(t *testing.T) {
		f := newFixture()
		f.tx.commitErr = fmt.Errorf("commit: %w", &pq.Error{Code: "40001"})
		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})
}

func TestExecute_StorageErrorPropagated(t *testing.T) {
	f := newFixture()
	storageErr := errors.New("connection reset")
	f.checker.checkFn = func(context.Context, uuid.UUID, time.Time, types.TimeOfDay, types.TimeOfDay) (availability.Decision, error) {
		return availability.Decision{}, fmt.Errorf("%w: %w", availability.ErrFetchBookings, storageErr)
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, storageErr)
}

func TestExecute_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("broker down")

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
	assert.Len(t, f.bookings.created, 1)
}
