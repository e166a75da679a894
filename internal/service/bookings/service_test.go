package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CrewBooking/internal/authz"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-CrewBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CrewBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-CrewBooking/pkg/logger"
	"github.com/m04kA/SMC-CrewBooking/pkg/ptr"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

type mockBookingRepo struct {
	bookings       map[int64]*domain.Booking
	listFn         func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	updateStatusFn func(ctx context.Context, id int64, from, to domain.BookingStatus, reason *string) error
	markPaidFn     func(ctx context.Context, id int64, paidAt time.Time) error
	lastFilter     domain.BookingsFilter
}

func (m *mockBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *mockBookingRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	m.lastFilter = filter
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, reason *string) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, from, to, reason)
	}
	return nil
}

func (m *mockBookingRepo) MarkPaid(ctx context.Context, id int64, paidAt time.Time) error {
	if m.markPaidFn != nil {
		return m.markPaidFn(ctx, id, paidAt)
	}
	return nil
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
}

func (m *mockPublisher) Publish(_ context.Context, e events.Envelope) error {
	m.published = append(m.published, e)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var now = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	repo      *mockBookingRepo
	cache     *mockCache
	publisher *mockPublisher
	svc       *Service

	client authz.Actor
	crew   authz.Actor
	admin  authz.Actor
}

func newFixture(status domain.BookingStatus, paid bool) *fixture {
	f := &fixture{
		cache:     &mockCache{},
		publisher: &mockPublisher{},
		client:    authz.Actor{ID: uuid.New(), Role: domain.RoleClient},
		crew:      authz.Actor{ID: uuid.New(), Role: domain.RoleCrew},
		admin:     authz.Actor{ID: uuid.New(), Role: domain.RoleAdmin},
	}
	f.repo = &mockBookingRepo{bookings: map[int64]*domain.Booking{
		1: {
			ID:          1,
			Number:      "ABCDEF0001",
			ClientID:    f.client.ID,
			CrewID:      f.crew.ID,
			ServiceID:   3,
			BookingDate: time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
			StartTime:   types.MustParseTimeOfDay("10:00"),
			EndTime:     types.MustParseTimeOfDay("11:00"),
			Status:      status,
			IsPaid:      paid,
			TotalPrice:  decimal.RequireFromString("1500"),
		},
	}}
	f.svc = NewService(f.repo, f.cache, f.publisher, passthroughTx{}, logger.NewNop())
	f.svc.timeProvider = fixedTime{now: now}
	return f
}

func TestGetByID_Access(t *testing.T) {
	f := newFixture(domain.StatusPending, false)

	resp, err := f.svc.GetByID(context.Background(), f.client, 1)
	require.NoError(t, err)
	assert.Equal(t, "ABCDEF0001", resp.BookingNumber)
	assert.Equal(t, "2025-10-16", resp.BookingDate)

	_, err = f.svc.GetByID(context.Background(), f.crew, 1)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), f.admin, 1)
	assert.NoError(t, err)

	stranger := authz.Actor{ID: uuid.New(), Role: domain.RoleClient}
	_, err = f.svc.GetByID(context.Background(), stranger, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(context.Background(), f.admin, 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList_ScopedByRole(t *testing.T) {
	f := newFixture(domain.StatusPending, false)
	other := uuid.New()

	_, err := f.svc.List(context.Background(), f.client, &models.ListBookingsRequest{ClientID: &other})
	require.NoError(t, err)
	require.NotNil(t, f.repo.lastFilter.ClientID)
	assert.Equal(t, f.client.ID, *f.repo.lastFilter.ClientID)

	_, err = f.svc.List(context.Background(), f.crew, &models.ListBookingsRequest{})
	require.NoError(t, err)
	require.NotNil(t, f.repo.lastFilter.CrewID)
	assert.Equal(t, f.crew.ID, *f.repo.lastFilter.CrewID)

	_, err = f.svc.List(context.Background(), f.admin, &models.ListBookingsRequest{ClientID: &other, Statuses: []string{"served"}})
	require.NoError(t, err)
	assert.Equal(t, other, *f.repo.lastFilter.ClientID)
	assert.Nil(t, f.repo.lastFilter.CrewID)
	assert.Equal(t, []domain.BookingStatus{domain.StatusServed}, f.repo.lastFilter.Statuses)
}

func TestList_InvalidInput(t *testing.T) {
	f := newFixture(domain.StatusPending, false)

	_, err := f.svc.List(context.Background(), f.admin, &models.ListBookingsRequest{Statuses: []string{"confirmed"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	from := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)
	_, err = f.svc.List(context.Background(), f.admin, &models.ListBookingsRequest{StartDate: &from, EndDate: &to})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_Serve(t *testing.T) {
	f := newFixture(domain.StatusPending, false)

	resp, err := f.svc.UpdateStatus(context.Background(), f.crew, 1, &models.UpdateStatusRequest{Status: "served"})
	require.NoError(t, err)
	assert.Equal(t, "served", resp.Status)

	// Выполнение не освобождает интервал
	assert.Zero(t, f.cache.invalidated)
	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, events.RoutingBookingStatusChanged, f.publisher.published[0].Type)
	payload := f.publisher.published[0].Payload.(events.StatusChangedPayload)
	assert.Equal(t, domain.StatusPending, payload.PreviousStatus)
	assert.Equal(t, domain.StatusServed, payload.Status)
}

func TestUpdateStatus_ClientCannotServe(t *testing.T) {
	f := newFixture(domain.StatusPending, false)

	_, err := f.svc.UpdateStatus(context.Background(), f.client, 1, &models.UpdateStatusRequest{Status: "served"})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, f.publisher.published)
}

func TestUpdateStatus_Cancel(t *testing.T) {
	f := newFixture(domain.StatusPending, true)

	var gotReason *string
	f.repo.updateStatusFn = func(_ context.Context, _ int64, from, to domain.BookingStatus, reason *string) error {
		assert.Equal(t, domain.StatusPending, from)
		assert.Equal(t, domain.StatusCanceled, to)
		gotReason = reason
		return nil
	}

	resp, err := f.svc.UpdateStatus(context.Background(), f.client, 1, &models.UpdateStatusRequest{
		Status:             "canceled",
		CancellationReason: ptr.Ptr("  заболел  "),
	})
	require.NoError(t, err)

	assert.Equal(t, "canceled", resp.Status)
	require.NotNil(t, gotReason)
	assert.Equal(t, "заболел", *gotReason)
	require.NotNil(t, resp.CanceledAt)
	assert.True(t, resp.IsPaid)
	assert.Equal(t, 1, f.cache.invalidated)
}

// Длина причины считается в символах, а не в байтах
func TestUpdateStatus_CancellationReasonLength(t *testing.T) {
	f := newFixture(domain.StatusPending, false)

	var gotReason *string
	f.repo.updateStatusFn = func(_ context.Context, _ int64, _, _ domain.BookingStatus, reason *string) error {
		gotReason = reason
		return nil
	}

	reason := strings.Repeat("ж", domain.MaxCancellationReasonLength)
	_, err := f.svc.UpdateStatus(context.Background(), f.client, 1, &models.UpdateStatusRequest{
		Status:             "canceled",
		CancellationReason: ptr.Ptr(reason),
	})
	require.NoError(t, err)
	require.NotNil(t, gotReason)
	assert.Equal(t, reason, *gotReason)

	f = newFixture(domain.StatusPending, false)
	_, err = f.svc.UpdateStatus(context.Background(), f.client, 1, &models.UpdateStatusRequest{
		Status:             "canceled",
		CancellationReason: ptr.Ptr(strings.Repeat("ж", domain.MaxCancellationReasonLength+1)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_TerminalStates(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusServed, domain.StatusCanceled} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(status, false)
			_, err := f.svc.UpdateStatus(context.Background(), f.admin, 1, &models.UpdateStatusRequest{Status: "canceled"})
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Zero(t, f.cache.invalidated)
		})
	}
}

func TestUpdateStatus_ConcurrentChange(t *testing.T) {
	f := newFixture(domain.StatusPending, false)
	f.repo.updateStatusFn = func(context.Context, int64, domain.BookingStatus, domain.BookingStatus, *string) error {
		return fmt.Errorf("%w: UpdateStatus - no rows", bookingRepo.ErrStatusConflict)
	}

	_, err := f.svc.UpdateStatus(context.Background(), f.admin, 1, &models.UpdateStatusRequest{Status: "canceled"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	f := newFixture(domain.StatusPending, false)

	_, err := f.svc.UpdateStatus(context.Background(), f.admin, 1, &models.UpdateStatusRequest{Status: "pending-ish"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarkPaid(t *testing.T) {
	t.Run("pending", func(t *testing.T) {
		f := newFixture(domain.StatusPending, false)
		resp, err := f.svc.MarkPaid(context.Background(), f.client, 1)
		require.NoError(t, err)
		assert.True(t, resp.IsPaid)
		require.NotNil(t, resp.PaidAt)
		assert.Equal(t, "pending", resp.Status)
		require.Len(t, f.publisher.published, 1)
		assert.Equal(t, events.RoutingBookingPaid, f.publisher.published[0].Type)
	})

	t.Run("served", func(t *testing.T) {
		f := newFixture(domain.StatusServed, false)
		_, err := f.svc.MarkPaid(context.Background(), f.admin, 1)
		assert.NoError(t, err)
	})

	t.Run("already paid", func(t *testing.T) {
		f := newFixture(domain.StatusPending, true)
		_, err := f.svc.MarkPaid(context.Background(), f.client, 1)
		assert.ErrorIs(t, err, ErrAlreadyPaid)
		assert.Empty(t, f.publisher.published)
	})

	t.Run("canceled", func(t *testing.T) {
		f := newFixture(domain.StatusCanceled, false)
		_, err := f.svc.MarkPaid(context.Background(), f.client, 1)
		assert.ErrorIs(t, err, ErrPaymentOnCanceled)
	})

	t.Run("crew cannot pay", func(t *testing.T) {
		f := newFixture(domain.StatusPending, false)
		_, err := f.svc.MarkPaid(context.Background(), f.crew, 1)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture(domain.StatusPending, false)
		f.repo.markPaidFn = func(context.Context, int64, time.Time) error {
			return errors.New("connection reset")
		}
		_, err := f.svc.MarkPaid(context.Background(), f.client, 1)
		assert.ErrorIs(t, err, ErrInternal)
	})
}
