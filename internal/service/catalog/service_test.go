package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CrewBooking/internal/authz"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CrewBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CrewBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-CrewBooking/pkg/logger"
)

type mockRepo struct {
	services map[int64]*domain.Service
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockRepo) Create(_ context.Context, s *domain.Service) (*domain.Service, error) {
	s.ID = int64(len(m.services) + 1)
	m.services[s.ID] = s
	return s, nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := m.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

func (m *mockRepo) List(_ context.Context, tag *string) ([]*domain.Service, error) {
	var out []*domain.Service
	for _, s := range m.services {
		if tag == nil || s.Tag == *tag {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockRepo) Update(_ context.Context, id int64, s *domain.Service) (*domain.Service, error) {
	if _, ok := m.services[id]; !ok {
		return nil, fmt.Errorf("%w: Update - no rows", catalogRepo.ErrServiceNotFound)
	}
	s.ID = id
	m.services[id] = s
	return s, nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	delete(m.services, id)
	return nil
}

var (
	admin  = authz.Actor{ID: uuid.New(), Role: domain.RoleAdmin}
	client = authz.Actor{ID: uuid.New(), Role: domain.RoleClient}
)

func newService() (*Service, *mockRepo) {
	repo := &mockRepo{services: map[int64]*domain.Service{}}
	return NewService(repo, logger.NewNop()), repo
}

func photoSession() *models.ServiceRequest {
	return &models.ServiceRequest{
		Name:        "  Фотосессия  ",
		Tag:         "photo",
		RatePerHour: decimal.RequireFromString("1500.00"),
	}
}

func TestCreate(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.Create(context.Background(), admin, photoSession())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Фотосессия", resp.Name)

	_, err = svc.Create(context.Background(), client, photoSession())
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_Validation(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Create(context.Background(), admin, &models.ServiceRequest{Name: " ", RatePerHour: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), admin, &models.ServiceRequest{Name: "Видео", RatePerHour: decimal.Zero})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, repo.services)
}

func TestGetAndList(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Create(context.Background(), admin, photoSession())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), admin, &models.ServiceRequest{Name: "Видеосъемка", Tag: "video", RatePerHour: decimal.NewFromInt(3000)})
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "video", got.Tag)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	tag := "photo"
	list, err := svc.List(context.Background(), &tag)
	require.NoError(t, err)
	require.Len(t, list.Services, 1)
	assert.Equal(t, "Фотосессия", list.Services[0].Name)
}

func TestUpdate(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Create(context.Background(), admin, photoSession())
	require.NoError(t, err)

	req := photoSession()
	req.RatePerHour = decimal.NewFromInt(2000)
	resp, err := svc.Update(context.Background(), admin, 1, req)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2000).Equal(resp.RatePerHour))

	_, err = svc.Update(context.Background(), admin, 5, photoSession())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestDelete(t *testing.T) {
	svc, repo := newService()

	repo.deleteFn = func(context.Context, int64) error {
		return fmt.Errorf("%w: Delete - fk", catalogRepo.ErrServiceInUse)
	}
	assert.ErrorIs(t, svc.Delete(context.Background(), admin, 1), ErrServiceInUse)

	assert.ErrorIs(t, svc.Delete(context.Background(), client, 1), ErrAccessDenied)
}
