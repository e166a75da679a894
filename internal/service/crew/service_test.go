package crew

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/pkg/logger"
)

type mockDirectory struct {
	members []*domain.CrewMember
	err     error
}

func (m *mockDirectory) ListCrewMembers(context.Context) ([]*domain.CrewMember, error) {
	return m.members, m.err
}

type mockRatings struct {
	ratings map[uuid.UUID]*domain.CrewRating
}

func (m *mockRatings) GetRatings(context.Context, []uuid.UUID) (map[uuid.UUID]*domain.CrewRating, error) {
	return m.ratings, nil
}

func TestList_SortedByRating(t *testing.T) {
	anna := &domain.CrewMember{ID: uuid.New(), FullName: "Anna"}
	boris := &domain.CrewMember{ID: uuid.New(), FullName: "Boris"}
	vera := &domain.CrewMember{ID: uuid.New(), FullName: "Vera"}
	newbie := &domain.CrewMember{ID: uuid.New(), FullName: "Alex"}

	ratings := &mockRatings{ratings: map[uuid.UUID]*domain.CrewRating{
		anna.ID:  {CrewID: anna.ID, AverageRating: decimal.RequireFromString("4.50"), ReviewsCount: 2},
		boris.ID: {CrewID: boris.ID, AverageRating: decimal.RequireFromString("4.90"), ReviewsCount: 10},
		vera.ID:  {CrewID: vera.ID, AverageRating: decimal.RequireFromString("4.50"), ReviewsCount: 8},
	}}

	svc := NewService(&mockDirectory{members: []*domain.CrewMember{anna, boris, vera, newbie}}, ratings, logger.NewNop())

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Crew, 4)

	names := make([]string, 0, len(resp.Crew))
	for _, c := range resp.Crew {
		names = append(names, c.FullName)
	}
	assert.Equal(t, []string{"Boris", "Vera", "Anna", "Alex"}, names)
	assert.True(t, decimal.Zero.Equal(resp.Crew[3].AverageRating))
}

func TestList_DirectoryUnavailable(t *testing.T) {
	svc := NewService(&mockDirectory{err: errors.New("timeout")}, &mockRatings{}, logger.NewNop())

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, ErrDirectoryUnavailable)
}
