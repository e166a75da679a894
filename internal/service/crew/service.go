package crew

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/service/crew/models"
)

// Service сервис списка crew
type Service struct {
	directory  CrewDirectory
	ratingRepo RatingRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса crew
func NewService(directory CrewDirectory, ratingRepo RatingRepository, logger Logger) *Service {
	return &Service{
		directory:  directory,
		ratingRepo: ratingRepo,
		logger:     logger,
	}
}

// List получает crew с рейтингами.
// Сортировка: рейтинг по убыванию, затем число отзывов по убыванию, затем имя.
func (s *Service) List(ctx context.Context) (*models.CrewListResponse, error) {
	s.logger.Info("List: fetching crew members")

	// 1. Crew из сервиса пользователей
	members, err := s.directory.ListCrewMembers(ctx)
	if err != nil {
		s.logger.Error("List: failed to list crew members: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}

	// 2. Рейтинги одним запросом
	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}

	ratings, err := s.ratingRepo.GetRatings(ctx, ids)
	if err != nil {
		s.logger.Error("List: failed to get ratings: %v", err)
		return nil, fmt.Errorf("%w: List - get ratings: %v", ErrInternal, err)
	}

	resp := &models.CrewListResponse{Crew: make([]models.CrewMemberResponse, 0, len(members))}
	for _, m := range members {
		resp.Crew = append(resp.Crew, models.FromDomainCrewMember(m, ratings[m.ID]))
	}

	sort.SliceStable(resp.Crew, func(i, j int) bool {
		a, b := resp.Crew[i], resp.Crew[j]
		if cmp := a.AverageRating.Cmp(b.AverageRating); cmp != 0 {
			return cmp > 0
		}
		if a.ReviewsCount != b.ReviewsCount {
			return a.ReviewsCount > b.ReviewsCount
		}
		return a.FullName < b.FullName
	})

	s.logger.Info("List: successfully fetched %d crew members", len(resp.Crew))
	return resp, nil
}
