package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/authz"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-CrewBooking/internal/infra/storage/booking"
	reviewRepo "github.com/m04kA/SMC-CrewBooking/internal/infra/storage/review"
	"github.com/m04kA/SMC-CrewBooking/internal/service/reviews/models"
)

// Service сервис отзывов о crew
type Service struct {
	bookingRepo  BookingRepository
	reviewRepo   ReviewRepository
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	bookingRepo BookingRepository,
	reviewRepo ReviewRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		reviewRepo:   reviewRepo,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает отзыв на выполненное бронирование.
// Отзыв оставляет только клиент бронирования, один раз; рейтинг crew пересчитывается в той же транзакции.
func (s *Service) Create(ctx context.Context, actor authz.Actor, bookingID int64, req *models.CreateReviewRequest) (*models.CreateReviewResponse, error) {
	s.logger.Info("Create: review for booking id=%d by actor=%s", bookingID, actor.ID)

	// 1. Валидация входных данных
	req.Comment = strings.TrimSpace(req.Comment)
	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		s.logger.Warn("Create: invalid rating=%d", req.Rating)
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if utf8.RuneCountInString(req.Comment) > domain.MaxReviewCommentLength {
		return nil, fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidInput, domain.MaxReviewCommentLength)
	}

	var (
		review *domain.Review
		rating *domain.CrewRating
	)

	// 2. Создание отзыва и пересчет рейтинга в транзакции
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Бронирование
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Create: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Create: failed to get booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Create - get booking: %v", ErrInternal, err)
		}

		// 2.2. Автор отзыва - клиент бронирования
		if err := authz.Authorize(actor, authz.ActionReviewCreate, authz.BookingResource(booking)); err != nil {
			s.logger.Warn("Create: %v", err)
			return ErrAccessDenied
		}

		// 2.3. Отзыв только на выполненное бронирование
		if booking.Status != domain.StatusServed {
			s.logger.Warn("Create: booking id=%d has status=%s", bookingID, booking.Status)
			return ErrBookingNotServed
		}

		// 2.4. Сохраняем отзыв
		created, err := s.reviewRepo.Create(txCtx, &domain.Review{
			BookingID: booking.ID,
			ClientID:  booking.ClientID,
			CrewID:    booking.CrewID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		})
		if err != nil {
			if errors.Is(err, reviewRepo.ErrDuplicateReview) {
				s.logger.Warn("Create: booking id=%d already reviewed", bookingID)
				return ErrAlreadyReviewed
			}
			s.logger.Error("Create: failed to create review: %v", err)
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		// 2.5. Пересчитываем рейтинг crew
		rating, err = s.reviewRepo.RecalculateRating(txCtx, booking.CrewID)
		if err != nil {
			s.logger.Error("Create: failed to recalculate rating for crew=%s: %v", booking.CrewID, err)
			return fmt.Errorf("%w: Create - recalculate rating: %v", ErrInternal, err)
		}

		review = created
		return nil
	})
	if err != nil {
		for _, known := range []error{ErrBookingNotFound, ErrAccessDenied, ErrBookingNotServed, ErrAlreadyReviewed, ErrInternal} {
			if errors.Is(err, known) {
				return nil, err
			}
		}
		s.logger.Error("Create: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: Create - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: review id=%d created, crew=%s rating=%s (%d reviews)",
		review.ID, review.CrewID, rating.AverageRating, rating.ReviewsCount)

	// 3. Публикуем событие
	event := events.NewEnvelope(events.RoutingReviewCreated, s.timeProvider.Now(), events.ReviewPayload{
		ReviewID:  review.ID,
		BookingID: review.BookingID,
		CrewID:    review.CrewID,
		Rating:    review.Rating,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Create: failed to publish %s: %v", event.Type, err)
	}

	return &models.CreateReviewResponse{
		Review: models.FromDomainReview(review),
		Rating: models.FromDomainRating(rating),
	}, nil
}

// ListByCrew получает отзывы о crew и его рейтинг
// Публичный метод - доступен всем
func (s *Service) ListByCrew(ctx context.Context, crewID uuid.UUID) (*models.CrewReviewsResponse, error) {
	s.logger.Info("ListByCrew: fetching reviews for crew=%s", crewID)

	reviews, err := s.reviewRepo.ListByCrew(ctx, crewID)
	if err != nil {
		s.logger.Error("ListByCrew: repository error for crew=%s: %v", crewID, err)
		return nil, fmt.Errorf("%w: ListByCrew - repository error: %v", ErrInternal, err)
	}

	rating, err := s.reviewRepo.GetRating(ctx, crewID)
	if err != nil && !errors.Is(err, reviewRepo.ErrRatingNotFound) {
		s.logger.Error("ListByCrew: failed to get rating for crew=%s: %v", crewID, err)
		return nil, fmt.Errorf("%w: ListByCrew - get rating: %v", ErrInternal, err)
	}

	resp := &models.CrewReviewsResponse{
		CrewID:  crewID,
		Rating:  models.FromDomainRating(rating),
		Reviews: make([]models.ReviewResponse, 0, len(reviews)),
	}
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, models.FromDomainReview(r))
	}

	s.logger.Info("ListByCrew: successfully fetched %d reviews for crew=%s", len(reviews), crewID)
	return resp, nil
}
