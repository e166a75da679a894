package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
)

// CreateReviewRequest запрос на создание отзыва
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewResponse ответ с данными отзыва
type ReviewResponse struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"bookingId"`
	ClientID  uuid.UUID `json:"clientId"`
	CrewID    uuid.UUID `json:"crewId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// RatingResponse агрегированный рейтинг crew
type RatingResponse struct {
	AverageRating decimal.Decimal `json:"averageRating"`
	ReviewsCount  int             `json:"reviewsCount"`
}

// CreateReviewResponse созданный отзыв и пересчитанный рейтинг
type CreateReviewResponse struct {
	Review ReviewResponse `json:"review"`
	Rating RatingResponse `json:"rating"`
}

// CrewReviewsResponse отзывы о crew
type CrewReviewsResponse struct {
	CrewID  uuid.UUID        `json:"crewId"`
	Rating  RatingResponse   `json:"rating"`
	Reviews []ReviewResponse `json:"reviews"`
}

// FromDomainReview конвертирует domain модель в DTO
func FromDomainReview(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		BookingID: r.BookingID,
		ClientID:  r.ClientID,
		CrewID:    r.CrewID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// FromDomainRating конвертирует рейтинг; nil означает отсутствие отзывов
func FromDomainRating(r *domain.CrewRating) RatingResponse {
	if r == nil {
		return RatingResponse{AverageRating: decimal.Zero}
	}
	return RatingResponse{
		AverageRating: r.AverageRating,
		ReviewsCount:  r.ReviewsCount,
	}
}
