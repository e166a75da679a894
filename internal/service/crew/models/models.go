package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
)

// CrewMemberResponse crew с рейтингом
type CrewMemberResponse struct {
	ID            uuid.UUID       `json:"id"`
	FullName      string          `json:"fullName"`
	Email         string          `json:"email,omitempty"`
	AverageRating decimal.Decimal `json:"averageRating"`
	ReviewsCount  int             `json:"reviewsCount"`
}

// CrewListResponse список crew
type CrewListResponse struct {
	Crew []CrewMemberResponse `json:"crew"`
}

// FromDomainCrewMember конвертирует crew и его рейтинг; rating может быть nil
func FromDomainCrewMember(m *domain.CrewMember, rating *domain.CrewRating) CrewMemberResponse {
	resp := CrewMemberResponse{
		ID:            m.ID,
		FullName:      m.FullName,
		Email:         m.Email,
		AverageRating: decimal.Zero,
	}
	if rating != nil {
		resp.AverageRating = rating.AverageRating
		resp.ReviewsCount = rating.ReviewsCount
	}
	return resp
}
