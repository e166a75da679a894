package list_crew_reviews

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/service/reviews/models"
)

type ReviewService interface {
	ListByCrew(ctx context.Context, crewID uuid.UUID) (*models.CrewReviewsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
