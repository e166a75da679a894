package create_review

import (
	"context"

	"github.com/m04kA/SMC-CrewBooking/internal/authz"
	"github.com/m04kA/SMC-CrewBooking/internal/service/reviews/models"
)

type ReviewService interface {
	Create(ctx context.Context, actor authz.Actor, bookingID int64, req *models.CreateReviewRequest) (*models.CreateReviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
