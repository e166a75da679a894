package list_crew

import (
	"context"

	"github.com/m04kA/SMC-CrewBooking/internal/service/crew/models"
)

type CrewService interface {
	List(ctx context.Context) (*models.CrewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
