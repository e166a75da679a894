package get_crew_schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/service/schedule/models"
)

type ScheduleService interface {
	Get(ctx context.Context, crewID uuid.UUID) (*models.ScheduleResponse, error)
	GetGlobal(ctx context.Context) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
