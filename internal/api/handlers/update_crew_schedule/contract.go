package update_crew_schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/authz"
	"github.com/m04kA/SMC-CrewBooking/internal/service/schedule/models"
)

type ScheduleService interface {
	Update(ctx context.Context, actor authz.Actor, crewID *uuid.UUID, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
