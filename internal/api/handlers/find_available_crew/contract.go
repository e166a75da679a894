package find_available_crew

import (
	"context"

	findAvailableCrew "github.com/m04kA/SMC-CrewBooking/internal/usecase/find_available_crew"
)

type FindAvailableCrewUseCase interface {
	Execute(ctx context.Context, req *findAvailableCrew.Request) (*findAvailableCrew.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
