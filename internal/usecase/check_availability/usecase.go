package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/availability"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
)

// UseCase use case проверки доступности интервала без создания бронирования
type UseCase struct {
	engine AvailabilityChecker
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(engine AvailabilityChecker, logger Logger) *UseCase {
	return &UseCase{engine: engine, logger: logger}
}

// Execute выполняет проверку. Отказ возвращается в Response, а не ошибкой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.CrewID == uuid.Nil {
		return nil, fmt.Errorf("%w: crewID is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Проверка интервала движком
	decision, err := uc.engine.CheckAvailability(ctx, req.CrewID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInterval) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
		}
		uc.logger.Error("CheckAvailability: crew=%s date=%s: %v", req.CrewID, req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	conflicts := decision.Conflicts
	if conflicts == nil {
		conflicts = []int64{}
	}

	return &Response{
		CrewID:    req.CrewID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Accepted:  decision.Accepted,
		Conflicts: conflicts,
	}, nil
}
