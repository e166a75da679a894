package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/authz"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-CrewBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-CrewBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// Defaults операционное окно, если расписание не задано ни для crew, ни глобально
type Defaults struct {
	DayStart       types.TimeOfDay
	DayEnd         types.TimeOfDay
	QuantumMinutes int
}

// Service сервис для работы с расписаниями crew
type Service struct {
	scheduleRepo ScheduleRepository
	defaults     Defaults
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, defaults Defaults, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		defaults:     defaults,
		logger:       logger,
	}
}

// Get получает действующее расписание crew
// Публичный метод. Приоритет: crew > global > значения по умолчанию
func (s *Service) Get(ctx context.Context, crewID uuid.UUID) (*models.ScheduleResponse, error) {
	s.logger.Info("Get: fetching schedule for crew=%s", crewID)

	schedule, err := s.scheduleRepo.GetWithFallback(ctx, crewID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Info("Get: no schedule for crew=%s, using defaults", crewID)
			return &models.ScheduleResponse{
				DayStart:       s.defaults.DayStart,
				DayEnd:         s.defaults.DayEnd,
				QuantumMinutes: s.defaults.QuantumMinutes,
				Source:         models.SourceDefault,
			}, nil
		}
		s.logger.Error("Get: repository error for crew=%s: %v", crewID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(schedule), nil
}

// GetGlobal получает глобальное расписание
func (s *Service) GetGlobal(ctx context.Context) (*models.ScheduleResponse, error) {
	s.logger.Info("GetGlobal: fetching global schedule")

	schedule, err := s.scheduleRepo.GetByCrew(ctx, nil)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return &models.ScheduleResponse{
				DayStart:       s.defaults.DayStart,
				DayEnd:         s.defaults.DayEnd,
				QuantumMinutes: s.defaults.QuantumMinutes,
				Source:         models.SourceDefault,
			}, nil
		}
		s.logger.Error("GetGlobal: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetGlobal - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(schedule), nil
}

// Update создает или обновляет расписание.
// crewID == nil означает глобальное расписание, изменять его может только администратор.
func (s *Service) Update(ctx context.Context, actor authz.Actor, crewID *uuid.UUID, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: schedule crew=%v by actor=%s", crewID, actor.ID)

	// 1. Проверка прав
	res := authz.Resource{}
	if crewID != nil {
		res.CrewID = *crewID
	}
	if err := authz.Authorize(actor, authz.ActionScheduleManage, res); err != nil {
		s.logger.Warn("Update: %v", err)
		return nil, ErrAccessDenied
	}

	// 2. Валидация входных данных
	if err := validateSchedule(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем
	saved, err := s.scheduleRepo.Upsert(ctx, req.ToDomainSchedule(crewID))
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully saved schedule id=%d", saved.ID)
	return models.FromDomainSchedule(saved), nil
}

func validateSchedule(req *models.UpdateScheduleRequest) error {
	if err := req.DayStart.Validate(); err != nil {
		return fmt.Errorf("%w: dayStart: %v", ErrInvalidInput, err)
	}
	if err := req.DayEnd.Validate(); err != nil {
		return fmt.Errorf("%w: dayEnd: %v", ErrInvalidInput, err)
	}
	if !req.DayStart.IsBefore(req.DayEnd) {
		return fmt.Errorf("%w: dayStart must be before dayEnd", ErrInvalidInput)
	}
	if req.QuantumMinutes < 0 || req.QuantumMinutes > domain.MaxQuantumMinutes {
		return fmt.Errorf("%w: quantumMinutes must be between 0 and %d", ErrInvalidInput, domain.MaxQuantumMinutes)
	}
	return nil
}
