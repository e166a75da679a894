package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-CrewBooking/internal/authz"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CrewBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CrewBooking/internal/service/catalog/models"
)

// Service сервис каталога услуг
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// Create создает услугу
// Доступно только администратору
func (s *Service) Create(ctx context.Context, actor authz.Actor, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%q by actor=%s", req.Name, actor.ID)

	if err := authz.Authorize(actor, authz.ActionServiceManage, authz.Resource{}); err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, ErrAccessDenied
	}

	if err := validateService(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, req.ToDomainService())
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// GetByID получает услугу по ID
// Публичный метод - доступен всем
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%d", id)

	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}

	return models.FromDomainService(service), nil
}

// List получает список услуг, опционально по тегу
// Публичный метод - доступен всем
func (s *Service) List(ctx context.Context, tag *string) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services, tag=%v", tag)

	services, err := s.serviceRepo.List(ctx, tag)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// Update изменяет услугу
// Доступно только администратору. Цена существующих бронирований не пересчитывается.
func (s *Service) Update(ctx context.Context, actor authz.Actor, id int64, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d by actor=%s", id, actor.ID)

	if err := authz.Authorize(actor, authz.ActionServiceManage, authz.Resource{}); err != nil {
		s.logger.Warn("Update: %v", err)
		return nil, ErrAccessDenied
	}

	if err := validateService(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.serviceRepo.Update(ctx, id, req.ToDomainService())
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	s.logger.Info("Update: successfully updated service id=%d", id)
	return models.FromDomainService(updated), nil
}

// Delete удаляет услугу
// Доступно только администратору. Услугу с бронированиями удалить нельзя.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	s.logger.Info("Delete: deleting service id=%d by actor=%s", id, actor.ID)

	if err := authz.Authorize(actor, authz.ActionServiceManage, authz.Resource{}); err != nil {
		s.logger.Warn("Delete: %v", err)
		return ErrAccessDenied
	}

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceInUse) {
			s.logger.Warn("Delete: service id=%d is referenced by bookings", id)
			return ErrServiceInUse
		}
		return s.mapRepoError("Delete", id, err)
	}

	s.logger.Info("Delete: successfully deleted service id=%d", id)
	return nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, catalogRepo.ErrServiceNotFound) {
		s.logger.Warn("%s: service id=%d not found", op, id)
		return ErrServiceNotFound
	}
	s.logger.Error("%s: repository error for service id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func validateService(req *models.ServiceRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Tag = strings.TrimSpace(req.Tag)

	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.Name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}
	if !req.RatePerHour.IsPositive() {
		return fmt.Errorf("%w: ratePerHour must be positive", ErrInvalidInput)
	}
	return nil
}
