package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
)

// Request модели

// ServiceRequest запрос на создание или изменение услуги
type ServiceRequest struct {
	Name        string          `json:"name"`
	Tag         string          `json:"tag"`
	Description string          `json:"description"`
	RatePerHour decimal.Decimal `json:"ratePerHour"`
}

// ToDomainService конвертирует request в domain модель
func (r *ServiceRequest) ToDomainService() *domain.Service {
	return &domain.Service{
		Name:        r.Name,
		Tag:         r.Tag,
		Description: r.Description,
		RatePerHour: r.RatePerHour,
	}
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Tag         string          `json:"tag"`
	Description string          `json:"description"`
	RatePerHour decimal.Decimal `json:"ratePerHour"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Tag:         s.Tag,
		Description: s.Description,
		RatePerHour: s.RatePerHour,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		if r := FromDomainService(s); r != nil {
			resp.Services = append(resp.Services, *r)
		}
	}
	return resp
}
