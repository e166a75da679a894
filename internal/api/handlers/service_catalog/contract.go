package service_catalog

import (
	"context"

	"github.com/m04kA/SMC-CrewBooking/internal/authz"
	"github.com/m04kA/SMC-CrewBooking/internal/service/catalog/models"
)

type CatalogService interface {
	Create(ctx context.Context, actor authz.Actor, req *models.ServiceRequest) (*models.ServiceResponse, error)
	GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error)
	List(ctx context.Context, tag *string) (*models.ServiceListResponse, error)
	Update(ctx context.Context, actor authz.Actor, id int64, req *models.ServiceRequest) (*models.ServiceResponse, error)
	Delete(ctx context.Context, actor authz.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
