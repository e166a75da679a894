package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CrewBooking/internal/authz"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-CrewBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientID    *uuid.UUID `json:"clientId,omitempty"` // Только для администратора; по умолчанию - автор запроса
	CrewID      uuid.UUID  `json:"crewId"`
	ServiceID   int64      `json:"serviceId"`
	BookingDate string     `json:"bookingDate"` // "2025-10-15"
	StartTime   string     `json:"startTime"`   // "10:00"
	EndTime     string     `json:"endTime"`     // "11:30"
	Notes       *string    `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64           `json:"id"`
	BookingNumber string          `json:"bookingNumber"`
	ClientID      uuid.UUID       `json:"clientId"`
	CrewID        uuid.UUID       `json:"crewId"`
	ServiceID     int64           `json:"serviceId"`
	BookingDate   string          `json:"bookingDate"`
	StartTime     types.TimeOfDay `json:"startTime"`
	EndTime       types.TimeOfDay `json:"endTime"`
	Status        string          `json:"status"`
	IsPaid        bool            `json:"isPaid"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	ServiceName   string          `json:"serviceName"`
	CrewFullName  *string         `json:"crewFullName,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

// ConflictResponse ответ 409 с конфликтующими бронированиями
type ConflictResponse struct {
	Code      int     `json:"code"`
	Message   string  `json:"message"`
	Conflicts []int64 `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor authz.Actor) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("bookingDate: %w", err)
	}

	// Парсим интервал
	startTime, err := types.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	endTime, err := types.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	clientID := actor.ID
	if r.ClientID != nil {
		clientID = *r.ClientID
	}

	return &createBooking.Request{
		Actor:     actor,
		ClientID:  clientID,
		CrewID:    r.CrewID,
		ServiceID: r.ServiceID,
		Date:      bookingDate,
		StartTime: startTime,
		EndTime:   endTime,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		BookingNumber: resp.Number,
		ClientID:      resp.ClientID,
		CrewID:        resp.CrewID,
		ServiceID:     resp.ServiceID,
		BookingDate:   resp.BookingDate.Format(domain.DateFormat),
		StartTime:     resp.StartTime,
		EndTime:       resp.EndTime,
		Status:        resp.Status,
		IsPaid:        resp.IsPaid,
		TotalPrice:    resp.TotalPrice,
		ServiceName:   resp.ServiceName,
		CrewFullName:  resp.CrewFullName,
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
