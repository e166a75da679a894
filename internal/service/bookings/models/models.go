package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ListBookingsRequest запрос на получение бронирований с фильтрацией.
// Для client и crew фильтр дополнительно сужается до собственных бронирований.
type ListBookingsRequest struct {
	ClientID  *uuid.UUID
	CrewID    *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Statuses  []string
	IsPaid    *bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		ClientID:  r.ClientID,
		CrewID:    r.CrewID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		IsPaid:    r.IsPaid,
	}

	// Конвертируем статусы если указаны
	for _, raw := range r.Statuses {
		status, err := ToDomainBookingStatus(raw)
		if err != nil {
			return filter, err
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64           `json:"id"`
	BookingNumber string          `json:"bookingNumber"`
	ClientID      uuid.UUID       `json:"clientId"`
	CrewID        uuid.UUID       `json:"crewId"`
	ServiceID     int64           `json:"serviceId"`
	BookingDate   string          `json:"bookingDate"` // "2025-10-15"
	StartTime     types.TimeOfDay `json:"startTime"`   // "10:00"
	EndTime       types.TimeOfDay `json:"endTime"`     // "11:30"
	Status        string          `json:"status"`
	IsPaid        bool            `json:"isPaid"`
	PaidAt        *string         `json:"paidAt,omitempty"` // ISO 8601 format
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	Notes         *string         `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CanceledAt         *string `json:"canceledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                 b.ID,
		BookingNumber:      b.Number,
		ClientID:           b.ClientID,
		CrewID:             b.CrewID,
		ServiceID:          b.ServiceID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Status:             string(b.Status),
		IsPaid:             b.IsPaid,
		PaidAt:             formatTime(b.PaidAt),
		TotalPrice:         b.TotalPrice,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CanceledAt:         formatTime(b.CanceledAt),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s, err := domain.ParseBookingStatus(status)
	if err != nil {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
