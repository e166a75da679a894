package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// Источник, из которого взято расписание
const (
	SourceCrew    = "crew"
	SourceGlobal  = "global"
	SourceDefault = "default"
)

// Request модели

// UpdateScheduleRequest запрос на изменение операционного окна.
// QuantumMinutes = 0 означает максимальные свободные окна без нарезки.
type UpdateScheduleRequest struct {
	DayStart       types.TimeOfDay `json:"dayStart"`
	DayEnd         types.TimeOfDay `json:"dayEnd"`
	QuantumMinutes int             `json:"quantumMinutes"`
}

// ToDomainSchedule конвертирует request в domain модель
func (r *UpdateScheduleRequest) ToDomainSchedule(crewID *uuid.UUID) *domain.CrewSchedule {
	return &domain.CrewSchedule{
		CrewID:         crewID,
		DayStart:       r.DayStart,
		DayEnd:         r.DayEnd,
		QuantumMinutes: r.QuantumMinutes,
	}
}

// Response модели

// ScheduleResponse ответ с расписанием
type ScheduleResponse struct {
	ID             *int64          `json:"id,omitempty"`
	CrewID         *uuid.UUID      `json:"crewId,omitempty"`
	DayStart       types.TimeOfDay `json:"dayStart"`
	DayEnd         types.TimeOfDay `json:"dayEnd"`
	QuantumMinutes int             `json:"quantumMinutes"`
	Source         string          `json:"source"`
	UpdatedAt      *time.Time      `json:"updatedAt,omitempty"`
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.CrewSchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	source := SourceCrew
	if s.IsGlobal() {
		source = SourceGlobal
	}

	id := s.ID
	updatedAt := s.UpdatedAt
	return &ScheduleResponse{
		ID:             &id,
		CrewID:         s.CrewID,
		DayStart:       s.DayStart,
		DayEnd:         s.DayEnd,
		QuantumMinutes: s.QuantumMinutes,
		Source:         source,
		UpdatedAt:      &updatedAt,
	}
}
