package check_availability

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	checkAvailability "github.com/m04kA/SMC-CrewBooking/internal/usecase/check_availability"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// AvailabilityResponse HTTP ответ проверки интервала
type AvailabilityResponse struct {
	CrewID    uuid.UUID       `json:"crewId"`
	Date      string          `json:"date"`
	StartTime types.TimeOfDay `json:"startTime"`
	EndTime   types.TimeOfDay `json:"endTime"`
	Available bool            `json:"available"`
	Conflicts []int64         `json:"conflicts"`
}

// ToUseCaseRequest формирует запрос use case из query параметров date, start, end
func ToUseCaseRequest(r *http.Request, crewID uuid.UUID) (*checkAvailability.Request, error) {
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		return nil, err
	}
	start, err := handlers.QueryTimeOfDay(r, "start")
	if err != nil {
		return nil, err
	}
	end, err := handlers.QueryTimeOfDay(r, "end")
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		CrewID:    crewID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *checkAvailability.Response) AvailabilityResponse {
	conflicts := resp.Conflicts
	if conflicts == nil {
		conflicts = []int64{}
	}

	return AvailabilityResponse{
		CrewID:    resp.CrewID,
		Date:      resp.Date.Format(domain.DateFormat),
		StartTime: resp.StartTime,
		EndTime:   resp.EndTime,
		Available: resp.Accepted,
		Conflicts: conflicts,
	}
}
