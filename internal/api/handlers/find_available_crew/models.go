package find_available_crew

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	findAvailableCrew "github.com/m04kA/SMC-CrewBooking/internal/usecase/find_available_crew"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// CrewMemberResponse свободный исполнитель
type CrewMemberResponse struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
}

// IntervalResponse интервал [start, end)
type IntervalResponse struct {
	Start types.TimeOfDay `json:"start"`
	End   types.TimeOfDay `json:"end"`
}

// AvailableCrewResponse HTTP ответ поиска свободных исполнителей
type AvailableCrewResponse struct {
	Date               string               `json:"date"`
	StartTime          types.TimeOfDay      `json:"startTime"`
	EndTime            types.TimeOfDay      `json:"endTime"`
	Available          []CrewMemberResponse `json:"available"`
	RequestedAvailable *bool                `json:"requestedAvailable,omitempty"`
	NextFree           *IntervalResponse    `json:"nextFree,omitempty"`
}

// ToUseCaseRequest формирует запрос use case из query параметров date, start, end, crewId
func ToUseCaseRequest(r *http.Request) (*findAvailableCrew.Request, error) {
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
	crewID, err := handlers.OptionalQueryUUID(r, "crewId")
	if err != nil {
		return nil, err
	}

	return &findAvailableCrew.Request{
		Date:      date,
		StartTime: start,
		EndTime:   end,
		CrewID:    crewID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *findAvailableCrew.Response) AvailableCrewResponse {
	available := make([]CrewMemberResponse, len(resp.Available))
	for i, m := range resp.Available {
		available[i] = CrewMemberResponse{ID: m.ID, FullName: m.FullName}
	}

	result := AvailableCrewResponse{
		Date:               resp.Date.Format(domain.DateFormat),
		StartTime:          resp.StartTime,
		EndTime:            resp.EndTime,
		Available:          available,
		RequestedAvailable: resp.RequestedAvailable,
	}
	if resp.NextFree != nil {
		result.NextFree = &IntervalResponse{Start: resp.NextFree.Start, End: resp.NextFree.End}
	}
	return result
}
