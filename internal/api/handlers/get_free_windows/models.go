package get_free_windows

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	getFreeWindows "github.com/m04kA/SMC-CrewBooking/internal/usecase/get_free_windows"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// WindowResponse свободное окно [start, end)
type WindowResponse struct {
	Start types.TimeOfDay `json:"start"`
	End   types.TimeOfDay `json:"end"`
}

// FreeWindowsResponse HTTP ответ со свободными окнами
type FreeWindowsResponse struct {
	CrewID         uuid.UUID        `json:"crewId"`
	Date           string           `json:"date"`
	DayStart       types.TimeOfDay  `json:"dayStart"`
	DayEnd         types.TimeOfDay  `json:"dayEnd"`
	QuantumMinutes *int             `json:"quantumMinutes"` // null - максимальные окна
	Windows        []WindowResponse `json:"windows"`
	Cached         bool             `json:"cached"`
}

// ToUseCaseRequest формирует запрос use case из пути и query параметров.
// quantum задается в минутах, 0 означает квант по умолчанию.
func ToUseCaseRequest(r *http.Request, crewID uuid.UUID) (*getFreeWindows.Request, error) {
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		return nil, err
	}

	req := &getFreeWindows.Request{
		CrewID: crewID,
		Date:   date,
	}

	if req.DayStart, err = handlers.OptionalQueryTimeOfDay(r, "dayStart"); err != nil {
		return nil, err
	}
	if req.DayEnd, err = handlers.OptionalQueryTimeOfDay(r, "dayEnd"); err != nil {
		return nil, err
	}

	if raw := r.URL.Query().Get("quantum"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes < 0 || minutes > domain.MaxQuantumMinutes {
			return nil, fmt.Errorf("invalid quantum %q", raw)
		}
		quantum := time.Duration(minutes) * time.Minute
		req.Quantum = &quantum
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *getFreeWindows.Response) FreeWindowsResponse {
	windows := make([]WindowResponse, len(resp.Windows))
	for i, w := range resp.Windows {
		windows[i] = WindowResponse{Start: w.Start, End: w.End}
	}

	var quantumMinutes *int
	if resp.Quantum != nil {
		minutes := int(*resp.Quantum / time.Minute)
		quantumMinutes = &minutes
	}

	return FreeWindowsResponse{
		CrewID:         resp.CrewID,
		Date:           resp.Date.Format(domain.DateFormat),
		DayStart:       resp.DayStart,
		DayEnd:         resp.DayEnd,
		QuantumMinutes: quantumMinutes,
		Windows:        windows,
		Cached:         resp.Cached,
	}
}
