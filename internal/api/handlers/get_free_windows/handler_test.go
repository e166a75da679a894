package get_free_windows

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CrewBooking/internal/availability"
	getFreeWindows "github.com/m04kA/SMC-CrewBooking/internal/usecase/get_free_windows"
	"github.com/m04kA/SMC-CrewBooking/pkg/logger"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

type mockUseCase struct {
	executeFn func(ctx context.Context, req *getFreeWindows.Request) (*getFreeWindows.Response, error)
	last      *getFreeWindows.Request
}

func (m *mockUseCase) Execute(ctx context.Context, req *getFreeWindows.Request) (*getFreeWindows.Response, error) {
	m.last = req
	return m.executeFn(ctx, req)
}

func serve(uc *mockUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/crew/{crewId}/free-windows", NewHandler(uc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	crewID := uuid.New()
	uc := &mockUseCase{executeFn: func(_ context.Context, req *getFreeWindows.Request) (*getFreeWindows.Response, error) {
		return &getFreeWindows.Response{
			CrewID:   req.CrewID,
			Date:     req.Date,
			DayStart: *req.DayStart,
			DayEnd:   types.MustParseTimeOfDay("18:00"),
			Quantum:  req.Quantum,
			Windows: []availability.Interval{
				{Start: types.MustParseTimeOfDay("09:00"), End: types.MustParseTimeOfDay("09:30")},
				{Start: types.MustParseTimeOfDay("11:00"), End: types.MustParseTimeOfDay("11:30")},
			},
		}, nil
	}}

	rec := serve(uc, fmt.Sprintf("/crew/%s/free-windows?date=2025-10-16&dayStart=09:00&quantum=30", crewID))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, crewID, uc.last.CrewID)
	assert.Equal(t, time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC), uc.last.Date)
	assert.Nil(t, uc.last.DayEnd)
	require.NotNil(t, uc.last.Quantum)
	assert.Equal(t, 30*time.Minute, *uc.last.Quantum)

	var resp FreeWindowsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-10-16", resp.Date)
	require.NotNil(t, resp.QuantumMinutes)
	assert.Equal(t, 30, *resp.QuantumMinutes)
	require.Len(t, resp.Windows, 2)
	assert.Equal(t, "11:00", resp.Windows[1].Start.String())
}

func TestHandle_MaximalWindowsHaveNullQuantum(t *testing.T) {
	uc := &mockUseCase{executeFn: func(_ context.Context, req *getFreeWindows.Request) (*getFreeWindows.Response, error) {
		return &getFreeWindows.Response{CrewID: req.CrewID, Date: req.Date, Windows: []availability.Interval{}}, nil
	}}

	rec := serve(uc, fmt.Sprintf("/crew/%s/free-windows?date=2025-10-16", uuid.New()))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, uc.last.Quantum)
	assert.Contains(t, rec.Body.String(), `"quantumMinutes":null`)
	assert.Contains(t, rec.Body.String(), `"windows":[]`)
}

func TestHandle_BadRequest(t *testing.T) {
	crewID := uuid.New()
	uc := &mockUseCase{}

	for name, target := range map[string]string{
		"bad crew id":      "/crew/42/free-windows?date=2025-10-16",
		"missing date":     fmt.Sprintf("/crew/%s/free-windows", crewID),
		"bad date":         fmt.Sprintf("/crew/%s/free-windows?date=16.10.2025", crewID),
		"bad day start":    fmt.Sprintf("/crew/%s/free-windows?date=2025-10-16&dayStart=9am", crewID),
		"negative quantum": fmt.Sprintf("/crew/%s/free-windows?date=2025-10-16&quantum=-5", crewID),
		"quantum over day": fmt.Sprintf("/crew/%s/free-windows?date=2025-10-16&quantum=1441", crewID),
		"huge quantum":     fmt.Sprintf("/crew/%s/free-windows?date=2025-10-16&quantum=153722867280912931", crewID),
	} {
		t.Run(name, func(t *testing.T) {
			rec := serve(uc, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Nil(t, uc.last)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{getFreeWindows.ErrInvalidWindow, http.StatusBadRequest},
		{getFreeWindows.ErrInvalidInput, http.StatusBadRequest},
		{getFreeWindows.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &mockUseCase{executeFn: func(context.Context, *getFreeWindows.Request) (*getFreeWindows.Response, error) {
				return nil, tt.err
			}}
			rec := serve(uc, fmt.Sprintf("/crew/%s/free-windows?date=2025-10-16", uuid.New()))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
