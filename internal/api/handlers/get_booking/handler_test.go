package get_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CrewBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CrewBooking/internal/authz"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/internal/service/bookings"
	"github.com/m04kA/SMC-CrewBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-CrewBooking/pkg/logger"
)

type mockService struct {
	getFn func(ctx context.Context, actor authz.Actor, id int64) (*models.BookingResponse, error)
}

func (m *mockService) GetByID(ctx context.Context, actor authz.Actor, id int64) (*models.BookingResponse, error) {
	return m.getFn(ctx, actor, id)
}

func get(svc BookingService, target string, withActor bool) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), authz.Actor{ID: uuid.New(), Role: domain.RoleClient}))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &mockService{getFn: func(_ context.Context, _ authz.Actor, id int64) (*models.BookingResponse, error) {
		switch id {
		case 1:
			return &models.BookingResponse{ID: 1, BookingNumber: "QWERTY0001"}, nil
		case 2:
			return nil, bookings.ErrAccessDenied
		case 3:
			return nil, bookings.ErrBookingNotFound
		default:
			return nil, bookings.ErrInternal
		}
	}}

	rec := get(svc, "/bookings/1", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bookingNumber":"QWERTY0001"`)

	assert.Equal(t, http.StatusForbidden, get(svc, "/bookings/2", true).Code)
	assert.Equal(t, http.StatusNotFound, get(svc, "/bookings/3", true).Code)
	assert.Equal(t, http.StatusInternalServerError, get(svc, "/bookings/4", true).Code)
	assert.Equal(t, http.StatusBadRequest, get(svc, "/bookings/abc", true).Code)
	assert.Equal(t, http.StatusUnauthorized, get(svc, "/bookings/1", false).Code)
}
