package create_review

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CrewBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CrewBooking/internal/authz"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/internal/service/reviews"
	"github.com/m04kA/SMC-CrewBooking/internal/service/reviews/models"
	"github.com/m04kA/SMC-CrewBooking/pkg/logger"
)

type mockService struct {
	createFn func(ctx context.Context, actor authz.Actor, bookingID int64, req *models.CreateReviewRequest) (*models.CreateReviewResponse, error)
}

func (m *mockService) Create(ctx context.Context, actor authz.Actor, bookingID int64, req *models.CreateReviewRequest) (*models.CreateReviewResponse, error) {
	return m.createFn(ctx, actor, bookingID, req)
}

func post(svc ReviewService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}/review", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodPost, "/bookings/9/review", strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), authz.Actor{ID: uuid.New(), Role: domain.RoleClient}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := &mockService{createFn: func(_ context.Context, _ authz.Actor, bookingID int64, req *models.CreateReviewRequest) (*models.CreateReviewResponse, error) {
		assert.Equal(t, int64(9), bookingID)
		assert.Equal(t, 5, req.Rating)
		return &models.CreateReviewResponse{
			Review: models.ReviewResponse{ID: 1, BookingID: bookingID, Rating: req.Rating},
			Rating: models.RatingResponse{AverageRating: decimal.RequireFromString("4.5"), ReviewsCount: 2},
		}, nil
	}}

	rec := post(svc, `{"rating":5,"comment":"Отличная съемка"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"averageRating":"4.5"`)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{reviews.ErrInvalidInput, http.StatusBadRequest},
		{reviews.ErrBookingNotFound, http.StatusNotFound},
		{reviews.ErrAccessDenied, http.StatusForbidden},
		{reviews.ErrBookingNotServed, http.StatusConflict},
		{reviews.ErrAlreadyReviewed, http.StatusConflict},
		{reviews.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := &mockService{createFn: func(context.Context, authz.Actor, int64, *models.CreateReviewRequest) (*models.CreateReviewResponse, error) {
				return nil, tt.err
			}}
			assert.Equal(t, tt.code, post(svc, `{"rating":4}`).Code)
		})
	}
}
