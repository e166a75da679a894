package list_bookings

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CrewBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CrewBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задает один день; startDate/endDate - период. status допускает список через запятую.
func ToServiceRequest(r *http.Request) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}
	var err error

	if req.ClientID, err = handlers.OptionalQueryUUID(r, "clientId"); err != nil {
		return nil, err
	}
	if req.CrewID, err = handlers.OptionalQueryUUID(r, "crewId"); err != nil {
		return nil, err
	}
	if req.IsPaid, err = handlers.OptionalQueryBool(r, "isPaid"); err != nil {
		return nil, err
	}

	date, err := handlers.OptionalQueryDate(r, "date")
	if err != nil {
		return nil, err
	}
	if date != nil {
		req.StartDate = date
		req.EndDate = date
	} else {
		if req.StartDate, err = handlers.OptionalQueryDate(r, "startDate"); err != nil {
			return nil, err
		}
		if req.EndDate, err = handlers.OptionalQueryDate(r, "endDate"); err != nil {
			return nil, err
		}
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				req.Statuses = append(req.Statuses, s)
			}
		}
	}

	return req, nil
}
