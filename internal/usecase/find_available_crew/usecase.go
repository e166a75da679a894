package find_available_crew

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/availability"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-CrewBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-CrewBooking/pkg/ptr"
)

// UseCase use case поиска crew, свободных в заданный интервал
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	crew         CrewDirectory
	defaults     Defaults
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	crew CrewDirectory,
	defaults Defaults,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		crew:         crew,
		defaults:     defaults,
		logger:       logger,
	}
}

// Execute выполняет поиск.
// Бронирования дня читаются одним запросом и группируются по crew.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	candidate := availability.Interval{Start: req.StartTime, End: req.EndTime}
	if err := candidate.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	// 2. Неотмененные бронирования всех crew на дату
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		StartDate: &req.Date,
		EndDate:   &req.Date,
		Statuses:  domain.ActiveStatuses,
	})
	if err != nil {
		uc.logger.Error("FindAvailableCrew: failed to list bookings for %s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	byCrew := make(map[uuid.UUID][]*domain.Booking)
	for _, b := range bookings {
		byCrew[b.CrewID] = append(byCrew[b.CrewID], b)
	}

	// 3. Список crew
	members, err := uc.crew.ListCrewMembers(ctx)
	if err != nil {
		uc.logger.Error("FindAvailableCrew: failed to list crew members: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrCrewUnavailable, err)
	}

	// 4. Отбираем crew без конфликтов
	available := make([]*domain.CrewMember, 0, len(members))
	for _, m := range members {
		decision, err := availability.Check(candidate, availability.FromBookings(byCrew[m.ID]))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if decision.Accepted {
			available = append(available, m)
		}
	}

	slices.SortFunc(available, func(a, b *domain.CrewMember) int {
		if c := strings.Compare(a.FullName, b.FullName); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	resp := &Response{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Available: available,
	}

	// 5. Ближайший свободный интервал для запрошенного crew в пределах его рабочего дня
	if req.CrewID != nil {
		occupied := availability.FromBookings(byCrew[*req.CrewID])
		decision, err := availability.Check(candidate, occupied)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		resp.RequestedAvailable = ptr.Ptr(decision.Accepted)
		if decision.Accepted {
			resp.NextFree = &candidate
		} else {
			window, err := uc.operatingWindow(ctx, *req.CrewID)
			if err != nil {
				return nil, err
			}
			windows := slices.Collect(availability.FreeWindows(occupied, window.Start, window.End))
			if next, ok := availability.NextFit(windows, req.StartTime, candidate.End.Sub(candidate.Start)); ok {
				resp.NextFree = &next
			}
		}
	}

	uc.logger.Info("FindAvailableCrew: %d of %d crew available on %s %s",
		len(available), len(members), req.Date.Format(domain.DateFormat), candidate)

	return resp, nil
}

// operatingWindow рабочее окно crew: расписание crew, затем глобальное, затем конфигурация сервиса
func (uc *UseCase) operatingWindow(ctx context.Context, crewID uuid.UUID) (availability.Interval, error) {
	schedule, err := uc.scheduleRepo.GetWithFallback(ctx, crewID)
	switch {
	case err == nil:
		return availability.Interval{Start: schedule.DayStart, End: schedule.DayEnd}, nil
	case errors.Is(err, scheduleRepo.ErrScheduleNotFound):
		return availability.Interval{Start: uc.defaults.DayStart, End: uc.defaults.DayEnd}, nil
	default:
		uc.logger.Error("FindAvailableCrew: failed to get schedule for crew=%s: %v", crewID, err)
		return availability.Interval{}, fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
	}
}
