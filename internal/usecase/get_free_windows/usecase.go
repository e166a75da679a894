package get_free_windows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CrewBooking/internal/availability"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	windowsCache "github.com/m04kA/SMC-CrewBooking/internal/infra/cache/windows"
	scheduleRepo "github.com/m04kA/SMC-CrewBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-CrewBooking/pkg/ptr"
)

// UseCase use case для получения свободных окон crew на дату
type UseCase struct {
	engine       WindowsEngine
	scheduleRepo ScheduleRepository
	cache        WindowsCache
	recorder     CacheRecorder
	defaults     Defaults
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	engine WindowsEngine,
	scheduleRepo ScheduleRepository,
	cache WindowsCache,
	recorder CacheRecorder,
	defaults Defaults,
	logger Logger,
) *UseCase {
	return &UseCase{
		engine:       engine,
		scheduleRepo: scheduleRepo,
		cache:        cache,
		recorder:     recorder,
		defaults:     defaults,
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных окон.
// Приоритет параметров окна: запрос, затем расписание crew (или глобальное), затем конфигурация сервиса.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetFreeWindows: crew=%s, date=%s", req.CrewID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetFreeWindows: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем операционное окно и квант
	resp, err := uc.resolveWindow(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Пробуем взять окна из кэша
	variant := windowsCache.Variant(resp.DayStart, resp.DayEnd, resp.Quantum)
	lookup, cacheErr := uc.cache.Get(ctx, req.CrewID, req.Date, variant)
	if cacheErr != nil {
		uc.logger.Warn("GetFreeWindows: cache read failed, computing windows: %v", cacheErr)
	}
	uc.recorder.ObserveCacheLookup(lookup.Hit)
	if lookup.Hit {
		resp.Windows = lookup.Windows
		resp.Cached = true
		return resp, nil
	}

	// 4. Строим окна по неотмененным бронированиям
	opts := availability.WindowOptions{
		DayStart: ptr.Ptr(resp.DayStart),
		DayEnd:   ptr.Ptr(resp.DayEnd),
		Quantum:  resp.Quantum,
	}

	windows, err := uc.engine.ListFreeWindows(ctx, req.CrewID, req.Date, opts)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInterval) || errors.Is(err, availability.ErrInvalidQuantum) {
			uc.logger.Warn("GetFreeWindows: invalid window: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
		}
		uc.logger.Error("GetFreeWindows: failed to list free windows: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	// 5. Сохраняем в кэш, если поколение не сменилось (ошибка кэша не влияет на ответ)
	if cacheErr == nil {
		err := uc.cache.Set(ctx, req.CrewID, req.Date, variant, lookup.Generation, windows)
		switch {
		case errors.Is(err, windowsCache.ErrStaleGeneration):
			uc.logger.Info("GetFreeWindows: windows for crew=%s changed during computation, cache not updated", req.CrewID)
		case err != nil:
			uc.logger.Warn("GetFreeWindows: cache write failed: %v", err)
		}
	}

	uc.logger.Info("GetFreeWindows: %d windows for crew=%s date=%s in [%s, %s)",
		len(windows), req.CrewID, req.Date.Format(domain.DateFormat), resp.DayStart, resp.DayEnd)

	resp.Windows = windows
	return resp, nil
}

// resolveWindow сводит переопределения запроса, расписание crew и значения по умолчанию
func (uc *UseCase) resolveWindow(ctx context.Context, req *Request) (*Response, error) {
	resp := &Response{
		CrewID:   req.CrewID,
		Date:     req.Date,
		DayStart: uc.defaults.DayStart,
		DayEnd:   uc.defaults.DayEnd,
		Quantum:  uc.defaults.Quantum,
	}

	// Расписание нужно, только если запрос переопределяет не все параметры
	if req.DayStart == nil || req.DayEnd == nil || req.Quantum == nil {
		schedule, err := uc.scheduleRepo.GetWithFallback(ctx, req.CrewID)
		switch {
		case err == nil:
			resp.DayStart = schedule.DayStart
			resp.DayEnd = schedule.DayEnd
			resp.Quantum = nil
			if schedule.QuantumMinutes > 0 {
				resp.Quantum = ptr.Ptr(time.Duration(schedule.QuantumMinutes) * time.Minute)
			}
		case errors.Is(err, scheduleRepo.ErrScheduleNotFound):
			uc.logger.Info("GetFreeWindows: no schedule for crew=%s, using defaults", req.CrewID)
		default:
			uc.logger.Error("GetFreeWindows: failed to get schedule for crew=%s: %v", req.CrewID, err)
			return nil, fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
		}
	}

	if req.DayStart != nil {
		resp.DayStart = *req.DayStart
	}
	if req.DayEnd != nil {
		resp.DayEnd = *req.DayEnd
	}
	if req.Quantum != nil {
		resp.Quantum = ptr.Ptr(*req.Quantum)
		if *resp.Quantum == 0 {
			*resp.Quantum = availability.DefaultQuantum
		}
	}

	window := availability.Interval{Start: resp.DayStart, End: resp.DayEnd}
	if err := window.Validate(); err != nil {
		uc.logger.Warn("GetFreeWindows: invalid operating window: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}

	return resp, nil
}
