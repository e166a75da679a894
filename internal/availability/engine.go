package availability

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// WindowOptions параметры выдачи свободных окон.
// DayStart/DayEnd по умолчанию 00:00 и 24:00; Quantum nil - максимальные окна,
// Quantum = 0 - нарезка по DefaultQuantum.
type WindowOptions struct {
	DayStart *types.TimeOfDay
	DayEnd   *types.TimeOfDay
	Quantum  *time.Duration
}

// Engine проверяет допуск интервалов и строит свободные окна.
// Не хранит изменяемого состояния и безопасен для конкурентного использования;
// блокировки и транзакции обеспечивает вызывающий код.
type Engine struct {
	source   BookingSource
	recorder Recorder
	logger   Logger
}

// NewEngine создает движок доступности
func NewEngine(source BookingSource, recorder Recorder, logger Logger) *Engine {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &Engine{
		source:   source,
		recorder: recorder,
		logger:   logger,
	}
}

// CheckAvailability решает, можно ли допустить [start, end) для crew на дату.
// Отказ - это бизнес-результат (Decision.Accepted = false), а не ошибка.
func (e *Engine) CheckAvailability(ctx context.Context, crewID uuid.UUID, date time.Time, start, end types.TimeOfDay) (Decision, error) {
	candidate := Interval{Start: start, End: end}
	if err := candidate.Validate(); err != nil {
		return Decision{}, err
	}

	bookings, err := e.source.ListActiveForCrewDay(ctx, crewID, date)
	if err != nil {
		return Decision{}, fmt.Errorf("%w: CheckAvailability - crew=%s date=%s: %w",
			ErrFetchBookings, crewID, date.Format(domain.DateFormat), err)
	}

	decision, err := Check(candidate, FromBookings(bookings))
	if err != nil {
		return Decision{}, err
	}

	e.recorder.ObserveAdmission(decision.Accepted)
	if !decision.Accepted {
		e.logger.Info("CheckAvailability: crew=%s date=%s interval=%s rejected, conflicts=%v",
			crewID, date.Format(domain.DateFormat), candidate, decision.Conflicts)
	}

	return decision, nil
}

// ListFreeWindows возвращает свободные окна crew на дату в хронологическом порядке.
// Пересекающиеся сохраненные бронирования логируются как DataIntegrityWarning и не
// прерывают выдачу.
func (e *Engine) ListFreeWindows(ctx context.Context, crewID uuid.UUID, date time.Time, opts WindowOptions) ([]Interval, error) {
	window := Interval{Start: types.Midnight, End: types.EndOfDay}
	if opts.DayStart != nil {
		window.Start = *opts.DayStart
	}
	if opts.DayEnd != nil {
		window.End = *opts.DayEnd
	}
	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("operating window: %w", err)
	}

	var quantum time.Duration
	if opts.Quantum != nil {
		quantum = *opts.Quantum
		if quantum == 0 {
			quantum = DefaultQuantum
		}
		if err := ValidateQuantum(quantum); err != nil {
			return nil, err
		}
	}

	bookings, err := e.source.ListActiveForCrewDay(ctx, crewID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFreeWindows - crew=%s date=%s: %w",
			ErrFetchBookings, crewID, date.Format(domain.DateFormat), err)
	}

	occupied := FromBookings(bookings)
	for _, w := range DetectIntegrityWarnings(occupied) {
		e.logger.Warn("DataIntegrityWarning: crew=%s date=%s booking id=%d %s overlaps booking id=%d %s",
			crewID, date.Format(domain.DateFormat), w.First.BookingID, w.First.Interval, w.Second.BookingID, w.Second.Interval)
	}

	windows := FreeWindows(occupied, window.Start, window.End)
	if quantum > 0 {
		windows = Quantize(windows, quantum)
	}

	result := slices.Collect(windows)
	if result == nil {
		result = []Interval{}
	}
	return result, nil
}
