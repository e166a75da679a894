package availability

import (
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// DefaultQuantum slot size used when quantization is requested without a size
const DefaultQuantum = time.Hour

// IntegrityWarning is a pair of persisted bookings that overlap.
// First starts earlier and is treated as authoritative by the sweep.
type IntegrityWarning struct {
	First  Occupied
	Second Occupied
}

// FreeWindows sweeps booked intervals inside [dayStart, dayEnd) and yields the
// gaps in chronological order. Bookings are clipped to the operating window.
// The sequence is restartable: every range sweeps the same sorted snapshot.
func FreeWindows(booked []Occupied, dayStart, dayEnd types.TimeOfDay) iter.Seq[Interval] {
	sorted := slices.Clone(booked)
	slices.SortFunc(sorted, compareOccupied)

	return func(yield func(Interval) bool) {
		if !dayStart.IsBefore(dayEnd) {
			return
		}

		cursor := dayStart
		for _, b := range sorted {
			start := max(b.Start, dayStart)
			end := min(b.End, dayEnd)
			if !start.IsBefore(end) {
				continue
			}

			if cursor.IsBefore(start) {
				if !yield(Interval{Start: cursor, End: start}) {
					return
				}
			}
			cursor = max(cursor, end)
		}

		if cursor.IsBefore(dayEnd) {
			yield(Interval{Start: cursor, End: dayEnd})
		}
	}
}

// Quantize chops every window into consecutive slots of the given size
// starting at the window start. A trailing remainder shorter than quantum is dropped.
func Quantize(windows iter.Seq[Interval], quantum time.Duration) iter.Seq[Interval] {
	step := types.TimeOfDay(quantum / time.Second)

	return func(yield func(Interval) bool) {
		if step <= 0 {
			return
		}
		for w := range windows {
			for start := w.Start; start+step <= w.End; start += step {
				if !yield(Interval{Start: start, End: start + step}) {
					return
				}
			}
		}
	}
}

// ValidateQuantum requires a positive whole number of seconds not longer than a day
func ValidateQuantum(quantum time.Duration) error {
	if quantum <= 0 || quantum%time.Second != 0 || quantum > types.EndOfDay.Sub(types.Midnight) {
		return fmt.Errorf("%w: %s", ErrInvalidQuantum, quantum)
	}
	return nil
}

// DetectIntegrityWarnings returns every overlapping pair among persisted bookings
func DetectIntegrityWarnings(booked []Occupied) []IntegrityWarning {
	sorted := slices.Clone(booked)
	slices.SortFunc(sorted, compareOccupied)

	var warnings []IntegrityWarning
	for i := range sorted {
		for j := i + 1; j < len(sorted) && sorted[j].Start.IsBefore(sorted[i].End); j++ {
			if Overlaps(sorted[i].Interval, sorted[j].Interval) {
				warnings = append(warnings, IntegrityWarning{First: sorted[i], Second: sorted[j]})
			}
		}
	}
	return warnings
}

// NextFit returns the first window slice of the given duration that starts at or after `after`
func NextFit(windows []Interval, after types.TimeOfDay, duration time.Duration) (Interval, bool) {
	length := types.TimeOfDay(duration / time.Second)
	if length <= 0 {
		return Interval{}, false
	}

	for _, w := range windows {
		start := max(w.Start, after)
		if start+length <= w.End {
			return Interval{Start: start, End: start + length}, true
		}
	}
	return Interval{}, false
}
