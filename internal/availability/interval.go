package availability

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// Interval is a half-open time-of-day range [Start, End)
type Interval struct {
	Start types.TimeOfDay
	End   types.TimeOfDay
}

// Validate requires Start < End within [00:00, 24:00]
func (i Interval) Validate() error {
	if err := i.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidInterval, err)
	}
	if err := i.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidInterval, err)
	}
	if !i.Start.IsBefore(i.End) {
		return fmt.Errorf("%w: start %s is not before end %s", ErrInvalidInterval, i.Start, i.End)
	}
	return nil
}

// String renders the interval as [HH:MM, HH:MM)
func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start, i.End)
}

// Occupied is the projection of a non-canceled booking onto the calendar
type Occupied struct {
	BookingID int64
	Interval
}

// Decision is the outcome of an admission check.
// A rejected decision lists every conflicting booking, ordered by start.
type Decision struct {
	Accepted  bool
	Conflicts []int64
}

// Overlaps reports whether two half-open intervals intersect.
// Touching endpoints do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.IsBefore(b.End) && b.Start.IsBefore(a.End)
}

// Check decides whether candidate may be admitted next to booked
func Check(candidate Interval, booked []Occupied) (Decision, error) {
	if err := candidate.Validate(); err != nil {
		return Decision{}, err
	}

	conflicts := make([]Occupied, 0)
	for _, b := range booked {
		if Overlaps(candidate, b.Interval) {
			conflicts = append(conflicts, b)
		}
	}

	if len(conflicts) == 0 {
		return Decision{Accepted: true}, nil
	}

	slices.SortFunc(conflicts, compareOccupied)

	ids := make([]int64, len(conflicts))
	for i, c := range conflicts {
		ids[i] = c.BookingID
	}

	return Decision{Accepted: false, Conflicts: ids}, nil
}

// FromBookings projects bookings onto the calendar, skipping those that do not occupy it
func FromBookings(bookings []*domain.Booking) []Occupied {
	occupied := make([]Occupied, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		occupied = append(occupied, Occupied{
			BookingID: b.ID,
			Interval:  Interval{Start: b.StartTime, End: b.EndTime},
		})
	}
	return occupied
}

// compareOccupied orders by start, then end, then booking id
func compareOccupied(a, b Occupied) int {
	return cmp.Or(
		cmp.Compare(a.Start, b.Start),
		cmp.Compare(a.End, b.End),
		cmp.Compare(a.BookingID, b.BookingID),
	)
}
