package availability

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

func collect(booked []Occupied, dayStart, dayEnd types.TimeOfDay) []Interval {
	return slices.Collect(FreeWindows(booked, dayStart, dayEnd))
}

func TestFreeWindows(t *testing.T) {
	tests := []struct {
		name     string
		booked   []Occupied
		dayStart string
		dayEnd   string
		want     []Interval
	}{
		{
			name:     "two bookings over full day",
			booked:   []Occupied{occ(1, "09:00", "10:00"), occ(2, "13:00", "14:00")},
			dayStart: "00:00",
			dayEnd:   "24:00",
			want:     []Interval{iv("00:00", "09:00"), iv("10:00", "13:00"), iv("14:00", "24:00")},
		},
		{
			name:     "unsorted input",
			booked:   []Occupied{occ(2, "13:00", "14:00"), occ(1, "09:00", "10:00")},
			dayStart: "00:00",
			dayEnd:   "24:00",
			want:     []Interval{iv("00:00", "09:00"), iv("10:00", "13:00"), iv("14:00", "24:00")},
		},
		{
			name:     "no bookings",
			dayStart: "08:00",
			dayEnd:   "20:00",
			want:     []Interval{iv("08:00", "20:00")},
		},
		{
			name:     "fully covered",
			booked:   []Occupied{occ(1, "07:00", "13:00"), occ(2, "13:00", "21:00")},
			dayStart: "08:00",
			dayEnd:   "20:00",
			want:     nil,
		},
		{
			name:     "adjacent bookings leave no zero-length gap",
			booked:   []Occupied{occ(1, "09:00", "10:00"), occ(2, "10:00", "11:00")},
			dayStart: "09:00",
			dayEnd:   "12:00",
			want:     []Interval{iv("11:00", "12:00")},
		},
		{
			name:     "straddling both window edges is clipped",
			booked:   []Occupied{occ(1, "06:00", "09:00"), occ(2, "19:00", "23:00")},
			dayStart: "08:00",
			dayEnd:   "20:00",
			want:     []Interval{iv("09:00", "19:00")},
		},
		{
			name:     "bookings outside the window are ignored",
			booked:   []Occupied{occ(1, "05:00", "06:00"), occ(2, "21:00", "22:00")},
			dayStart: "08:00",
			dayEnd:   "20:00",
			want:     []Interval{iv("08:00", "20:00")},
		},
		{
			name:     "nested overlap keeps the cursor at the furthest end",
			booked:   []Occupied{occ(1, "09:00", "12:00"), occ(2, "10:00", "11:00")},
			dayStart: "08:00",
			dayEnd:   "13:00",
			want:     []Interval{iv("08:00", "09:00"), iv("12:00", "13:00")},
		},
		{
			name:     "identical starts",
			booked:   []Occupied{occ(2, "09:00", "11:00"), occ(1, "09:00", "10:00")},
			dayStart: "08:00",
			dayEnd:   "12:00",
			want:     []Interval{iv("08:00", "09:00"), iv("11:00", "12:00")},
		},
		{
			name:     "empty window",
			dayStart: "12:00",
			dayEnd:   "12:00",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collect(tt.booked, tod(tt.dayStart), tod(tt.dayEnd)))
		})
	}
}

func TestFreeWindows_Restartable(t *testing.T) {
	booked := []Occupied{occ(2, "13:00", "14:00"), occ(1, "09:00", "10:00")}
	seq := FreeWindows(booked, types.Midnight, types.EndOfDay)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)

	// ранний выход не ломает последующие проходы
	for range seq {
		break
	}
	assert.Equal(t, first, slices.Collect(seq))

	// исходный срез не переупорядочен
	assert.Equal(t, int64(2), booked[0].BookingID)
}

func TestFreeWindows_CoverageProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))

	for round := 0; round < 200; round++ {
		var booked []Occupied
		n := rng.IntN(8)
		for i := 0; i < n; i++ {
			start := types.TimeOfDay(rng.IntN(int(types.EndOfDay) - 60))
			end := start + types.TimeOfDay(60+rng.IntN(4*3600))
			booked = append(booked, Occupied{BookingID: int64(i + 1), Interval: Interval{Start: start, End: min(end, types.EndOfDay)}})
		}
		dayStart := types.TimeOfDay(rng.IntN(12 * 3600))
		dayEnd := min(dayStart+types.TimeOfDay(3600+rng.IntN(12*3600)), types.EndOfDay)

		windows := collect(booked, dayStart, dayEnd)

		// окна упорядочены, непусты, лежат в операционном окне и не пересекают бронирования
		for i, w := range windows {
			assert.True(t, w.Start.IsBefore(w.End))
			assert.False(t, w.Start.IsBefore(dayStart))
			assert.False(t, w.End.IsAfter(dayEnd))
			if i > 0 {
				assert.True(t, windows[i-1].End.IsBefore(w.Start), "windows must be separated by a booking")
			}
			for _, b := range booked {
				assert.False(t, Overlaps(w, b.Interval), "window %s overlaps booking %s", w, b.Interval)
			}
		}

		// каждая минута операционного окна либо свободна, либо занята
		for s := dayStart; s < dayEnd; s += 60 {
			point := Interval{Start: s, End: s + 1}
			free := slices.ContainsFunc(windows, func(w Interval) bool { return Overlaps(w, point) })
			busy := slices.ContainsFunc(booked, func(b Occupied) bool { return Overlaps(b.Interval, point) })
			assert.NotEqual(t, free, busy, "second %s", s)
		}
	}
}

func TestQuantize(t *testing.T) {
	windows := slices.Values([]Interval{iv("08:00", "10:30"), iv("12:00", "12:45"), iv("14:00", "16:00")})

	got := slices.Collect(Quantize(windows, time.Hour))
	assert.Equal(t, []Interval{
		iv("08:00", "09:00"),
		iv("09:00", "10:00"),
		iv("14:00", "15:00"),
		iv("15:00", "16:00"),
	}, got)

	got = slices.Collect(Quantize(windows, 30*time.Minute))
	assert.Len(t, got, 5+1+4)
	assert.Equal(t, iv("12:00", "12:30"), got[5])

	assert.Empty(t, slices.Collect(Quantize(windows, 0)))
}

func TestValidateQuantum(t *testing.T) {
	assert.NoError(t, ValidateQuantum(time.Hour))
	assert.NoError(t, ValidateQuantum(15*time.Minute))
	assert.NoError(t, ValidateQuantum(24*time.Hour))
	assert.ErrorIs(t, ValidateQuantum(0), ErrInvalidQuantum)
	assert.ErrorIs(t, ValidateQuantum(-time.Minute), ErrInvalidQuantum)
	assert.ErrorIs(t, ValidateQuantum(1500*time.Millisecond), ErrInvalidQuantum)
	assert.ErrorIs(t, ValidateQuantum(25*time.Hour), ErrInvalidQuantum)
}

func TestDetectIntegrityWarnings(t *testing.T) {
	assert.Empty(t, DetectIntegrityWarnings([]Occupied{occ(1, "09:00", "10:00"), occ(2, "10:00", "11:00")}))

	warnings := DetectIntegrityWarnings([]Occupied{
		occ(3, "10:30", "11:30"),
		occ(1, "09:00", "12:00"),
		occ(2, "09:00", "09:30"),
	})

	assert.Equal(t, []IntegrityWarning{
		{First: occ(2, "09:00", "09:30"), Second: occ(1, "09:00", "12:00")},
		{First: occ(1, "09:00", "12:00"), Second: occ(3, "10:30", "11:30")},
	}, warnings)
}

func TestNextFit(t *testing.T) {
	windows := []Interval{iv("08:00", "09:00"), iv("10:00", "10:30"), iv("11:00", "14:00")}

	got, ok := NextFit(windows, tod("08:30"), time.Hour)
	assert.True(t, ok)
	assert.Equal(t, iv("11:00", "12:00"), got)

	got, ok = NextFit(windows, tod("12:30"), time.Hour)
	assert.True(t, ok)
	assert.Equal(t, iv("12:30", "13:30"), got)

	_, ok = NextFit(windows, tod("13:30"), time.Hour)
	assert.False(t, ok)

	_, ok = NextFit(windows, tod("08:00"), 0)
	assert.False(t, ok)
}
