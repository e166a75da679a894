package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{name: "hours and minutes", input: "09:30", want: 9*3600 + 30*60},
		{name: "with seconds", input: "23:59:59", want: 86399},
		{name: "midnight", input: "00:00", want: Midnight},
		{name: "end of day", input: "24:00", want: EndOfDay},
		{name: "end of day with seconds", input: "24:00:00", want: EndOfDay},
		{name: "past end of day", input: "24:01", wantErr: true},
		{name: "minutes overflow", input: "10:60", wantErr: true},
		{name: "single digit hour", input: "9:00", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDay_String(t *testing.T) {
	assert.Equal(t, "09:00", MustParseTimeOfDay("09:00").String())
	assert.Equal(t, "23:59:59", MustParseTimeOfDay("23:59:59").String())
	assert.Equal(t, "24:00", EndOfDay.String())
}

func TestTimeOfDay_Add(t *testing.T) {
	start := MustParseTimeOfDay("22:30")

	end, err := start.Add(90 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, EndOfDay, end)

	_, err = start.Add(91 * time.Minute)
	assert.ErrorIs(t, err, ErrInvalidTimeOfDay)

	assert.Equal(t, 90*time.Minute, end.Sub(start))
}

func TestTimeOfDay_On(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 10, 15, 13, 45, 0, 0, time.UTC), MustParseTimeOfDay("13:45").On(date))
	assert.Equal(t, time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC), EndOfDay.On(date))
}

func TestTimeOfDay_JSON(t *testing.T) {
	payload, err := json.Marshal(struct {
		Start TimeOfDay `json:"start"`
	}{Start: MustParseTimeOfDay("10:15")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"10:15"}`, string(payload))

	var decoded struct {
		Start TimeOfDay `json:"start"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"18:05:30"}`), &decoded))
	assert.Equal(t, MustParseTimeOfDay("18:05:30"), decoded.Start)

	assert.Error(t, json.Unmarshal([]byte(`{"start":"25:00"}`), &decoded))
}

func TestTimeOfDay_ScanValue(t *testing.T) {
	var tod TimeOfDay

	require.NoError(t, tod.Scan(time.Date(0, 1, 1, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, MustParseTimeOfDay("14:30"), tod)

	require.NoError(t, tod.Scan(time.Date(0, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, EndOfDay, tod)

	require.NoError(t, tod.Scan([]byte("08:15:00.000000")))
	assert.Equal(t, MustParseTimeOfDay("08:15"), tod)

	assert.Error(t, tod.Scan(nil))
	assert.Error(t, tod.Scan(42))

	v, err := MustParseTimeOfDay("07:05:09").Value()
	require.NoError(t, err)
	assert.Equal(t, "07:05:09", v)

	v, err = EndOfDay.Value()
	require.NoError(t, err)
	assert.Equal(t, "24:00:00", v)
}
