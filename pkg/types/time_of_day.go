package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeOfDay возвращается при некорректном формате или значении времени суток
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// TimeOfDay время суток в секундах от полуночи.
// Допустимый диапазон [00:00, 24:00]; 24:00 используется только как конец интервала.
type TimeOfDay int

const (
	// Midnight начало суток (00:00)
	Midnight TimeOfDay = 0
	// EndOfDay конец суток (24:00), исключающая граница полуинтервала
	EndOfDay TimeOfDay = secondsPerDay
)

// NewTimeOfDay создает время суток из часов, минут и секунд
func NewTimeOfDay(hours, minutes, seconds int) (TimeOfDay, error) {
	if hours < 0 || minutes < 0 || minutes > 59 || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d:%02d", ErrInvalidTimeOfDay, hours, minutes, seconds)
	}

	t := TimeOfDay(hours*secondsPerHour + minutes*secondsPerMinute + seconds)
	if err := t.Validate(); err != nil {
		return 0, err
	}

	return t, nil
}

// ParseTimeOfDay разбирает строку формата HH:MM или HH:MM:SS
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	values := make([]int, 3)
	for i, part := range parts {
		if len(part) != 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
		}
		values[i] = v
	}

	return NewTimeOfDay(values[0], values[1], values[2])
}

// MustParseTimeOfDay как ParseTimeOfDay, но паникует при ошибке.
// Используется для констант и в тестах.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FromTime извлекает время суток из time.Time (дата и доли секунды отбрасываются)
func FromTime(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*secondsPerHour + t.Minute()*secondsPerMinute + t.Second())
}

// Validate проверяет, что время находится в диапазоне [00:00, 24:00]
func (t TimeOfDay) Validate() error {
	if t < Midnight || t > EndOfDay {
		return fmt.Errorf("%w: %d seconds", ErrInvalidTimeOfDay, int(t))
	}
	return nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeOfDay) IsBefore(other TimeOfDay) bool {
	return t < other
}

// IsAfter возвращает true, если t строго позже other
func (t TimeOfDay) IsAfter(other TimeOfDay) bool {
	return t > other
}

// Add прибавляет длительность; результат за пределами суток считается ошибкой
func (t TimeOfDay) Add(d time.Duration) (TimeOfDay, error) {
	result := t + TimeOfDay(d/time.Second)
	if err := result.Validate(); err != nil {
		return 0, err
	}
	return result, nil
}

// AddMinutes прибавляет минуты
func (t TimeOfDay) AddMinutes(minutes int) (TimeOfDay, error) {
	return t.Add(time.Duration(minutes) * time.Minute)
}

// Sub возвращает длительность t - other
func (t TimeOfDay) Sub(other TimeOfDay) time.Duration {
	return time.Duration(t-other) * time.Second
}

// On возвращает момент времени t в указанную дату (в локации даты)
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location()).Add(time.Duration(t) * time.Second)
}

// String возвращает HH:MM, либо HH:MM:SS если есть секунды
func (t TimeOfDay) String() string {
	h := int(t) / secondsPerHour
	m := (int(t) % secondsPerHour) / secondsPerMinute
	s := int(t) % secondsPerMinute
	if s == 0 {
		return fmt.Sprintf("%02d:%02d", h, m)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// MarshalJSON сериализует время суток строкой
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON разбирает время суток из строки
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeOfDay, err)
	}

	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// Value реализует driver.Valuer для колонок типа TIME
func (t TimeOfDay) Value() (driver.Value, error) {
	h := int(t) / secondsPerHour
	m := (int(t) % secondsPerHour) / secondsPerMinute
	s := int(t) % secondsPerMinute
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s), nil
}

// Scan реализует sql.Scanner для колонок типа TIME
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		// lib/pq разбирает "24:00:00" как полночь следующего дня
		if v.Day() == 2 && FromTime(v) == Midnight {
			*t = EndOfDay
			return nil
		}
		*t = FromTime(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	case nil:
		return fmt.Errorf("%w: NULL", ErrInvalidTimeOfDay)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeOfDay, src)
	}
}

func (t *TimeOfDay) scanString(s string) error {
	// Отбрасываем дробную часть секунд, если она есть
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		s = s[:idx]
	}

	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}
