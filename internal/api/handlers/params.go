package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

// ErrMissingParam возвращается, если обязательный параметр не передан
var ErrMissingParam = errors.New("handlers: missing parameter")

// PathInt64 читает числовой параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// PathUUID читает uuid параметр пути
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return id, nil
}

// QueryDate читает обязательную дату YYYY-MM-DD из query
func QueryDate(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return time.Parse(domain.DateFormat, raw)
}

// OptionalQueryDate читает необязательную дату из query
func OptionalQueryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// QueryTimeOfDay читает обязательное время HH:MM из query
func QueryTimeOfDay(r *http.Request, name string) (types.TimeOfDay, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return types.ParseTimeOfDay(raw)
}

// OptionalQueryTimeOfDay читает необязательное время из query
func OptionalQueryTimeOfDay(r *http.Request, name string) (*types.TimeOfDay, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := types.ParseTimeOfDay(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// OptionalQueryUUID читает необязательный uuid из query
func OptionalQueryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// OptionalQueryBool читает необязательный bool из query
func OptionalQueryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
