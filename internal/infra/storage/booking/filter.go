package booking

import (
	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
)

// predicate возвращает условие, если соответствующее поле фильтра задано
type predicate func(f domain.BookingsFilter) (squirrel.Sqlizer, bool)

var filterPredicates = []predicate{
	func(f domain.BookingsFilter) (squirrel.Sqlizer, bool) {
		if f.ClientID == nil {
			return nil, false
		}
		return squirrel.Eq{"client_id": *f.ClientID}, true
	},
	func(f domain.BookingsFilter) (squirrel.Sqlizer, bool) {
		if f.CrewID == nil {
			return nil, false
		}
		return squirrel.Eq{"crew_id": *f.CrewID}, true
	},
	func(f domain.BookingsFilter) (squirrel.Sqlizer, bool) {
		if f.StartDate == nil {
			return nil, false
		}
		return squirrel.GtOrEq{"booking_date": *f.StartDate}, true
	},
	func(f domain.BookingsFilter) (squirrel.Sqlizer, bool) {
		if f.EndDate == nil {
			return nil, false
		}
		return squirrel.LtOrEq{"booking_date": *f.EndDate}, true
	},
	func(f domain.BookingsFilter) (squirrel.Sqlizer, bool) {
		if len(f.Statuses) == 0 {
			return nil, false
		}
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		return squirrel.Eq{"status": statuses}, true
	},
	func(f domain.BookingsFilter) (squirrel.Sqlizer, bool) {
		if f.IsPaid == nil {
			return nil, false
		}
		return squirrel.Eq{"is_paid": *f.IsPaid}, true
	},
}

// buildFilter сворачивает заданные поля фильтра в одно условие.
// Не изменяет входные данные; пустой фильтр дает пустой список условий.
func buildFilter(f domain.BookingsFilter) squirrel.And {
	cond := squirrel.And{}
	for _, p := range filterPredicates {
		if sqlizer, ok := p(f); ok {
			cond = append(cond, sqlizer)
		}
	}
	return cond
}
