package authz

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
)

var (
	// ErrForbidden возвращается, когда у актора нет права на действие
	ErrForbidden = errors.New("authz: forbidden")
)

// Action действие над ресурсом
type Action string

const (
	ActionBookingCreate  Action = "booking.create"
	ActionBookingView    Action = "booking.view"
	ActionBookingServe   Action = "booking.serve"
	ActionBookingCancel  Action = "booking.cancel"
	ActionBookingPay     Action = "booking.pay"
	ActionServiceManage  Action = "service.manage"
	ActionReviewCreate   Action = "review.create"
	ActionScheduleManage Action = "schedule.manage"
)

// Actor аутентифицированный участник запроса
type Actor struct {
	ID   uuid.UUID
	Role domain.Role
}

// IsAdmin сообщает, что актор - администратор
func (a Actor) IsAdmin() bool {
	return a.Role == domain.RoleAdmin
}

// Resource участники ресурса, относительно которых проверяется право.
// Нулевой uuid означает отсутствие участника (например, глобальное расписание без CrewID).
type Resource struct {
	ClientID uuid.UUID
	CrewID   uuid.UUID
}

// BookingResource описывает бронирование как ресурс
func BookingResource(b *domain.Booking) Resource {
	return Resource{ClientID: b.ClientID, CrewID: b.CrewID}
}

type policy func(actor Actor, res Resource) bool

var policies = map[Action]policy{
	ActionBookingCreate: func(a Actor, r Resource) bool {
		return a.IsAdmin() || (a.Role == domain.RoleClient && isSelf(a, r.ClientID))
	},
	ActionBookingView: func(a Actor, r Resource) bool {
		return a.IsAdmin() || isSelf(a, r.ClientID) || isSelf(a, r.CrewID)
	},
	ActionBookingServe: func(a Actor, r Resource) bool {
		return a.IsAdmin() || (a.Role == domain.RoleCrew && isSelf(a, r.CrewID))
	},
	ActionBookingCancel: func(a Actor, r Resource) bool {
		return a.IsAdmin() || isSelf(a, r.ClientID) || isSelf(a, r.CrewID)
	},
	ActionBookingPay: func(a Actor, r Resource) bool {
		return a.IsAdmin() || isSelf(a, r.ClientID)
	},
	ActionServiceManage: func(a Actor, _ Resource) bool {
		return a.IsAdmin()
	},
	ActionReviewCreate: func(a Actor, r Resource) bool {
		return isSelf(a, r.ClientID)
	},
	ActionScheduleManage: func(a Actor, r Resource) bool {
		return a.IsAdmin() || (a.Role == domain.RoleCrew && isSelf(a, r.CrewID))
	},
}

// Authorize единая проверка права actor выполнить action над res
func Authorize(actor Actor, action Action, res Resource) error {
	if !actor.Role.Valid() || actor.ID == uuid.Nil {
		return fmt.Errorf("%w: unknown actor", ErrForbidden)
	}

	allow, ok := policies[action]
	if !ok {
		return fmt.Errorf("%w: unknown action %q", ErrForbidden, action)
	}

	if !allow(actor, res) {
		return fmt.Errorf("%w: %s %s cannot %s", ErrForbidden, actor.Role, actor.ID, action)
	}

	return nil
}

func isSelf(a Actor, id uuid.UUID) bool {
	return id != uuid.Nil && a.ID == id
}
