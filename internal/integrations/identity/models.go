package identity

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
)

// User модель пользователя из сервиса пользователей
type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"` // client, crew или admin
}

// ToCrewMember переводит пользователя в доменную модель crew
func (u User) ToCrewMember() *domain.CrewMember {
	fullName := u.FirstName
	if u.LastName != "" {
		if fullName != "" {
			fullName += " "
		}
		fullName += u.LastName
	}

	return &domain.CrewMember{
		ID:       u.ID,
		FullName: fullName,
		Email:    u.Email,
		Role:     domain.Role(u.Role),
	}
}

// ErrorResponse модель ошибки от сервиса пользователей
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
