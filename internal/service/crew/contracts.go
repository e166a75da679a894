package crew

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
)

// CrewDirectory интерфейс каталога crew (сервис пользователей)
type CrewDirectory interface {
	ListCrewMembers(ctx context.Context) ([]*domain.CrewMember, error)
}

// RatingRepository интерфейс чтения рейтингов crew
type RatingRepository interface {
	GetRatings(ctx context.Context, crewIDs []uuid.UUID) (map[uuid.UUID]*domain.CrewRating, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
