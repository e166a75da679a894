package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/domain"
)

// Client клиент для работы с сервисом пользователей
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса пользователей
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetUser получает пользователя по ID
func (c *Client) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	endpoint := fmt.Sprintf("%s/internal/users/%s", c.baseURL, userID)

	var user User
	if err := c.getJSON(ctx, endpoint, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// ListCrewMembers получает всех пользователей с ролью crew
func (c *Client) ListCrewMembers(ctx context.Context) ([]*domain.CrewMember, error) {
	query := url.Values{}
	query.Set("role", string(domain.RoleCrew))
	endpoint := fmt.Sprintf("%s/internal/users?%s", c.baseURL, query.Encode())

	var users []User
	if err := c.getJSON(ctx, endpoint, &users); err != nil {
		return nil, err
	}

	members := make([]*domain.CrewMember, 0, len(users))
	for _, u := range users {
		members = append(members, u.ToCrewMember())
	}

	return members, nil
}

// GetCrewMember получает профиль crew с graceful degradation.
// Отсутствие пользователя или другая роль - бизнес-ошибки и пробрасываются дальше.
// При недоступности сервиса возвращает ErrServiceDegraded, что позволяет продолжить без проверки профиля.
func (c *Client) GetCrewMember(ctx context.Context, crewID uuid.UUID) (*domain.CrewMember, error) {
	user, err := c.GetUser(ctx, crewID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.log.Info("Crew member not found, crew_id=%s", crewID)
			return nil, err
		}

		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("Identity service unavailable, applying graceful degradation for crew_id=%s: %v", crewID, err)
		return nil, fmt.Errorf("%w: crew_id=%s, error=%v", ErrServiceDegraded, crewID, err)
	}

	if domain.Role(user.Role) != domain.RoleCrew {
		return nil, fmt.Errorf("%w: user_id=%s role=%s", ErrNotCrew, crewID, user.Role)
	}

	return user.ToCrewMember(), nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrUserNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
