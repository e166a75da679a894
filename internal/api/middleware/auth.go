package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CrewBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CrewBooking/internal/authz"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
)

const (
	// HeaderUserID идентификатор пользователя, проставляемый gateway
	HeaderUserID = "X-User-ID"
	// HeaderUserRole роль пользователя, проставляемая gateway
	HeaderUserRole = "X-User-Role"

	msgUnauthorized = "требуется аутентификация"
	msgInvalidToken = "недействительный токен доступа"
)

type contextKey string

const actorKey contextKey = "actor"

var (
	// ErrMissingCredentials в запросе нет ни токена, ни заголовков пользователя
	ErrMissingCredentials = errors.New("middleware: missing credentials")
	// ErrInvalidCredentials токен или заголовки не прошли проверку
	ErrInvalidCredentials = errors.New("middleware: invalid credentials")
)

// Claims полезная нагрузка токена доступа: sub - uuid пользователя, role - его роль
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth middleware аутентификации.
// С непустым secret требует Bearer токен HS256, иначе доверяет заголовкам X-User-ID / X-User-Role.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				actor authz.Actor
				err   error
			)
			if secret != "" {
				actor, err = actorFromToken(r, secret)
			} else {
				actor, err = actorFromHeaders(r)
			}

			if err != nil {
				if errors.Is(err, ErrMissingCredentials) {
					handlers.RespondUnauthorized(w, msgUnauthorized)
					return
				}
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// WithActor кладет актора в контекст
func WithActor(ctx context.Context, actor authz.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor извлекает актора из контекста
func GetActor(ctx context.Context) (authz.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(authz.Actor)
	return actor, ok
}

// NewToken подписывает токен доступа (используется в тестах и утилитах)
func NewToken(secret string, userID uuid.UUID, role domain.Role, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = userID.String()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Role: string(role), RegisteredClaims: claims})
	return token.SignedString([]byte(secret))
}

func actorFromToken(r *http.Request, secret string) (authz.Actor, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return authz.Actor{}, ErrMissingCredentials
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return authz.Actor{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	return buildActor(claims.Subject, claims.Role)
}

func actorFromHeaders(r *http.Request) (authz.Actor, error) {
	rawID := r.Header.Get(HeaderUserID)
	if rawID == "" {
		return authz.Actor{}, ErrMissingCredentials
	}
	return buildActor(rawID, r.Header.Get(HeaderUserRole))
}

func buildActor(rawID, rawRole string) (authz.Actor, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return authz.Actor{}, fmt.Errorf("%w: subject: %v", ErrInvalidCredentials, err)
	}

	role := domain.Role(rawRole)
	if !role.Valid() {
		return authz.Actor{}, fmt.Errorf("%w: role %q", ErrInvalidCredentials, rawRole)
	}

	return authz.Actor{ID: id, Role: role}, nil
}
