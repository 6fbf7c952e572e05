package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ActorLocalKey is the Fiber locals key holding the acting user.
const ActorLocalKey = "actor"

// AnonymousActor is recorded when a request names no user.
const AnonymousActor = "anonymous"

type actorClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}

// ActorResolver decides who performs a request. A bearer token signed with
// the HS256 secret wins; otherwise the actor header is trusted. Tokens are
// issued elsewhere and only verified here.
type ActorResolver struct {
	secret []byte
	header string
	logger *slog.Logger
}

func NewActorResolver(secret, header string, logger *slog.Logger) *ActorResolver {
	if header == "" {
		header = "X-Actor"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ActorResolver{secret: []byte(secret), header: header, logger: logger.With(slog.String("component", "auth"))}
}

// Resolve returns the actor of a bearer token. It fails for malformed,
// expired or foreign-signed tokens.
func (a *ActorResolver) Resolve(token string) (string, error) {
	if len(a.secret) == 0 {
		return "", errors.New("token verification is not configured")
	}
	claims := &actorClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid {
		return "", errors.New("invalid token")
	}
	if claims.Name != "" {
		return claims.Name, nil
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// Handler stores the actor in locals. An invalid bearer token is rejected
// with 401; a missing one falls back to the header, then to AnonymousActor.
func (a *ActorResolver) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := strings.TrimSpace(c.Get(a.header))
		if auth := c.Get(fiber.HeaderAuthorization); len(a.secret) > 0 && strings.HasPrefix(auth, "Bearer ") {
			resolved, err := a.Resolve(strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				a.logger.Warn("rejected bearer token", slog.String("request_id", RequestIDFrom(c)), slog.String("error", err.Error()))
				return fiber.NewError(fiber.StatusUnauthorized, "invalid bearer token")
			}
			actor = resolved
		}
		if actor == "" {
			actor = AnonymousActor
		}
		c.Locals(ActorLocalKey, actor)
		return c.Next()
	}
}

// ActorFrom returns the actor stored by ActorResolver.Handler.
func ActorFrom(c *fiber.Ctx) string {
	actor, _ := c.Locals(ActorLocalKey).(string)
	return actor
}
