package handler

import (
	"context"
	"errors"
	"strings"

	"wordgame-service/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

const SessionKey = "session"

type SessionResolver interface {
	GetSession(ctx context.Context, token string) (domain.Session, error)
}

type sessionCtxKey struct{}

func WithSession(ctx context.Context, s domain.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(sessionCtxKey{}).(domain.Session)
	return s, ok && s.Valid()
}

// SessionFrom returns the identity the auth middleware attached to c.
func SessionFrom(c *fiber.Ctx) (domain.Session, bool) {
	s, ok := c.Locals(SessionKey).(domain.Session)
	return s, ok && s.Valid()
}

func bearerToken(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if token := c.Cookies("Session"); token != "" {
		return token
	}
	// browsers cannot set headers on websocket upgrades
	return c.Query("token")
}

// Authenticate resolves the caller from the gateway headers when trustHeaders
// is on, otherwise from the session token. Requests without an identity are
// rejected with 401.
func Authenticate(resolver SessionResolver, trustHeaders bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if trustHeaders {
			if userID := c.Get("X-User-ID"); userID != "" {
				// header values alias the request buffer; the session outlives it
				return proceed(c, domain.Session{
					PlayerID:    utils.CopyString(userID),
					DisplayName: utils.CopyString(c.Get("X-User-Name", userID)),
					AcademyID:   utils.CopyString(c.Get("X-Academy-ID")),
				})
			}
		}

		token := bearerToken(c)
		if token == "" || resolver == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		s, err := resolver.GetSession(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, domain.ErrTransient) {
				zap.L().Error("Session store unavailable", zap.Error(err))
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "session store unavailable"})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		return proceed(c, s)
	}
}

func proceed(c *fiber.Ctx, s domain.Session) error {
	c.Locals(SessionKey, s)
	c.SetUserContext(WithSession(c.UserContext(), s))
	return c.Next()
}
