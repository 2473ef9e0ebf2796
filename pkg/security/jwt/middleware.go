package jwt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/artem13815/cvbuilder/pkg/auth"
)

// Locals keys set by the middleware.
const (
	LocalUserID  = "userId"
	LocalSession = "session"
)

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": msg, "kind": "auth"})
}

// NewAuthMiddleware returns a Fiber middleware that validates HS256 tokens
// from "Authorization: Bearer <t>", a bare "Authorization: <t>" or the
// x-access-token header. Revoked tokens are rejected when revoked is not
// nil. On success the user id and auth.Session are stored in c.Locals.
func NewAuthMiddleware(secret, expectedIssuer string, revoked auth.TokenRevoker) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			return unauthorized(c, "missing token")
		}
		sess, err := ParseSession(tokenStr, secretBytes, expectedIssuer)
		if err != nil {
			if errors.Is(err, ErrInvalidToken) {
				return unauthorized(c, ErrInvalidToken.Error())
			}
			return unauthorized(c, err.Error())
		}
		if revoked != nil && sess.TokenID != "" {
			isRevoked, err := revoked.IsRevoked(c.UserContext(), sess.TokenID)
			if err != nil {
				log.Error().Err(err).Msg("revocation check failed")
				return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "internal error", "kind": "server"})
			}
			if isRevoked {
				return unauthorized(c, "token has been revoked")
			}
		}

		c.Locals(LocalUserID, sess.UserID.String())
		c.Locals(LocalSession, sess)
		return c.Next()
	}
}

func tokenFromRequest(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return strings.TrimSpace(c.Get("x-access-token"))
	}
	if scheme, rest, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(rest)
	}
	return header
}

// SessionFrom returns the session stored by the middleware.
func SessionFrom(c *fiber.Ctx) (auth.Session, bool) {
	s, ok := c.Locals(LocalSession).(auth.Session)
	return s, ok
}
