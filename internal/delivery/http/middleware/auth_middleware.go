package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

const CtxSessionTokenKey = "session_token"

// SessionMiddleware lifts the session token off the request. A bearer
// header wins over the cookie. It never rejects; handlers decide.
type SessionMiddleware struct {
	cookieName string
}

func NewSessionMiddleware(cookieName string) *SessionMiddleware {
	if strings.TrimSpace(cookieName) == "" {
		cookieName = "session"
	}
	return &SessionMiddleware{cookieName: cookieName}
}

func (m *SessionMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if !ok {
			token = strings.TrimSpace(c.Cookies(m.cookieName))
		}
		if token != "" {
			c.Locals(CtxSessionTokenKey, token)
		}
		return c.Next()
	}
}

func SessionToken(c fiber.Ctx) string {
	tok, _ := c.Locals(CtxSessionTokenKey).(string)
	return tok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
