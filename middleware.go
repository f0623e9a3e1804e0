package identity

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
)

// SessionLocalsKey is where the protected middleware stores the session
const SessionLocalsKey = "session"

// Protected returns a middleware that rejects requests without a valid
// bearer token. On success the decoded session is stored in the request
// locals and the standard context for downstream handlers.
func Protected(tokens TokenService) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			raw := bearerToken(ctx.Header("Authorization"))
			if raw == "" {
				return ctx.JSON(fiber.StatusUnauthorized, map[string]any{
					"error": "missing bearer token",
				})
			}

			session, err := SessionFromToken(tokens, raw)
			if err != nil {
				return ctx.JSON(fiber.StatusUnauthorized, map[string]any{
					"error": "invalid or expired token",
				})
			}

			ctx.Locals(SessionLocalsKey, session)
			ctx.SetContext(WithSessionContext(ctx.Context(), session))

			return next(ctx)
		}
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
