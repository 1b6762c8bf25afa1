package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/johnquangdev/meeting-autopilot/errors"
	"github.com/johnquangdev/meeting-autopilot/pkg/jwt"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// ClaimsContextKey is the context key for validated trigger claims
	ClaimsContextKey ContextKey = "trigger_claims"
)

// TriggerAuth guards the job trigger endpoints with signed tokens.
type TriggerAuth struct {
	manager *jwt.Manager
}

// NewTriggerAuth creates the trigger auth middleware
func NewTriggerAuth(manager *jwt.Manager) *TriggerAuth {
	return &TriggerAuth{manager: manager}
}

// Authenticate validates the bearer token and stores its claims on the
// request context.
func (m *TriggerAuth) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := extractToken(c.Request())
		if token == "" {
			ae := apperrors.ErrUnauthenticated()
			return c.JSON(ae.HTTPCode, map[string]interface{}{
				"error":   ae.Code.String(),
				"message": ae.Message,
			})
		}
		claims, err := m.manager.ValidateTriggerToken(token)
		if err != nil {
			ae := apperrors.ErrInvalidToken()
			return c.JSON(ae.HTTPCode, map[string]interface{}{
				"error":   ae.Code.String(),
				"message": ae.Message,
			})
		}
		c.Set(string(ClaimsContextKey), claims)
		return next(c)
	}
}

// extractToken pulls the bearer token from the Authorization header.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
