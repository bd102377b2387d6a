package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// TokenValidator validates raw bearer tokens into claims
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// Middleware wires the two request stages: best effort authentication and
// policy enforcement. They are deliberately separate handlers so public and
// protected routes share one pipeline.
type Middleware struct {
	validator  TokenValidator
	contextKey string
	authScheme string
	logger     Logger
}

// NewMiddleware builds the request middleware around a token validator
func NewMiddleware(validator TokenValidator, cfg Config) *Middleware {
	contextKey := cfg.GetContextKey()
	if contextKey == "" {
		contextKey = "user"
	}

	authScheme := cfg.GetAuthScheme()
	if authScheme == "" {
		authScheme = "Bearer"
	}

	return &Middleware{
		validator:  validator,
		contextKey: contextKey,
		authScheme: authScheme,
		logger:     defLogger{},
	}
}

func (m *Middleware) WithLogger(logger Logger) *Middleware {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// Authenticate attaches an identity to the request when a valid bearer token
// is present. It never rejects: absent, malformed, or expired credentials
// pass through unauthenticated and enforcement happens in the policy stage.
func (m *Middleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := m.extractToken(c.Get(fiber.HeaderAuthorization))
		if raw == "" {
			return c.Next()
		}

		claims, err := m.validator.Validate(raw)
		if err != nil {
			var richErr *errors.Error
			if errors.As(err, &richErr) {
				m.logger.Debug("Token rejected", "reason", richErr.TextCode, "path", c.Path())
			} else {
				m.logger.Debug("Token rejected", "error", err, "path", c.Path())
			}
			return c.Next()
		}

		identity := IdentityFromClaims(claims)

		c.Locals(m.contextKey, claims)
		c.SetUserContext(WithIdentityContext(
			WithClaimsContext(c.UserContext(), claims),
			identity,
		))

		return c.Next()
	}
}

// Enforce rejects requests the policy marks as authenticated-only when no
// identity was attached. It runs after Authenticate and before dispatch.
func (m *Middleware) Enforce(policy *Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if policy.Decide(c.Method(), c.Path()) == Public {
			return c.Next()
		}

		if _, ok := m.IdentityFromFiber(c); !ok {
			m.logger.Info("Request rejected by policy", "method", c.Method(), "path", c.Path())
			return ErrAuthenticationRequired
		}

		return c.Next()
	}
}

// RequireRole gates a route group on a role carried by the verified claims.
// An authenticated identity with the wrong role gets a 403; no identity gets
// a 401 (though routes using this are expected to sit behind Enforce).
func (m *Middleware) RequireRole(role UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := m.IdentityFromFiber(c)
		if !ok {
			return ErrAuthenticationRequired
		}

		if identity.Role() != role {
			m.logger.Info("Request rejected by role check",
				"required", role, "role", identity.Role(), "path", c.Path())
			return ErrPolicyDenied
		}

		return c.Next()
	}
}

// IdentityFromFiber returns the identity attached by Authenticate, if any
func (m *Middleware) IdentityFromFiber(c *fiber.Ctx) (Identity, bool) {
	claims, ok := c.Locals(m.contextKey).(AuthClaims)
	if !ok {
		return nil, false
	}
	return IdentityFromClaims(claims), true
}

// ClaimsFromFiber returns the verified claims attached by Authenticate
func (m *Middleware) ClaimsFromFiber(c *fiber.Ctx) (AuthClaims, bool) {
	claims, ok := c.Locals(m.contextKey).(AuthClaims)
	return claims, ok
}

// extractToken pulls the credential out of an Authorization header value.
// The scheme prefix must match exactly; anything else counts as "no
// credential", not as an error.
func (m *Middleware) extractToken(header string) string {
	if header == "" {
		return ""
	}

	prefix := m.authScheme + " "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(header[len(prefix):])
}
