package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleUser is the regular, non privileged role
	RoleUser UserRole = "user"
	// RoleAdmin can manage every resource, including other users
	RoleAdmin UserRole = "admin"
)

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	switch role {
	case RoleUser, RoleAdmin:
		return role, true
	default:
		return role, false
	}
}

// AuthClaims is the verified view of a token's payload
type AuthClaims interface {
	Subject() string
	Username() string
	Role() string
	HasRole(role string) bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims. The role travels
// inside the signed payload: it is captured from the user store at login and
// re-derived from the verified token on every request, never asserted by the
// middleware itself.
type JWTClaims struct {
	jwt.RegisteredClaims
	UID      string   `json:"uid,omitempty"`
	Uname    string   `json:"username,omitempty"`
	UserRole UserRole `json:"role,omitempty"`
}

var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

// Username returns the username claim
func (c *JWTClaims) Username() string {
	return c.Uname
}

// Role returns the role captured at issue time
func (c *JWTClaims) Role() string {
	return c.UserRole
}

// HasRole checks if the claims carry a specific role
func (c *JWTClaims) HasRole(role string) bool {
	return c.UserRole == role
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// claimsIdentity lets verified claims satisfy Identity for request handling
type claimsIdentity struct {
	claims AuthClaims
}

func (i claimsIdentity) ID() string       { return i.claims.Subject() }
func (i claimsIdentity) Username() string { return i.claims.Username() }
func (i claimsIdentity) Email() string    { return "" }
func (i claimsIdentity) Role() string     { return i.claims.Role() }

// IdentityFromClaims derives the request identity from a verified token
// payload.
func IdentityFromClaims(claims AuthClaims) Identity {
	return claimsIdentity{claims: claims}
}
