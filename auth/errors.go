package auth

import "github.com/goliatone/go-errors"

const (
	TextCodeInvalidCredentials = "auth_invalid_credentials"
	TextCodeTokenMalformed     = "auth_token_malformed"
	TextCodeTokenSignature     = "auth_token_bad_signature"
	TextCodeTokenExpired       = "auth_token_expired"
	TextCodeRequired           = "auth_required"
	TextCodePolicyDenied       = "auth_policy_denied"
	TextCodeTooManyAttempts    = "auth_too_many_attempts"
)

// ErrInvalidCredentials is returned for any login failure. Identity lookup
// misses and password mismatches both collapse into this value so callers
// cannot enumerate usernames.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a token cannot be parsed at all.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrTokenSignature is returned when the signature does not verify against
// the server key.
var ErrTokenSignature = errors.New("token signature is invalid", errors.CategoryAuth).
	WithTextCode(TextCodeTokenSignature).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a structurally valid token is past its
// expiry.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrAuthenticationRequired is produced by policy enforcement when a
// protected route is reached without a resolved identity.
var ErrAuthenticationRequired = errors.New("authentication required", errors.CategoryAuth).
	WithTextCode(TextCodeRequired).
	WithCode(errors.CodeUnauthorized)

// ErrPolicyDenied is produced when an authenticated identity lacks the role
// a route requires.
var ErrPolicyDenied = errors.New("insufficient permissions", errors.CategoryAuthz).
	WithTextCode(TextCodePolicyDenied).
	WithCode(errors.CodeForbidden)

// ErrTooManyLoginAttempts keeps the 401 shape so throttled accounts are not
// distinguishable from bad credentials.
var ErrTooManyLoginAttempts = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeTooManyAttempts).
	WithCode(errors.CodeUnauthorized)

// IsAuthError reports whether err belongs to the authentication taxonomy,
// i.e. it should degrade to "unauthenticated" instead of surfacing.
func IsAuthError(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.Category == errors.CategoryAuth || richErr.Category == errors.CategoryAuthz
}
