package auth_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/portfolio-api/auth"
	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func testTokenService(at time.Time) *auth.TokenServiceImpl {
	return auth.NewTokenService([]byte("test-signing-key"), 1, "test-issuer", nil).
		WithClock(fixedClock(at))
}

func TestTokenService_RoundTrip(t *testing.T) {
	service := testTokenService(epoch)

	identity := testIdentity{
		id:       "8a7b1c9e-0000-4000-8000-000000000001",
		username: "rafael",
		email:    "rafael@example.com",
		role:     auth.RoleAdmin,
	}

	token, err := service.Generate(identity)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, identity.id, claims.Subject())
	assert.Equal(t, "rafael", claims.Username())
	assert.Equal(t, auth.RoleAdmin, claims.Role())
	assert.True(t, claims.HasRole(auth.RoleAdmin))
	assert.False(t, claims.HasRole(auth.RoleUser))
	assert.True(t, claims.IssuedAt().Equal(epoch))
	assert.True(t, claims.Expires().Equal(epoch.Add(time.Hour)))
}

func TestTokenService_Expiry(t *testing.T) {
	identity := testIdentity{id: "user-1", username: "rafael", role: auth.RoleUser}

	token, err := testTokenService(epoch).Generate(identity)
	assert.NoError(t, err)

	t.Run("valid just before expiry", func(t *testing.T) {
		claims, err := testTokenService(epoch.Add(59 * time.Minute)).Validate(token)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", claims.Subject())
	})

	t.Run("rejected after expiry", func(t *testing.T) {
		_, err := testTokenService(epoch.Add(61 * time.Minute)).Validate(token)
		assert.ErrorIs(t, err, auth.ErrTokenExpired)
	})
}

func TestTokenService_BadSignature(t *testing.T) {
	identity := testIdentity{id: "user-1", username: "rafael", role: auth.RoleUser}

	token, err := testTokenService(epoch).Generate(identity)
	assert.NoError(t, err)

	other := auth.NewTokenService([]byte("another-key"), 1, "test-issuer", nil).
		WithClock(fixedClock(epoch))

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, auth.ErrTokenSignature)
}

func TestTokenService_Malformed(t *testing.T) {
	service := testTokenService(epoch)

	cases := []struct {
		name  string
		token string
	}{
		{"empty string", ""},
		{"not a token", "definitely-not-a-jwt"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIi"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Validate(tc.token)
			assert.Error(t, err)

			var richErr *errors.Error
			assert.True(t, errors.As(err, &richErr))
			assert.Equal(t, auth.TextCodeTokenMalformed, richErr.TextCode)
		})
	}
}

func TestTokenService_IssuerMismatch(t *testing.T) {
	identity := testIdentity{id: "user-1", username: "rafael", role: auth.RoleUser}

	token, err := auth.NewTokenService([]byte("test-signing-key"), 1, "someone-else", nil).
		WithClock(fixedClock(epoch)).
		Generate(identity)
	assert.NoError(t, err)

	_, err = testTokenService(epoch).Validate(token)
	assert.Error(t, err)
}
