package auth_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/portfolio-api/auth"
	"github.com/stretchr/testify/assert"
)

func testAuthConfig() testConfig {
	return testConfig{
		signingKey:      "test-signing-key",
		tokenExpiration: 1,
		issuer:          "test-issuer",
		contextKey:      "user",
		authScheme:      "Bearer",
	}
}

func TestAuther_Login(t *testing.T) {
	ctx := context.Background()

	identity := testIdentity{
		id:       "8a7b1c9e-0000-4000-8000-000000000001",
		username: "rafael",
		email:    "rafael@example.com",
		role:     auth.RoleAdmin,
	}

	t.Run("returns a verifiable token on success", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "rafael", "sup3r-secret").Return(identity, nil)

		auther := auth.NewAuthenticator(provider, testAuthConfig())

		token, resolved, err := auther.Login(ctx, "rafael", "sup3r-secret")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, identity.id, resolved.ID())

		claims, err := auther.TokenService().Validate(token)
		assert.NoError(t, err)
		assert.Equal(t, identity.id, claims.Subject())
		assert.Equal(t, auth.RoleAdmin, claims.Role())
	})

	t.Run("collapses provider auth failures", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "rafael", "bad").Return(nil, auth.ErrTooManyLoginAttempts)

		token, resolved, err := auth.NewAuthenticator(provider, testAuthConfig()).
			Login(ctx, "rafael", "bad")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.Empty(t, token)
		assert.Nil(t, resolved)
	})

	t.Run("every credential failure is the same error", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "rafael", "bad").Return(nil, auth.ErrInvalidCredentials)
		provider.On("VerifyIdentity", ctx, "ghost", "bad").Return(nil, auth.ErrInvalidCredentials)
		provider.On("VerifyIdentity", ctx, "locked", "bad").Return(nil, auth.ErrTooManyLoginAttempts)

		auther := auth.NewAuthenticator(provider, testAuthConfig())

		_, _, errMismatch := auther.Login(ctx, "rafael", "bad")
		_, _, errMissing := auther.Login(ctx, "ghost", "bad")
		_, _, errLocked := auther.Login(ctx, "locked", "bad")

		assert.Equal(t, errMismatch, errMissing)
		assert.Equal(t, errMismatch, errLocked)
	})

	t.Run("internal provider failures are not collapsed", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "rafael", "pw").
			Return(nil, errors.New("store unavailable", errors.CategoryOperation))

		_, _, err := auth.NewAuthenticator(provider, testAuthConfig()).Login(ctx, "rafael", "pw")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)

		var richErr *errors.Error
		assert.True(t, errors.As(err, &richErr))
		assert.Equal(t, errors.CategoryInternal, richErr.Category)
	})
}

func TestAuther_IdentityFromToken(t *testing.T) {
	ctx := context.Background()

	identity := testIdentity{id: "user-1", username: "rafael", role: auth.RoleUser}

	provider := &MockIdentityProvider{}
	provider.On("VerifyIdentity", ctx, "rafael", "sup3r-secret").Return(identity, nil)

	auther := auth.NewAuthenticator(provider, testAuthConfig())

	token, _, err := auther.Login(ctx, "rafael", "sup3r-secret")
	assert.NoError(t, err)

	t.Run("derives identity from a valid token", func(t *testing.T) {
		resolved, err := auther.IdentityFromToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", resolved.ID())
		assert.Equal(t, "rafael", resolved.Username())
		assert.Equal(t, auth.RoleUser, resolved.Role())
	})

	t.Run("rejects a tampered token", func(t *testing.T) {
		_, err := auther.IdentityFromToken(token + "x")
		assert.Error(t, err)
	})
}
