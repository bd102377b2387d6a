package auth_test

import (
	"context"
	"testing"

	"github.com/goliatone/portfolio-api/auth"
	"github.com/stretchr/testify/assert"
)

func TestIdentityContext(t *testing.T) {
	t.Run("round trips an identity", func(t *testing.T) {
		identity := testIdentity{id: "user-1", username: "rafael", role: auth.RoleUser}

		ctx := auth.WithIdentityContext(context.Background(), identity)

		resolved, ok := auth.IdentityFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "user-1", resolved.ID())
	})

	t.Run("missing identity reports false", func(t *testing.T) {
		_, ok := auth.IdentityFromContext(context.Background())
		assert.False(t, ok)
	})
}

func TestClaimsContext(t *testing.T) {
	t.Run("round trips claims", func(t *testing.T) {
		token, err := testTokenService(epoch).Generate(testIdentity{
			id:       "user-1",
			username: "rafael",
			role:     auth.RoleAdmin,
		})
		assert.NoError(t, err)

		claims, err := testTokenService(epoch).Validate(token)
		assert.NoError(t, err)

		ctx := auth.WithClaimsContext(context.Background(), claims)

		resolved, ok := auth.GetClaims(ctx)
		assert.True(t, ok)
		assert.Equal(t, "user-1", resolved.Subject())
		assert.Equal(t, auth.RoleAdmin, resolved.Role())
	})

	t.Run("missing claims reports false", func(t *testing.T) {
		_, ok := auth.GetClaims(context.Background())
		assert.False(t, ok)
	})
}
