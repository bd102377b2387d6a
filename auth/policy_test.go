package auth_test

import (
	"testing"

	"github.com/goliatone/portfolio-api/auth"
	"github.com/stretchr/testify/assert"
)

func TestPolicy_Decide(t *testing.T) {
	policy := auth.DefaultPolicy()

	cases := []struct {
		name   string
		method string
		path   string
		want   auth.Requirement
	}{
		{"login is public", "POST", "/auth/login", auth.Public},
		{"post listing is public", "GET", "/blog/posts", auth.Public},
		{"post listing with slash is public", "GET", "/blog/posts/", auth.Public},
		{"post detail is public", "GET", "/blog/posts/42", auth.Public},
		{"category listing is public", "GET", "/blog/posts/category/go", auth.Public},
		{"contact form is public", "POST", "/contact", auth.Public},

		{"post create is protected", "POST", "/blog/posts", auth.Authenticated},
		{"post update is protected", "PUT", "/blog/posts/42", auth.Authenticated},
		{"post delete is protected", "DELETE", "/blog/posts/42", auth.Authenticated},
		{"inbox is protected", "GET", "/contact/messages", auth.Authenticated},
		{"unread count is protected", "GET", "/contact/messages/unread/count", auth.Authenticated},
		{"mark read is protected", "PUT", "/contact/messages/42/read", auth.Authenticated},
		{"user listing is protected", "GET", "/users", auth.Authenticated},
		{"user create is protected", "POST", "/users", auth.Authenticated},

		{"unknown route fails closed", "GET", "/metrics", auth.Authenticated},
		{"root fails closed", "GET", "/", auth.Authenticated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, policy.Decide(tc.method, tc.path))
		})
	}
}

func TestPolicy_FirstMatchWins(t *testing.T) {
	policy := auth.NewPolicy(
		auth.AccessRule{Method: "GET", Pattern: "/things/special", Requirement: auth.Authenticated},
		auth.AccessRule{Method: "GET", Pattern: "/things/*", Requirement: auth.Public},
	)

	assert.Equal(t, auth.Authenticated, policy.Decide("GET", "/things/special"))
	assert.Equal(t, auth.Public, policy.Decide("GET", "/things/other"))
}

func TestPolicy_Matching(t *testing.T) {
	policy := auth.NewPolicy(
		auth.AccessRule{Method: "*", Pattern: "/any-method", Requirement: auth.Public},
		auth.AccessRule{Method: "GET", Pattern: "/exact", Requirement: auth.Public},
		auth.AccessRule{Method: "GET", Pattern: "/tree/*", Requirement: auth.Public},
	)

	t.Run("method wildcard matches every verb", func(t *testing.T) {
		assert.Equal(t, auth.Public, policy.Decide("GET", "/any-method"))
		assert.Equal(t, auth.Public, policy.Decide("DELETE", "/any-method"))
	})

	t.Run("exact pattern does not cover the subtree", func(t *testing.T) {
		assert.Equal(t, auth.Public, policy.Decide("GET", "/exact"))
		assert.Equal(t, auth.Authenticated, policy.Decide("GET", "/exact/child"))
	})

	t.Run("subtree pattern covers base and children", func(t *testing.T) {
		assert.Equal(t, auth.Public, policy.Decide("GET", "/tree"))
		assert.Equal(t, auth.Public, policy.Decide("GET", "/tree/child/leaf"))
	})

	t.Run("subtree pattern does not match sibling prefixes", func(t *testing.T) {
		assert.Equal(t, auth.Authenticated, policy.Decide("GET", "/treehouse"))
	})

	t.Run("method mismatch does not match", func(t *testing.T) {
		assert.Equal(t, auth.Authenticated, policy.Decide("POST", "/exact"))
	})
}

func TestPolicy_IsAllowed(t *testing.T) {
	policy := auth.DefaultPolicy()

	t.Run("public routes allow anonymous requests", func(t *testing.T) {
		assert.True(t, policy.IsAllowed("GET", "/blog/posts", false))
	})

	t.Run("protected routes require an identity", func(t *testing.T) {
		assert.False(t, policy.IsAllowed("POST", "/blog/posts", false))
		assert.True(t, policy.IsAllowed("POST", "/blog/posts", true))
	})
}
