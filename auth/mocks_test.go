package auth_test

import (
	"context"

	"github.com/goliatone/portfolio-api/auth"
	"github.com/stretchr/testify/mock"
)

// testIdentity is a plain auth.Identity for tests
type testIdentity struct {
	id       string
	username string
	email    string
	role     string
}

func (t testIdentity) ID() string       { return t.id }
func (t testIdentity) Username() string { return t.username }
func (t testIdentity) Email() string    { return t.email }
func (t testIdentity) Role() string     { return t.role }

// testConfig implements auth.Config
type testConfig struct {
	signingKey      string
	tokenExpiration int
	issuer          string
	contextKey      string
	authScheme      string
}

func (c testConfig) GetSigningKey() string   { return c.signingKey }
func (c testConfig) GetTokenExpiration() int { return c.tokenExpiration }
func (c testConfig) GetIssuer() string       { return c.issuer }
func (c testConfig) GetContextKey() string   { return c.contextKey }
func (c testConfig) GetAuthScheme() string   { return c.authScheme }

// MockUserTracker implements auth.UserTracker
type MockUserTracker struct {
	mock.Mock
}

func (m *MockUserTracker) GetByIdentifier(ctx context.Context, identifier string) (*auth.UserRecord, error) {
	args := m.Called(ctx, identifier)
	if rec := args.Get(0); rec != nil {
		return rec.(*auth.UserRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserTracker) TrackAttemptedLogin(ctx context.Context, user *auth.UserRecord) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserTracker) TrackSuccessfulLogin(ctx context.Context, user *auth.UserRecord) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockIdentityProvider implements auth.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (auth.Identity, error) {
	args := m.Called(ctx, identifier, password)
	if identity := args.Get(0); identity != nil {
		return identity.(auth.Identity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (auth.Identity, error) {
	args := m.Called(ctx, identifier)
	if identity := args.Get(0); identity != nil {
		return identity.(auth.Identity), args.Error(1)
	}
	return nil, args.Error(1)
}
