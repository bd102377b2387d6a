package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// Auther orchestrates login: resolve identity through the provider, let the
// provider check the password, then mint a token. It holds no per-request
// state; the signing key is loaded once and read concurrently.
type Auther struct {
	provider     IdentityProvider
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	return &Auther{
		provider: provider,
		tokenService: NewTokenService(
			[]byte(opts.GetSigningKey()),
			opts.GetTokenExpiration(),
			opts.GetIssuer(),
			defLogger{},
		),
		logger: defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// WithTokenService overrides the token service, e.g. to pin the clock in
// tests.
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	if ts != nil {
		s.tokenService = ts
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the credentials and returns a signed token plus the
// sanitized identity. Every credential failure collapses into
// ErrInvalidCredentials; only store or signing failures surface as internal
// errors.
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, Identity, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		if IsAuthError(err) {
			s.logger.Info("Login rejected", "identifier", identifier)
			return "", nil, ErrInvalidCredentials
		}
		s.logger.Error("Login verify identity error", "error", err)
		return "", nil, errors.Wrap(err, errors.CategoryInternal, "identity verification failed")
	}

	token, err := s.tokenService.Generate(identity)
	if err != nil {
		s.logger.Error("Login token generation error", "error", err)
		return "", nil, err
	}

	s.logger.Info("Login success", "subject", identity.ID(), "username", identity.Username())

	return token, identity, nil
}

// IdentityFromToken validates a raw bearer token and derives the request
// identity from its claims.
func (s *Auther) IdentityFromToken(raw string) (Identity, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		return nil, err
	}
	return IdentityFromClaims(claims), nil
}

var _ Authenticator = (*Auther)(nil)
