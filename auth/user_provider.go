package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
)

// UserRecord is the narrow view of a stored user this package needs: lookup
// by unique identifier plus attempt bookkeeping. The auth core never writes
// anything else to the user store.
type UserRecord struct {
	ID            string
	Username      string
	Email         string
	Role          UserRole
	PasswordHash  string
	LoginAttempts int
	LoginAttempt  *time.Time
}

// UserTracker is a store we can use to retrieve users
type UserTracker interface {
	GetByIdentifier(ctx context.Context, identifier string) (*UserRecord, error)
	TrackAttemptedLogin(ctx context.Context, user *UserRecord) error
	TrackSuccessfulLogin(ctx context.Context, user *UserRecord) error
}

// MaxLoginAttempts is the maximum number of attempts a user gets
// in a period
var MaxLoginAttempts = 5

// CoolDownPeriod is the period in which we enforce a cool down
var CoolDownPeriod = 24 * time.Hour

// UserProvider resolves identities against the user store and performs the
// password check. Lookup misses and password mismatches both come back as
// ErrInvalidCredentials so the orchestrator has nothing to leak.
type UserProvider struct {
	store  UserTracker
	logger Logger
	now    func() time.Time
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserTracker) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
		now:    time.Now,
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// VerifyIdentity will find the user, compare the password, and return the
// resolved identity
func (u *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := u.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if user.LoginAttempt != nil && u.now().Sub(*user.LoginAttempt) > CoolDownPeriod {
		user.LoginAttempts = 0
	}

	if user.LoginAttempts > MaxLoginAttempts {
		return nil, ErrTooManyLoginAttempts
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if err2 := u.store.TrackAttemptedLogin(ctx, user); err2 != nil {
			return nil, errors.Wrap(err2, errors.CategoryInternal, "failed to track login attempt")
		}
		return nil, ErrInvalidCredentials
	}

	if err := u.store.TrackSuccessfulLogin(ctx, user); err != nil {
		u.logger.Error("failed to track successful login", "error", err)
	}

	return authIdentity{
		id:       user.ID,
		email:    user.Email,
		username: user.Username,
		role:     user.Role,
	}, nil
}

// FindIdentityByIdentifier resolves an identity without a credential check
func (u *UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	user, err := u.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	return authIdentity{
		id:       user.ID,
		email:    user.Email,
		username: user.Username,
		role:     user.Role,
	}, nil
}

var _ IdentityProvider = (*UserProvider)(nil)

type authIdentity struct {
	id       string
	username string
	email    string
	role     string
}

func (a authIdentity) ID() string       { return a.id }
func (a authIdentity) Username() string { return a.username }
func (a authIdentity) Email() string    { return a.email }
func (a authIdentity) Role() string     { return a.role }
