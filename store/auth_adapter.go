package store

import (
	"context"

	"github.com/goliatone/portfolio-api/auth"
	"github.com/google/uuid"
)

// AuthAdapter narrows the users repository to the view the auth core
// consumes. The core only ever reads users and tracks attempt counters; it
// never writes anything else to the store.
type AuthAdapter struct {
	users Users
}

// NewAuthAdapter wraps a users repository as an auth.UserTracker
func NewAuthAdapter(users Users) *AuthAdapter {
	return &AuthAdapter{users: users}
}

var _ auth.UserTracker = (*AuthAdapter)(nil)

func (a *AuthAdapter) GetByIdentifier(ctx context.Context, identifier string) (*auth.UserRecord, error) {
	user, err := a.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return toUserRecord(user), nil
}

func (a *AuthAdapter) TrackAttemptedLogin(ctx context.Context, record *auth.UserRecord) error {
	id, err := uuid.Parse(record.ID)
	if err != nil {
		return err
	}
	return a.users.IncrementLoginAttempts(ctx, id)
}

func (a *AuthAdapter) TrackSuccessfulLogin(ctx context.Context, record *auth.UserRecord) error {
	id, err := uuid.Parse(record.ID)
	if err != nil {
		return err
	}
	return a.users.ResetLoginAttempts(ctx, id)
}

func toUserRecord(user *User) *auth.UserRecord {
	return &auth.UserRecord{
		ID:            user.ID.String(),
		Username:      user.Username,
		Email:         user.Email,
		Role:          user.Role,
		PasswordHash:  user.PasswordHash,
		LoginAttempts: user.LoginAttempts,
		LoginAttempt:  user.LoginAttemptAt,
	}
}
