package store

import (
	"context"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users exposes the user repository: generic CRUD plus the identifier lookup
// and attempt bookkeeping the auth layer depends on.
type Users interface {
	repository.Repository[*User]

	GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*User, error)
	Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error)
	Update(ctx context.Context, record *User, criteria ...repository.UpdateCriteria) (*User, error)
	ListAll(ctx context.Context) ([]*User, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	IncrementLoginAttempts(ctx context.Context, id uuid.UUID) error
	ResetLoginAttempts(ctx context.Context, id uuid.UUID) error
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var _ Users = (*users)(nil)

// NewUsersRepository builds the users repository on top of the generic bun
// repository.
func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "username"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

// GetByIdentifier looks a user up by username or email. Identifiers are
// matched case insensitively since both columns are unique.
func (r *users) GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*User, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))

	record := &User{}
	err := r.db.NewSelect().
		Model(record).
		Where("LOWER(?TableAlias.username) = ?", identifier).
		WhereOr("LOWER(?TableAlias.email) = ?", identifier).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"identifier": identifier,
				})
		}
		return nil, err
	}

	return record, nil
}

func (r *users) Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.Repository.CreateTx(ctx, r.db, record, criteria...)
}

func (r *users) Update(ctx context.Context, record *User, criteria ...repository.UpdateCriteria) (*User, error) {
	criteria = append(criteria, repository.UpdateByID(record.ID.String()))
	return r.Repository.UpdateTx(ctx, r.db, record, criteria...)
}

func (r *users) ListAll(ctx context.Context) ([]*User, error) {
	records := []*User{}
	err := r.db.NewSelect().
		Model(&records).
		Order("created_at ASC").
		Scan(ctx)
	return records, err
}

func (r *users) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *users) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.db.NewSelect().
		Model((*User)(nil)).
		Where("username = ?", username).
		Exists(ctx)
}

func (r *users) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.db.NewSelect().
		Model((*User)(nil)).
		Where("email = ?", email).
		Exists(ctx)
}

// IncrementLoginAttempts bumps the failed attempt counter and stamps the
// attempt time.
func (r *users) IncrementLoginAttempts(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	_, err := r.db.NewUpdate().
		Model((*User)(nil)).
		Set("login_attempts = login_attempts + 1").
		Set("login_attempt_at = ?", now).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// ResetLoginAttempts clears the counter after a successful login
func (r *users) ResetLoginAttempts(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewUpdate().
		Model((*User)(nil)).
		Set("login_attempts = 0").
		Set("login_attempt_at = NULL").
		Where("id = ?", id).
		Exec(ctx)
	return err
}
