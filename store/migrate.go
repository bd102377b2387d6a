package store

import (
	"context"

	"github.com/goliatone/portfolio-api/auth"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Migrate creates the schema from the bun models. SQLite is the only
// dialect, so model DDL is enough; no migration history is kept.
func Migrate(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*User)(nil),
		(*BlogPost)(nil),
		(*ContactMessage)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}

// SeedAdmin inserts the bootstrap admin account when the users table is
// empty. The password arrives pre-hashed; this package never sees
// plaintext credentials.
func SeedAdmin(ctx context.Context, db *bun.DB, username, email, passwordHash string) error {
	exists, err := db.NewSelect().
		Model((*User)(nil)).
		Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	admin := &User{
		ID:           uuid.New(),
		Role:         auth.RoleAdmin,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	_, err = db.NewInsert().Model(admin).Exec(ctx)
	return err
}
