package store

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Messages exposes the contact message repository
type Messages interface {
	repository.Repository[*ContactMessage]

	ListAll(ctx context.Context) ([]*ContactMessage, error)
	ListUnread(ctx context.Context) ([]*ContactMessage, error)
	CountUnread(ctx context.Context) (int, error)
	Create(ctx context.Context, record *ContactMessage, criteria ...repository.InsertCriteria) (*ContactMessage, error)
	Update(ctx context.Context, record *ContactMessage, criteria ...repository.UpdateCriteria) (*ContactMessage, error)
}

type messages struct {
	repository.Repository[*ContactMessage]
	db *bun.DB
}

var _ Messages = (*messages)(nil)

func NewMessagesRepository(db *bun.DB) Messages {
	repo := repository.NewRepository[*ContactMessage](db, repository.ModelHandlers[*ContactMessage]{
		NewRecord: func() *ContactMessage { return &ContactMessage{} },
		GetID: func(m *ContactMessage) uuid.UUID {
			if m == nil {
				return uuid.Nil
			}
			return m.ID
		},
		SetID: func(m *ContactMessage, id uuid.UUID) {
			if m != nil {
				m.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &messages{
		Repository: repo,
		db:         db,
	}
}

func (r *messages) ListAll(ctx context.Context) ([]*ContactMessage, error) {
	records := []*ContactMessage{}
	err := r.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Scan(ctx)
	return records, err
}

func (r *messages) ListUnread(ctx context.Context) ([]*ContactMessage, error) {
	records := []*ContactMessage{}
	err := r.db.NewSelect().
		Model(&records).
		Where("is_read = ?", false).
		Order("created_at DESC").
		Scan(ctx)
	return records, err
}

func (r *messages) CountUnread(ctx context.Context) (int, error) {
	return r.db.NewSelect().
		Model((*ContactMessage)(nil)).
		Where("is_read = ?", false).
		Count(ctx)
}

func (r *messages) Create(ctx context.Context, record *ContactMessage, criteria ...repository.InsertCriteria) (*ContactMessage, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.Repository.CreateTx(ctx, r.db, record, criteria...)
}

func (r *messages) Update(ctx context.Context, record *ContactMessage, criteria ...repository.UpdateCriteria) (*ContactMessage, error) {
	criteria = append(criteria, repository.UpdateByID(record.ID.String()))
	return r.Repository.UpdateTx(ctx, r.db, record, criteria...)
}
