package store

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Posts exposes the blog post repository. Listings only ever return
// published posts; detail lookups return drafts too so authors can preview.
type Posts interface {
	repository.Repository[*BlogPost]

	ListPublished(ctx context.Context) ([]*BlogPost, error)
	ListPublishedByCategory(ctx context.Context, category string) ([]*BlogPost, error)
	GetWithAuthor(ctx context.Context, id uuid.UUID) (*BlogPost, error)
	Create(ctx context.Context, record *BlogPost, criteria ...repository.InsertCriteria) (*BlogPost, error)
	Update(ctx context.Context, record *BlogPost, criteria ...repository.UpdateCriteria) (*BlogPost, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type posts struct {
	repository.Repository[*BlogPost]
	db *bun.DB
}

var _ Posts = (*posts)(nil)

func NewPostsRepository(db *bun.DB) Posts {
	repo := repository.NewRepository[*BlogPost](db, repository.ModelHandlers[*BlogPost]{
		NewRecord: func() *BlogPost { return &BlogPost{} },
		GetID: func(p *BlogPost) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *BlogPost, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
	})

	return &posts{
		Repository: repo,
		db:         db,
	}
}

func (r *posts) ListPublished(ctx context.Context) ([]*BlogPost, error) {
	records := []*BlogPost{}
	err := r.db.NewSelect().
		Model(&records).
		Relation("Author").
		Where("?TableAlias.published = ?", true).
		OrderExpr("?TableAlias.created_at DESC").
		Scan(ctx)
	return records, err
}

func (r *posts) ListPublishedByCategory(ctx context.Context, category string) ([]*BlogPost, error) {
	records := []*BlogPost{}
	err := r.db.NewSelect().
		Model(&records).
		Relation("Author").
		Where("?TableAlias.published = ?", true).
		Where("?TableAlias.category = ?", category).
		OrderExpr("?TableAlias.created_at DESC").
		Scan(ctx)
	return records, err
}

func (r *posts) GetWithAuthor(ctx context.Context, id uuid.UUID) (*BlogPost, error) {
	record := &BlogPost{}
	err := r.db.NewSelect().
		Model(record).
		Relation("Author").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"id": id.String(),
				})
		}
		return nil, err
	}

	return record, nil
}

func (r *posts) Create(ctx context.Context, record *BlogPost, criteria ...repository.InsertCriteria) (*BlogPost, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.Repository.CreateTx(ctx, r.db, record, criteria...)
}

func (r *posts) Update(ctx context.Context, record *BlogPost, criteria ...repository.UpdateCriteria) (*BlogPost, error) {
	criteria = append(criteria, repository.UpdateByID(record.ID.String()))
	return r.Repository.UpdateTx(ctx, r.db, record, criteria...)
}

func (r *posts) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*BlogPost)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
