package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/portfolio-api/auth"
	"github.com/goliatone/portfolio-api/store"
	"github.com/google/uuid"
)

// BlogController serves blog posts. Reads are public, writes require an
// authenticated identity; the policy table does the gating before dispatch.
type BlogController struct {
	posts  store.Posts
	logger auth.Logger
}

func NewBlogController(posts store.Posts, logger auth.Logger) *BlogController {
	return &BlogController{
		posts:  posts,
		logger: logger,
	}
}

// List returns all published posts, newest first
func (b *BlogController) List(c *fiber.Ctx) error {
	records, err := b.posts.ListPublished(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(toPostDTOs(records))
}

// ListByCategory returns published posts in a single category
func (b *BlogController) ListByCategory(c *fiber.Ctx) error {
	category := c.Params("category")
	records, err := b.posts.ListPublishedByCategory(c.UserContext(), category)
	if err != nil {
		return err
	}
	return c.JSON(toPostDTOs(records))
}

// Get returns a single post by id, drafts included
func (b *BlogController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errBadID
	}

	record, err := b.posts.GetWithAuthor(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(toPostDTO(record))
}

// Create stores a new post authored by the authenticated identity
func (b *BlogController) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c.UserContext())
	if !ok {
		return auth.ErrAuthenticationRequired
	}

	authorID, err := uuid.Parse(identity.ID())
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "identity subject is not a valid id")
	}

	req := CreatePostRequest{}
	if err := c.BodyParser(&req); err != nil {
		return errBadBody
	}

	if err := req.Validate(); err != nil {
		return err
	}

	record := &store.BlogPost{
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Category:  req.Category,
		Tags:      req.Tags,
		ReadTime:  req.ReadTime,
		Published: req.Published,
		AuthorID:  authorID,
	}

	record, err = b.posts.Create(c.UserContext(), record)
	if err != nil {
		return err
	}

	b.logger.Info("Post created", "id", record.ID, "author", identity.Username())

	return c.Status(fiber.StatusCreated).JSON(toPostDTO(record))
}

// Update applies a partial update to an existing post
func (b *BlogController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errBadID
	}

	req := UpdatePostRequest{}
	if err := c.BodyParser(&req); err != nil {
		return errBadBody
	}

	if err := req.Validate(); err != nil {
		return err
	}

	record, err := b.posts.GetWithAuthor(c.UserContext(), id)
	if err != nil {
		return err
	}

	if req.Title != nil {
		record.Title = *req.Title
	}
	if req.Excerpt != nil {
		record.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		record.Content = *req.Content
	}
	if req.Category != nil {
		record.Category = *req.Category
	}
	if req.Tags != nil {
		record.Tags = *req.Tags
	}
	if req.ReadTime != nil {
		record.ReadTime = *req.ReadTime
	}
	if req.Published != nil {
		record.Published = *req.Published
	}

	record, err = b.posts.Update(c.UserContext(), record)
	if err != nil {
		return err
	}

	return c.JSON(toPostDTO(record))
}

// Delete removes a post. Deleting an unknown id is a 404, not a no-op.
func (b *BlogController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errBadID
	}

	if _, err := b.posts.GetWithAuthor(c.UserContext(), id); err != nil {
		return err
	}

	if err := b.posts.DeleteByID(c.UserContext(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
