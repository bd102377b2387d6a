package server

import (
	repository "github.com/goliatone/go-repository-bun"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/portfolio-api/auth"
	"github.com/goliatone/portfolio-api/store"
	"github.com/google/uuid"
)

// ContactController takes public contact form submissions and exposes the
// authenticated inbox around them.
type ContactController struct {
	messages store.Messages
	logger   auth.Logger
}

func NewContactController(messages store.Messages, logger auth.Logger) *ContactController {
	return &ContactController{
		messages: messages,
		logger:   logger,
	}
}

// Submit stores a contact form message. This is the only public write in the
// API.
func (m *ContactController) Submit(c *fiber.Ctx) error {
	req := ContactRequest{}
	if err := c.BodyParser(&req); err != nil {
		return errBadBody
	}

	if err := req.Validate(); err != nil {
		return err
	}

	record := &store.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	record, err := m.messages.Create(c.UserContext(), record)
	if err != nil {
		return err
	}

	m.logger.Info("Contact message received", "id", record.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "your message has been received",
		"status":  "success",
	})
}

// List returns every message, newest first
func (m *ContactController) List(c *fiber.Ctx) error {
	records, err := m.messages.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(records)
}

// ListUnread returns messages not yet marked as read
func (m *ContactController) ListUnread(c *fiber.Ctx) error {
	records, err := m.messages.ListUnread(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(records)
}

// UnreadCount returns the number of unread messages
func (m *ContactController) UnreadCount(c *fiber.Ctx) error {
	count, err := m.messages.CountUnread(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"count": count})
}

// MarkRead flags a message as handled and returns the updated record
func (m *ContactController) MarkRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errBadID
	}

	record, err := m.messages.GetByID(c.UserContext(), id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return repository.NewRecordNotFound().
				WithMetadata(map[string]any{"id": id.String()})
		}
		return err
	}

	record, err = m.messages.Update(c.UserContext(), record.MarkAsRead())
	if err != nil {
		return err
	}

	return c.JSON(record)
}
