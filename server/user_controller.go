package server

import (
	repository "github.com/goliatone/go-repository-bun"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/portfolio-api/auth"
	"github.com/goliatone/portfolio-api/store"
	"github.com/google/uuid"
)

// ErrUsernameTaken is returned when provisioning collides on the username
var ErrUsernameTaken = errors.New("username already in use", errors.CategoryConflict).
	WithCode(errors.CodeConflict)

// ErrEmailTaken is returned when provisioning collides on the email
var ErrEmailTaken = errors.New("email already in use", errors.CategoryConflict).
	WithCode(errors.CodeConflict)

// UserController manages accounts. The whole surface sits behind the admin
// role gate.
type UserController struct {
	users  store.Users
	hasher auth.PasswordAuthenticator
	logger auth.Logger
}

func NewUserController(users store.Users, hasher auth.PasswordAuthenticator, logger auth.Logger) *UserController {
	return &UserController{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// List returns every account, oldest first
func (u *UserController) List(c *fiber.Ctx) error {
	records, err := u.users.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(toUserDTOs(records))
}

// Get returns a single account by id
func (u *UserController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errBadID
	}

	record, err := u.getByID(c, id)
	if err != nil {
		return err
	}

	return c.JSON(toUserDTO(record))
}

// Create provisions an account. The plaintext password is hashed here and
// discarded; only the hash reaches the store.
func (u *UserController) Create(c *fiber.Ctx) error {
	req := CreateUserRequest{}
	if err := c.BodyParser(&req); err != nil {
		return errBadBody
	}

	if err := req.Validate(); err != nil {
		return err
	}

	if taken, err := u.users.ExistsByUsername(c.UserContext(), req.Username); err != nil {
		return err
	} else if taken {
		return ErrUsernameTaken
	}

	if taken, err := u.users.ExistsByEmail(c.UserContext(), req.Email); err != nil {
		return err
	} else if taken {
		return ErrEmailTaken
	}

	hash, err := u.hasher.HashPassword(req.Password)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "unable to hash password")
	}

	role := req.Role
	if role == "" {
		role = auth.RoleUser
	}

	record := &store.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}

	record, err = u.users.Create(c.UserContext(), record)
	if err != nil {
		return err
	}

	u.logger.Info("User created", "id", record.ID, "username", record.Username)

	return c.Status(fiber.StatusCreated).JSON(toUserDTO(record))
}

// Update applies a partial update. The password hash only changes when a new
// password is supplied.
func (u *UserController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errBadID
	}

	req := UpdateUserRequest{}
	if err := c.BodyParser(&req); err != nil {
		return errBadBody
	}

	if err := req.Validate(); err != nil {
		return err
	}

	record, err := u.getByID(c, id)
	if err != nil {
		return err
	}

	if req.Username != nil && *req.Username != record.Username {
		if taken, err := u.users.ExistsByUsername(c.UserContext(), *req.Username); err != nil {
			return err
		} else if taken {
			return ErrUsernameTaken
		}
		record.Username = *req.Username
	}

	if req.Email != nil && *req.Email != record.Email {
		if taken, err := u.users.ExistsByEmail(c.UserContext(), *req.Email); err != nil {
			return err
		} else if taken {
			return ErrEmailTaken
		}
		record.Email = *req.Email
	}

	if req.Role != nil {
		record.Role = *req.Role
	}

	if req.Password != nil {
		hash, err := u.hasher.HashPassword(*req.Password)
		if err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "unable to hash password")
		}
		record.PasswordHash = hash
	}

	record, err = u.users.Update(c.UserContext(), record)
	if err != nil {
		return err
	}

	return c.JSON(toUserDTO(record))
}

// Delete removes an account. An admin cannot delete itself; losing the last
// admin would lock the API.
func (u *UserController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errBadID
	}

	if identity, ok := auth.IdentityFromContext(c.UserContext()); ok && identity.ID() == id.String() {
		return errors.New("cannot delete the account you are logged in as", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest)
	}

	if _, err := u.getByID(c, id); err != nil {
		return err
	}

	if err := u.users.DeleteByID(c.UserContext(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (u *UserController) getByID(c *fiber.Ctx, id uuid.UUID) (*store.User, error) {
	record, err := u.users.GetByID(c.UserContext(), id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"id": id.String()})
		}
		return nil, err
	}
	return record, nil
}
