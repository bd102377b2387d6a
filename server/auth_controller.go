package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/portfolio-api/auth"
	"github.com/goliatone/portfolio-api/store"
)

// AuthController exposes the login endpoint
type AuthController struct {
	auther auth.Authenticator
	users  store.Users
	logger auth.Logger
}

func NewAuthController(auther auth.Authenticator, users store.Users, logger auth.Logger) *AuthController {
	return &AuthController{
		auther: auther,
		users:  users,
		logger: logger,
	}
}

// Login exchanges credentials for a signed token. Every failure mode comes
// back as the same invalid credentials response.
func (a *AuthController) Login(c *fiber.Ctx) error {
	req := LoginRequest{}
	if err := c.BodyParser(&req); err != nil {
		return errBadBody
	}

	if err := req.Validate(); err != nil {
		return err
	}

	token, identity, err := a.auther.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	res := LoginResponse{
		Token: token,
		Type:  "Bearer",
		User: UserDTO{
			ID:       identity.ID(),
			Username: identity.Username(),
			Email:    identity.Email(),
			Role:     identity.Role(),
		},
	}

	// the identity is enough to answer, the record lookup only fills in
	// timestamps for the client
	if user, err := a.users.GetByIdentifier(c.UserContext(), req.Username); err == nil {
		res.User = toUserDTO(user)
	}

	a.logger.Info("Login succeeded", "username", identity.Username())

	return c.JSON(res)
}
