package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	recoverer "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/goliatone/portfolio-api/auth"
	"github.com/goliatone/portfolio-api/config"
	"github.com/goliatone/portfolio-api/store"
)

// Server owns the HTTP surface: the fiber app, the auth pipeline, and the
// route table.
type Server struct {
	app    *fiber.App
	addr   string
	logger auth.Logger
}

// New assembles the app. The middleware order is load bearing: recover, CORS,
// then authentication, then policy enforcement, then routes. Enforcement is
// app level so unknown paths fail closed instead of falling through to a 404.
func New(cfg *config.Config, auther auth.Authenticator, mdw *auth.Middleware, repos store.RepositoryManager, logger auth.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "portfolio-api",
		ErrorHandler: ErrorHandler(logger),
	})

	app.Use(recoverer.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	app.Use(mdw.Authenticate())
	app.Use(mdw.Enforce(auth.DefaultPolicy()))

	authCtrl := NewAuthController(auther, repos.Users(), logger)
	blogCtrl := NewBlogController(repos.Posts(), logger)
	contactCtrl := NewContactController(repos.Messages(), logger)
	userCtrl := NewUserController(repos.Users(), auth.Hasher{}, logger)

	app.Post("/auth/login", authCtrl.Login)

	blog := app.Group("/blog/posts")
	blog.Get("/", blogCtrl.List)
	blog.Get("/category/:category", blogCtrl.ListByCategory)
	blog.Get("/:id", blogCtrl.Get)
	blog.Post("/", blogCtrl.Create)
	blog.Put("/:id", blogCtrl.Update)
	blog.Delete("/:id", blogCtrl.Delete)

	app.Post("/contact", contactCtrl.Submit)

	inbox := app.Group("/contact/messages")
	inbox.Get("/", contactCtrl.List)
	inbox.Get("/unread", contactCtrl.ListUnread)
	inbox.Get("/unread/count", contactCtrl.UnreadCount)
	inbox.Put("/:id/read", contactCtrl.MarkRead)

	users := app.Group("/users", mdw.RequireRole(auth.RoleAdmin))
	users.Get("/", userCtrl.List)
	users.Get("/:id", userCtrl.Get)
	users.Post("/", userCtrl.Create)
	users.Put("/:id", userCtrl.Update)
	users.Delete("/:id", userCtrl.Delete)

	return &Server{
		app:    app,
		addr:   cfg.Addr,
		logger: logger,
	}
}

// App exposes the underlying fiber app, mostly for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Start blocks serving requests until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Server listening", "addr", s.addr)
	return s.app.Listen(s.addr)
}

// Shutdown drains in flight requests and stops the listener
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Server shutting down")
	return s.app.ShutdownWithContext(ctx)
}
