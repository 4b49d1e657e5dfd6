package routes

import (
	"errors"
	"log/slog"

	"DocRegistry/handlers"
	"DocRegistry/middleware"
	"DocRegistry/services"
	"DocRegistry/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deps is everything the HTTP layer needs, built by cmd/api.
type Deps struct {
	DB        *gorm.DB
	Sessions  *session.Store
	SecretKey string
	Logger    *slog.Logger

	Auth      *services.AuthService
	Resets    *services.PasswordResetService
	Documents *services.DocumentService
	Users     *services.UserService
}

// NewApp wires middleware and every route onto a new Fiber app.
func NewApp(deps Deps) *fiber.App {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		AppName:               "DocRegistry",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.RequestLogger(logger))
	app.Use(middleware.SecurityHeaders())
	app.Use(encryptcookie.New(encryptcookie.Config{Key: middleware.CookieKey(deps.SecretKey)}))

	sessions := middleware.NewSessions(deps.Sessions)
	view := handlers.NewView(sessions)

	Register(app, deps, sessions, view)
	return app
}

// Register mounts the routes.
func Register(app *fiber.App, deps Deps, sessions *middleware.Sessions, view *handlers.View) {
	authH := handlers.NewAuthHandler(deps.Auth, deps.Resets, sessions, view)
	docH := handlers.NewDocumentHandler(deps.Documents, sessions, view)
	userH := handlers.NewAdminUserHandler(deps.Users, sessions, view)
	healthH := handlers.NewHealthHandler(deps.DB)

	login := sessions.RequireLogin()
	admin := sessions.RequireAdmin()

	app.Get("/healthz", healthH.Healthz)

	// Auth
	app.Get("/", authH.ShowLogin)
	app.Get("/login", authH.ShowLogin)
	app.Post("/login", authH.Login)
	app.Get("/logout", authH.Logout)

	// Password reset
	app.Get("/password-reset", authH.ShowResetRequest)
	app.Post("/password-reset/send", authH.SendReset)
	app.Get("/password-reset/confirm/:token", authH.ShowResetConfirm)
	app.Post("/password-reset/confirm/:token", authH.ConfirmReset)

	// Documents
	app.Get("/dashboard", login, docH.Dashboard)
	app.Get("/create/:type", login, docH.ShowCreate)
	app.Post("/create/:type", login, docH.Create)
	app.Get("/my-documents", login, docH.MyDocuments)
	app.Get("/export/:type", login, docH.Export)

	// ----- ADMIN -----
	app.Get("/admin", admin, userH.List)
	app.Get("/admin/documents", admin, docH.AdminDocuments)
	app.Get("/delete/:type/:id<int>", admin, docH.Delete)
	app.Get("/admin/users/create", admin, userH.ShowCreate)
	app.Post("/admin/users/create", admin, userH.Create)
	app.Get("/admin/users/edit/:id<int>", admin, userH.ShowEdit)
	app.Post("/admin/users/edit/:id<int>", admin, userH.Update)
	app.Get("/admin/users/delete/:id<int>", admin, userH.Delete)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	if code >= fiber.StatusInternalServerError {
		utils.LoggerFromContext(c.UserContext()).Error("request failed", "path", c.Path(), "error", err)
		return c.Status(code).SendString("Internal server error")
	}
	return c.Status(code).SendString(err.Error())
}
