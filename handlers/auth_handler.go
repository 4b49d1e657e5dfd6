package handlers

import (
	"errors"

	"DocRegistry/dto"
	"DocRegistry/middleware"
	"DocRegistry/services"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth     *services.AuthService
	resets   *services.PasswordResetService
	sessions *middleware.Sessions
	view     *View
}

func NewAuthHandler(auth *services.AuthService, resets *services.PasswordResetService, sessions *middleware.Sessions, view *View) *AuthHandler {
	return &AuthHandler{auth: auth, resets: resets, sessions: sessions, view: view}
}

// ShowLogin - GET / and GET /login
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	if h.sessions.Identity(c).LoggedIn() {
		return c.Redirect("/dashboard")
	}
	return h.view.render(c, "login", PageData{Title: "Log in", Active: "login"})
}

// Login - POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	req.Normalize()

	who, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.sessions.Flash(c, middleware.FlashDanger, "Incorrect email or password")
			return c.Redirect("/")
		}
		return err
	}

	if err := h.sessions.Login(c, who); err != nil {
		return err
	}
	return c.Redirect("/dashboard")
}

// Logout - GET /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(c); err != nil {
		return err
	}
	return c.Redirect("/")
}

// ShowResetRequest - GET /password-reset
func (h *AuthHandler) ShowResetRequest(c *fiber.Ctx) error {
	return h.view.render(c, "reset_request", PageData{Title: "Password recovery"})
}

// SendReset - POST /password-reset/send
func (h *AuthHandler) SendReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	req.Normalize()

	ticket, err := h.resets.Request(c.UserContext(), req.Email)
	switch {
	case errors.Is(err, services.ErrEmailRequired):
		h.sessions.Flash(c, middleware.FlashWarning, "Enter your email.")
		return c.Redirect("/password-reset")
	case errors.Is(err, services.ErrEmailNotRegistered):
		h.sessions.Flash(c, middleware.FlashWarning, "Email not registered.")
		return c.Redirect("/password-reset")
	case err != nil:
		return err
	}

	if ticket.DeliveryErr != nil {
		h.sessions.Flash(c, middleware.FlashDanger, "Error sending the email.")
	} else {
		h.sessions.Flash(c, middleware.FlashSuccess, "A recovery link has been sent to your email.")
	}
	return c.Redirect("/")
}

// ShowResetConfirm - GET /password-reset/confirm/:token
func (h *AuthHandler) ShowResetConfirm(c *fiber.Ctx) error {
	return h.view.render(c, "reset_confirm", PageData{
		Title: "New password",
		Token: c.Params("token"),
	})
}

// ConfirmReset - POST /password-reset/confirm/:token
func (h *AuthHandler) ConfirmReset(c *fiber.Ctx) error {
	var req dto.PasswordResetSubmission
	if err := c.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	req.Normalize()

	if !req.Complete() {
		h.sessions.Flash(c, middleware.FlashWarning, "Complete the required fields.")
		return c.Redirect(c.OriginalURL())
	}

	err := h.resets.Redeem(c.UserContext(), c.Params("token"), req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrMissingResetFields):
		h.sessions.Flash(c, middleware.FlashWarning, "Complete the required fields.")
		return c.Redirect(c.OriginalURL())
	case errors.Is(err, services.ErrResetTokenInvalid):
		h.sessions.Flash(c, middleware.FlashDanger, "Invalid or expired link.")
		return c.Redirect("/")
	case err != nil:
		return err
	}

	h.sessions.Flash(c, middleware.FlashSuccess, "Password updated successfully.")
	return c.Redirect("/")
}
