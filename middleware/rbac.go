package middleware

import (
	"errors"

	"DocRegistry/services"

	"github.com/gofiber/fiber/v2"
)

const (
	msgLoginFirst   = "Log in first."
	msgAccessDenied = "Access denied"
)

// RequireLogin sends anonymous callers back to the login page with a warning.
func (s *Sessions) RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		who := s.Identity(c)
		if !who.LoggedIn() {
			return s.Deny(c, services.ErrNotAuthenticated)
		}
		c.Locals(identityLocalsKey, who)
		return c.Next()
	}
}

// RequireAdmin admits only logged-in admins.
func (s *Sessions) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		who := s.Identity(c)
		if err := who.RequireAdmin(); err != nil {
			return s.Deny(c, err)
		}
		c.Locals(identityLocalsKey, who)
		return c.Next()
	}
}

// Deny flashes the message for a gate failure and redirects to the login page.
func (s *Sessions) Deny(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrForbidden) {
		s.Flash(c, FlashDanger, msgAccessDenied)
	} else {
		s.Flash(c, FlashWarning, msgLoginFirst)
	}
	return c.Redirect("/")
}
