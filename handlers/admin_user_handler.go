package handlers

import (
	"errors"
	"fmt"

	userdto "DocRegistry/dto/users"
	"DocRegistry/middleware"
	"DocRegistry/models"
	"DocRegistry/services"

	"github.com/gofiber/fiber/v2"
)

type AdminUserHandler struct {
	users    *services.UserService
	sessions *middleware.Sessions
	view     *View
}

func NewAdminUserHandler(users *services.UserService, sessions *middleware.Sessions, view *View) *AdminUserHandler {
	return &AdminUserHandler{users: users, sessions: sessions, view: view}
}

// List - GET /admin
func (h *AdminUserHandler) List(c *fiber.Ctx) error {
	list, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return h.view.render(c, "admin_users", PageData{
		Title:  "Users",
		Active: "admin_users",
		Users:  userdto.NewUserRows(list),
	})
}

// ShowCreate - GET /admin/users/create
func (h *AdminUserHandler) ShowCreate(c *fiber.Ctx) error {
	return h.renderForm(c, "Create", "/admin/users/create", userdto.AdminUserForm{Role: models.RoleUser}, nil)
}

// Create - POST /admin/users/create
func (h *AdminUserHandler) Create(c *fiber.Ctx) error {
	var form userdto.AdminUserForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	form.Normalize()

	action := "/admin/users/create"
	if errs := form.Validate(true); len(errs) > 0 {
		return h.renderForm(c, "Create", action, form, errs)
	}

	if _, err := h.users.Create(c.UserContext(), form.ToModel()); err != nil {
		if errs, ok := formErrors(err); ok {
			return h.renderForm(c, "Create", action, form, errs)
		}
		return err
	}

	h.sessions.Flash(c, middleware.FlashSuccess, "User created")
	return c.Redirect("/admin")
}

// ShowEdit - GET /admin/users/edit/:id
func (h *AdminUserHandler) ShowEdit(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return fiber.ErrNotFound
	}

	user, err := h.users.Get(c.UserContext(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			h.sessions.Flash(c, middleware.FlashWarning, "User not found.")
			return c.Redirect("/admin")
		}
		return err
	}

	return h.renderForm(c, "Edit", editAction(user.ID), userdto.FromModel(*user), nil)
}

// Update - POST /admin/users/edit/:id
func (h *AdminUserHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return fiber.ErrNotFound
	}

	var form userdto.AdminUserForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.ErrBadRequest
	}
	form.Normalize()

	action := editAction(uint(id))
	if errs := form.Validate(false); len(errs) > 0 {
		return h.renderForm(c, "Edit", action, form, errs)
	}

	if _, err := h.users.Update(c.UserContext(), uint(id), form.ToModel()); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			h.sessions.Flash(c, middleware.FlashWarning, "User not found.")
			return c.Redirect("/admin")
		}
		if errs, ok := formErrors(err); ok {
			return h.renderForm(c, "Edit", action, form, errs)
		}
		return err
	}

	h.sessions.Flash(c, middleware.FlashInfo, "User updated")
	return c.Redirect("/admin")
}

// Delete - GET /admin/users/delete/:id
func (h *AdminUserHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return fiber.ErrNotFound
	}

	if err := h.users.Delete(c.UserContext(), uint(id)); err != nil {
		return err
	}

	h.sessions.Flash(c, middleware.FlashDanger, "User deleted")
	return c.Redirect("/admin")
}

func (h *AdminUserHandler) renderForm(c *fiber.Ctx, mode, action string, form userdto.AdminUserForm, errs map[string]string) error {
	form.Password = ""
	if errs == nil {
		errs = make(map[string]string)
	}
	return h.view.render(c, "user_form", PageData{
		Title:  mode + " user",
		Active: "admin_users",
		Mode:   mode,
		Action: action,
		Form:   form,
		Errors: errs,
	})
}

func editAction(id uint) string {
	return fmt.Sprintf("/admin/users/edit/%d", id)
}

// formErrors maps service validation failures onto form fields.
func formErrors(err error) (map[string]string, bool) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Fields, true
	case errors.Is(err, services.ErrDuplicateEmail):
		return map[string]string{"email": "email already in use"}, true
	}
	return nil, false
}
