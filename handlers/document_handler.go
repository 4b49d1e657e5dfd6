package handlers

import (
	"errors"
	"fmt"

	"DocRegistry/dto/documents"
	"DocRegistry/middleware"
	"DocRegistry/models"
	"DocRegistry/services"

	"github.com/gofiber/fiber/v2"
)

const msgInvalidKind = "Invalid document type."

type DocumentHandler struct {
	docs     *services.DocumentService
	sessions *middleware.Sessions
	view     *View
}

func NewDocumentHandler(docs *services.DocumentService, sessions *middleware.Sessions, view *View) *DocumentHandler {
	return &DocumentHandler{docs: docs, sessions: sessions, view: view}
}

// Dashboard - GET /dashboard
func (h *DocumentHandler) Dashboard(c *fiber.Ctx) error {
	return h.view.render(c, "dashboard", PageData{
		Title:  "Dashboard",
		Active: "dashboard",
		Kinds:  models.DocumentKinds,
	})
}

// ShowCreate - GET /create/:type
func (h *DocumentHandler) ShowCreate(c *fiber.Ctx) error {
	kind, done, err := h.creatableKind(c)
	if done {
		return err
	}
	return h.view.render(c, "document_form", PageData{
		Title:  "New " + kind.Title(),
		Active: "dashboard",
		Kind:   kind,
	})
}

// Create - POST /create/:type
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	kind, done, err := h.creatableKind(c)
	if done {
		return err
	}

	var req documents.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	req.Normalize()
	if errs := req.Validate(); len(errs) > 0 {
		h.sessions.Flash(c, middleware.FlashWarning, errs["subject"])
		return c.Redirect(c.OriginalURL())
	}

	who := h.sessions.Identity(c)
	receipt, err := h.docs.Create(c.UserContext(), who, kind, req.Subject, req.Notes)
	switch {
	case errors.Is(err, services.ErrSubjectRequired):
		h.sessions.Flash(c, middleware.FlashWarning, "The subject is required.")
		return c.Redirect(c.OriginalURL())
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).SendString("Unauthorized access")
	case errors.Is(err, services.ErrNotAuthenticated):
		return h.sessions.Deny(c, err)
	case err != nil:
		return err
	}

	h.sessions.FlashReceipt(c, kind.Title()+" created successfully", *receipt)
	return c.Redirect("/dashboard")
}

// creatableKind runs the create preconditions in order: role, then kind.
// done reports that a response has already been chosen.
func (h *DocumentHandler) creatableKind(c *fiber.Ctx) (models.DocumentKind, bool, error) {
	if !h.sessions.Identity(c).CanCreateDocuments() {
		return "", true, c.Status(fiber.StatusForbidden).SendString("Unauthorized access")
	}

	kind, err := models.ParseDocumentKind(c.Params("type"))
	if err != nil {
		h.sessions.Flash(c, middleware.FlashDanger, msgInvalidKind)
		return "", true, c.Redirect("/dashboard")
	}
	return kind, false, nil
}

// MyDocuments - GET /my-documents
func (h *DocumentHandler) MyDocuments(c *fiber.Ctx) error {
	groups, err := h.docs.ListMine(c.UserContext(), h.sessions.Identity(c))
	if err != nil {
		if isGateError(err) {
			return h.sessions.Deny(c, err)
		}
		return err
	}
	return h.view.render(c, "documents", PageData{
		Title:  "My documents",
		Active: "my_documents",
		Groups: groups,
	})
}

// AdminDocuments - GET /admin/documents
func (h *DocumentHandler) AdminDocuments(c *fiber.Ctx) error {
	groups, err := h.docs.ListAdmin(c.UserContext(), h.sessions.Identity(c))
	if err != nil {
		if isGateError(err) {
			return h.sessions.Deny(c, err)
		}
		return err
	}
	return h.view.render(c, "documents", PageData{
		Title:  "All documents",
		Active: "admin_documents",
		Groups: groups,
		Admin:  true,
	})
}

// Delete - GET /delete/:type/:id
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	kind, err := models.ParseDocumentKind(c.Params("type"))
	if err != nil {
		h.sessions.Flash(c, middleware.FlashDanger, msgInvalidKind)
		return c.Redirect("/admin/documents")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return fiber.ErrNotFound
	}

	if err := h.docs.Delete(c.UserContext(), h.sessions.Identity(c), kind, uint(id)); err != nil {
		if isGateError(err) {
			return h.sessions.Deny(c, err)
		}
		return err
	}

	h.sessions.Flash(c, middleware.FlashDanger, fmt.Sprintf("%s ID %d deleted.", kind.Title(), id))
	return c.Redirect("/admin/documents")
}

// Export - GET /export/:type
func (h *DocumentHandler) Export(c *fiber.Ctx) error {
	kind, err := models.ParseDocumentKind(c.Params("type"))
	if err != nil {
		h.sessions.Flash(c, middleware.FlashDanger, msgInvalidKind)
		return c.Redirect("/dashboard")
	}

	file, err := h.docs.Export(c.UserContext(), h.sessions.Identity(c), kind)
	if err != nil {
		if isGateError(err) {
			return h.sessions.Deny(c, err)
		}
		return err
	}

	c.Attachment(file.Filename)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}

func isGateError(err error) bool {
	return errors.Is(err, services.ErrNotAuthenticated) || errors.Is(err, services.ErrForbidden)
}
