package handlers

import (
	"bytes"
	"html/template"

	"DocRegistry/dto/users"
	"DocRegistry/middleware"
	"DocRegistry/models"
	"DocRegistry/services"
	"DocRegistry/templates"
	"DocRegistry/utils"

	"github.com/gofiber/fiber/v2"
)

// View renders the server-side pages inside the base layout.
type View struct {
	templates map[string]*template.Template
	sessions  *middleware.Sessions
}

// PageData is the data every page template receives.
type PageData struct {
	Title   string
	Active  string
	Who     services.Identity
	Flashes []middleware.Flash

	Kind   models.DocumentKind
	Kinds  []models.DocumentKind
	Groups []services.DocumentGroup
	Admin  bool

	Users  []users.UserRow
	Form   users.AdminUserForm
	Errors map[string]string
	Mode   string
	Action string

	Token string
}

func NewView(sessions *middleware.Sessions) *View {
	layoutFile := "layouts/base.html"

	pages := map[string]string{
		"login":         "pages/login.html",
		"dashboard":     "pages/dashboard.html",
		"document_form": "pages/document_form.html",
		"documents":     "pages/documents.html",
		"admin_users":   "pages/admin_users.html",
		"user_form":     "pages/user_form.html",
		"reset_request": "pages/reset_request.html",
		"reset_confirm": "pages/reset_confirm.html",
	}

	parsed := make(map[string]*template.Template, len(pages))
	for name, pageFile := range pages {
		parsed[name] = template.Must(template.New("base.html").ParseFS(templates.FS, layoutFile, pageFile))
	}

	return &View{templates: parsed, sessions: sessions}
}

// render fills the caller and pending flashes, then writes the page.
func (v *View) render(c *fiber.Ctx, name string, data PageData) error {
	t, ok := v.templates[name]
	if !ok {
		return fiber.NewError(fiber.StatusInternalServerError, "template not found: "+name)
	}

	data.Who = v.sessions.Identity(c)
	data.Flashes = v.sessions.PopFlashes(c)

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		utils.LoggerFromContext(c.UserContext()).Error("template error", "template", name, "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "template error")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
