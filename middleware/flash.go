package middleware

import (
	"DocRegistry/models"
	"DocRegistry/utils"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
)

const flashSessionKey = "_flashes"

const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
	FlashToast   = "toast"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Flash is a one-shot message shown on the next rendered page. Toast flashes
// carry the receipt of a freshly created document.
type Flash struct {
	Category string                  `json:"category"`
	Message  string                  `json:"message"`
	Receipt  *models.DocumentReceipt `json:"receipt,omitempty"`
}

// Flash queues a message. Failures are logged; a lost flash never fails
// the request.
func (s *Sessions) Flash(c *fiber.Ctx, category, message string) {
	s.push(c, Flash{Category: category, Message: message})
}

func (s *Sessions) FlashReceipt(c *fiber.Ctx, message string, receipt models.DocumentReceipt) {
	s.push(c, Flash{Category: FlashToast, Message: message, Receipt: &receipt})
}

// PopFlashes returns and clears the queued messages.
func (s *Sessions) PopFlashes(c *fiber.Ctx) []Flash {
	sess, err := s.store.Get(c)
	if err != nil {
		return nil
	}
	raw, _ := sess.Get(flashSessionKey).(string)
	if raw == "" {
		return nil
	}

	var flashes []Flash
	if err := json.UnmarshalFromString(raw, &flashes); err != nil {
		utils.LoggerFromContext(c.UserContext()).Warn("discarding unreadable flashes", "error", err)
	}
	sess.Delete(flashSessionKey)
	if err := sess.Save(); err != nil {
		utils.LoggerFromContext(c.UserContext()).Error("save session", "error", err)
	}
	return flashes
}

func (s *Sessions) push(c *fiber.Ctx, f Flash) {
	logger := utils.LoggerFromContext(c.UserContext())

	sess, err := s.store.Get(c)
	if err != nil {
		logger.Error("load session for flash", "error", err)
		return
	}

	var flashes []Flash
	if raw, _ := sess.Get(flashSessionKey).(string); raw != "" {
		if err := json.UnmarshalFromString(raw, &flashes); err != nil {
			logger.Warn("discarding unreadable flashes", "error", err)
			flashes = nil
		}
	}
	flashes = append(flashes, f)

	encoded, err := json.MarshalToString(flashes)
	if err != nil {
		logger.Error("encode flashes", "error", err)
		return
	}
	sess.Set(flashSessionKey, encoded)
	if err := sess.Save(); err != nil {
		logger.Error("save session", "error", err)
	}
}
