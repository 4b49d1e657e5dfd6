package handlers

import (
	"DocRegistry/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthz - GET /healthz
func (h *HealthHandler) Healthz(c *fiber.Ctx) error {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		utils.LoggerFromContext(c.UserContext()).Error("health check failed", "error", err)
		return utils.JSONError(c, fiber.StatusServiceUnavailable, "database unavailable", fiber.Map{"database": "down"})
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "ok", fiber.Map{"database": "up"})
}
