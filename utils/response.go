package utils

import "github.com/gofiber/fiber/v2"

// JSONResponse is the envelope of the JSON endpoints. The rest of the
// surface is server-rendered HTML.
type JSONResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func JSONSuccess(c *fiber.Ctx, statusCode int, message string, data any) error {
	if statusCode == 0 {
		statusCode = fiber.StatusOK
	}
	return c.Status(statusCode).JSON(JSONResponse{Status: "success", Message: message, Data: data})
}

// JSONError reports a failure. detail must be safe to show to clients.
func JSONError(c *fiber.Ctx, statusCode int, message string, detail any) error {
	if statusCode == 0 {
		statusCode = fiber.StatusInternalServerError
	}
	return c.Status(statusCode).JSON(JSONResponse{Status: "error", Message: message, Data: detail})
}
