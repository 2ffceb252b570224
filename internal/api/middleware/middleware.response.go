package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"planbase/internal/common"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
// Copy từ handler package để tránh import cycle
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleErrorResponse xử lý và chuẩn hóa error response cho middleware.
// Format giống handler.HandleResponse nhưng nằm trong package middleware để tránh import cycle.
func HandleErrorResponse(c fiber.Ctx, err error) error {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		return JSONResponse(c, customErr.StatusCode, fiber.Map{
			"code":    customErr.Code.Code,
			"message": customErr.Message,
			"details": customErr.Details,
			"status":  "error",
		})
	}

	return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"code":    common.ErrCodeInternalServer.Code,
		"message": err.Error(),
		"status":  "error",
	})
}
