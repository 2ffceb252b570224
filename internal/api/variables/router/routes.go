// Package router đăng ký các route thuộc domain variables:
// variable definitions và variable values.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"planbase/internal/api/middleware"
	apirouter "planbase/internal/api/router"
	varhdl "planbase/internal/api/variables/handler"
)

// Register đăng ký tất cả route variables lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	definitionHandler, err := varhdl.NewDefinitionHandler()
	if err != nil {
		return fmt.Errorf("tạo DefinitionHandler: %w", err)
	}
	valueHandler, err := varhdl.NewValueHandler()
	if err != nil {
		return fmt.Errorf("tạo ValueHandler: %w", err)
	}

	orgContextMiddleware := middleware.OrganizationContextMiddleware()
	middlewares := []fiber.Handler{orgContextMiddleware}

	// Variable definitions: CRUD chung (tạo/sửa tự do đi qua register/update-by-id)
	defConfig := apirouter.ReadOnlyConfig
	defConfig.UpdById = true // label/description/isActive sửa được sau khi tạo
	r.RegisterCRUDRoutes(v1, "/variable-definitions", definitionHandler, defConfig)

	// POST /variable-definitions/register — đăng ký definition mới (kiểm tra cấu hình đầy đủ)
	apirouter.RegisterRouteWithMiddleware(v1, "/variable-definitions", "POST", "/register", middlewares, definitionHandler.HandleRegister)

	// GET /variable-definitions/for-scope — definitions của một scope, sắp theo label
	apirouter.RegisterRouteWithMiddleware(v1, "/variable-definitions", "GET", "/for-scope", middlewares, definitionHandler.HandleForScope)

	// POST /variable-definitions/:id/soft-delete | /:id/restore — idempotent
	apirouter.RegisterRouteWithMiddleware(v1, "/variable-definitions", "POST", "/:id/soft-delete", middlewares, definitionHandler.HandleSoftDelete)
	apirouter.RegisterRouteWithMiddleware(v1, "/variable-definitions", "POST", "/:id/restore", middlewares, definitionHandler.HandleRestore)

	// Variable values: đọc qua CRUD chung, ghi qua route nghiệp vụ
	r.RegisterCRUDRoutes(v1, "/variable-values", valueHandler, apirouter.ValueReadConfig)

	// POST /variable-values/set — atomic upsert một tuple, validate theo definition
	apirouter.RegisterRouteWithMiddleware(v1, "/variable-values", "POST", "/set", middlewares, valueHandler.HandleSetValue)

	// DELETE /variable-values/delete — xóa một tuple (idempotent)
	apirouter.RegisterRouteWithMiddleware(v1, "/variable-values", "DELETE", "/delete", middlewares, valueHandler.HandleDeleteValue)

	// GET /variable-values/for-owner — tất cả value của một chủ thể trong scope
	apirouter.RegisterRouteWithMiddleware(v1, "/variable-values", "GET", "/for-owner", middlewares, valueHandler.HandleForOwner)

	return nil
}
