// Package router đăng ký các route thuộc domain planning:
// stores, scenarios, submissions và store types.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"planbase/internal/api/middleware"
	planhdl "planbase/internal/api/planning/handler"
	apirouter "planbase/internal/api/router"
)

// Register đăng ký tất cả route planning lên v1. Mỗi loại chủ thể có CRUD
// chung cộng ba route hydrate: GET /:id/variables, PUT /:id/variables và
// GET /find-hydrated (hydrate hàng loạt với 2 truy vấn biến động).
func Register(v1 fiber.Router, r *apirouter.Router) error {
	storeHandler, err := planhdl.NewStoreHandler()
	if err != nil {
		return fmt.Errorf("tạo StoreHandler: %w", err)
	}
	scenarioHandler, err := planhdl.NewScenarioHandler()
	if err != nil {
		return fmt.Errorf("tạo ScenarioHandler: %w", err)
	}
	submissionHandler, err := planhdl.NewSubmissionHandler()
	if err != nil {
		return fmt.Errorf("tạo SubmissionHandler: %w", err)
	}
	storeTypeHandler, err := planhdl.NewStoreTypeHandler()
	if err != nil {
		return fmt.Errorf("tạo StoreTypeHandler: %w", err)
	}

	orgContextMiddleware := middleware.OrganizationContextMiddleware()
	middlewares := []fiber.Handler{orgContextMiddleware}

	r.RegisterCRUDRoutes(v1, "/stores", storeHandler, apirouter.ReadWriteConfig)
	apirouter.RegisterRouteWithMiddleware(v1, "/stores", "GET", "/find-hydrated", middlewares, storeHandler.HandleFindHydrated)
	apirouter.RegisterRouteWithMiddleware(v1, "/stores", "GET", "/:id/variables", middlewares, storeHandler.HandleGetVariables)
	apirouter.RegisterRouteWithMiddleware(v1, "/stores", "PUT", "/:id/variables", middlewares, storeHandler.HandlePutVariables)

	r.RegisterCRUDRoutes(v1, "/scenarios", scenarioHandler, apirouter.ReadWriteConfig)
	apirouter.RegisterRouteWithMiddleware(v1, "/scenarios", "GET", "/find-hydrated", middlewares, scenarioHandler.HandleFindHydrated)
	apirouter.RegisterRouteWithMiddleware(v1, "/scenarios", "GET", "/:id/variables", middlewares, scenarioHandler.HandleGetVariables)
	apirouter.RegisterRouteWithMiddleware(v1, "/scenarios", "PUT", "/:id/variables", middlewares, scenarioHandler.HandlePutVariables)

	r.RegisterCRUDRoutes(v1, "/submissions", submissionHandler, apirouter.ReadWriteConfig)
	apirouter.RegisterRouteWithMiddleware(v1, "/submissions", "GET", "/find-hydrated", middlewares, submissionHandler.HandleFindHydrated)
	apirouter.RegisterRouteWithMiddleware(v1, "/submissions", "GET", "/:id/variables", middlewares, submissionHandler.HandleGetVariables)
	apirouter.RegisterRouteWithMiddleware(v1, "/submissions", "PUT", "/:id/variables", middlewares, submissionHandler.HandlePutVariables)

	r.RegisterCRUDRoutes(v1, "/store-types", storeTypeHandler, apirouter.ReadWriteConfig)
	apirouter.RegisterRouteWithMiddleware(v1, "/store-types", "GET", "/find-hydrated", middlewares, storeTypeHandler.HandleFindHydrated)
	apirouter.RegisterRouteWithMiddleware(v1, "/store-types", "GET", "/:id/variables", middlewares, storeTypeHandler.HandleGetVariables)
	apirouter.RegisterRouteWithMiddleware(v1, "/store-types", "PUT", "/:id/variables", middlewares, storeTypeHandler.HandlePutVariables)

	return nil
}
