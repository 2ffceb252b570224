// Package router đăng ký các route thuộc domain tenancy:
// organizations và classrooms.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	apirouter "planbase/internal/api/router"
	tenancyhdl "planbase/internal/api/tenancy/handler"
)

// Register đăng ký tất cả route tenancy lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	organizationHandler, err := tenancyhdl.NewOrganizationHandler()
	if err != nil {
		return fmt.Errorf("tạo OrganizationHandler: %w", err)
	}
	classroomHandler, err := tenancyhdl.NewClassroomHandler()
	if err != nil {
		return fmt.Errorf("tạo ClassroomHandler: %w", err)
	}

	r.RegisterCRUDRoutes(v1, "/organizations", organizationHandler, apirouter.ReadWriteConfig)
	r.RegisterCRUDRoutes(v1, "/classrooms", classroomHandler, apirouter.ReadWriteConfig)

	return nil
}
