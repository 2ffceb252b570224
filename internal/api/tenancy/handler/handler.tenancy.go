// Package tenancyhdl - handler HTTP cho domain tenancy.
// Cả hai loại chỉ cần CRUD chung của BaseHandler, không có nghiệp vụ riêng.
package tenancyhdl

import (
	"fmt"

	basehdl "planbase/internal/api/base/handler"
	tenancydto "planbase/internal/api/tenancy/dto"
	models "planbase/internal/api/tenancy/models"
	tenancysvc "planbase/internal/api/tenancy/service"
)

// OrganizationHandler xử lý các request liên quan đến tổ chức.
type OrganizationHandler struct {
	*basehdl.BaseHandler[models.Organization, tenancydto.OrganizationCreateInput, tenancydto.OrganizationUpdateInput]
	OrganizationService *tenancysvc.OrganizationService
}

// NewOrganizationHandler tạo mới OrganizationHandler.
func NewOrganizationHandler() (*OrganizationHandler, error) {
	svc, err := tenancysvc.NewOrganizationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create organization service: %v", err)
	}
	base := basehdl.NewBaseHandler[models.Organization, tenancydto.OrganizationCreateInput, tenancydto.OrganizationUpdateInput](svc)
	return &OrganizationHandler{
		BaseHandler:         base,
		OrganizationService: svc,
	}, nil
}

// ClassroomHandler xử lý các request liên quan đến lớp học.
type ClassroomHandler struct {
	*basehdl.BaseHandler[models.Classroom, tenancydto.ClassroomCreateInput, tenancydto.ClassroomUpdateInput]
	ClassroomService *tenancysvc.ClassroomService
}

// NewClassroomHandler tạo mới ClassroomHandler.
func NewClassroomHandler() (*ClassroomHandler, error) {
	svc, err := tenancysvc.NewClassroomService()
	if err != nil {
		return nil, fmt.Errorf("failed to create classroom service: %v", err)
	}
	base := basehdl.NewBaseHandler[models.Classroom, tenancydto.ClassroomCreateInput, tenancydto.ClassroomUpdateInput](svc)
	return &ClassroomHandler{
		BaseHandler:      base,
		ClassroomService: svc,
	}, nil
}
