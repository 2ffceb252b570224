// Package tenancysvc - service cho domain tenancy.
package tenancysvc

import (
	"fmt"

	basesvc "planbase/internal/api/base/service"
	models "planbase/internal/api/tenancy/models"
	"planbase/internal/common"
	"planbase/internal/global"
)

// OrganizationService quản lý tổ chức.
type OrganizationService struct {
	*basesvc.BaseServiceMongoImpl[models.Organization]
}

// NewOrganizationService tạo mới OrganizationService.
func NewOrganizationService() (*OrganizationService, error) {
	col, exist := global.RegistryCollections.Get(global.ColNames.Organizations)
	if !exist {
		return nil, fmt.Errorf("failed to get organizations collection: %v", common.ErrNotFound)
	}
	return &OrganizationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Organization](col),
	}, nil
}

// ClassroomService quản lý lớp học.
type ClassroomService struct {
	*basesvc.BaseServiceMongoImpl[models.Classroom]
}

// NewClassroomService tạo mới ClassroomService.
func NewClassroomService() (*ClassroomService, error) {
	col, exist := global.RegistryCollections.Get(global.ColNames.Classrooms)
	if !exist {
		return nil, fmt.Errorf("failed to get classrooms collection: %v", common.ErrNotFound)
	}
	return &ClassroomService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Classroom](col),
	}, nil
}
