// Package tenancydto - input cho domain tenancy.
package tenancydto

// OrganizationCreateInput đầu vào khi tạo tổ chức.
type OrganizationCreateInput struct {
	Name        string `json:"name" validate:"required,no_xss"`
	Code        string `json:"code" validate:"required,variable_key"`
	Description string `json:"description" validate:"no_xss"`
	IsActive    bool   `json:"isActive"`
}

// OrganizationUpdateInput đầu vào khi cập nhật tổ chức.
type OrganizationUpdateInput struct {
	Name        string `json:"name" validate:"omitempty,no_xss"`
	Description string `json:"description" validate:"omitempty,no_xss"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// ClassroomCreateInput đầu vào khi tạo lớp học.
type ClassroomCreateInput struct {
	OwnerOrganizationID string `json:"ownerOrganizationId" validate:"required,exists=organizations" transform:"str_objectid"`
	Name                string `json:"name" validate:"required,no_xss"`
	Code                string `json:"code" validate:"required,variable_key"`
	Description         string `json:"description" validate:"no_xss"`
	IsActive            bool   `json:"isActive"`
}

// ClassroomUpdateInput đầu vào khi cập nhật lớp học.
type ClassroomUpdateInput struct {
	Name        string `json:"name" validate:"omitempty,no_xss"`
	Description string `json:"description" validate:"omitempty,no_xss"`
	IsActive    *bool  `json:"isActive,omitempty"`
}
