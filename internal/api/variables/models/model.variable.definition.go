// Package models - các model thuộc domain variables (schema biến động).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DataType các kiểu dữ liệu được hỗ trợ cho variable definition.
// Đây là enum đóng: mọi definition phải thuộc một trong các kiểu này.
const (
	DataTypeNumber  = "number"
	DataTypeString  = "string"
	DataTypeBoolean = "boolean"
	DataTypeSelect  = "select"
)

// InputType các kiểu nhập liệu trên UI, ràng buộc theo dataType.
const (
	InputTypeNumber   = "number"
	InputTypeSlider   = "slider"
	InputTypeKnob     = "knob"
	InputTypeDropdown = "dropdown"
	InputTypeText     = "text"
	InputTypeTextarea = "textarea"
	InputTypeCheckbox = "checkbox"
	InputTypeToggle   = "toggle"
)

// ScopeCategory phân loại chủ thể mang biến động.
// storeType là category duy nhất không gắn với classroom (phạm vi toàn tổ chức).
const (
	ScopeCategoryStore      = "store"
	ScopeCategoryScenario   = "scenario"
	ScopeCategorySubmission = "submission"
	ScopeCategoryStoreType  = "storeType"
)

// VariableOption một lựa chọn của definition kiểu select.
// Được chuẩn hóa khi đăng ký: Value rỗng sẽ lấy theo Label.
type VariableOption struct {
	Label string `json:"label" bson:"label"`
	Value string `json:"value" bson:"value"`
}

// VariableScope xác định phạm vi của một definition / value:
// (tổ chức, lớp học, category). ClassroomID nil chỉ hợp lệ khi
// Category == ScopeCategoryStoreType.
type VariableScope struct {
	OrganizationID primitive.ObjectID  `json:"organizationId"`
	ClassroomID    *primitive.ObjectID `json:"classroomId,omitempty"`
	Category       string              `json:"category"`
}

// VariableDefinition mô tả một trường dữ liệu định nghĩa lúc runtime.
//
// Key chỉ được phép trùng giữa các scope khác nhau; trong một scope chỉ có
// tối đa một definition đang active cho mỗi key. Ràng buộc này do service
// Register kiểm soát (unique index ở storage sẽ va chạm với soft delete),
// index compound def_scope chỉ phục vụ truy vấn theo scope.
type VariableDefinition struct {
	ID                  primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerOrganizationID primitive.ObjectID  `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1,compound:def_scope"`
	ClassroomID         *primitive.ObjectID `json:"classroomId" bson:"classroomId" index:"compound:def_scope"`
	ScopeCategory       string              `json:"scopeCategory" bson:"scopeCategory" index:"compound:def_scope"`
	Key                 string              `json:"key" bson:"key" index:"single:1"`
	Label               string              `json:"label" bson:"label"`
	Description         string              `json:"description,omitempty" bson:"description,omitempty"`
	DataType            string              `json:"dataType" bson:"dataType"`
	InputType           string              `json:"inputType" bson:"inputType"`
	Options             []VariableOption    `json:"options,omitempty" bson:"options,omitempty"`
	Min                 *float64            `json:"min,omitempty" bson:"min,omitempty"`
	Max                 *float64            `json:"max,omitempty" bson:"max,omitempty"`
	Required            bool                `json:"required" bson:"required"`
	DefaultValue        interface{}         `json:"defaultValue,omitempty" bson:"defaultValue,omitempty"`
	IsActive            bool                `json:"isActive" bson:"isActive" index:"single:1" default:"true"`
	CreatedAt           int64               `json:"createdAt" bson:"createdAt"`
	UpdatedAt           int64               `json:"updatedAt" bson:"updatedAt"`
}

// Scope trả về scope của definition.
func (d *VariableDefinition) Scope() VariableScope {
	return VariableScope{
		OrganizationID: d.OwnerOrganizationID,
		ClassroomID:    d.ClassroomID,
		Category:       d.ScopeCategory,
	}
}
