package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VariableValue lưu một fact: (tổ chức, lớp học, category, chủ thể, key) → giá trị.
// Mỗi tuple chỉ có đúng một document, đảm bảo bởi compound unique index
// value_tuple_unique. Value để mở (interface{}) ở tầng lưu trữ; kiểu dữ liệu
// chỉ được kiểm soát tại biên ghi (varcore.Validate trước khi set).
type VariableValue struct {
	ID                  primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerOrganizationID primitive.ObjectID  `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1,compound:value_tuple_unique"`
	ClassroomID         *primitive.ObjectID `json:"classroomId" bson:"classroomId" index:"compound:value_tuple_unique"`
	ScopeCategory       string              `json:"scopeCategory" bson:"scopeCategory" index:"compound:value_tuple_unique"`
	OwnerID             primitive.ObjectID  `json:"ownerId" bson:"ownerId" index:"single:1,compound:value_tuple_unique"`
	VariableKey         string              `json:"variableKey" bson:"variableKey" index:"compound:value_tuple_unique"`
	Value               interface{}         `json:"value" bson:"value"`
	CreatedAt           int64               `json:"createdAt" bson:"createdAt"`
	UpdatedAt           int64               `json:"updatedAt" bson:"updatedAt"`
}

// Scope trả về scope của value.
func (v *VariableValue) Scope() VariableScope {
	return VariableScope{
		OrganizationID: v.OwnerOrganizationID,
		ClassroomID:    v.ClassroomID,
		Category:       v.ScopeCategory,
	}
}
