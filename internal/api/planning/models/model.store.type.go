package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"planbase/internal/api/variables/overlay"
)

// StoreType một loại cửa hàng, phạm vi toàn tổ chức (không gắn classroom).
// Đây là chủ thể duy nhất dùng scope category storeType: biến động của nó
// được định nghĩa ở mức tổ chức.
type StoreType struct {
	ID                  primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1,compound:org_code_unique"`
	Code                string             `json:"code" bson:"code" index:"compound:org_code_unique"`
	Name                string             `json:"name" bson:"name" index:"single:1"`
	Description         string             `json:"description,omitempty" bson:"description,omitempty"`
	IsActive            bool               `json:"isActive" bson:"isActive" index:"single:1" default:"true"`
	CreatedAt           int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt           int64              `json:"updatedAt" bson:"updatedAt"`

	Hydration overlay.Cache `json:"-" bson:"-"`
}

var _ overlay.Owner = (*StoreType)(nil)

func (s *StoreType) OwnerID() primitive.ObjectID        { return s.ID }
func (s *StoreType) OrganizationID() primitive.ObjectID { return s.OwnerOrganizationID }

// ClassroomScope luôn trả về ok = false: storeType là phạm vi toàn tổ chức.
func (s *StoreType) ClassroomScope() (primitive.ObjectID, bool) {
	return primitive.NilObjectID, false
}

func (s *StoreType) VariableCache() *overlay.Cache { return &s.Hydration }

// MarshalJSON chèn lớp biến động dưới field "variables" (mảng definition kèm giá trị).
func (s StoreType) MarshalJSON() ([]byte, error) {
	type Alias StoreType
	return json.Marshal(&struct {
		Alias
		Variables interface{} `json:"variables"`
	}{
		Alias:     Alias(s),
		Variables: s.Hydration.Payload(overlay.ShapeDefinitionArray),
	})
}
