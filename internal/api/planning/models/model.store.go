// Package models - các model chủ thể thuộc domain planning.
// Mỗi model nhúng overlay.Cache và implement overlay.Owner để nhận lớp
// biến động; MarshalJSON chèn view đã hydrate dưới field "variables".
package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"planbase/internal/api/variables/overlay"
)

// Store một cửa hàng trong phạm vi lớp học.
type Store struct {
	ID                  primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerOrganizationID primitive.ObjectID  `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1"`
	ClassroomID         primitive.ObjectID  `json:"classroomId" bson:"classroomId" index:"single:1"`
	StoreTypeID         *primitive.ObjectID `json:"storeTypeId,omitempty" bson:"storeTypeId,omitempty" index:"single:1"`
	Name                string              `json:"name" bson:"name" index:"single:1"`
	Description         string              `json:"description,omitempty" bson:"description,omitempty"`
	IsActive            bool                `json:"isActive" bson:"isActive" index:"single:1" default:"true"`
	CreatedAt           int64               `json:"createdAt" bson:"createdAt"`
	UpdatedAt           int64               `json:"updatedAt" bson:"updatedAt"`

	// Cache hydrate theo instance, không lưu xuống storage
	Hydration overlay.Cache `json:"-" bson:"-"`
}

var _ overlay.Owner = (*Store)(nil)

// OwnerID trả về _id của store.
func (s *Store) OwnerID() primitive.ObjectID { return s.ID }

// OrganizationID trả về tổ chức sở hữu.
func (s *Store) OrganizationID() primitive.ObjectID { return s.OwnerOrganizationID }

// ClassroomScope trả về classroom của store.
func (s *Store) ClassroomScope() (primitive.ObjectID, bool) {
	return s.ClassroomID, !s.ClassroomID.IsZero()
}

// VariableCache trả về cache hydrate của instance.
func (s *Store) VariableCache() *overlay.Cache { return &s.Hydration }

// MarshalJSON chèn lớp biến động dưới field "variables" (map key → giá trị).
// Instance chưa hydrate serialize với "variables" rỗng.
func (s Store) MarshalJSON() ([]byte, error) {
	type Alias Store
	return json.Marshal(&struct {
		Alias
		Variables interface{} `json:"variables"`
	}{
		Alias:     Alias(s),
		Variables: s.Hydration.Payload(overlay.ShapeValueMap),
	})
}
