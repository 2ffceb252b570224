package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"planbase/internal/api/variables/overlay"
)

// Scenario một kịch bản mô phỏng trong phạm vi lớp học.
// Các tham số kịch bản (expectedDemand, ...) là biến động; UI cần cả
// definition (inputType, min/max) để render điều khiển nên shape serialize
// là mảng definition kèm giá trị.
type Scenario struct {
	ID                  primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1"`
	ClassroomID         primitive.ObjectID `json:"classroomId" bson:"classroomId" index:"single:1"`
	Name                string             `json:"name" bson:"name" index:"single:1"`
	Description         string             `json:"description,omitempty" bson:"description,omitempty"`
	IsActive            bool               `json:"isActive" bson:"isActive" index:"single:1" default:"true"`
	CreatedAt           int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt           int64              `json:"updatedAt" bson:"updatedAt"`

	Hydration overlay.Cache `json:"-" bson:"-"`
}

var _ overlay.Owner = (*Scenario)(nil)

func (s *Scenario) OwnerID() primitive.ObjectID        { return s.ID }
func (s *Scenario) OrganizationID() primitive.ObjectID { return s.OwnerOrganizationID }
func (s *Scenario) ClassroomScope() (primitive.ObjectID, bool) {
	return s.ClassroomID, !s.ClassroomID.IsZero()
}
func (s *Scenario) VariableCache() *overlay.Cache { return &s.Hydration }

// MarshalJSON chèn lớp biến động dưới field "variables" (mảng definition kèm giá trị).
func (s Scenario) MarshalJSON() ([]byte, error) {
	type Alias Scenario
	return json.Marshal(&struct {
		Alias
		Variables interface{} `json:"variables"`
	}{
		Alias:     Alias(s),
		Variables: s.Hydration.Payload(overlay.ShapeDefinitionArray),
	})
}
