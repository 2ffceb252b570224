package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Classroom một lớp học trong tổ chức. Hầu hết scope biến động (store,
// scenario, submission) gắn với một classroom cụ thể.
type Classroom struct {
	ID                  primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1,compound:org_classroom_code_unique"`
	Name                string             `json:"name" bson:"name" index:"single:1"`
	Code                string             `json:"code" bson:"code" index:"compound:org_classroom_code_unique"`
	Description         string             `json:"description,omitempty" bson:"description,omitempty"`
	IsActive            bool               `json:"isActive" bson:"isActive" index:"single:1" default:"true"`
	CreatedAt           int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt           int64              `json:"updatedAt" bson:"updatedAt"`
}
