// Package models - các model thuộc domain tenancy (tổ chức và lớp học).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization một tổ chức (tenant). Mọi dữ liệu nghiệp vụ đều gắn với một
// organization; scope biến động luôn bắt đầu từ organization.
type Organization struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" index:"single:1"`
	Code        string             `json:"code" bson:"code" index:"unique"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	IsActive    bool               `json:"isActive" bson:"isActive" index:"single:1" default:"true"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
