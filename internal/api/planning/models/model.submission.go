package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"planbase/internal/api/variables/overlay"
)

// SubmissionStatus trạng thái của một bài nộp.
const (
	SubmissionStatusDraft     = "draft"
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusGraded    = "graded"
)

// Submission một bài nộp của học viên cho một kịch bản, phạm vi lớp học.
type Submission struct {
	ID                  primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1"`
	ClassroomID         primitive.ObjectID `json:"classroomId" bson:"classroomId" index:"single:1"`
	ScenarioID          primitive.ObjectID `json:"scenarioId" bson:"scenarioId" index:"single:1"`
	Title               string             `json:"title" bson:"title"`
	SubmittedBy         string             `json:"submittedBy,omitempty" bson:"submittedBy,omitempty"`
	Status              string             `json:"status" bson:"status" index:"single:1" default:"draft"`
	IsActive            bool               `json:"isActive" bson:"isActive" index:"single:1" default:"true"`
	CreatedAt           int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt           int64              `json:"updatedAt" bson:"updatedAt"`

	Hydration overlay.Cache `json:"-" bson:"-"`
}

var _ overlay.Owner = (*Submission)(nil)

func (s *Submission) OwnerID() primitive.ObjectID        { return s.ID }
func (s *Submission) OrganizationID() primitive.ObjectID { return s.OwnerOrganizationID }
func (s *Submission) ClassroomScope() (primitive.ObjectID, bool) {
	return s.ClassroomID, !s.ClassroomID.IsZero()
}
func (s *Submission) VariableCache() *overlay.Cache { return &s.Hydration }

// MarshalJSON chèn lớp biến động dưới field "variables" (map key → giá trị).
func (s Submission) MarshalJSON() ([]byte, error) {
	type Alias Submission
	return json.Marshal(&struct {
		Alias
		Variables interface{} `json:"variables"`
	}{
		Alias:     Alias(s),
		Variables: s.Hydration.Payload(overlay.ShapeValueMap),
	})
}
