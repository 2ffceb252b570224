// Package plandto - input cho domain planning.
package plandto

// StoreCreateInput đầu vào khi tạo cửa hàng.
type StoreCreateInput struct {
	Name        string `json:"name" validate:"required,no_xss"`
	Description string `json:"description" validate:"no_xss"`
	ClassroomID string `json:"classroomId" validate:"required,exists=classrooms" transform:"str_objectid"`
	StoreTypeID string `json:"storeTypeId,omitempty" transform:"str_objectid_ptr,optional"`
	IsActive    bool   `json:"isActive"`
}

// StoreUpdateInput đầu vào khi cập nhật cửa hàng.
type StoreUpdateInput struct {
	Name        string `json:"name" validate:"omitempty,no_xss"`
	Description string `json:"description" validate:"omitempty,no_xss"`
	StoreTypeID string `json:"storeTypeId,omitempty" transform:"str_objectid_ptr,optional"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// ScenarioCreateInput đầu vào khi tạo kịch bản.
type ScenarioCreateInput struct {
	Name        string `json:"name" validate:"required,no_xss"`
	Description string `json:"description" validate:"no_xss"`
	ClassroomID string `json:"classroomId" validate:"required,exists=classrooms" transform:"str_objectid"`
	IsActive    bool   `json:"isActive"`
}

// ScenarioUpdateInput đầu vào khi cập nhật kịch bản.
type ScenarioUpdateInput struct {
	Name        string `json:"name" validate:"omitempty,no_xss"`
	Description string `json:"description" validate:"omitempty,no_xss"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// SubmissionCreateInput đầu vào khi tạo bài nộp.
type SubmissionCreateInput struct {
	Title       string `json:"title" validate:"required,no_xss"`
	SubmittedBy string `json:"submittedBy" validate:"omitempty,no_xss"`
	ClassroomID string `json:"classroomId" validate:"required,exists=classrooms" transform:"str_objectid"`
	ScenarioID  string `json:"scenarioId" validate:"required,exists=scenarios" transform:"str_objectid"`
	Status      string `json:"status" validate:"omitempty,oneof=draft submitted graded"`
}

// SubmissionUpdateInput đầu vào khi cập nhật bài nộp.
type SubmissionUpdateInput struct {
	Title       string `json:"title" validate:"omitempty,no_xss"`
	SubmittedBy string `json:"submittedBy" validate:"omitempty,no_xss"`
	Status      string `json:"status" validate:"omitempty,oneof=draft submitted graded"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// StoreTypeCreateInput đầu vào khi tạo loại cửa hàng (phạm vi toàn tổ chức).
type StoreTypeCreateInput struct {
	Code        string `json:"code" validate:"required,variable_key"`
	Name        string `json:"name" validate:"required,no_xss"`
	Description string `json:"description" validate:"no_xss"`
	IsActive    bool   `json:"isActive"`
}

// StoreTypeUpdateInput đầu vào khi cập nhật loại cửa hàng.
type StoreTypeUpdateInput struct {
	Name        string `json:"name" validate:"omitempty,no_xss"`
	Description string `json:"description" validate:"omitempty,no_xss"`
	IsActive    *bool  `json:"isActive,omitempty"`
}
