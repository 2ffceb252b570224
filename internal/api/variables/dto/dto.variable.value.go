package vardto

// SetValueInput đầu vào khi set một giá trị biến động cho một chủ thể.
// ClassroomID bỏ trống khi scopeCategory == storeType.
type SetValueInput struct {
	ScopeCategory string      `json:"scopeCategory" validate:"required,oneof=store scenario submission storeType"`
	ClassroomID   string      `json:"classroomId,omitempty"`
	OwnerID       string      `json:"ownerId" validate:"required"`
	Key           string      `json:"key" validate:"required,variable_key"`
	Value         interface{} `json:"value"`
}

// DeleteValueInput đầu vào khi xóa một giá trị biến động.
type DeleteValueInput struct {
	ScopeCategory string `json:"scopeCategory" validate:"required,oneof=store scenario submission storeType"`
	ClassroomID   string `json:"classroomId,omitempty"`
	OwnerID       string `json:"ownerId" validate:"required"`
	Key           string `json:"key" validate:"required,variable_key"`
}
