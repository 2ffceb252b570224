// Package vardto - input cho domain variables.
package vardto

// DefinitionCreateInput đầu vào khi đăng ký variable definition.
// Options nhận phần tử dạng chuỗi trần hoặc object {label, value};
// service sẽ chuẩn hóa trước khi lưu.
type DefinitionCreateInput struct {
	Key           string        `json:"key" validate:"required,variable_key"`
	Label         string        `json:"label" validate:"required,no_xss"`
	Description   string        `json:"description" validate:"no_xss"`
	ScopeCategory string        `json:"scopeCategory" validate:"required,oneof=store scenario submission storeType"`
	ClassroomID   string        `json:"classroomId,omitempty" transform:"str_objectid_ptr,optional"`
	DataType      string        `json:"dataType" validate:"required,oneof=number string boolean select"`
	InputType     string        `json:"inputType"`
	Options       []interface{} `json:"options,omitempty"`
	Min           *float64      `json:"min,omitempty"`
	Max           *float64      `json:"max,omitempty"`
	Required      bool          `json:"required"`
	DefaultValue  interface{}   `json:"defaultValue,omitempty"`
}

// DefinitionUpdateInput đầu vào khi cập nhật definition.
// Chỉ label, description và isActive được phép sửa sau khi tạo;
// đổi kiểu dữ liệu hay key phải đăng ký definition mới.
type DefinitionUpdateInput struct {
	Label       string `json:"label" validate:"omitempty,no_xss"`
	Description string `json:"description" validate:"omitempty,no_xss"`
	IsActive    *bool  `json:"isActive,omitempty"`
}
