// Package varcore chứa phần lõi thuần (không I/O) của domain variables:
// bảng tương thích dataType/inputType, chuẩn hóa options, validate và
// áp default. Service và validator toàn cục đều gọi vào đây.
package varcore

import (
	models "planbase/internal/api/variables/models"
)

// compatTable ánh xạ dataType → các inputType hợp lệ.
// Phần tử đầu tiên là inputType mặc định khi đăng ký không chỉ định.
var compatTable = map[string][]string{
	models.DataTypeNumber:  {models.InputTypeNumber, models.InputTypeSlider, models.InputTypeKnob},
	models.DataTypeSelect:  {models.InputTypeDropdown},
	models.DataTypeString:  {models.InputTypeText, models.InputTypeTextarea},
	models.DataTypeBoolean: {models.InputTypeCheckbox, models.InputTypeToggle},
}

// IsValidDataType kiểm tra dataType có thuộc enum được hỗ trợ không.
func IsValidDataType(dataType string) bool {
	_, ok := compatTable[dataType]
	return ok
}

// DefaultInputType trả về inputType mặc định cho một dataType.
func DefaultInputType(dataType string) (string, bool) {
	inputs, ok := compatTable[dataType]
	if !ok {
		return "", false
	}
	return inputs[0], true
}

// CompatibleInputTypes trả về danh sách inputType hợp lệ cho một dataType.
func CompatibleInputTypes(dataType string) []string {
	return compatTable[dataType]
}

// IsCompatible kiểm tra cặp (dataType, inputType) có hợp lệ không.
func IsCompatible(dataType, inputType string) bool {
	for _, it := range compatTable[dataType] {
		if it == inputType {
			return true
		}
	}
	return false
}
