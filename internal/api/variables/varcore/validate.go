package varcore

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	models "planbase/internal/api/variables/models"
)

// FieldError một lỗi validation trên một key cụ thể.
type FieldError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// Result kết quả validate một bộ giá trị candidate so với các definition.
// Validation không bao giờ trả về Go error: mọi vi phạm được gom vào Errors.
type Result struct {
	IsValid bool         `json:"isValid"`
	Errors  []FieldError `json:"errors"`
}

// Validate kiểm tra candidate (map key → giá trị) so với các definition đang
// active. Các key không có definition (orphan) được bỏ qua, không phải lỗi.
// Definition required nhưng thiếu giá trị được gom vào Errors, không throw.
func Validate(defs []models.VariableDefinition, candidate map[string]interface{}) Result {
	result := Result{IsValid: true, Errors: []FieldError{}}

	for i := range defs {
		def := &defs[i]
		if !def.IsActive {
			continue
		}

		value, present := candidate[def.Key]
		if !present || value == nil || value == "" {
			if def.Required {
				result.addError(def.Key, fmt.Sprintf("Thiếu giá trị bắt buộc cho biến %s", def.Key))
			}
			continue
		}

		switch def.DataType {
		case models.DataTypeNumber:
			number, ok := CoerceNumber(value)
			if !ok {
				result.addError(def.Key, fmt.Sprintf("Giá trị của %s phải là số", def.Key))
				continue
			}
			if def.Min != nil && number < *def.Min {
				result.addError(def.Key, fmt.Sprintf("Giá trị của %s phải >= %v", def.Key, *def.Min))
			}
			if def.Max != nil && number > *def.Max {
				result.addError(def.Key, fmt.Sprintf("Giá trị của %s phải <= %v", def.Key, *def.Max))
			}
		case models.DataTypeBoolean:
			if _, ok := value.(bool); !ok {
				result.addError(def.Key, fmt.Sprintf("Giá trị của %s phải là boolean", def.Key))
			}
		case models.DataTypeString:
			if _, ok := value.(string); !ok {
				result.addError(def.Key, fmt.Sprintf("Giá trị của %s phải là chuỗi", def.Key))
			}
		case models.DataTypeSelect:
			str, ok := value.(string)
			if !ok {
				result.addError(def.Key, fmt.Sprintf("Giá trị của %s phải là chuỗi thuộc danh sách lựa chọn", def.Key))
				continue
			}
			allowed := OptionValues(def)
			if !allowed[str] {
				result.addError(def.Key, fmt.Sprintf("Giá trị %q của %s không thuộc danh sách lựa chọn (%s)", str, def.Key, strings.Join(sortedKeys(allowed), ", ")))
			}
		}
	}

	return result
}

func (r *Result) addError(key, message string) {
	r.IsValid = false
	r.Errors = append(r.Errors, FieldError{Key: key, Message: message})
}

// CoerceNumber ép một giá trị về float64 nếu có thể.
// Hỗ trợ json.Number (decoder UseNumber), các kiểu số Go và không gì khác:
// chuỗi số KHÔNG được coi là số.
func CoerceNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// ApplyDefaults trả về bản sao của candidate với các key chưa có giá trị
// (thiếu, nil hoặc chuỗi rỗng) được điền defaultValue của definition tương
// ứng (nếu có). Idempotent: áp nhiều lần cho cùng kết quả.
func ApplyDefaults(defs []models.VariableDefinition, candidate map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(candidate))
	for k, v := range candidate {
		out[k] = v
	}
	for i := range defs {
		def := &defs[i]
		if !def.IsActive || def.DefaultValue == nil {
			continue
		}
		value, present := out[def.Key]
		if !present || value == nil || value == "" {
			out[def.Key] = def.DefaultValue
		}
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
