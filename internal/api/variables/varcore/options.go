package varcore

import (
	"fmt"

	models "planbase/internal/api/variables/models"
)

// ParseOptions chuẩn hóa danh sách options thô từ request về []VariableOption.
// Mỗi phần tử được phép là:
//   - chuỗi trần: "high" → {Label: "high", Value: "high"}
//   - object {label, value}: value rỗng sẽ lấy theo label
//
// Trả về lỗi khi phần tử không thuộc hai dạng trên hoặc label rỗng.
func ParseOptions(raw []interface{}) ([]models.VariableOption, error) {
	options := make([]models.VariableOption, 0, len(raw))
	for i, item := range raw {
		switch v := item.(type) {
		case string:
			if v == "" {
				return nil, fmt.Errorf("option thứ %d là chuỗi rỗng", i)
			}
			options = append(options, models.VariableOption{Label: v, Value: v})
		case map[string]interface{}:
			label, _ := v["label"].(string)
			value, _ := v["value"].(string)
			if label == "" {
				return nil, fmt.Errorf("option thứ %d thiếu label", i)
			}
			if value == "" {
				value = label
			}
			options = append(options, models.VariableOption{Label: label, Value: value})
		case models.VariableOption:
			options = append(options, NormalizeOption(v))
		default:
			return nil, fmt.Errorf("option thứ %d không hợp lệ: cần chuỗi hoặc object {label, value}", i)
		}
	}
	return options, nil
}

// NormalizeOption chuẩn hóa một option: Value rỗng → Value = Label.
func NormalizeOption(opt models.VariableOption) models.VariableOption {
	if opt.Value == "" {
		opt.Value = opt.Label
	}
	return opt
}

// NormalizeOptions chuẩn hóa toàn bộ danh sách option đã có kiểu.
func NormalizeOptions(opts []models.VariableOption) []models.VariableOption {
	normalized := make([]models.VariableOption, 0, len(opts))
	for _, opt := range opts {
		normalized = append(normalized, NormalizeOption(opt))
	}
	return normalized
}

// OptionValues trả về tập value hợp lệ của một definition kiểu select.
func OptionValues(def *models.VariableDefinition) map[string]bool {
	values := make(map[string]bool, len(def.Options))
	for _, opt := range def.Options {
		values[NormalizeOption(opt).Value] = true
	}
	return values
}
