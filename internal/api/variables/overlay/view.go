package overlay

import (
	models "planbase/internal/api/variables/models"
)

// Shape dạng dữ liệu của view khi trả cho client.
type Shape int

const (
	// ShapeDefinitionArray mảng definition, mỗi phần tử kèm giá trị hiện tại.
	ShapeDefinitionArray Shape = iota
	// ShapeValueMap map key → giá trị.
	ShapeValueMap
)

// DefinitionWithValue một definition kèm giá trị hiện tại của chủ thể.
// Value orphan (không còn definition active) xuất hiện dưới dạng definition
// tổng hợp chỉ có Key, IsActive = false, IsOrphan = true.
type DefinitionWithValue struct {
	models.VariableDefinition
	Value    interface{} `json:"value,omitempty"`
	HasValue bool        `json:"hasValue"`
	IsOrphan bool        `json:"isOrphan,omitempty"`
}

// HydratedView kết quả merge definitions + values của một chủ thể.
// Mang cả hai shape; Payload chọn shape khi serialize.
type HydratedView struct {
	Definitions []DefinitionWithValue  `json:"definitions"`
	Values      map[string]interface{} `json:"values"`
}

// EmptyView trả về view rỗng (cả hai shape đều rỗng, không nil).
func EmptyView() HydratedView {
	return HydratedView{
		Definitions: []DefinitionWithValue{},
		Values:      map[string]interface{}{},
	}
}

// Payload trả về dữ liệu theo shape yêu cầu.
func (v HydratedView) Payload(shape Shape) interface{} {
	if shape == ShapeValueMap {
		return v.Values
	}
	return v.Definitions
}

// merge ghép definitions với values của MỘT chủ thể thành HydratedView.
// Value có key không còn definition (orphan) vẫn xuất hiện ở cả hai shape,
// không bao giờ bị loại bỏ hay gây lỗi.
func merge(defs []models.VariableDefinition, values []models.VariableValue) HydratedView {
	view := EmptyView()

	valueByKey := make(map[string]interface{}, len(values))
	for i := range values {
		valueByKey[values[i].VariableKey] = values[i].Value
	}

	matched := make(map[string]bool, len(defs))
	for i := range defs {
		def := defs[i]
		entry := DefinitionWithValue{VariableDefinition: def}
		if val, ok := valueByKey[def.Key]; ok {
			entry.Value = val
			entry.HasValue = true
			view.Values[def.Key] = val
		}
		view.Definitions = append(view.Definitions, entry)
		matched[def.Key] = true
	}

	// Orphans: giữ nguyên giá trị, gắn definition tổng hợp chỉ có key
	for i := range values {
		key := values[i].VariableKey
		if matched[key] {
			continue
		}
		matched[key] = true
		view.Values[key] = values[i].Value
		view.Definitions = append(view.Definitions, DefinitionWithValue{
			VariableDefinition: models.VariableDefinition{Key: key, IsActive: false},
			Value:              values[i].Value,
			HasValue:           true,
			IsOrphan:           true,
		})
	}

	return view
}
