package plansvc

import (
	"context"

	"planbase/internal/api/variables/overlay"
	"planbase/internal/api/variables/varcore"
	"planbase/internal/common"
	"planbase/internal/utility"
)

// ReplaceOwnerVariables thay toàn bộ biến động của một chủ thể theo ngữ nghĩa
// edit: validate so với definitions đang active, áp default cho key còn
// trống, rồi ghi qua ReplaceOwnerValues (key vắng mặt bị xóa). Trả về view
// hydrate lại sau khi ghi.
//
// Vi phạm validation trả lỗi VAR_002 kèm danh sách lỗi theo key; không ghi gì.
func (s *VariableStack) ReplaceOwnerVariables(ctx context.Context, ov *overlay.Overlay, owner overlay.Owner, candidate map[string]interface{}) (overlay.HydratedView, error) {
	empty := overlay.EmptyView()

	scope, ok := ov.ResolveScope(owner)
	if !ok {
		return empty, common.NewError(
			common.ErrCodeVariableConfig,
			"Không xác định được scope biến động của chủ thể",
			common.StatusBadRequest,
			nil,
		)
	}

	defs, err := s.Definitions.DefinitionsForScope(ctx, scope, false)
	if err != nil {
		return empty, err
	}

	normalized, _ := utility.NormalizeJSONValue(candidate).(map[string]interface{})
	if normalized == nil {
		normalized = map[string]interface{}{}
	}

	result := varcore.Validate(defs, normalized)
	if !result.IsValid {
		return empty, common.NewError(
			common.ErrCodeVariableValidation, common.MsgValidationError, common.StatusBadRequest, result.Errors)
	}

	normalized = varcore.ApplyDefaults(defs, normalized)

	if err := s.Values.ReplaceOwnerValues(ctx, scope, owner.OwnerID(), normalized); err != nil {
		return empty, err
	}

	// Hydrate lại để trả trạng thái sau khi ghi
	owner.VariableCache().Reset()
	return ov.Hydrate(ctx, owner)
}
