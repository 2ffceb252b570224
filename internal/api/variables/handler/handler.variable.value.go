package varhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "planbase/internal/api/base/handler"
	vardto "planbase/internal/api/variables/dto"
	models "planbase/internal/api/variables/models"
	varsvc "planbase/internal/api/variables/service"
	"planbase/internal/api/variables/varcore"
	"planbase/internal/common"
	"planbase/internal/utility"
)

// ValueHandler xử lý các request liên quan đến variable values.
type ValueHandler struct {
	*basehdl.BaseHandler[models.VariableValue, models.VariableValue, models.VariableValue]
	ValueService      *varsvc.ValueService
	DefinitionService *varsvc.DefinitionService
}

// NewValueHandler tạo mới ValueHandler.
func NewValueHandler() (*ValueHandler, error) {
	valueService, err := varsvc.NewValueService()
	if err != nil {
		return nil, fmt.Errorf("failed to create value service: %v", err)
	}
	definitionService, err := varsvc.NewDefinitionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create definition service: %v", err)
	}
	base := basehdl.NewBaseHandler[models.VariableValue, models.VariableValue, models.VariableValue](valueService)
	return &ValueHandler{
		BaseHandler:       base,
		ValueService:      valueService,
		DefinitionService: definitionService,
	}, nil
}

// HandleSetValue xử lý POST /variable-values/set.
// Giá trị được validate so với definitions đang active của scope trước khi
// ghi; vi phạm trả về danh sách lỗi theo key (VAR_002), không ghi gì cả.
func (h *ValueHandler) HandleSetValue(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(vardto.SetValueInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		scope, err := parseScope(c, input.ScopeCategory, input.ClassroomID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ownerID := utility.String2ObjectID(input.OwnerID)
		if ownerID.IsZero() {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat, "ownerId không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}

		defs, err := h.DefinitionService.DefinitionsForScope(c.Context(), scope, false)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		result := varcore.Validate(defs, map[string]interface{}{input.Key: input.Value})
		if !result.IsValid {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeVariableValidation, common.MsgValidationError, common.StatusBadRequest, result.Errors))
			return nil
		}

		value := utility.NormalizeJSONValue(input.Value)
		saved, err := h.ValueService.SetValue(c.Context(), scope, ownerID, input.Key, value)
		h.HandleResponse(c, saved, err)
		return nil
	})
}

// HandleDeleteValue xử lý DELETE /variable-values/delete.
// Xóa tuple không tồn tại vẫn trả thành công (idempotent).
func (h *ValueHandler) HandleDeleteValue(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(vardto.DeleteValueInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		scope, err := parseScope(c, input.ScopeCategory, input.ClassroomID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ownerID := utility.String2ObjectID(input.OwnerID)
		if ownerID.IsZero() {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat, "ownerId không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}

		err = h.ValueService.DeleteValue(c.Context(), scope, ownerID, input.Key)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleForOwner xử lý GET /variable-values/for-owner.
// Query: scopeCategory, classroomId (trừ storeType), ownerId.
func (h *ValueHandler) HandleForOwner(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		scope, err := parseScope(c, c.Query("scopeCategory"), c.Query("classroomId"))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ownerID := utility.String2ObjectID(c.Query("ownerId"))
		if ownerID.IsZero() {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat, "ownerId không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}

		values, err := h.ValueService.FindForOwner(c.Context(), scope, ownerID)
		h.HandleResponse(c, values, err)
		return nil
	})
}
