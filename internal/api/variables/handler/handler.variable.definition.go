// Package varhdl - handler HTTP cho domain variables.
package varhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "planbase/internal/api/base/handler"
	vardto "planbase/internal/api/variables/dto"
	models "planbase/internal/api/variables/models"
	varsvc "planbase/internal/api/variables/service"
	"planbase/internal/api/variables/varcore"
	"planbase/internal/common"
	"planbase/internal/utility"
)

// DefinitionHandler xử lý các request liên quan đến variable definitions.
// CRUD chung đi qua BaseHandler; các nghiệp vụ riêng (register, for-scope,
// soft-delete, restore) có handler riêng bên dưới.
type DefinitionHandler struct {
	*basehdl.BaseHandler[models.VariableDefinition, vardto.DefinitionCreateInput, vardto.DefinitionUpdateInput]
	DefinitionService *varsvc.DefinitionService
}

// NewDefinitionHandler tạo mới DefinitionHandler.
func NewDefinitionHandler() (*DefinitionHandler, error) {
	svc, err := varsvc.NewDefinitionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create definition service: %v", err)
	}
	base := basehdl.NewBaseHandler[models.VariableDefinition, vardto.DefinitionCreateInput, vardto.DefinitionUpdateInput](svc)
	return &DefinitionHandler{
		BaseHandler:       base,
		DefinitionService: svc,
	}, nil
}

// requireActiveOrganization lấy organization từ context, lỗi 401 khi thiếu.
func requireActiveOrganization(c fiber.Ctx) (primitive.ObjectID, error) {
	orgIDStr, ok := c.Locals("active_organization_id").(string)
	if !ok || orgIDStr == "" {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationInput,
			"Không có organization context. Gửi header X-Organization-ID",
			common.StatusUnauthorized,
			nil,
		)
	}
	orgID, err := primitive.ObjectIDFromHex(orgIDStr)
	if err != nil {
		return primitive.NilObjectID, common.ErrInvalidFormat
	}
	return orgID, nil
}

// parseScope dựng VariableScope từ organization context + category + classroomId (hex).
func parseScope(c fiber.Ctx, category string, classroomIDHex string) (models.VariableScope, error) {
	orgID, err := requireActiveOrganization(c)
	if err != nil {
		return models.VariableScope{}, err
	}
	scope := models.VariableScope{OrganizationID: orgID, Category: category}
	if classroomIDHex != "" {
		classroomID, err := primitive.ObjectIDFromHex(classroomIDHex)
		if err != nil {
			return models.VariableScope{}, common.NewError(
				common.ErrCodeValidationFormat, "classroomId không hợp lệ", common.StatusBadRequest, nil)
		}
		scope.ClassroomID = &classroomID
	}
	return scope, nil
}

// HandleRegister xử lý POST /variable-definitions/register.
// Đăng ký definition mới trong scope của organization đang hoạt động.
func (h *DefinitionHandler) HandleRegister(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(vardto.DefinitionCreateInput)
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

		def := &models.VariableDefinition{
			OwnerOrganizationID: scope.OrganizationID,
			ClassroomID:         scope.ClassroomID,
			ScopeCategory:       input.ScopeCategory,
			Key:                 input.Key,
			Label:               input.Label,
			Description:         input.Description,
			DataType:            input.DataType,
			InputType:           input.InputType,
			Min:                 input.Min,
			Max:                 input.Max,
			Required:            input.Required,
			DefaultValue:        utility.NormalizeJSONValue(input.DefaultValue),
		}

		if len(input.Options) > 0 {
			options, err := varcore.ParseOptions(input.Options)
			if err != nil {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeVariableConfig, err.Error(), common.StatusBadRequest, nil))
				return nil
			}
			def.Options = options
		}

		created, err := h.DefinitionService.Register(c.Context(), def)
		h.HandleResponse(c, created, err)
		return nil
	})
}

// HandleForScope xử lý GET /variable-definitions/for-scope.
// Query: scopeCategory (bắt buộc), classroomId (bắt buộc trừ storeType),
// includeInactive=true trả cả definition đã soft delete.
func (h *DefinitionHandler) HandleForScope(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		scope, err := parseScope(c, c.Query("scopeCategory"), c.Query("classroomId"))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		includeInactive := c.Query("includeInactive") == "true"
		defs, err := h.DefinitionService.DefinitionsForScope(c.Context(), scope, includeInactive)
		h.HandleResponse(c, defs, err)
		return nil
	})
}

// HandleSoftDelete xử lý POST /variable-definitions/:id/soft-delete.
// Idempotent; không bao giờ xóa values kèm theo.
func (h *DefinitionHandler) HandleSoftDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := h.GetIDFromContext(c)
		if err := h.ValidateOrganizationAccess(c, id); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.DefinitionService.SoftDelete(c.Context(), utility.String2ObjectID(id))
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleRestore xử lý POST /variable-definitions/:id/restore. Idempotent.
func (h *DefinitionHandler) HandleRestore(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := h.GetIDFromContext(c)
		if err := h.ValidateOrganizationAccess(c, id); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.DefinitionService.Restore(c.Context(), utility.String2ObjectID(id))
		h.HandleResponse(c, result, err)
		return nil
	})
}
