package planhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "planbase/internal/api/base/handler"
	plandto "planbase/internal/api/planning/dto"
	models "planbase/internal/api/planning/models"
	plansvc "planbase/internal/api/planning/service"
)

// StoreTypeHandler xử lý các request liên quan đến loại cửa hàng.
// StoreType là chủ thể phạm vi toàn tổ chức: scope biến động không có classroom.
type StoreTypeHandler struct {
	*basehdl.BaseHandler[models.StoreType, plandto.StoreTypeCreateInput, plandto.StoreTypeUpdateInput]
	StoreTypeService *plansvc.StoreTypeService
}

// NewStoreTypeHandler tạo mới StoreTypeHandler.
func NewStoreTypeHandler() (*StoreTypeHandler, error) {
	svc, err := plansvc.NewStoreTypeService()
	if err != nil {
		return nil, fmt.Errorf("failed to create store type service: %v", err)
	}
	base := basehdl.NewBaseHandler[models.StoreType, plandto.StoreTypeCreateInput, plandto.StoreTypeUpdateInput](svc)
	return &StoreTypeHandler{
		BaseHandler:      base,
		StoreTypeService: svc,
	}, nil
}

// HandleGetVariables xử lý GET /store-types/:id/variables.
func (h *StoreTypeHandler) HandleGetVariables(c fiber.Ctx) error {
	return handleGetVariables[models.StoreType, *models.StoreType](c, h.StoreTypeService, h.StoreTypeService.Overlay)
}

// HandlePutVariables xử lý PUT /store-types/:id/variables.
func (h *StoreTypeHandler) HandlePutVariables(c fiber.Ctx) error {
	return handlePutVariables[models.StoreType, *models.StoreType](c, h.StoreTypeService, h.StoreTypeService.Variables, h.StoreTypeService.Overlay)
}

// HandleFindHydrated xử lý GET /store-types/find-hydrated.
func (h *StoreTypeHandler) HandleFindHydrated(c fiber.Ctx) error {
	return handleFindHydrated[models.StoreType, *models.StoreType](c, h.StoreTypeService, h.StoreTypeService.Overlay)
}
