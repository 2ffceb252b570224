package planhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "planbase/internal/api/base/handler"
	plandto "planbase/internal/api/planning/dto"
	models "planbase/internal/api/planning/models"
	plansvc "planbase/internal/api/planning/service"
)

// StoreHandler xử lý các request liên quan đến cửa hàng.
type StoreHandler struct {
	*basehdl.BaseHandler[models.Store, plandto.StoreCreateInput, plandto.StoreUpdateInput]
	StoreService *plansvc.StoreService
}

// NewStoreHandler tạo mới StoreHandler.
func NewStoreHandler() (*StoreHandler, error) {
	svc, err := plansvc.NewStoreService()
	if err != nil {
		return nil, fmt.Errorf("failed to create store service: %v", err)
	}
	base := basehdl.NewBaseHandler[models.Store, plandto.StoreCreateInput, plandto.StoreUpdateInput](svc)
	return &StoreHandler{
		BaseHandler:  base,
		StoreService: svc,
	}, nil
}

// HandleGetVariables xử lý GET /stores/:id/variables.
func (h *StoreHandler) HandleGetVariables(c fiber.Ctx) error {
	return handleGetVariables[models.Store, *models.Store](c, h.StoreService, h.StoreService.Overlay)
}

// HandlePutVariables xử lý PUT /stores/:id/variables.
func (h *StoreHandler) HandlePutVariables(c fiber.Ctx) error {
	return handlePutVariables[models.Store, *models.Store](c, h.StoreService, h.StoreService.Variables, h.StoreService.Overlay)
}

// HandleFindHydrated xử lý GET /stores/find-hydrated.
func (h *StoreHandler) HandleFindHydrated(c fiber.Ctx) error {
	return handleFindHydrated[models.Store, *models.Store](c, h.StoreService, h.StoreService.Overlay)
}
