package planhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "planbase/internal/api/base/handler"
	plandto "planbase/internal/api/planning/dto"
	models "planbase/internal/api/planning/models"
	plansvc "planbase/internal/api/planning/service"
)

// ScenarioHandler xử lý các request liên quan đến kịch bản.
type ScenarioHandler struct {
	*basehdl.BaseHandler[models.Scenario, plandto.ScenarioCreateInput, plandto.ScenarioUpdateInput]
	ScenarioService *plansvc.ScenarioService
}

// NewScenarioHandler tạo mới ScenarioHandler.
func NewScenarioHandler() (*ScenarioHandler, error) {
	svc, err := plansvc.NewScenarioService()
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario service: %v", err)
	}
	base := basehdl.NewBaseHandler[models.Scenario, plandto.ScenarioCreateInput, plandto.ScenarioUpdateInput](svc)
	return &ScenarioHandler{
		BaseHandler:     base,
		ScenarioService: svc,
	}, nil
}

// HandleGetVariables xử lý GET /scenarios/:id/variables.
// Scenario serialize theo shape mảng definitions để UI dựng control nhập liệu.
func (h *ScenarioHandler) HandleGetVariables(c fiber.Ctx) error {
	return handleGetVariables[models.Scenario, *models.Scenario](c, h.ScenarioService, h.ScenarioService.Overlay)
}

// HandlePutVariables xử lý PUT /scenarios/:id/variables.
func (h *ScenarioHandler) HandlePutVariables(c fiber.Ctx) error {
	return handlePutVariables[models.Scenario, *models.Scenario](c, h.ScenarioService, h.ScenarioService.Variables, h.ScenarioService.Overlay)
}

// HandleFindHydrated xử lý GET /scenarios/find-hydrated.
func (h *ScenarioHandler) HandleFindHydrated(c fiber.Ctx) error {
	return handleFindHydrated[models.Scenario, *models.Scenario](c, h.ScenarioService, h.ScenarioService.Overlay)
}
