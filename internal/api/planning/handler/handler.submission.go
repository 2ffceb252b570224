package planhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "planbase/internal/api/base/handler"
	plandto "planbase/internal/api/planning/dto"
	models "planbase/internal/api/planning/models"
	plansvc "planbase/internal/api/planning/service"
)

// SubmissionHandler xử lý các request liên quan đến bài nộp.
type SubmissionHandler struct {
	*basehdl.BaseHandler[models.Submission, plandto.SubmissionCreateInput, plandto.SubmissionUpdateInput]
	SubmissionService *plansvc.SubmissionService
}

// NewSubmissionHandler tạo mới SubmissionHandler.
func NewSubmissionHandler() (*SubmissionHandler, error) {
	svc, err := plansvc.NewSubmissionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create submission service: %v", err)
	}
	base := basehdl.NewBaseHandler[models.Submission, plandto.SubmissionCreateInput, plandto.SubmissionUpdateInput](svc)
	return &SubmissionHandler{
		BaseHandler:       base,
		SubmissionService: svc,
	}, nil
}

// HandleGetVariables xử lý GET /submissions/:id/variables.
func (h *SubmissionHandler) HandleGetVariables(c fiber.Ctx) error {
	return handleGetVariables[models.Submission, *models.Submission](c, h.SubmissionService, h.SubmissionService.Overlay)
}

// HandlePutVariables xử lý PUT /submissions/:id/variables.
func (h *SubmissionHandler) HandlePutVariables(c fiber.Ctx) error {
	return handlePutVariables[models.Submission, *models.Submission](c, h.SubmissionService, h.SubmissionService.Variables, h.SubmissionService.Overlay)
}

// HandleFindHydrated xử lý GET /submissions/find-hydrated.
func (h *SubmissionHandler) HandleFindHydrated(c fiber.Ctx) error {
	return handleFindHydrated[models.Submission, *models.Submission](c, h.SubmissionService, h.SubmissionService.Overlay)
}
