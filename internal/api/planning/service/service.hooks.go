package plansvc

import (
	"context"
	"time"

	"planbase/internal/api/events"
	models "planbase/internal/api/planning/models"
	"planbase/internal/api/variables/overlay"
	"planbase/internal/logger"
)

// RegisterHydrationHooks đăng ký hook hydrate nền sau mỗi lần ghi chủ thể.
// Hook chỉ mang tính cơ hội: phát hiện sớm value orphan qua log để giáo viên
// dọn definition. Tính đúng đắn không phụ thuộc hook — hydrate tường minh
// trước khi đọc vẫn là hợp đồng.
func RegisterHydrationHooks() error {
	storeService, err := NewStoreService()
	if err != nil {
		return err
	}
	scenarioService, err := NewScenarioService()
	if err != nil {
		return err
	}
	submissionService, err := NewSubmissionService()
	if err != nil {
		return err
	}
	storeTypeService, err := NewStoreTypeService()
	if err != nil {
		return err
	}

	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		if e.Operation == events.OpDelete {
			return
		}
		switch doc := e.Document.(type) {
		case models.Store:
			warmHydrate(storeService.Overlay, &doc, e.CollectionName)
		case models.Scenario:
			warmHydrate(scenarioService.Overlay, &doc, e.CollectionName)
		case models.Submission:
			warmHydrate(submissionService.Overlay, &doc, e.CollectionName)
		case models.StoreType:
			warmHydrate(storeTypeService.Overlay, &doc, e.CollectionName)
		}
	})
	return nil
}

// warmHydrate hydrate một bản sao của document vừa ghi và log các value
// orphan nếu có. Lỗi chỉ log warn, không lan ra ngoài.
func warmHydrate(ov *overlay.Overlay, owner overlay.Owner, collectionName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	view, err := ov.Hydrate(ctx, owner)
	if err != nil {
		logger.GetAppLogger().WithError(err).WithField("collection", collectionName).
			Warn("Hydrate nền sau khi ghi thất bại")
		return
	}
	for _, def := range view.Definitions {
		if def.IsOrphan {
			logger.GetAppLogger().WithFields(map[string]interface{}{
				"collection": collectionName,
				"ownerId":    owner.OwnerID().Hex(),
				"key":        def.Key,
			}).Info("Phát hiện value orphan (không còn definition active)")
		}
	}
}
