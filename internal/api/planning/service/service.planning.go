// Package plansvc - service cho các chủ thể planning (Store, Scenario,
// Submission, StoreType). Mỗi service ghép base CRUD với overlay biến động
// của loại chủ thể tương ứng.
package plansvc

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	basesvc "planbase/internal/api/base/service"
	models "planbase/internal/api/planning/models"
	varmodels "planbase/internal/api/variables/models"
	"planbase/internal/api/variables/overlay"
	varsvc "planbase/internal/api/variables/service"
	"planbase/internal/common"
	"planbase/internal/global"
)

// VariableStack gom các thành phần biến động dùng chung cho mọi owner service.
type VariableStack struct {
	Definitions *varsvc.DefinitionService
	Values      *varsvc.ValueService
}

func NewVariableStack() (*VariableStack, error) {
	definitions, err := varsvc.NewDefinitionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create definition service: %v", err)
	}
	values, err := varsvc.NewValueService()
	if err != nil {
		return nil, fmt.Errorf("failed to create value service: %v", err)
	}
	return &VariableStack{Definitions: definitions, Values: values}, nil
}

func (s *VariableStack) newOverlay(category string, shape overlay.Shape) *overlay.Overlay {
	return overlay.New(overlay.Config{
		ScopeCategory: category,
		Shape:         shape,
		Definitions:   s.Definitions,
		Values:        s.Values,
	})
}

func ownerCollection(name string) (*mongo.Collection, error) {
	col, exist := global.RegistryCollections.Get(name)
	if !exist {
		return nil, fmt.Errorf("failed to get %s collection: %v", name, common.ErrNotFound)
	}
	return col, nil
}

// StoreService quản lý cửa hàng.
type StoreService struct {
	*basesvc.BaseServiceMongoImpl[models.Store]
	Variables *VariableStack
	Overlay   *overlay.Overlay
}

// NewStoreService tạo mới StoreService.
func NewStoreService() (*StoreService, error) {
	col, err := ownerCollection(global.ColNames.Stores)
	if err != nil {
		return nil, err
	}
	stack, err := NewVariableStack()
	if err != nil {
		return nil, err
	}
	return &StoreService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Store](col),
		Variables:            stack,
		Overlay:              stack.newOverlay(varmodels.ScopeCategoryStore, overlay.ShapeValueMap),
	}, nil
}

// ScenarioService quản lý kịch bản.
type ScenarioService struct {
	*basesvc.BaseServiceMongoImpl[models.Scenario]
	Variables *VariableStack
	Overlay   *overlay.Overlay
}

// NewScenarioService tạo mới ScenarioService.
func NewScenarioService() (*ScenarioService, error) {
	col, err := ownerCollection(global.ColNames.Scenarios)
	if err != nil {
		return nil, err
	}
	stack, err := NewVariableStack()
	if err != nil {
		return nil, err
	}
	return &ScenarioService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Scenario](col),
		Variables:            stack,
		Overlay:              stack.newOverlay(varmodels.ScopeCategoryScenario, overlay.ShapeDefinitionArray),
	}, nil
}

// SubmissionService quản lý bài nộp.
type SubmissionService struct {
	*basesvc.BaseServiceMongoImpl[models.Submission]
	Variables *VariableStack
	Overlay   *overlay.Overlay
}

// NewSubmissionService tạo mới SubmissionService.
func NewSubmissionService() (*SubmissionService, error) {
	col, err := ownerCollection(global.ColNames.Submissions)
	if err != nil {
		return nil, err
	}
	stack, err := NewVariableStack()
	if err != nil {
		return nil, err
	}
	return &SubmissionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Submission](col),
		Variables:            stack,
		Overlay:              stack.newOverlay(varmodels.ScopeCategorySubmission, overlay.ShapeValueMap),
	}, nil
}

// StoreTypeService quản lý loại cửa hàng (phạm vi toàn tổ chức).
type StoreTypeService struct {
	*basesvc.BaseServiceMongoImpl[models.StoreType]
	Variables *VariableStack
	Overlay   *overlay.Overlay
}

// NewStoreTypeService tạo mới StoreTypeService.
func NewStoreTypeService() (*StoreTypeService, error) {
	col, err := ownerCollection(global.ColNames.StoreTypes)
	if err != nil {
		return nil, err
	}
	stack, err := NewVariableStack()
	if err != nil {
		return nil, err
	}
	return &StoreTypeService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.StoreType](col),
		Variables:            stack,
		Overlay:              stack.newOverlay(varmodels.ScopeCategoryStoreType, overlay.ShapeDefinitionArray),
	}, nil
}
