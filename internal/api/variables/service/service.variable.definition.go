// Package varsvc - service cho domain variables (definitions + values).
package varsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "planbase/internal/api/base/service"
	models "planbase/internal/api/variables/models"
	"planbase/internal/api/variables/varcore"
	"planbase/internal/common"
	"planbase/internal/global"
)

// DefinitionService quản lý variable definitions: đăng ký, truy vấn theo
// scope, soft delete / restore.
type DefinitionService struct {
	*basesvc.BaseServiceMongoImpl[models.VariableDefinition]
}

// NewDefinitionService tạo mới DefinitionService.
func NewDefinitionService() (*DefinitionService, error) {
	col, exist := global.RegistryCollections.Get(global.ColNames.VariableDefinitions)
	if !exist {
		return nil, fmt.Errorf("failed to get variable_definitions collection: %v", common.ErrNotFound)
	}
	return &DefinitionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.VariableDefinition](col),
	}, nil
}

// configError tạo lỗi cấu hình definition (luôn StatusBadRequest).
func configError(message string, details any) error {
	return common.NewError(common.ErrCodeVariableConfig, message, common.StatusBadRequest, details)
}

// scopeFilter xây filter MongoDB cho một scope.
// ClassroomID nil match document có classroomId null (category storeType).
func scopeFilter(scope models.VariableScope) bson.M {
	filter := bson.M{
		"ownerOrganizationId": scope.OrganizationID,
		"scopeCategory":       scope.Category,
	}
	if scope.ClassroomID != nil {
		filter["classroomId"] = *scope.ClassroomID
	} else {
		filter["classroomId"] = nil
	}
	return filter
}

// validateScope kiểm tra tính hợp lệ của scope: classroomId chỉ được phép
// vắng mặt khi category là storeType.
func validateScope(scope models.VariableScope) error {
	if scope.OrganizationID.IsZero() {
		return configError("Thiếu organizationId cho scope", nil)
	}
	switch scope.Category {
	case models.ScopeCategoryStore, models.ScopeCategoryScenario, models.ScopeCategorySubmission:
		if scope.ClassroomID == nil || scope.ClassroomID.IsZero() {
			return configError(fmt.Sprintf("Scope category %s yêu cầu classroomId", scope.Category), nil)
		}
	case models.ScopeCategoryStoreType:
		if scope.ClassroomID != nil {
			return configError("Scope category storeType không được gắn với classroom", nil)
		}
	default:
		return configError(fmt.Sprintf("Scope category %q không được hỗ trợ", scope.Category), nil)
	}
	return nil
}

// Register đăng ký một variable definition mới sau khi kiểm tra toàn bộ cấu hình:
// scope hợp lệ, dataType thuộc enum, inputType tương thích (tự điền mặc định khi
// bỏ trống), options chuẩn hóa cho select, min/max nhất quán, defaultValue thỏa
// mãn chính definition, và không trùng (scope, key) với definition đang active.
func (s *DefinitionService) Register(ctx context.Context, def *models.VariableDefinition) (*models.VariableDefinition, error) {
	scope := def.Scope()
	if err := validateScope(scope); err != nil {
		return nil, err
	}

	if !varcore.IsValidDataType(def.DataType) {
		return nil, configError(fmt.Sprintf("DataType %q không được hỗ trợ", def.DataType), nil)
	}

	if def.InputType == "" {
		def.InputType, _ = varcore.DefaultInputType(def.DataType)
	} else if !varcore.IsCompatible(def.DataType, def.InputType) {
		return nil, configError(
			fmt.Sprintf("InputType %q không tương thích với dataType %q", def.InputType, def.DataType),
			map[string]interface{}{"compatible": varcore.CompatibleInputTypes(def.DataType)},
		)
	}

	if def.DataType == models.DataTypeSelect {
		if len(def.Options) == 0 {
			return nil, configError("Definition kiểu select yêu cầu danh sách options không rỗng", nil)
		}
		def.Options = varcore.NormalizeOptions(def.Options)
	} else {
		def.Options = nil
	}

	if def.Min != nil && def.Max != nil && *def.Min > *def.Max {
		return nil, configError("Ràng buộc min không được lớn hơn max", nil)
	}

	// defaultValue phải tự thỏa mãn definition
	if def.DefaultValue != nil {
		probe := []models.VariableDefinition{*def}
		probe[0].IsActive = true
		result := varcore.Validate(probe, map[string]interface{}{def.Key: def.DefaultValue})
		if !result.IsValid {
			return nil, configError("DefaultValue không thỏa mãn definition", result.Errors)
		}
	}

	// Một scope chỉ có tối đa một definition active cho mỗi key.
	// Kiểm tra ở service vì unique index sẽ va chạm với soft delete.
	dupFilter := scopeFilter(scope)
	dupFilter["key"] = def.Key
	dupFilter["isActive"] = true
	count, err := s.CountDocuments(ctx, dupFilter)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, configError(fmt.Sprintf("Key %q đã tồn tại trong scope này", def.Key), nil)
	}

	def.IsActive = true
	created, err := s.InsertOne(ctx, *def)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// DefinitionsForScope trả về các definition của một scope, sắp xếp theo label.
// Mặc định chỉ trả definition đang active; includeInactive = true trả cả đã soft delete.
func (s *DefinitionService) DefinitionsForScope(ctx context.Context, scope models.VariableScope, includeInactive bool) ([]models.VariableDefinition, error) {
	if err := validateScope(scope); err != nil {
		return nil, err
	}
	filter := scopeFilter(scope)
	if !includeInactive {
		filter["isActive"] = true
	}
	opts := mongoopts.Find().SetSort(bson.D{{Key: "label", Value: 1}})
	return s.Find(ctx, filter, opts)
}

// DefinitionsForScopes trả về definition active của nhiều scope trong MỘT truy
// vấn ($or trên các cặp scope). Dùng cho hydrate hàng loạt.
func (s *DefinitionService) DefinitionsForScopes(ctx context.Context, scopes []models.VariableScope) ([]models.VariableDefinition, error) {
	if len(scopes) == 0 {
		return []models.VariableDefinition{}, nil
	}
	or := make([]bson.M, 0, len(scopes))
	for _, scope := range scopes {
		or = append(or, scopeFilter(scope))
	}
	filter := bson.M{"$or": or, "isActive": true}
	opts := mongoopts.Find().SetSort(bson.D{{Key: "label", Value: 1}})
	return s.Find(ctx, filter, opts)
}

// SoftDelete đánh dấu definition không còn active. Idempotent: gọi trên
// definition đã inactive không gây lỗi. Không bao giờ cascade xóa values.
func (s *DefinitionService) SoftDelete(ctx context.Context, id primitive.ObjectID) (models.VariableDefinition, error) {
	return s.UpdateById(ctx, id, map[string]interface{}{"isActive": false})
}

// Restore kích hoạt lại definition đã soft delete. Idempotent.
// Trả lỗi cấu hình nếu việc restore tạo ra hai definition active cùng (scope, key).
func (s *DefinitionService) Restore(ctx context.Context, id primitive.ObjectID) (models.VariableDefinition, error) {
	def, err := s.FindOneById(ctx, id)
	if err != nil {
		return def, err
	}
	if def.IsActive {
		return def, nil
	}

	dupFilter := scopeFilter(def.Scope())
	dupFilter["key"] = def.Key
	dupFilter["isActive"] = true
	dupFilter["_id"] = bson.M{"$ne": id}
	count, err := s.CountDocuments(ctx, dupFilter)
	if err != nil {
		return def, err
	}
	if count > 0 {
		return def, configError(fmt.Sprintf("Không thể restore: key %q đã có definition active khác trong scope", def.Key), nil)
	}

	return s.UpdateById(ctx, id, map[string]interface{}{"isActive": true})
}
