package varsvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "planbase/internal/api/base/service"
	models "planbase/internal/api/variables/models"
	"planbase/internal/common"
	"planbase/internal/global"
)

// ValueService quản lý variable values: mỗi tuple
// (organization, classroom, category, owner, key) có đúng một document.
type ValueService struct {
	*basesvc.BaseServiceMongoImpl[models.VariableValue]
}

// NewValueService tạo mới ValueService.
func NewValueService() (*ValueService, error) {
	col, exist := global.RegistryCollections.Get(global.ColNames.VariableValues)
	if !exist {
		return nil, fmt.Errorf("failed to get variable_values collection: %v", common.ErrNotFound)
	}
	return &ValueService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.VariableValue](col),
	}, nil
}

// tupleFilter xây filter 5-tuple định danh một value.
func tupleFilter(scope models.VariableScope, ownerID primitive.ObjectID, key string) bson.M {
	filter := scopeFilter(scope)
	filter["ownerId"] = ownerID
	filter["variableKey"] = key
	return filter
}

// SetValue ghi giá trị cho một tuple. Atomic upsert: hai request đồng thời trên
// cùng tuple hội tụ về một document (unique index value_tuple_unique), bên thua
// race được retry như update thuần ở tầng base — người ghi sau thắng.
func (s *ValueService) SetValue(ctx context.Context, scope models.VariableScope, ownerID primitive.ObjectID, key string, value interface{}) (models.VariableValue, error) {
	var zero models.VariableValue
	if err := validateScope(scope); err != nil {
		return zero, err
	}
	if ownerID.IsZero() {
		return zero, common.NewError(common.ErrCodeValidationInput, "Thiếu ownerId", common.StatusBadRequest, nil)
	}
	if key == "" {
		return zero, common.NewError(common.ErrCodeValidationInput, "Thiếu variable key", common.StatusBadRequest, nil)
	}

	set := map[string]interface{}{
		"ownerOrganizationId": scope.OrganizationID,
		"scopeCategory":       scope.Category,
		"ownerId":             ownerID,
		"variableKey":         key,
		"value":               value,
	}
	if scope.ClassroomID != nil {
		set["classroomId"] = *scope.ClassroomID
	} else {
		set["classroomId"] = nil
	}

	return s.Upsert(ctx, tupleFilter(scope, ownerID, key), set)
}

// FindForOwner trả về tất cả value của một chủ thể trong một scope.
func (s *ValueService) FindForOwner(ctx context.Context, scope models.VariableScope, ownerID primitive.ObjectID) ([]models.VariableValue, error) {
	if err := validateScope(scope); err != nil {
		return nil, err
	}
	filter := scopeFilter(scope)
	filter["ownerId"] = ownerID
	return s.Find(ctx, filter, nil)
}

// FindForOwners trả về value của nhiều chủ thể thuộc nhiều scope trong MỘT
// truy vấn ($or trên các scope, $in trên ownerId). Dùng cho hydrate hàng loạt.
func (s *ValueService) FindForOwners(ctx context.Context, scopes []models.VariableScope, ownerIDs []primitive.ObjectID) ([]models.VariableValue, error) {
	if len(scopes) == 0 || len(ownerIDs) == 0 {
		return []models.VariableValue{}, nil
	}
	or := make([]bson.M, 0, len(scopes))
	for _, scope := range scopes {
		or = append(or, scopeFilter(scope))
	}
	filter := bson.M{
		"$or":     or,
		"ownerId": bson.M{"$in": ownerIDs},
	}
	return s.Find(ctx, filter, nil)
}

// DeleteValue xóa giá trị của một tuple. Xóa tuple không tồn tại không phải lỗi.
func (s *ValueService) DeleteValue(ctx context.Context, scope models.VariableScope, ownerID primitive.ObjectID, key string) error {
	if err := validateScope(scope); err != nil {
		return err
	}
	err := s.DeleteOne(ctx, tupleFilter(scope, ownerID, key))
	if err != nil && errors.Is(err, common.ErrNotFound) {
		return nil
	}
	return err
}

// ReplaceOwnerValues thay toàn bộ giá trị của một chủ thể theo ngữ nghĩa edit:
// key có trong values được upsert, key đang tồn tại nhưng vắng mặt trong
// values bị xóa. Giá trị nil trong values được hiểu là xóa key đó.
func (s *ValueService) ReplaceOwnerValues(ctx context.Context, scope models.VariableScope, ownerID primitive.ObjectID, values map[string]interface{}) error {
	if err := validateScope(scope); err != nil {
		return err
	}

	existing, err := s.FindForOwner(ctx, scope, ownerID)
	if err != nil {
		return err
	}

	keep := make(map[string]bool, len(values))
	for key, value := range values {
		if value == nil {
			continue
		}
		keep[key] = true
		if _, err := s.SetValue(ctx, scope, ownerID, key, value); err != nil {
			return err
		}
	}

	for _, row := range existing {
		if keep[row.VariableKey] {
			continue
		}
		if err := s.DeleteValue(ctx, scope, ownerID, row.VariableKey); err != nil {
			return err
		}
	}
	return nil
}
