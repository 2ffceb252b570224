package overlay

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	models "planbase/internal/api/variables/models"
	"planbase/internal/logger"
)

// Owner là hợp đồng tối thiểu mà một model chủ thể phải đáp ứng để được
// hydrate. Các model domain (Store, Scenario, Submission, StoreType) nhúng
// Cache và implement các method này.
type Owner interface {
	// OwnerID trả về _id của instance.
	OwnerID() primitive.ObjectID
	// OrganizationID trả về tổ chức sở hữu instance.
	OrganizationID() primitive.ObjectID
	// ClassroomScope trả về classroom của instance; ok = false với chủ thể
	// phạm vi toàn tổ chức (storeType).
	ClassroomScope() (primitive.ObjectID, bool)
	// VariableCache trả về cache hydrate nhúng trong instance.
	VariableCache() *Cache
}

// DefinitionSource nguồn đọc variable definitions.
// Tách interface để test đếm được số truy vấn storage.
type DefinitionSource interface {
	DefinitionsForScope(ctx context.Context, scope models.VariableScope, includeInactive bool) ([]models.VariableDefinition, error)
	DefinitionsForScopes(ctx context.Context, scopes []models.VariableScope) ([]models.VariableDefinition, error)
}

// ValueSource nguồn đọc variable values.
type ValueSource interface {
	FindForOwner(ctx context.Context, scope models.VariableScope, ownerID primitive.ObjectID) ([]models.VariableValue, error)
	FindForOwners(ctx context.Context, scopes []models.VariableScope, ownerIDs []primitive.ObjectID) ([]models.VariableValue, error)
}

// Config cấu hình overlay cho một loại chủ thể.
type Config struct {
	ScopeCategory string           // category của loại chủ thể (store, scenario, submission, storeType)
	Shape         Shape            // shape mặc định khi serialize
	Definitions   DefinitionSource // nguồn definitions
	Values        ValueSource      // nguồn values
}

// Overlay hydrate lớp biến động cho một loại chủ thể.
type Overlay struct {
	cfg Config
}

// New tạo overlay cho một loại chủ thể.
func New(cfg Config) *Overlay {
	return &Overlay{cfg: cfg}
}

// Shape trả về shape mặc định của loại chủ thể.
func (o *Overlay) Shape() Shape {
	return o.cfg.Shape
}

// ResolveScope suy ra scope của một instance (dùng bởi các service ghi values
// theo ngữ nghĩa edit). ok = false khi scope không xác định được.
func (o *Overlay) ResolveScope(owner Owner) (models.VariableScope, bool) {
	return o.resolveScope(owner)
}

// resolveScope suy ra scope của một instance.
// ok = false khi scope không xác định được (thiếu organization, hoặc loại
// chủ thể cần classroom mà instance không có).
func (o *Overlay) resolveScope(owner Owner) (models.VariableScope, bool) {
	orgID := owner.OrganizationID()
	if orgID.IsZero() {
		return models.VariableScope{}, false
	}

	scope := models.VariableScope{
		OrganizationID: orgID,
		Category:       o.cfg.ScopeCategory,
	}

	classroomID, hasClassroom := owner.ClassroomScope()
	if o.cfg.ScopeCategory == models.ScopeCategoryStoreType {
		// storeType là phạm vi toàn tổ chức, bỏ qua classroom nếu có
		return scope, true
	}
	if !hasClassroom || classroomID.IsZero() {
		return models.VariableScope{}, false
	}
	scope.ClassroomID = &classroomID
	return scope, true
}

// Hydrate nạp lớp biến động cho một instance: một lần load definitions, một
// lần load values, merge rồi memo hóa vào cache của instance. Gọi lại trên
// instance đã hydrate trả thẳng cache, không chạm storage.
//
// Scope không xác định được → view rỗng, được cache, không lỗi.
// Load thất bại → trả lỗi và KHÔNG cache (lần gọi sau thử lại).
func (o *Overlay) Hydrate(ctx context.Context, owner Owner) (HydratedView, error) {
	cache := owner.VariableCache()
	if view, ok := cache.View(); ok {
		return view, nil
	}

	scope, ok := o.resolveScope(owner)
	if !ok {
		empty := EmptyView()
		cache.store(empty)
		return empty, nil
	}

	defs, err := o.cfg.Definitions.DefinitionsForScope(ctx, scope, false)
	if err != nil {
		return EmptyView(), err
	}
	values, err := o.cfg.Values.FindForOwner(ctx, scope, owner.OwnerID())
	if err != nil {
		return EmptyView(), err
	}

	view := merge(defs, values)
	cache.store(view)
	return view, nil
}

// CachedOrEmpty truy cập đồng bộ: trả view đã memo hóa, hoặc view rỗng khi
// instance chưa hydrate. Không bao giờ chạm storage, không lỗi.
func (o *Overlay) CachedOrEmpty(owner Owner) HydratedView {
	if view, ok := owner.VariableCache().View(); ok {
		return view
	}
	return EmptyView()
}

// HydrateMany hydrate một danh sách instance với ĐÚNG 2 truy vấn storage:
// một truy vấn definitions trên các cặp scope khác nhau và một truy vấn
// values trên các cặp scope + danh sách ownerId. Cả hai truy vấn hoàn tất
// trước khi merge; kết quả merge từng instance giống hệt Hydrate đơn lẻ.
func (o *Overlay) HydrateMany(ctx context.Context, owners []Owner) error {
	type resolved struct {
		owner Owner
		scope models.VariableScope
		key   string
	}

	pending := make([]resolved, 0, len(owners))
	scopeSeen := make(map[string]models.VariableScope)
	ownerIDs := make([]primitive.ObjectID, 0, len(owners))

	for _, owner := range owners {
		if owner.VariableCache().IsHydrated() {
			continue
		}
		scope, ok := o.resolveScope(owner)
		if !ok {
			owner.VariableCache().store(EmptyView())
			continue
		}
		key := scopeKey(scope)
		scopeSeen[key] = scope
		pending = append(pending, resolved{owner: owner, scope: scope, key: key})
		ownerIDs = append(ownerIDs, owner.OwnerID())
	}

	if len(pending) == 0 {
		return nil
	}

	scopes := make([]models.VariableScope, 0, len(scopeSeen))
	for _, scope := range scopeSeen {
		scopes = append(scopes, scope)
	}

	defs, err := o.cfg.Definitions.DefinitionsForScopes(ctx, scopes)
	if err != nil {
		return err
	}
	values, err := o.cfg.Values.FindForOwners(ctx, scopes, ownerIDs)
	if err != nil {
		return err
	}

	defsByScope := make(map[string][]models.VariableDefinition)
	for i := range defs {
		key := scopeKey(defs[i].Scope())
		defsByScope[key] = append(defsByScope[key], defs[i])
	}
	valuesByOwner := make(map[string][]models.VariableValue)
	for i := range values {
		key := scopeKey(values[i].Scope()) + "/" + values[i].OwnerID.Hex()
		valuesByOwner[key] = append(valuesByOwner[key], values[i])
	}

	for _, item := range pending {
		ownerValues := valuesByOwner[item.key+"/"+item.owner.OwnerID().Hex()]
		view := merge(defsByScope[item.key], ownerValues)
		item.owner.VariableCache().store(view)
	}

	logger.GetAppLogger().WithField("owners", len(pending)).Debug("HydrateMany: hydrate hàng loạt hoàn tất")
	return nil
}

// scopeKey khóa nhóm trong bộ nhớ cho một scope.
func scopeKey(scope models.VariableScope) string {
	classroom := "-"
	if scope.ClassroomID != nil {
		classroom = scope.ClassroomID.Hex()
	}
	return scope.OrganizationID.Hex() + "/" + classroom + "/" + scope.Category
}
