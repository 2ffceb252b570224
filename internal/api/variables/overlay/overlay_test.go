package overlay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "planbase/internal/api/variables/models"
)

// fakeOwner là chủ thể tối giản cho test.
type fakeOwner struct {
	id        primitive.ObjectID
	orgID     primitive.ObjectID
	classroom *primitive.ObjectID
	cache     Cache
}

func (f *fakeOwner) OwnerID() primitive.ObjectID        { return f.id }
func (f *fakeOwner) OrganizationID() primitive.ObjectID { return f.orgID }
func (f *fakeOwner) ClassroomScope() (primitive.ObjectID, bool) {
	if f.classroom == nil {
		return primitive.NilObjectID, false
	}
	return *f.classroom, true
}
func (f *fakeOwner) VariableCache() *Cache { return &f.cache }

// fakeSource đếm số lần truy vấn storage.
type fakeSource struct {
	defs   []models.VariableDefinition
	values []models.VariableValue

	defSingleCalls int
	defBatchCalls  int
	valSingleCalls int
	valBatchCalls  int

	failDefs bool
}

func (f *fakeSource) DefinitionsForScope(ctx context.Context, scope models.VariableScope, includeInactive bool) ([]models.VariableDefinition, error) {
	f.defSingleCalls++
	if f.failDefs {
		return nil, errors.New("storage down")
	}
	out := []models.VariableDefinition{}
	for _, d := range f.defs {
		if matchScope(d.Scope(), scope) && (includeInactive || d.IsActive) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeSource) DefinitionsForScopes(ctx context.Context, scopes []models.VariableScope) ([]models.VariableDefinition, error) {
	f.defBatchCalls++
	out := []models.VariableDefinition{}
	for _, d := range f.defs {
		if !d.IsActive {
			continue
		}
		for _, scope := range scopes {
			if matchScope(d.Scope(), scope) {
				out = append(out, d)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeSource) FindForOwner(ctx context.Context, scope models.VariableScope, ownerID primitive.ObjectID) ([]models.VariableValue, error) {
	f.valSingleCalls++
	out := []models.VariableValue{}
	for _, v := range f.values {
		if matchScope(v.Scope(), scope) && v.OwnerID == ownerID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeSource) FindForOwners(ctx context.Context, scopes []models.VariableScope, ownerIDs []primitive.ObjectID) ([]models.VariableValue, error) {
	f.valBatchCalls++
	idSet := make(map[primitive.ObjectID]bool, len(ownerIDs))
	for _, id := range ownerIDs {
		idSet[id] = true
	}
	out := []models.VariableValue{}
	for _, v := range f.values {
		if !idSet[v.OwnerID] {
			continue
		}
		for _, scope := range scopes {
			if matchScope(v.Scope(), scope) {
				out = append(out, v)
				break
			}
		}
	}
	return out, nil
}

func matchScope(a, b models.VariableScope) bool {
	if a.OrganizationID != b.OrganizationID || a.Category != b.Category {
		return false
	}
	if (a.ClassroomID == nil) != (b.ClassroomID == nil) {
		return false
	}
	return a.ClassroomID == nil || *a.ClassroomID == *b.ClassroomID
}

func newTestOverlay(src *fakeSource, category string) *Overlay {
	return New(Config{
		ScopeCategory: category,
		Shape:         ShapeValueMap,
		Definitions:   src,
		Values:        src,
	})
}

func classroomScopedFixture() (*fakeSource, *fakeOwner) {
	orgID := primitive.NewObjectID()
	classroomID := primitive.NewObjectID()
	ownerID := primitive.NewObjectID()

	src := &fakeSource{
		defs: []models.VariableDefinition{
			{
				OwnerOrganizationID: orgID, ClassroomID: &classroomID,
				ScopeCategory: models.ScopeCategoryStore,
				Key:           "expectedDemand", Label: "Expected demand",
				DataType: models.DataTypeNumber, DefaultValue: float64(1200), IsActive: true,
			},
			{
				OwnerOrganizationID: orgID, ClassroomID: &classroomID,
				ScopeCategory: models.ScopeCategoryStore,
				Key:           "note", Label: "Note",
				DataType: models.DataTypeString, IsActive: true,
			},
		},
		values: []models.VariableValue{
			{
				OwnerOrganizationID: orgID, ClassroomID: &classroomID,
				ScopeCategory: models.ScopeCategoryStore,
				OwnerID:       ownerID, VariableKey: "expectedDemand", Value: float64(900),
			},
			{
				OwnerOrganizationID: orgID, ClassroomID: &classroomID,
				ScopeCategory: models.ScopeCategoryStore,
				OwnerID:       ownerID, VariableKey: "legacyKey", Value: "old",
			},
		},
	}
	owner := &fakeOwner{id: ownerID, orgID: orgID, classroom: &classroomID}
	return src, owner
}

func TestHydrateMergesDefinitionsAndValues(t *testing.T) {
	src, owner := classroomScopedFixture()
	o := newTestOverlay(src, models.ScopeCategoryStore)

	view, err := o.Hydrate(context.Background(), owner)
	require.NoError(t, err)

	assert.Equal(t, float64(900), view.Values["expectedDemand"])
	_, hasNote := view.Values["note"]
	assert.False(t, hasNote, "definition chưa có giá trị không xuất hiện trong value map")

	require.Len(t, view.Definitions, 3)
	byKey := map[string]DefinitionWithValue{}
	for _, d := range view.Definitions {
		byKey[d.Key] = d
	}
	assert.True(t, byKey["expectedDemand"].HasValue)
	assert.False(t, byKey["note"].HasValue)
}

func TestHydrateIsMemoizedPerInstance(t *testing.T) {
	src, owner := classroomScopedFixture()
	o := newTestOverlay(src, models.ScopeCategoryStore)

	first, err := o.Hydrate(context.Background(), owner)
	require.NoError(t, err)
	second, err := o.Hydrate(context.Background(), owner)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.defSingleCalls, "lần hydrate thứ hai không được chạm storage")
	assert.Equal(t, 1, src.valSingleCalls)

	// Instance khác của cùng document vẫn hydrate lại
	fresh := &fakeOwner{id: owner.id, orgID: owner.orgID, classroom: owner.classroom}
	_, err = o.Hydrate(context.Background(), fresh)
	require.NoError(t, err)
	assert.Equal(t, 2, src.defSingleCalls)
}

func TestHydrateSurfacesOrphanValues(t *testing.T) {
	src, owner := classroomScopedFixture()
	o := newTestOverlay(src, models.ScopeCategoryStore)

	view, err := o.Hydrate(context.Background(), owner)
	require.NoError(t, err)

	// legacyKey không còn definition nhưng vẫn xuất hiện ở cả hai shape
	assert.Equal(t, "old", view.Values["legacyKey"])
	var orphan *DefinitionWithValue
	for i := range view.Definitions {
		if view.Definitions[i].Key == "legacyKey" {
			orphan = &view.Definitions[i]
		}
	}
	require.NotNil(t, orphan)
	assert.True(t, orphan.IsOrphan)
	assert.False(t, orphan.IsActive)
	assert.True(t, orphan.HasValue)
	assert.Equal(t, "old", orphan.Value)
}

func TestHydrateUnresolvableScopeCachesEmpty(t *testing.T) {
	src, _ := classroomScopedFixture()
	o := newTestOverlay(src, models.ScopeCategoryStore)

	// store cần classroom; owner không có classroom → view rỗng, có cache, không lỗi
	owner := &fakeOwner{id: primitive.NewObjectID(), orgID: primitive.NewObjectID()}
	view, err := o.Hydrate(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, view.Values)
	assert.Empty(t, view.Definitions)
	assert.True(t, owner.cache.IsHydrated())
	assert.Equal(t, 0, src.defSingleCalls)
}

func TestHydrateFailureLeavesCacheEmpty(t *testing.T) {
	src, owner := classroomScopedFixture()
	src.failDefs = true
	o := newTestOverlay(src, models.ScopeCategoryStore)

	_, err := o.Hydrate(context.Background(), owner)
	require.Error(t, err)
	assert.False(t, owner.cache.IsHydrated(), "lỗi load không được cache thành view rỗng")

	// Hết lỗi thì hydrate lại được
	src.failDefs = false
	view, err := o.Hydrate(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, float64(900), view.Values["expectedDemand"])
}

func TestCachedOrEmpty(t *testing.T) {
	src, owner := classroomScopedFixture()
	o := newTestOverlay(src, models.ScopeCategoryStore)

	// Chưa hydrate → shape rỗng, không chạm storage
	view := o.CachedOrEmpty(owner)
	assert.Empty(t, view.Values)
	assert.Equal(t, 0, src.defSingleCalls)

	_, err := o.Hydrate(context.Background(), owner)
	require.NoError(t, err)

	view = o.CachedOrEmpty(owner)
	assert.Equal(t, float64(900), view.Values["expectedDemand"])
}

func TestHydrateManyUsesExactlyTwoQueries(t *testing.T) {
	orgID := primitive.NewObjectID()
	classA := primitive.NewObjectID()
	classB := primitive.NewObjectID()

	src := &fakeSource{}
	owners := []Owner{}
	ownerStructs := []*fakeOwner{}
	for i, class := range []primitive.ObjectID{classA, classA, classB} {
		id := primitive.NewObjectID()
		classroom := class
		o := &fakeOwner{id: id, orgID: orgID, classroom: &classroom}
		owners = append(owners, o)
		ownerStructs = append(ownerStructs, o)

		src.values = append(src.values, models.VariableValue{
			OwnerOrganizationID: orgID, ClassroomID: &classroom,
			ScopeCategory: models.ScopeCategoryStore,
			OwnerID:       id, VariableKey: "expectedDemand", Value: float64(100 * (i + 1)),
		})
	}
	for _, class := range []primitive.ObjectID{classA, classB} {
		classroom := class
		src.defs = append(src.defs, models.VariableDefinition{
			OwnerOrganizationID: orgID, ClassroomID: &classroom,
			ScopeCategory: models.ScopeCategoryStore,
			Key:           "expectedDemand", Label: "Expected demand",
			DataType: models.DataTypeNumber, IsActive: true,
		})
	}

	o := newTestOverlay(src, models.ScopeCategoryStore)
	require.NoError(t, o.HydrateMany(context.Background(), owners))

	assert.Equal(t, 1, src.defBatchCalls, "đúng một truy vấn definitions")
	assert.Equal(t, 1, src.valBatchCalls, "đúng một truy vấn values")
	assert.Equal(t, 0, src.defSingleCalls)
	assert.Equal(t, 0, src.valSingleCalls)

	for i, owner := range ownerStructs {
		view, ok := owner.cache.View()
		require.True(t, ok)
		assert.Equal(t, float64(100*(i+1)), view.Values["expectedDemand"])
	}
}

func TestHydrateManyMatchesPerInstanceHydrate(t *testing.T) {
	src, owner := classroomScopedFixture()
	o := newTestOverlay(src, models.ScopeCategoryStore)

	single := &fakeOwner{id: owner.id, orgID: owner.orgID, classroom: owner.classroom}
	singleView, err := o.Hydrate(context.Background(), single)
	require.NoError(t, err)

	batch := &fakeOwner{id: owner.id, orgID: owner.orgID, classroom: owner.classroom}
	require.NoError(t, o.HydrateMany(context.Background(), []Owner{batch}))
	batchView, ok := batch.cache.View()
	require.True(t, ok)

	assert.Equal(t, singleView, batchView)
}

func TestHydrateManySkipsHydratedAndUnresolvable(t *testing.T) {
	src, hydrated := classroomScopedFixture()
	o := newTestOverlay(src, models.ScopeCategoryStore)

	_, err := o.Hydrate(context.Background(), hydrated)
	require.NoError(t, err)
	callsBefore := src.defSingleCalls

	noScope := &fakeOwner{id: primitive.NewObjectID(), orgID: primitive.NewObjectID()}
	require.NoError(t, o.HydrateMany(context.Background(), []Owner{hydrated, noScope}))

	// Cả hai đều đã xử lý xong mà không cần truy vấn nào thêm
	assert.Equal(t, callsBefore, src.defSingleCalls)
	assert.Equal(t, 0, src.defBatchCalls)
	assert.True(t, noScope.cache.IsHydrated())
	assert.Empty(t, o.CachedOrEmpty(noScope).Values)
}

func TestStoreTypeScopeIgnoresClassroom(t *testing.T) {
	orgID := primitive.NewObjectID()
	ownerID := primitive.NewObjectID()

	src := &fakeSource{
		defs: []models.VariableDefinition{
			{
				OwnerOrganizationID: orgID, ClassroomID: nil,
				ScopeCategory: models.ScopeCategoryStoreType,
				Key:           "capacityFactor", Label: "Capacity factor",
				DataType: models.DataTypeNumber, IsActive: true,
			},
		},
		values: []models.VariableValue{
			{
				OwnerOrganizationID: orgID, ClassroomID: nil,
				ScopeCategory: models.ScopeCategoryStoreType,
				OwnerID:       ownerID, VariableKey: "capacityFactor", Value: float64(0.8),
			},
		},
	}
	o := newTestOverlay(src, models.ScopeCategoryStoreType)

	owner := &fakeOwner{id: ownerID, orgID: orgID}
	view, err := o.Hydrate(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, float64(0.8), view.Values["capacityFactor"])
}

func TestCachePayloadShapes(t *testing.T) {
	src, owner := classroomScopedFixture()
	o := newTestOverlay(src, models.ScopeCategoryStore)

	// Chưa hydrate: shape rỗng tương ứng
	assert.Equal(t, map[string]interface{}{}, owner.cache.Payload(ShapeValueMap))
	assert.Equal(t, []DefinitionWithValue{}, owner.cache.Payload(ShapeDefinitionArray))

	_, err := o.Hydrate(context.Background(), owner)
	require.NoError(t, err)

	valueMap, ok := owner.cache.Payload(ShapeValueMap).(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(900), valueMap["expectedDemand"])

	defArray, ok := owner.cache.Payload(ShapeDefinitionArray).([]DefinitionWithValue)
	require.True(t, ok)
	assert.Len(t, defArray, 3)
}
