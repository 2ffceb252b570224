package models

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	varmodels "planbase/internal/api/variables/models"
	"planbase/internal/api/variables/overlay"
)

// stubSource trả dữ liệu cố định cho overlay trong test serialize.
type stubSource struct {
	defs   []varmodels.VariableDefinition
	values []varmodels.VariableValue
}

func (s *stubSource) DefinitionsForScope(ctx context.Context, scope varmodels.VariableScope, includeInactive bool) ([]varmodels.VariableDefinition, error) {
	return s.defs, nil
}

func (s *stubSource) DefinitionsForScopes(ctx context.Context, scopes []varmodels.VariableScope) ([]varmodels.VariableDefinition, error) {
	return s.defs, nil
}

func (s *stubSource) FindForOwner(ctx context.Context, scope varmodels.VariableScope, ownerID primitive.ObjectID) ([]varmodels.VariableValue, error) {
	return s.values, nil
}

func (s *stubSource) FindForOwners(ctx context.Context, scopes []varmodels.VariableScope, ownerIDs []primitive.ObjectID) ([]varmodels.VariableValue, error) {
	return s.values, nil
}

func unmarshalVariables(t *testing.T, data []byte) interface{} {
	t.Helper()
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Contains(t, decoded, "variables")
	return decoded["variables"]
}

func TestStoreMarshalUnhydrated(t *testing.T) {
	store := Store{
		ID:                  primitive.NewObjectID(),
		OwnerOrganizationID: primitive.NewObjectID(),
		ClassroomID:         primitive.NewObjectID(),
		Name:                "Quầy nước chanh A",
		IsActive:            true,
	}

	data, err := json.Marshal(store)
	require.NoError(t, err)

	variables, ok := unmarshalVariables(t, data).(map[string]interface{})
	require.True(t, ok, "store chưa hydrate phải serialize variables là object")
	assert.Empty(t, variables)

	// Cache không được lọt ra JSON
	assert.NotContains(t, string(data), "Hydration")
}

func TestScenarioMarshalUnhydrated(t *testing.T) {
	scenario := Scenario{
		ID:                  primitive.NewObjectID(),
		OwnerOrganizationID: primitive.NewObjectID(),
		ClassroomID:         primitive.NewObjectID(),
		Name:                "Tuần cao điểm",
		IsActive:            true,
	}

	data, err := json.Marshal(scenario)
	require.NoError(t, err)

	variables, ok := unmarshalVariables(t, data).([]interface{})
	require.True(t, ok, "scenario chưa hydrate phải serialize variables là mảng")
	assert.Empty(t, variables)
}

func TestStoreMarshalHydrated(t *testing.T) {
	orgID := primitive.NewObjectID()
	classroomID := primitive.NewObjectID()
	store := Store{
		ID:                  primitive.NewObjectID(),
		OwnerOrganizationID: orgID,
		ClassroomID:         classroomID,
		Name:                "Quầy nước chanh A",
		IsActive:            true,
	}

	source := &stubSource{
		defs: []varmodels.VariableDefinition{
			{
				OwnerOrganizationID: orgID,
				ClassroomID:         &classroomID,
				ScopeCategory:       varmodels.ScopeCategoryStore,
				Key:                 "monthlyRent",
				Label:               "Tiền thuê tháng",
				DataType:            varmodels.DataTypeNumber,
				InputType:           varmodels.InputTypeNumber,
				IsActive:            true,
			},
		},
		values: []varmodels.VariableValue{
			{
				OwnerOrganizationID: orgID,
				ClassroomID:         &classroomID,
				ScopeCategory:       varmodels.ScopeCategoryStore,
				OwnerID:             store.ID,
				VariableKey:         "monthlyRent",
				Value:               float64(950),
			},
		},
	}
	ov := overlay.New(overlay.Config{
		ScopeCategory: varmodels.ScopeCategoryStore,
		Shape:         overlay.ShapeValueMap,
		Definitions:   source,
		Values:        source,
	})

	_, err := ov.Hydrate(context.Background(), &store)
	require.NoError(t, err)

	data, err := json.Marshal(store)
	require.NoError(t, err)

	variables, ok := unmarshalVariables(t, data).(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(950), variables["monthlyRent"])
}

func TestScenarioMarshalHydrated(t *testing.T) {
	orgID := primitive.NewObjectID()
	classroomID := primitive.NewObjectID()
	scenario := Scenario{
		ID:                  primitive.NewObjectID(),
		OwnerOrganizationID: orgID,
		ClassroomID:         classroomID,
		Name:                "Tuần cao điểm",
		IsActive:            true,
	}

	source := &stubSource{
		defs: []varmodels.VariableDefinition{
			{
				OwnerOrganizationID: orgID,
				ClassroomID:         &classroomID,
				ScopeCategory:       varmodels.ScopeCategoryScenario,
				Key:                 "expectedDemand",
				Label:               "Nhu cầu dự kiến",
				DataType:            varmodels.DataTypeNumber,
				InputType:           varmodels.InputTypeSlider,
				IsActive:            true,
			},
		},
	}
	ov := overlay.New(overlay.Config{
		ScopeCategory: varmodels.ScopeCategoryScenario,
		Shape:         overlay.ShapeDefinitionArray,
		Definitions:   source,
		Values:        source,
	})

	_, err := ov.Hydrate(context.Background(), &scenario)
	require.NoError(t, err)

	data, err := json.Marshal(scenario)
	require.NoError(t, err)

	variables, ok := unmarshalVariables(t, data).([]interface{})
	require.True(t, ok)
	require.Len(t, variables, 1)
	entry, ok := variables[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "expectedDemand", entry["key"])
	assert.Equal(t, false, entry["hasValue"])
}

func TestStoreTypeScopeIgnoresClassroom(t *testing.T) {
	storeType := StoreType{
		ID:                  primitive.NewObjectID(),
		OwnerOrganizationID: primitive.NewObjectID(),
		Code:                "lemonade",
		Name:                "Quầy nước chanh",
		IsActive:            true,
	}

	_, hasClassroom := storeType.ClassroomScope()
	assert.False(t, hasClassroom, "storeType là chủ thể phạm vi toàn tổ chức")

	data, err := json.Marshal(storeType)
	require.NoError(t, err)
	_, ok := unmarshalVariables(t, data).([]interface{})
	assert.True(t, ok, "storeType serialize variables là mảng definition")
}
