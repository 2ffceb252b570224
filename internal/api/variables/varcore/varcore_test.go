package varcore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "planbase/internal/api/variables/models"
)

func floatPtr(f float64) *float64 { return &f }

func TestCompatibilityTable(t *testing.T) {
	assert.True(t, IsCompatible(models.DataTypeNumber, models.InputTypeNumber))
	assert.True(t, IsCompatible(models.DataTypeNumber, models.InputTypeSlider))
	assert.True(t, IsCompatible(models.DataTypeNumber, models.InputTypeKnob))
	assert.True(t, IsCompatible(models.DataTypeSelect, models.InputTypeDropdown))
	assert.True(t, IsCompatible(models.DataTypeString, models.InputTypeText))
	assert.True(t, IsCompatible(models.DataTypeString, models.InputTypeTextarea))
	assert.True(t, IsCompatible(models.DataTypeBoolean, models.InputTypeCheckbox))
	assert.True(t, IsCompatible(models.DataTypeBoolean, models.InputTypeToggle))

	assert.False(t, IsCompatible(models.DataTypeNumber, models.InputTypeText))
	assert.False(t, IsCompatible(models.DataTypeSelect, models.InputTypeText))
	assert.False(t, IsCompatible(models.DataTypeBoolean, models.InputTypeDropdown))
	assert.False(t, IsCompatible("unknown", models.InputTypeText))
}

func TestDefaultInputType(t *testing.T) {
	cases := map[string]string{
		models.DataTypeNumber:  models.InputTypeNumber,
		models.DataTypeSelect:  models.InputTypeDropdown,
		models.DataTypeString:  models.InputTypeText,
		models.DataTypeBoolean: models.InputTypeCheckbox,
	}
	for dataType, want := range cases {
		got, ok := DefaultInputType(dataType)
		require.True(t, ok, dataType)
		assert.Equal(t, want, got, dataType)
	}

	_, ok := DefaultInputType("json")
	assert.False(t, ok)
}

func TestParseOptionsNormalization(t *testing.T) {
	// Hỗn hợp object {label, value} và chuỗi trần
	raw := []interface{}{
		map[string]interface{}{"label": "Low", "value": "low"},
		"high",
	}
	options, err := ParseOptions(raw)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, models.VariableOption{Label: "Low", Value: "low"}, options[0])
	assert.Equal(t, models.VariableOption{Label: "high", Value: "high"}, options[1])

	// value rỗng lấy theo label
	raw = []interface{}{map[string]interface{}{"label": "Medium"}}
	options, err = ParseOptions(raw)
	require.NoError(t, err)
	assert.Equal(t, "Medium", options[0].Value)
}

func TestParseOptionsRejectsInvalid(t *testing.T) {
	_, err := ParseOptions([]interface{}{42})
	assert.Error(t, err)

	_, err = ParseOptions([]interface{}{""})
	assert.Error(t, err)

	_, err = ParseOptions([]interface{}{map[string]interface{}{"value": "x"}})
	assert.Error(t, err)
}

func TestValidateSelectMembership(t *testing.T) {
	defs := []models.VariableDefinition{
		{
			Key:      "priority",
			DataType: models.DataTypeSelect,
			Options: []models.VariableOption{
				{Label: "Low", Value: "low"},
				{Label: "high", Value: "high"},
			},
			IsActive: true,
		},
	}

	assert.True(t, Validate(defs, map[string]interface{}{"priority": "low"}).IsValid)
	assert.True(t, Validate(defs, map[string]interface{}{"priority": "high"}).IsValid)

	result := Validate(defs, map[string]interface{}{"priority": "medium"})
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "priority", result.Errors[0].Key)
}

func TestValidateNumberCoercionAndBounds(t *testing.T) {
	defs := []models.VariableDefinition{
		{Key: "demand", DataType: models.DataTypeNumber, Min: floatPtr(0), Max: floatPtr(5000), IsActive: true},
	}

	assert.True(t, Validate(defs, map[string]interface{}{"demand": 1200}).IsValid)
	assert.True(t, Validate(defs, map[string]interface{}{"demand": 1200.5}).IsValid)
	assert.True(t, Validate(defs, map[string]interface{}{"demand": json.Number("1200")}).IsValid)

	// chuỗi số không được coi là số
	assert.False(t, Validate(defs, map[string]interface{}{"demand": "1200"}).IsValid)

	assert.False(t, Validate(defs, map[string]interface{}{"demand": -1}).IsValid)
	assert.False(t, Validate(defs, map[string]interface{}{"demand": 5001}).IsValid)
	assert.True(t, Validate(defs, map[string]interface{}{"demand": 0}).IsValid)
	assert.True(t, Validate(defs, map[string]interface{}{"demand": 5000}).IsValid)
}

func TestValidateStrictBooleanAndString(t *testing.T) {
	defs := []models.VariableDefinition{
		{Key: "enabled", DataType: models.DataTypeBoolean, IsActive: true},
		{Key: "note", DataType: models.DataTypeString, IsActive: true},
	}

	assert.True(t, Validate(defs, map[string]interface{}{"enabled": true, "note": "ok"}).IsValid)
	assert.False(t, Validate(defs, map[string]interface{}{"enabled": "true"}).IsValid)
	assert.False(t, Validate(defs, map[string]interface{}{"enabled": 1}).IsValid)
	assert.False(t, Validate(defs, map[string]interface{}{"note": 42}).IsValid)
}

func TestValidateRequiredCollectedNotThrown(t *testing.T) {
	defs := []models.VariableDefinition{
		{Key: "a", DataType: models.DataTypeNumber, Required: true, IsActive: true},
		{Key: "b", DataType: models.DataTypeString, Required: true, IsActive: true},
		{Key: "c", DataType: models.DataTypeString, Required: false, IsActive: true},
	}

	result := Validate(defs, map[string]interface{}{})
	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 2)

	// chuỗi rỗng coi như thiếu
	result = Validate(defs, map[string]interface{}{"a": 1, "b": ""})
	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 1)
}

func TestValidateIgnoresOrphansAndInactive(t *testing.T) {
	defs := []models.VariableDefinition{
		{Key: "known", DataType: models.DataTypeNumber, IsActive: true},
		{Key: "retired", DataType: models.DataTypeNumber, Required: true, IsActive: false},
	}

	// key không có definition và definition đã inactive đều không gây lỗi
	result := Validate(defs, map[string]interface{}{"known": 1, "mystery": "whatever"})
	assert.True(t, result.IsValid)
}

func TestApplyDefaults(t *testing.T) {
	defs := []models.VariableDefinition{
		{Key: "expectedDemand", DataType: models.DataTypeNumber, DefaultValue: float64(1200), IsActive: true},
		{Key: "note", DataType: models.DataTypeString, IsActive: true},
		{Key: "retired", DataType: models.DataTypeNumber, DefaultValue: float64(9), IsActive: false},
	}

	out := ApplyDefaults(defs, map[string]interface{}{})
	assert.Equal(t, float64(1200), out["expectedDemand"])
	_, hasNote := out["note"]
	assert.False(t, hasNote)
	_, hasRetired := out["retired"]
	assert.False(t, hasRetired)

	// không ghi đè giá trị đã có
	out = ApplyDefaults(defs, map[string]interface{}{"expectedDemand": float64(800)})
	assert.Equal(t, float64(800), out["expectedDemand"])

	// chuỗi rỗng coi như chưa có giá trị
	out = ApplyDefaults(defs, map[string]interface{}{"expectedDemand": ""})
	assert.Equal(t, float64(1200), out["expectedDemand"])
}

func TestApplyDefaultsIdempotent(t *testing.T) {
	defs := []models.VariableDefinition{
		{Key: "expectedDemand", DataType: models.DataTypeNumber, DefaultValue: float64(1200), IsActive: true},
		{Key: "priority", DataType: models.DataTypeSelect, DefaultValue: "low", IsActive: true,
			Options: []models.VariableOption{{Label: "Low", Value: "low"}}},
	}

	candidate := map[string]interface{}{"other": 1}
	once := ApplyDefaults(defs, candidate)
	twice := ApplyDefaults(defs, once)
	assert.Equal(t, once, twice)

	// input gốc không bị thay đổi
	assert.Equal(t, map[string]interface{}{"other": 1}, candidate)
}
