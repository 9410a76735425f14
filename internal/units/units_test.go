package units

import (
	"testing"

	"github.com/Veraticus/larder/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{input: "tbsp", want: "tbsp", wantOK: true},
		{input: "Tablespoons", want: "tbsp", wantOK: true},
		{input: "T", want: "tbsp", wantOK: true},
		{input: "t", want: "tsp", wantOK: true},
		{input: "tsp.", want: "tsp", wantOK: true},
		{input: "LBS", want: "lb", wantOK: true},
		{input: "fluid  ounces", want: "fl oz", wantOK: true},
		{input: "cloves", want: "clove", wantOK: true},
		{input: "pieces", want: Each, wantOK: true},
		{input: "", wantOK: false},
		{input: "smidgen", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Canonical(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDimensionOf(t *testing.T) {
	assert.Equal(t, DimensionVolume, DimensionOf("cups"))
	assert.Equal(t, DimensionMass, DimensionOf("kg"))
	assert.Equal(t, DimensionCount, DimensionOf(""))
	assert.Equal(t, DimensionCount, DimensionOf("dozen"))
	assert.Equal(t, DimensionOther, DimensionOf("can"))
	assert.Equal(t, DimensionUnknown, DimensionOf("smidgen"))
}

func TestConvert_SameDimension(t *testing.T) {
	tests := []struct {
		name  string
		from  string
		to    string
		value float64
		want  float64
	}{
		{name: "tsp to tbsp", value: 3, from: "tsp", to: "tbsp", want: 1},
		{name: "g to kg", value: 1500, from: "g", to: "kg", want: 1.5},
		{name: "lb to oz", value: 1, from: "lb", to: "oz", want: 16},
		{name: "cup to ml", value: 1, from: "cup", to: "ml", want: 236.588},
		{name: "dozen to each", value: 1, from: "dozen", to: "", want: 12},
		{name: "same unit", value: 2, from: "can", to: "cans", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Convert(tt.value, tt.from, tt.to, nil)
			require.True(t, res.OK, res.Reason)
			assert.InDelta(t, tt.want, res.Value, 0.01)
			assert.Equal(t, FailureNone, res.Failure)
		})
	}
}

func TestConvert_CrossDimension(t *testing.T) {
	flour := &model.CanonicalIngredient{ID: "flour", Name: "flour", DensityGroup: "flour", SafeConversions: true}
	oil := &model.CanonicalIngredient{ID: "olive-oil", Name: "olive oil", Density: 0.91, SafeConversions: true}
	chicken := &model.CanonicalIngredient{ID: "chicken", Name: "chicken breast", Density: 1.05, SafeConversions: false}
	mystery := &model.CanonicalIngredient{ID: "mystery", Name: "mystery powder", SafeConversions: true}

	t.Run("volume to mass with group density", func(t *testing.T) {
		res := Convert(1, "cup", "g", flour)
		require.True(t, res.OK)
		assert.InDelta(t, 125.4, res.Value, 0.1)
	})

	t.Run("mass to volume with explicit density", func(t *testing.T) {
		res := Convert(91, "g", "ml", oil)
		require.True(t, res.OK)
		assert.InDelta(t, 100, res.Value, 0.01)
	})

	t.Run("unsafe ingredient refuses", func(t *testing.T) {
		res := Convert(1, "cup", "lb", chicken)
		assert.False(t, res.OK)
		assert.Equal(t, FailureUnsafe, res.Failure)
		assert.Contains(t, res.Reason, "chicken breast")
		assert.Zero(t, res.Value)
	})

	t.Run("unknown density refuses", func(t *testing.T) {
		res := Convert(1, "cup", "g", mystery)
		assert.False(t, res.OK)
		assert.Equal(t, FailureNoDensity, res.Failure)
	})

	t.Run("nil ingredient refuses", func(t *testing.T) {
		res := Convert(1, "cup", "g", nil)
		assert.False(t, res.OK)
		assert.Equal(t, FailureNoDensity, res.Failure)
	})
}

func TestConvert_Failures(t *testing.T) {
	res := Convert(1, "smidgen", "g", nil)
	assert.Equal(t, FailureUnknownUnit, res.Failure)
	assert.NotEmpty(t, res.Reason)

	res = Convert(1, "cup", "", nil)
	assert.Equal(t, FailureIncompatible, res.Failure)

	res = Convert(1, "can", "jar", nil)
	assert.Equal(t, FailureIncompatible, res.Failure)
}
