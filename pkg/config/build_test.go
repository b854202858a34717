package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/llm-d/technology-share-engine/pkg/core"
)

func TestVintageBuild(t *testing.T) {
	v := VintageSpec{
		Year:            2005,
		ShareWeight:     ptr.To(0.5),
		LogitExponent:   ptr.To(-3.0),
		PriceMultiplier: ptr.To(1.2),
		FixedOutput:     ptr.To(7.0),
		Parameters:      &core.TechnologyParameters{FuelName: "gas", Efficiency: 0.5, FuelMultiplier: 1},
		Calibration:     &CalibrationSpec{Kind: core.CalibrationKindInput, Value: 3},
		GHGs: []GHGSpec{
			{Gas: "CH4", GHGParameters: core.GHGParameters{Coefficient: 0.1}},
			{Gas: core.CO2, GHGParameters: core.GHGParameters{RemoveFraction: 0.9}},
		},
		SecondaryOutputs: []SecondaryOutputSpec{{Good: "heat", Coefficient: 0.3}},
		Note:             "test",
	}

	tech := v.Build("gas-plant")

	assert.Equal(t, "gas-plant", tech.Name())
	assert.Equal(t, 2005, tech.Year())
	assert.Equal(t, 0.5, tech.ShareWeight())
	assert.Equal(t, -3.0, tech.LogitExponent())
	assert.Equal(t, 1.2, tech.PriceMultiplier())
	assert.Equal(t, 7.0, tech.FixedOutputSpec())
	assert.Equal(t, "gas-plant", tech.Parameters().Name)
	assert.NotSame(t, v.Parameters, tech.Parameters())
	require.NotNil(t, tech.Calibration())
	assert.Equal(t, core.CalibrationKindInput, tech.Calibration().Kind())
	assert.Equal(t, []string{"CH4", core.CO2}, tech.GHGNames())
	require.Len(t, tech.Outputs(), 1)
	assert.Equal(t, "heat", tech.Outputs()[0].Name())
	assert.Equal(t, "test", tech.Note())
}

func TestVintageBuildGlobal(t *testing.T) {
	tech := VintageSpec{Year: 1990, Global: true}.Build("nuclear")
	assert.True(t, tech.UsesGlobalParameters())
	assert.Nil(t, tech.Parameters())
}

func TestTechnologyVintage(t *testing.T) {
	spec := TechnologySpec{
		Name:     "coal-plant",
		Vintages: []VintageSpec{{Year: 1990}, {Year: 2020}},
	}

	tests := []struct {
		year   int
		want   int
		wantOK bool
	}{
		{year: 1975, wantOK: false},
		{year: 1990, want: 1990, wantOK: true},
		{year: 2005, want: 1990, wantOK: true},
		{year: 2020, want: 2020, wantOK: true},
		{year: 2050, want: 2020, wantOK: true},
	}
	for _, tt := range tests {
		v, ok := spec.Vintage(tt.year)
		assert.Equal(t, tt.wantOK, ok, "year %d", tt.year)
		if ok {
			assert.Equal(t, tt.want, v.Year, "year %d", tt.year)
		}
	}
}
