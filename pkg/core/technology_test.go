package core

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcCost(t *testing.T) {
	tests := []struct {
		name          string
		fuel          string
		prices        map[string]float64
		efficiency    float64
		nonEnergyCost float64
		wantFuelCost  float64
		wantTotalCost float64
	}{
		{
			name:          "priced fuel",
			fuel:          "gas",
			prices:        map[string]float64{"gas": 10},
			efficiency:    0.5,
			nonEnergyCost: 2,
			wantFuelCost:  20,
			wantTotalCost: 22,
		},
		{
			name:          "none fuel ignores ledger price",
			fuel:          "none",
			prices:        map[string]float64{"none": 100},
			efficiency:    0.5,
			nonEnergyCost: 2,
			wantFuelCost:  0,
			wantTotalCost: 2,
		},
		{
			name:          "renewable fuel is free",
			fuel:          "renewable",
			prices:        map[string]float64{"renewable": 100},
			efficiency:    1,
			nonEnergyCost: 3,
			wantFuelCost:  0,
			wantTotalCost: 3,
		},
		{
			name:          "empty fuel is free",
			fuel:          "",
			efficiency:    1,
			nonEnergyCost: 4,
			wantFuelCost:  0,
			wantTotalCost: 4,
		},
		{
			name:          "zero cost is floored",
			fuel:          "none",
			efficiency:    1,
			nonEnergyCost: 0,
			wantFuelCost:  0,
			wantTotalCost: SmallNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := newFakeLedger()
			for good, price := range tt.prices {
				ledger.setPrice(good, price)
			}
			tech := newTestTechnology("tech", tt.fuel, tt.efficiency, tt.nonEnergyCost)
			initTestTechnology(tech)

			tech.CalcCost(context.Background(), ledger, testRegion, testSector, 0)

			assert.InDelta(t, tt.wantFuelCost, tech.FuelCost(), 1e-12)
			assert.InDelta(t, tt.wantTotalCost, tech.TotalCost(), 1e-12)
		})
	}
}

func TestCalcCostMissingPrice(t *testing.T) {
	tech := newTestTechnology("tech", "coal", 0.5, 2)
	initTestTechnology(tech)

	tech.CalcCost(context.Background(), newFakeLedger(), testRegion, testSector, 0)

	assert.Equal(t, LargeNumber/0.5, tech.FuelCost())
	assert.Greater(t, tech.TotalCost(), 1e98)
}

func TestCalcCostPenaltiesAndMultipliers(t *testing.T) {
	ledger := newFakeLedger()
	ledger.setPrice("gas", 10)

	tech := newTestTechnology("tech", "gas", 0.5, 2)
	p := tech.Parameters()
	p.EfficiencyPenalty = 0.5
	p.NonEnergyCostPenalty = 1
	p.FuelMultiplier = 2
	tech.SetPriceMultiplier(2)
	initTestTechnology(tech)

	tech.CalcCost(context.Background(), ledger, testRegion, testSector, 0)

	// efficiency 0.25, fuel cost 10*2/0.25 = 80, non-energy 4, total (80+4)*2.
	assert.InDelta(t, 80, tech.FuelCost(), 1e-12)
	assert.InDelta(t, 168, tech.TotalCost(), 1e-12)
}

func TestCalcCostSecondaryValue(t *testing.T) {
	ledger := newFakeLedger()
	ledger.setPrice("gas", 10)
	ledger.setPrice("heat", 3)
	ledger.setPrice(CO2, 2)
	ledger.infos["gas"] = fakeInfo{CO2CoefKey: 0.5}

	tech := newTestTechnology("chp", "gas", 0.5, 2)
	tech.AddSecondaryOutput(NewSecondaryOutput("heat", 2))
	initTestTechnology(tech)
	tech.InitCalc(context.Background(), ledger, nil, testRegion, testSector, 0)

	tech.CalcCost(context.Background(), ledger, testRegion, testSector, 0)

	// CO2 cost per output = 2 * 0.5 / 0.5 = 2; heat revenue = 3 * 2 = 6.
	assert.InDelta(t, 2, tech.TotalGHGCost(ledger, testRegion, 0), 1e-12)
	assert.InDelta(t, 4, tech.CalcSecondaryValue(ledger, testRegion, 0), 1e-12)
	assert.InDelta(t, 22-4, tech.TotalCost(), 1e-12)
}

func TestCalcShareMonotonicInCost(t *testing.T) {
	tech := newTestTechnology("tech", "gas", 1, 0)
	initTestTechnology(tech)

	prev := math.Inf(1)
	for _, cost := range []float64{SmallNumber, 0.1, 1, 2, 5, 10, 100} {
		tech.totalCost = cost
		tech.CalcShare(context.Background(), testRegion, testSector, nil, 0)
		require.Less(t, tech.UnnormalizedShare(), prev, "cost %v", cost)
		prev = tech.UnnormalizedShare()
	}
}

func TestCalcShare(t *testing.T) {
	tests := []struct {
		name        string
		shareWeight float64
		exponent    float64
		elasticity  float64
		cost        float64
		macro       MacroDriver
		want        float64
	}{
		{
			name:        "power law",
			shareWeight: 2,
			exponent:    -2,
			cost:        2,
			want:        0.5,
		},
		{
			name:        "zero share weight",
			shareWeight: 0,
			exponent:    DefaultLogitExponent,
			cost:        0.5,
			want:        0,
		},
		{
			name:        "fuel preference elasticity",
			shareWeight: 1,
			exponent:    -1,
			elasticity:  0.5,
			cost:        1,
			macro:       constMacro(4),
			want:        2,
		},
		{
			name:        "elasticity without macro driver",
			shareWeight: 1,
			exponent:    -1,
			elasticity:  0.5,
			cost:        1,
			want:        1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tech := newTestTechnology("tech", "gas", 1, 0)
			tech.Parameters().FuelPrefElasticity = tt.elasticity
			tech.SetShareWeight(tt.shareWeight)
			tech.SetLogitExponent(tt.exponent)
			initTestTechnology(tech)
			tech.totalCost = tt.cost

			tech.CalcShare(context.Background(), testRegion, testSector, tt.macro, 0)

			assert.InDelta(t, tt.want, tech.UnnormalizedShare(), 1e-12)
		})
	}
}

func TestNormShare(t *testing.T) {
	tech := newTestTechnology("tech", "gas", 1, 0)
	tech.unnormalizedShare = 3

	tech.NormShare(4)
	assert.Equal(t, 0.75, tech.Share())

	tech.NormShare(0)
	assert.Equal(t, 0.0, tech.Share())
}

func TestCompleteInit(t *testing.T) {
	t.Run("adds CO2 and the primary output", func(t *testing.T) {
		tech := newTestTechnology("tech", "gas", 1, 0)
		tech.AddSecondaryOutput(NewSecondaryOutput("heat", 1))
		registrar := &fakeRegistrar{}

		tech.CompleteInit(context.Background(), testSector, registrar, nil, Options{Modeltime: testModeltime})
		tech.CompleteInit(context.Background(), testSector, registrar, nil, Options{Modeltime: testModeltime})

		outputs := tech.Outputs()
		require.Len(t, outputs, 2)
		assert.True(t, outputs[0].IsPrimary())
		assert.Equal(t, testSector, outputs[0].Name())
		assert.Equal(t, "heat", outputs[1].Name())
		assert.Equal(t, []string{CO2}, tech.GHGNames())
		assert.Contains(t, registrar.deps, [2]string{testSector, "gas"})
		assert.Contains(t, registrar.deps, [2]string{"heat", testSector})
	})

	t.Run("keeps a configured CO2 source", func(t *testing.T) {
		tech := newTestTechnology("tech", "gas", 1, 0)
		co2 := NewCO2(GHGParameters{RemoveFraction: 0.9})
		tech.AddEmissionSource(NewGHG("CH4", GHGParameters{Coefficient: 1}))
		tech.AddEmissionSource(co2)
		initTestTechnology(tech)

		assert.Equal(t, []string{"CH4", CO2}, tech.GHGNames())
		got, ok := tech.EmissionSource(CO2)
		require.True(t, ok)
		assert.Same(t, co2, got)
	})

	t.Run("zero fixed output registers nothing", func(t *testing.T) {
		tech := newTestTechnology("tech", "gas", 1, 0)
		tech.SetFixedOutput(0)
		tech.AddSecondaryOutput(NewSecondaryOutput("heat", 1))
		registrar := &fakeRegistrar{}

		tech.CompleteInit(context.Background(), testSector, registrar, nil, Options{Modeltime: testModeltime})

		assert.True(t, tech.HasNoInputOrOutput())
		assert.Empty(t, registrar.deps)
	})

	t.Run("invalid efficiency is reset", func(t *testing.T) {
		tech := newTestTechnology("tech", "gas", 0, 0)
		initTestTechnology(tech)
		assert.Equal(t, 1.0, tech.Efficiency(0))
	})

	t.Run("missing parameters get defaults", func(t *testing.T) {
		tech := NewTechnology("tech", 1990)
		initTestTechnology(tech)
		require.NotNil(t, tech.Parameters())
		assert.Equal(t, 1.0, tech.Efficiency(0))
		assert.Equal(t, "", tech.FuelName())
	})

	t.Run("fixed output is copied to the working value", func(t *testing.T) {
		tech := newTestTechnology("tech", "gas", 1, 0)
		tech.SetFixedOutput(25)
		initTestTechnology(tech)
		assert.Equal(t, 25.0, tech.FixedOutput())
	})

	t.Run("zero year does not panic", func(t *testing.T) {
		tech := NewTechnology("tech", 0)
		assert.NotPanics(t, func() { initTestTechnology(tech) })
	})
}

func TestGlobalParameters(t *testing.T) {
	shared := NewTechnologyParameters("coal-plant")
	shared.FuelName = "coal"
	shared.Efficiency = 0.4
	store := fakeStore{"coal-plant/1990": shared}

	tech := NewTechnology("coal-plant", 1990)
	tech.UseGlobalParameters()
	tech.CompleteInit(context.Background(), testSector, nil, store, Options{Modeltime: testModeltime})

	require.True(t, tech.HasSharedParameters())
	assert.Same(t, shared, tech.Parameters())
	assert.Equal(t, "coal", tech.FuelName())
	assert.Same(t, shared, tech.Clone().Parameters())

	resolved := NewTechnology("coal-plant", 1990)
	resolved.UseGlobalParameters()
	require.True(t, resolved.ResolveGlobalParameters(store))
	later := resolved.Clone()
	later.SetYear(context.Background(), 2005)
	later.CompleteInit(context.Background(), testSector, nil, store, Options{Modeltime: testModeltime})
	assert.Same(t, shared, later.Parameters())
	assert.Equal(t, "coal", later.FuelName())

	missing := NewTechnology("unknown", 1990)
	missing.UseGlobalParameters()
	missing.CompleteInit(context.Background(), testSector, nil, store, Options{Modeltime: testModeltime})
	assert.False(t, missing.HasSharedParameters())
	assert.NotNil(t, missing.Parameters())
}

func TestCloneProducesIdentically(t *testing.T) {
	ledger := newFakeLedger()
	ledger.setPrice("gas", 4)
	ledger.infos["gas"] = fakeInfo{CO2CoefKey: 0.2}

	orig := newTestTechnology("tech", "gas", 0.8, 1)
	orig.AddSecondaryOutput(NewSecondaryOutput("heat", 0.5))
	initTestTechnology(orig)
	clone := orig.Clone()

	run := func(tech *Technology) {
		ctx := context.Background()
		tech.InitCalc(ctx, ledger, nil, testRegion, testSector, 0)
		tech.CalcCost(ctx, ledger, testRegion, testSector, 0)
		tech.CalcShare(ctx, testRegion, testSector, nil, 0)
		tech.NormShare(tech.UnnormalizedShare() * 2)
		tech.Production(ctx, ledger, testRegion, testSector, 100, nil, 0)
		tech.CalcEmission(testSector, 0)
	}
	run(orig)
	run(clone)

	assert.Equal(t, orig.Share(), clone.Share())
	assert.Equal(t, orig.Input(), clone.Input())
	assert.Equal(t, orig.Output(0), clone.Output(0))
	assert.Equal(t, orig.EmissionsByGas(), clone.EmissionsByGas())
	assert.Equal(t, 50.0, clone.Output(0))

	// Mutating the clone leaves the original alone.
	clone.SetShareWeight(7)
	clone.Parameters().Efficiency = 0.1
	clone.Production(context.Background(), ledger, testRegion, testSector, 10, nil, 0)
	assert.Equal(t, 1.0, orig.ShareWeight())
	assert.Equal(t, 0.8, orig.Efficiency(0))
	assert.Equal(t, 50.0, orig.Output(0))
	assert.NotSame(t, orig.Parameters(), clone.Parameters())
}

func TestInitCalcCalibration(t *testing.T) {
	t.Run("negative calibration is removed", func(t *testing.T) {
		tech := newTestTechnology("tech", "gas", 1, 0)
		tech.SetCalibration(NewCalibrationOutput(-5))
		initTestTechnology(tech)

		tech.InitCalc(context.Background(), newFakeLedger(), nil, testRegion, testSector, 0)

		assert.False(t, tech.CalibrationStatus())
	})

	t.Run("per capita calibration uses population", func(t *testing.T) {
		tech := newTestTechnology("tech", "gas", 0.5, 0)
		tech.SetCalibration(NewCalibrationOutputPerCapita(2))
		initTestTechnology(tech)

		tech.InitCalc(context.Background(), newFakeLedger(), constMacro(10), testRegion, testSector, 0)

		assert.Equal(t, 20.0, tech.CalibrationOutput(0))
		assert.Equal(t, 40.0, tech.CalibrationInput(0))
		assert.Equal(t, 0.0, tech.CalibrationOutput(1))
	})
}

func TestSetYear(t *testing.T) {
	tech := NewTechnology("tech", 1990)
	tech.SetYear(context.Background(), -1)
	assert.Equal(t, 1990, tech.Year())
	tech.SetYear(context.Background(), 2005)
	assert.Equal(t, 2005, tech.Year())
}

func TestDebugCheckingAssertions(t *testing.T) {
	tech := newTestTechnology("tech", "gas", 1, 0)
	tech.CompleteInit(context.Background(), testSector, nil, nil, Options{Modeltime: testModeltime, DebugChecking: true})
	tech.SetShare(1)

	assert.Panics(t, func() {
		tech.Production(context.Background(), newFakeLedger(), testRegion, testSector, math.NaN(), nil, 0)
	})

	relaxed := newTestTechnology("tech", "gas", 1, 0)
	initTestTechnology(relaxed)
	assert.NotPanics(t, func() {
		relaxed.Production(context.Background(), newFakeLedger(), testRegion, testSector, -1, nil, 0)
	})
}
