package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduction(t *testing.T) {
	tests := []struct {
		name       string
		fuel       string
		efficiency float64
		share      float64
		demand     float64
		wantOutput float64
		wantInput  float64
		wantDemand float64
	}{
		{
			name:       "priced fuel registers demand",
			fuel:       "gas",
			efficiency: 0.5,
			share:      0.25,
			demand:     100,
			wantOutput: 25,
			wantInput:  50,
			wantDemand: 50,
		},
		{
			name:       "renewable is not metered",
			fuel:       "renewable",
			efficiency: 1,
			share:      1,
			demand:     10,
			wantOutput: 10,
			wantInput:  10,
		},
		{
			name:       "none is not metered",
			fuel:       "none",
			efficiency: 1,
			share:      0.5,
			demand:     10,
			wantOutput: 5,
			wantInput:  5,
		},
		{
			name:       "zero demand",
			fuel:       "gas",
			efficiency: 0.5,
			share:      0.5,
			demand:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := newFakeLedger()
			tech := newTestTechnology("tech", tt.fuel, tt.efficiency, 0)
			initTestTechnology(tech)
			tech.SetShare(tt.share)

			tech.Production(context.Background(), ledger, testRegion, testSector, tt.demand, nil, 0)

			assert.InDelta(t, tt.wantOutput, tech.Output(0), 1e-12)
			assert.InDelta(t, tt.wantInput, tech.Input(), 1e-12)
			assert.InDelta(t, tt.wantDemand, ledger.demand(tt.fuel, testRegion, 0), 1e-12)
			if tt.fuel != "gas" {
				assert.NotContains(t, ledger.demands, ledgerKey(tt.fuel, testRegion, 0))
			}
		})
	}
}

func TestProductionIsRepeatable(t *testing.T) {
	ledger := newFakeLedger()
	ledger.setPrice("gas", 3)
	tech := newTestTechnology("tech", "gas", 0.5, 1)
	initTestTechnology(tech)

	cycle := func() (float64, float64, float64) {
		ctx := context.Background()
		tech.CalcCost(ctx, ledger, testRegion, testSector, 0)
		tech.CalcShare(ctx, testRegion, testSector, nil, 0)
		tech.NormShare(tech.UnnormalizedShare())
		tech.Production(ctx, ledger, testRegion, testSector, 40, nil, 0)
		return tech.Share(), tech.Input(), tech.Output(0)
	}

	s1, in1, out1 := cycle()
	s2, in2, out2 := cycle()

	assert.Equal(t, s1, s2)
	assert.Equal(t, in1, in2)
	assert.Equal(t, out1, out2)
	assert.Equal(t, 1.0, s1)
	// Ledger demand is additive; clearing it is the ledger's job.
	assert.InDelta(t, 160, ledger.demand("gas", testRegion, 0), 1e-12)
}

func TestProductionSetsSecondaryOutputsAndEmissions(t *testing.T) {
	ledger := newFakeLedger()
	ledger.infos["gas"] = fakeInfo{CO2CoefKey: 0.1}

	tech := newTestTechnology("chp", "gas", 0.5, 0)
	tech.AddSecondaryOutput(NewSecondaryOutput("heat", 0.3))
	tech.AddEmissionSource(NewGHG("NOx", GHGParameters{Coefficient: 2, OutputDriven: true}))
	initTestTechnology(tech)
	tech.InitCalc(context.Background(), ledger, nil, testRegion, testSector, 0)
	tech.SetShare(1)

	tech.Production(context.Background(), ledger, testRegion, testSector, 10, nil, 0)
	tech.CalcEmission(testSector, 0)

	outputs := tech.Outputs()
	require.Len(t, outputs, 2)
	assert.InDelta(t, 10, outputs[0].PhysicalOutput(0), 1e-12)
	assert.InDelta(t, 3, outputs[1].PhysicalOutput(0), 1e-12)

	byGas := tech.EmissionsByGas()
	assert.InDelta(t, 2, byGas[CO2], 1e-12)
	assert.InDelta(t, 20, byGas["NOx"], 1e-12)
	assert.InDelta(t, 2, tech.Emission(EmissionKey{Gas: CO2, Fuel: "gas", Kind: EmissionByFuel}), 1e-12)
	assert.InDelta(t, 2, tech.Emission(EmissionKey{Gas: CO2, Fuel: "gas", Kind: EmissionFuelContent}), 1e-12)
}

func TestCalcEmissionRebuildsLookups(t *testing.T) {
	tech := newTestTechnology("tech", "gas", 1, 0)
	tech.AddEmissionSource(NewGHG("CH4", GHGParameters{Coefficient: 1}))
	initTestTechnology(tech)
	tech.SetShare(1)
	tech.Production(context.Background(), newFakeLedger(), testRegion, testSector, 5, nil, 0)
	tech.CalcEmission(testSector, 0)
	require.Contains(t, tech.EmissionsByGas(), "CH4")

	next := NewTechnology("tech", 2005)
	next.SetParameters(tech.Parameters().Clone())
	next.CompleteInit(context.Background(), testSector, nil, nil, Options{Modeltime: testModeltime})
	next.emissions = tech.Emissions()
	next.emissionsByGas = tech.EmissionsByGas()

	next.CalcEmission(testSector, 1)

	assert.NotContains(t, next.EmissionsByGas(), "CH4")
	assert.NotContains(t, next.Emissions(), EmissionKey{Gas: "CH4", Kind: EmissionTotal})
	assert.Len(t, next.Emissions(), 5)
}
