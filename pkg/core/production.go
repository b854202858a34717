/*
Copyright 2025 The llm-d Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package core

import (
	"context"
	"maps"
	"math"

	"github.com/llm-d/technology-share-engine/internal/logging"
	"github.com/llm-d/technology-share-engine/internal/utils/fuelclass"
)

// EmissionKind selects which emissions quantity an EmissionKey refers to.
type EmissionKind string

const (
	EmissionTotal                EmissionKind = "total"
	EmissionByFuel               EmissionKind = "byFuel"
	EmissionSequesteredGeologic  EmissionKind = "sequesteredGeologic"
	EmissionSequesteredNonEnergy EmissionKind = "sequesteredNonEnergy"
	EmissionFuelContent          EmissionKind = "fuelContent"
)

// EmissionKey indexes the emissions lookup built by CalcEmission. Fuel is
// empty for kinds that are not attributed to a fuel.
type EmissionKey struct {
	Gas  string
	Fuel string
	Kind EmissionKind
}

// Production turns the current share of subsectorDemand into output, fuel
// input, ledger demand, secondary outputs, and emissions.
func (t *Technology) Production(ctx context.Context, market Ledger, region, sector string, subsectorDemand float64, macro MacroDriver, period int) {
	t.assert(!math.IsNaN(subsectorDemand) && subsectorDemand >= 0, "invalid demand",
		"demand", subsectorDemand, "period", period)

	primary := t.share * subsectorDemand
	if primary < 0 {
		logging.FromContext(ctx).Error(ErrNegativeOutput, "Primary output value less than zero",
			"technology", t.name,
			"sector", sector,
			"region", region,
			"output", primary)
	}

	t.input = primary / t.Efficiency(period)

	fuel := t.FuelName()
	if fuelclass.IsPriced(fuel, t.opts.Fuels) {
		market.AddToDemand(fuel, region, t.input, period)
	}

	t.calcEmissionsAndOutputs(region, t.input, primary, macro, period)
}

func (t *Technology) calcEmissionsAndOutputs(region string, input, primary float64, macro MacroDriver, period int) {
	for _, o := range t.outputs {
		o.SetPhysicalOutput(primary, region, period)
	}
	// Emissions may depend on the outputs set above.
	for _, g := range t.ghgs {
		g.CalcEmission(region, t.FuelName(), input, t.outputs, macro, period)
	}
}

// CalcEmission rebuilds the emissions lookups for period from the emission
// sources. Entries for gases no longer present are dropped.
func (t *Technology) CalcEmission(_ string, period int) {
	fuel := t.FuelName()
	t.emissionsByGas = make(map[string]float64, len(t.ghgs))
	t.emissions = make(map[EmissionKey]float64, 5*len(t.ghgs))
	for _, g := range t.ghgs {
		gas := g.Name()
		t.emissionsByGas[gas] = g.Emission(period)
		t.emissions[EmissionKey{Gas: gas, Kind: EmissionTotal}] = g.Emission(period)
		t.emissions[EmissionKey{Gas: gas, Fuel: fuel, Kind: EmissionByFuel}] = g.Emission(period)
		t.emissions[EmissionKey{Gas: gas, Kind: EmissionSequesteredGeologic}] = g.SequesteredGeologic(period)
		t.emissions[EmissionKey{Gas: gas, Kind: EmissionSequesteredNonEnergy}] = g.SequesteredNonEnergy(period)
		t.emissions[EmissionKey{Gas: gas, Fuel: fuel, Kind: EmissionFuelContent}] = g.EmissionFuel(period)
	}
}

// EmissionsByGas returns a copy of the total emissions per gas from the last
// CalcEmission.
func (t *Technology) EmissionsByGas() map[string]float64 {
	return maps.Clone(t.emissionsByGas)
}

// Emissions returns a copy of the detailed emissions lookup.
func (t *Technology) Emissions() map[EmissionKey]float64 {
	return maps.Clone(t.emissions)
}

// Emission returns one entry of the emissions lookup, 0 when absent.
func (t *Technology) Emission(key EmissionKey) float64 {
	return t.emissions[key]
}
