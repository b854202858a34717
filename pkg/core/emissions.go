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

import "maps"

// EmissionSource computes the emissions of one gas for a technology. Each
// source keeps its own per-period state.
type EmissionSource interface {
	// Name returns the gas name.
	Name() string
	// InitCalc prepares the source for period.
	InitCalc(market Ledger, region, fuel string, period int)
	// GHGValue returns the emissions cost per unit primary output.
	GHGValue(market Ledger, region, fuel string, outputs []OutputChannel, efficiency float64, period int) float64
	// CalcEmission computes the period's emissions from the fuel input and outputs.
	CalcEmission(region, fuel string, input float64, outputs []OutputChannel, macro MacroDriver, period int)
	// Emission returns the emissions released in period.
	Emission(period int) float64
	// EmissionFuel returns the gas content of the fuel consumed in period.
	EmissionFuel(period int) float64
	// SequesteredGeologic returns the amount stored geologically in period.
	SequesteredGeologic(period int) float64
	// SequesteredNonEnergy returns the amount bound into non-energy products in period.
	SequesteredNonEnergy(period int) float64
	// CarbonTaxPaid returns the tax paid on the period's emissions.
	CarbonTaxPaid(market Ledger, region string, period int) float64
	// CopyParameters carries unset parameters forward from the previous period's source.
	CopyParameters(prev EmissionSource)
	// Accept visits the source.
	Accept(visitor Visitor, period int)
	// Clone returns an independent copy.
	Clone() EmissionSource
}

// GHGParameters configure a GHG.
type GHGParameters struct {
	// Coefficient is the gas emitted per unit driver (fuel input, or primary
	// output when OutputDriven).
	Coefficient float64 `yaml:"coefficient,omitempty" json:"coefficient,omitempty"`
	// OutputDriven makes primary output, not fuel input, the emissions driver.
	OutputDriven bool `yaml:"outputDriven,omitempty" json:"outputDriven,omitempty"`
	// RemoveFraction is the share of gas captured and stored geologically.
	RemoveFraction float64 `yaml:"removeFraction,omitempty" json:"removeFraction,omitempty"`
	// NonEnergyFraction is the share of gas bound into non-energy products.
	NonEnergyFraction float64 `yaml:"nonEnergyFraction,omitempty" json:"nonEnergyFraction,omitempty"`
	// StorageCost is the cost per unit of gas stored geologically.
	StorageCost float64 `yaml:"storageCost,omitempty" json:"storageCost,omitempty"`
	// GWP is the global warming potential applied to the tax. Zero means 1.
	GWP float64 `yaml:"gwp,omitempty" json:"gwp,omitempty"`
}

// GHG is an emission source whose emissions are proportional to a driver.
// The gas is taxed at the ledger price of the market named after the gas.
type GHG struct {
	name     string
	params   GHGParameters
	explicit bool
	// fuelCoefficient reads the coefficient from the fuel market's CO2Coef counter.
	fuelCoefficient bool
	coefficient     float64

	emissions    map[int]float64
	emissFuel    map[int]float64
	sequestGeo   map[int]float64
	sequestNonEn map[int]float64
}

// NewGHG returns a source for gas with explicit parameters.
func NewGHG(gas string, params GHGParameters) *GHG {
	g := newGHG(gas)
	g.params = params
	g.explicit = true
	g.coefficient = params.Coefficient
	return g
}

// NewCO2 returns the CO2 source. Its coefficient comes from the fuel
// market's CO2Coef counter when the market publishes one, else from params.
func NewCO2(params GHGParameters) *GHG {
	g := NewGHG(CO2, params)
	g.fuelCoefficient = true
	return g
}

// defaultCO2 is the CO2 source added to technologies that configure none.
func defaultCO2() *GHG {
	g := newGHG(CO2)
	g.fuelCoefficient = true
	return g
}

func newGHG(gas string) *GHG {
	return &GHG{
		name:         gas,
		emissions:    make(map[int]float64),
		emissFuel:    make(map[int]float64),
		sequestGeo:   make(map[int]float64),
		sequestNonEn: make(map[int]float64),
	}
}

func (g *GHG) Name() string { return g.name }

// Parameters returns the configured parameters.
func (g *GHG) Parameters() GHGParameters { return g.params }

// Coefficient returns the coefficient in effect for the current period.
func (g *GHG) Coefficient() float64 { return g.coefficient }

func (g *GHG) InitCalc(market Ledger, region, fuel string, period int) {
	g.coefficient = g.params.Coefficient
	if !g.fuelCoefficient || market == nil {
		return
	}
	if info, ok := market.MarketInfo(fuel, region, period); ok {
		if coef, ok := info.GetDouble(CO2CoefKey); ok {
			g.coefficient = coef
		}
	}
}

func (g *GHG) gwp() float64 {
	if g.params.GWP == 0 {
		return 1
	}
	return g.params.GWP
}

// split divides a gas amount into released, geologic, and non-energy parts.
func (g *GHG) split(content float64) (released, geologic, nonEnergy float64) {
	nonEnergy = content * g.params.NonEnergyFraction
	geologic = (content - nonEnergy) * g.params.RemoveFraction
	released = content - nonEnergy - geologic
	return released, geologic, nonEnergy
}

func (g *GHG) tax(market Ledger, region string, period int) float64 {
	if market == nil {
		return 0
	}
	price, ok := market.Price(g.name, region, period)
	if !ok {
		return 0
	}
	return price
}

// GHGValue is the tax on released gas plus the storage cost of sequestered
// gas, per unit primary output.
func (g *GHG) GHGValue(market Ledger, region, _ string, _ []OutputChannel, efficiency float64, period int) float64 {
	released, geologic, _ := g.split(g.coefficient)
	perDriver := g.tax(market, region, period)*g.gwp()*released + g.params.StorageCost*geologic
	if g.params.OutputDriven || efficiency <= 0 {
		return perDriver
	}
	return perDriver / efficiency
}

func (g *GHG) CalcEmission(_, _ string, input float64, outputs []OutputChannel, _ MacroDriver, period int) {
	driver := input
	if g.params.OutputDriven && len(outputs) > 0 {
		driver = outputs[0].PhysicalOutput(period)
	}
	content := driver * g.coefficient
	released, geologic, nonEnergy := g.split(content)
	g.emissFuel[period] = content
	g.emissions[period] = released
	g.sequestGeo[period] = geologic
	g.sequestNonEn[period] = nonEnergy
}

func (g *GHG) Emission(period int) float64             { return g.emissions[period] }
func (g *GHG) EmissionFuel(period int) float64         { return g.emissFuel[period] }
func (g *GHG) SequesteredGeologic(period int) float64  { return g.sequestGeo[period] }
func (g *GHG) SequesteredNonEnergy(period int) float64 { return g.sequestNonEn[period] }

func (g *GHG) CarbonTaxPaid(market Ledger, region string, period int) float64 {
	return g.tax(market, region, period) * g.gwp() * g.emissions[period]
}

// CopyParameters takes the previous period's parameters when this source was
// created without any.
func (g *GHG) CopyParameters(prev EmissionSource) {
	p, ok := prev.(*GHG)
	if !ok || p == nil || g.explicit || p.name != g.name {
		return
	}
	g.params = p.params
	g.coefficient = p.coefficient
	g.explicit = p.explicit
}

func (g *GHG) Accept(visitor Visitor, period int) { visitor.VisitEmission(g, period) }

func (g *GHG) Clone() EmissionSource {
	c := *g
	c.emissions = maps.Clone(g.emissions)
	c.emissFuel = maps.Clone(g.emissFuel)
	c.sequestGeo = maps.Clone(g.sequestGeo)
	c.sequestNonEn = maps.Clone(g.sequestNonEn)
	return &c
}
