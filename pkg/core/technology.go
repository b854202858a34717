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
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/llm-d/technology-share-engine/internal/logging"
	"github.com/llm-d/technology-share-engine/internal/utils/fuelclass"
)

// Options are run-wide settings threaded into every technology at
// initialization.
type Options struct {
	// Modeltime maps periods to years, used to find a technology's vintage period.
	Modeltime Modeltime
	// DebugChecking turns contract violations into panics and enables
	// divergence warnings.
	DebugChecking bool
	// Fuels classifies unpriced fuel names. The zero value uses the defaults.
	Fuels fuelclass.Config
}

// Technology is one vintage of one technology choice in a subsector. It is
// driven through its per-period cycle by the subsector that owns it and never
// reads the state of its siblings.
type Technology struct {
	name string
	year int
	note string

	useGlobal bool
	params    parameterHandle

	shareWeight        float64
	logitExponent      float64
	priceMultiplier    float64
	fixedOutput        float64
	fixedOutputCurrent float64

	fuelCost          float64
	totalCost         float64
	unnormalizedShare float64
	share             float64
	input             float64

	calibration CalibrationTarget
	outputs     []OutputChannel
	ghgs        []EmissionSource
	ghgIndex    map[string]int

	emissionsByGas map[string]float64
	emissions      map[EmissionKey]float64

	opts Options
}

// NewTechnology returns a technology with default state: share weight 1,
// price multiplier 1, the default logit exponent, and no fixed output.
func NewTechnology(name string, year int) *Technology {
	return &Technology{
		name:               name,
		year:               year,
		shareWeight:        1,
		logitExponent:      DefaultLogitExponent,
		priceMultiplier:    1,
		fixedOutput:        FixedOutputUnset,
		fixedOutputCurrent: FixedOutputUnset,
		ghgIndex:           make(map[string]int),
		emissionsByGas:     make(map[string]float64),
		emissions:          make(map[EmissionKey]float64),
	}
}

// Clone returns a deep copy. Outputs, emission sources, calibration, and
// owned parameters are cloned; shared parameters stay shared.
func (t *Technology) Clone() *Technology {
	c := *t
	c.params = t.params.clone()
	if t.calibration != nil {
		c.calibration = t.calibration.Clone()
	}
	c.outputs = make([]OutputChannel, 0, len(t.outputs))
	for _, o := range t.outputs {
		c.outputs = append(c.outputs, o.Clone())
	}
	c.ghgs = make([]EmissionSource, 0, len(t.ghgs))
	for _, g := range t.ghgs {
		c.ghgs = append(c.ghgs, g.Clone())
	}
	c.ghgIndex = maps.Clone(t.ghgIndex)
	c.emissionsByGas = maps.Clone(t.emissionsByGas)
	c.emissions = maps.Clone(t.emissions)
	return &c
}

func (t *Technology) Name() string { return t.name }
func (t *Technology) Year() int    { return t.year }
func (t *Technology) Note() string { return t.note }

func (t *Technology) SetNote(note string) { t.note = note }

// SetYear sets the vintage year. Non-positive years are reported and ignored.
func (t *Technology) SetYear(ctx context.Context, year int) {
	if year <= 0 {
		logging.FromContext(ctx).Error(ErrInvalidYear, "Invalid year passed to set year",
			"technology", t.name,
			"year", year)
		return
	}
	t.year = year
}

// SetParameters gives the technology an exclusively owned parameter block
// and cancels any request for shared parameters.
func (t *Technology) SetParameters(p *TechnologyParameters) {
	t.params = ownedHandle(p)
	t.useGlobal = false
}

// UseGlobalParameters requests that parameters be resolved from the shared
// store at CompleteInit.
func (t *Technology) UseGlobalParameters() {
	t.useGlobal = true
}

// ResolveGlobalParameters binds the shared parameters stored for the
// technology's name and year. It reports whether a shared block is bound.
// Vintages must be resolved before they are cloned forward, since clones take
// the year of a later period.
func (t *Technology) ResolveGlobalParameters(store ParameterStore) bool {
	if !t.useGlobal || store == nil {
		return false
	}
	if t.params.isShared() {
		return true
	}
	p, ok := store.TechnologyParameters(t.name, t.year)
	if ok {
		t.params = sharedHandle(p)
	}
	return ok
}

// UsesGlobalParameters reports whether shared parameters were requested.
func (t *Technology) UsesGlobalParameters() bool { return t.useGlobal }

// HasSharedParameters reports whether the parameters are a shared store handle.
func (t *Technology) HasSharedParameters() bool { return t.params.isShared() }

// Parameters returns the parameter block. Callers must not modify a shared block.
func (t *Technology) Parameters() *TechnologyParameters { return t.params.params }

// FuelName returns the consumed fuel, or "" before parameters exist.
func (t *Technology) FuelName() string {
	if t.params.params == nil {
		return ""
	}
	return t.params.params.FuelName
}

func (t *Technology) ShareWeight() float64 { return t.shareWeight }

func (t *Technology) SetShareWeight(v float64) { t.shareWeight = v }

func (t *Technology) LogitExponent() float64 { return t.logitExponent }

func (t *Technology) SetLogitExponent(v float64) { t.logitExponent = v }

func (t *Technology) PriceMultiplier() float64 { return t.priceMultiplier }

func (t *Technology) SetPriceMultiplier(v float64) { t.priceMultiplier = v }

// FixedOutputSpec returns the configured fixed output, or FixedOutputUnset.
func (t *Technology) FixedOutputSpec() float64 { return t.fixedOutput }

// SetFixedOutput configures a mandated output level. A negative value removes
// the constraint.
func (t *Technology) SetFixedOutput(v float64) {
	if v < 0 {
		v = FixedOutputUnset
	}
	t.fixedOutput = v
}

func (t *Technology) Calibration() CalibrationTarget { return t.calibration }

func (t *Technology) SetCalibration(c CalibrationTarget) { t.calibration = c }

// AddEmissionSource adds g, replacing any source for the same gas.
func (t *Technology) AddEmissionSource(g EmissionSource) {
	if i, ok := t.ghgIndex[g.Name()]; ok {
		t.ghgs[i] = g
		return
	}
	t.ghgs = append(t.ghgs, g)
	t.ghgIndex[g.Name()] = len(t.ghgs) - 1
}

// EmissionSource returns the source for gas.
func (t *Technology) EmissionSource(gas string) (EmissionSource, bool) {
	i, ok := t.ghgIndex[gas]
	if !ok {
		return nil, false
	}
	return t.ghgs[i], true
}

// EmissionSources returns the sources in order.
func (t *Technology) EmissionSources() []EmissionSource { return slices.Clone(t.ghgs) }

// GHGNames returns the gas names in order.
func (t *Technology) GHGNames() []string {
	names := make([]string, 0, len(t.ghgs))
	for _, g := range t.ghgs {
		names = append(names, g.Name())
	}
	return names
}

// CopyGHGParameters passes prev to the source with the same gas name.
func (t *Technology) CopyGHGParameters(prev EmissionSource) {
	if prev == nil {
		return
	}
	if g, ok := t.EmissionSource(prev.Name()); ok {
		g.CopyParameters(prev)
	}
}

// AddSecondaryOutput appends a by-product channel.
func (t *Technology) AddSecondaryOutput(o OutputChannel) {
	t.outputs = append(t.outputs, o)
}

// Outputs returns the output channels, primary first once initialized.
func (t *Technology) Outputs() []OutputChannel { return slices.Clone(t.outputs) }

// CompleteInit finishes construction once per model run: it resolves shared
// parameters, guarantees CO2 and the primary output, and registers the fuel
// dependency. It must run after any cloning.
func (t *Technology) CompleteInit(ctx context.Context, sector string, registrar DependencyRegistrar, store ParameterStore, opts Options) {
	logger := logging.FromContext(ctx)
	t.opts = opts

	if t.year == 0 {
		logger.Error(ErrInvalidYear, "Technology has an invalid year attribute",
			"technology", t.name,
			"sector", sector)
	}

	if t.useGlobal && store != nil && !t.ResolveGlobalParameters(store) {
		logger.Info("Global technology not found, using local parameters",
			"technology", t.name,
			"year", t.year)
	}
	if t.params.params == nil {
		t.params = ownedHandle(NewTechnologyParameters(t.name))
	}
	if !t.params.isShared() {
		t.params.params.CompleteInit(ctx)
	}

	if _, ok := t.ghgIndex[CO2]; !ok {
		t.AddEmissionSource(defaultCO2())
	}

	if len(t.outputs) == 0 || !t.outputs[0].IsPrimary() {
		t.outputs = slices.Insert(t.outputs, 0, OutputChannel(NewPrimaryOutput(sector)))
	}
	operating := !t.HasNoInputOrOutput()
	for _, o := range t.outputs {
		o.CompleteInit(sector, registrar, operating)
	}

	// A technology that never operates can never affect its fuel market.
	if registrar != nil && operating {
		registrar.AddDependency(sector, t.FuelName())
	}

	if t.fixedOutput >= 0 {
		t.fixedOutputCurrent = t.fixedOutput
	}
}

// InitCalc prepares the technology for period. A calibration target that
// would require negative input is dropped.
func (t *Technology) InitCalc(ctx context.Context, market Ledger, demographics Demographics, region, sector string, period int) {
	if t.calibration != nil {
		t.calibration.InitCalc(demographics, period)
		if t.calibration.CalInput(t.Efficiency(period)) < 0 {
			logging.FromContext(ctx).V(logging.DEBUG).Info("Negative calibration value, calibration removed",
				"technology", t.name,
				"sector", sector,
				"region", region)
			t.calibration = nil
		}
	}
	for _, g := range t.ghgs {
		g.InitCalc(market, region, t.FuelName(), period)
	}
	for _, o := range t.outputs {
		o.InitCalc(region, period)
	}
}

// Efficiency is the effective output per unit input.
func (t *Technology) Efficiency(period int) float64 {
	eff := t.params.params.EffectiveEfficiency()
	t.assert(eff > 0, "non-positive efficiency", "efficiency", eff, "period", period)
	return eff
}

// Intensity is input per unit output.
func (t *Technology) Intensity(period int) float64 {
	return 1 / t.Efficiency(period)
}

// NonEnergyCost is the effective non-energy cost per unit output.
func (t *Technology) NonEnergyCost(int) float64 {
	return t.params.params.EffectiveNonEnergyCost()
}

// InputRequiredForOutput returns the input needed to produce output.
func (t *Technology) InputRequiredForOutput(output float64, period int) float64 {
	return output / t.Efficiency(period)
}

// CalcCost computes the fuel cost and total cost per unit output.
func (t *Technology) CalcCost(ctx context.Context, market Ledger, region, sector string, period int) {
	fuel := t.FuelName()
	price := 0.0
	if fuelclass.IsPriced(fuel, t.opts.Fuels) {
		var ok bool
		price, ok = market.Price(fuel, region, period)
		if !ok {
			logging.FromContext(ctx).Error(ErrNoMarketPrice, "Requested fuel with no price",
				"fuel", fuel,
				"technology", t.name,
				"sector", sector,
				"region", region)
			price = LargeNumber
		}
	}

	p := t.params.params
	t.fuelCost = price * p.FuelMultiplier / t.Efficiency(period)
	t.totalCost = (t.fuelCost + t.NonEnergyCost(period)) * t.priceMultiplier
	t.totalCost -= t.CalcSecondaryValue(market, region, period)

	// Total cost can drift below zero out of equilibrium.
	t.totalCost = math.Max(t.totalCost, SmallNumber)
}

// CalcSecondaryValue is the revenue of all outputs less the cost of all
// emissions, per unit primary output.
func (t *Technology) CalcSecondaryValue(market Ledger, region string, period int) float64 {
	total := -t.TotalGHGCost(market, region, period)
	for _, o := range t.outputs {
		total += o.Value(market, region, period)
	}
	return total
}

// TotalGHGCost is the emissions cost per unit primary output.
func (t *Technology) TotalGHGCost(market Ledger, region string, period int) float64 {
	total := 0.0
	eff := t.Efficiency(period)
	for _, g := range t.ghgs {
		total += g.GHGValue(market, region, t.FuelName(), t.outputs, eff, period)
	}
	return total
}

// CarbonTaxPaid is the tax paid on all of the period's emissions.
func (t *Technology) CarbonTaxPaid(market Ledger, region string, period int) float64 {
	total := 0.0
	for _, g := range t.ghgs {
		total += g.CarbonTaxPaid(market, region, period)
	}
	return total
}

// CalcShare computes the unnormalized logit share:
// shareWeight * totalCost^logitExponent, scaled by GDP per capita raised to
// the fuel preference elasticity when that elasticity is set.
func (t *Technology) CalcShare(_ context.Context, _, _ string, macro MacroDriver, period int) {
	s := t.shareWeight * math.Pow(t.totalCost, t.logitExponent)
	if elasticity := t.params.params.FuelPrefElasticity; elasticity != 0 && macro != nil {
		s *= math.Pow(macro.ScaledGDPPerCapita(period), elasticity)
	}
	t.unnormalizedShare = s
	t.share = s
}

// NormShare divides the unnormalized share by the subsector sum. A zero sum
// gives a zero share.
func (t *Technology) NormShare(sum float64) {
	if sum == 0 {
		t.share = 0
		return
	}
	t.share = t.unnormalizedShare / sum
}

// Share is the current share of subsector output.
func (t *Technology) Share() float64 { return t.share }

// SetShare overrides the current share.
func (t *Technology) SetShare(v float64) { t.share = v }

// UnnormalizedShare is the last value computed by CalcShare.
func (t *Technology) UnnormalizedShare() float64 { return t.unnormalizedShare }

func (t *Technology) FuelCost() float64  { return t.fuelCost }
func (t *Technology) TotalCost() float64 { return t.totalCost }
func (t *Technology) Input() float64     { return t.input }

// Output is the primary output produced in period.
func (t *Technology) Output(period int) float64 {
	if len(t.outputs) == 0 {
		return 0
	}
	return t.outputs[0].PhysicalOutput(period)
}

// assert panics on a contract violation when debug checking is on.
func (t *Technology) assert(cond bool, msg string, kv ...any) {
	if cond || !t.opts.DebugChecking {
		return
	}
	panic(fmt.Sprintf("technology %s: %s %v", t.name, msg, kv))
}
