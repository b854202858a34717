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

package solver

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/llm-d/technology-share-engine/internal/engines/limiter"
	"github.com/llm-d/technology-share-engine/internal/logging"
	"github.com/llm-d/technology-share-engine/pkg/core"
)

// Subsector drives a group of competing technologies through the per-period
// cycle. It is the only place sibling technologies are combined: share sums,
// fixed-output totals and calibration all pass through here.
type Subsector struct {
	name   string
	sector string
	region string

	techs       [][]*core.Technology
	demand      []float64
	demandShare float64
	limiter     limiter.Limiter
	calibrate   bool

	price  map[int]float64
	served map[int]float64
}

// NewSubsector returns a subsector with room for periods periods. A nil
// limiter leaves oversubscribed fixed output to share adjustment.
func NewSubsector(name, sector, region string, periods int, lim limiter.Limiter) *Subsector {
	if lim == nil {
		lim = limiter.NewPassThroughLimiter()
	}
	return &Subsector{
		name:        name,
		sector:      sector,
		region:      region,
		techs:       make([][]*core.Technology, periods),
		demandShare: 1,
		limiter:     lim,
		price:       make(map[int]float64),
		served:      make(map[int]float64),
	}
}

func (s *Subsector) Name() string   { return s.name }
func (s *Subsector) Sector() string { return s.sector }
func (s *Subsector) Region() string { return s.region }

// SetCalibrate turns the calibration pass on or off.
func (s *Subsector) SetCalibrate(on bool) { s.calibrate = on }

// SetDemand sets an exogenous demand path, one value per period.
func (s *Subsector) SetDemand(demand []float64) { s.demand = demand }

// SetDemandShare sets the fraction of the sector's ledger demand served when
// no exogenous demand is set.
func (s *Subsector) SetDemandShare(share float64) { s.demandShare = share }

// ExogenousDemand returns the configured demand for period, if any.
func (s *Subsector) ExogenousDemand(period int) (float64, bool) {
	if period < 0 || period >= len(s.demand) {
		return 0, false
	}
	return s.demand[period], true
}

// AddTechnology adds tech to the technologies competing in period.
func (s *Subsector) AddTechnology(period int, tech *core.Technology) {
	s.techs[period] = append(s.techs[period], tech)
}

// Technologies returns the technologies competing in period.
func (s *Subsector) Technologies(period int) []*core.Technology {
	if period < 0 || period >= len(s.techs) {
		return nil
	}
	return s.techs[period]
}

// CompleteInit initializes every technology of every period.
func (s *Subsector) CompleteInit(ctx context.Context, registrar core.DependencyRegistrar, store core.ParameterStore, opts core.Options) {
	for _, techs := range s.techs {
		for _, tech := range techs {
			tech.CompleteInit(ctx, s.sector, registrar, store, opts)
		}
	}
}

// InitCalc prepares every technology for period.
func (s *Subsector) InitCalc(ctx context.Context, market core.Ledger, demographics core.Demographics, period int) {
	for _, tech := range s.Technologies(period) {
		tech.InitCalc(ctx, market, demographics, s.region, s.sector, period)
	}
}

// CalcShares tabulates fixed demands, prices every technology and
// normalizes the logit shares. It returns the share-weighted cost.
func (s *Subsector) CalcShares(ctx context.Context, market core.Ledger, macro core.MacroDriver, period int) float64 {
	techs := s.Technologies(period)
	unnormalized := make([]float64, 0, len(techs))
	for _, tech := range techs {
		tech.TabulateFixedDemands(market, s.region, period)
		tech.CalcCost(ctx, market, s.region, s.sector, period)
		tech.CalcShare(ctx, s.region, s.sector, macro, period)
		unnormalized = append(unnormalized, tech.UnnormalizedShare())
	}

	sum := floats.Sum(unnormalized)
	price := 0.0
	for _, tech := range techs {
		tech.NormShare(sum)
		price += tech.Share() * tech.TotalCost()
	}
	s.price[period] = price
	return price
}

// Price returns the share-weighted cost from the last CalcShares of period.
func (s *Subsector) Price(period int) float64 { return s.price[period] }

// Supply reconciles fixed output and calibration against demand, then
// produces.
func (s *Subsector) Supply(ctx context.Context, market core.Ledger, macro core.MacroDriver, demand float64, period int) error {
	logger := logging.FromContext(ctx)
	techs := s.Technologies(period)

	holders := make([]limiter.FixedOutputHolder, 0, len(techs))
	for _, tech := range techs {
		tech.ResetFixedOutput()
		holders = append(holders, tech)
	}
	if limiter.TotalFixedOutput(holders) > demand {
		if err := s.limiter.Allocate(ctx, holders, demand); err != nil {
			return fmt.Errorf("limiting fixed output of subsector %s/%s: %w", s.sector, s.name, err)
		}
	}

	fixedTotal := limiter.TotalFixedOutput(holders)
	variableShares := make([]float64, 0, len(techs))
	for _, tech := range techs {
		if !tech.HasFixedOutput() {
			variableShares = append(variableShares, tech.Share())
		}
	}
	// A zero fixed output still pins its technology, so the test is on
	// the count of fixed technologies rather than the fixed total.
	if len(variableShares) < len(techs) {
		variableTotal := floats.Sum(variableShares)
		for _, tech := range techs {
			tech.AdjShares(demand, fixedTotal, variableTotal, period)
		}
	}

	if s.calibrate {
		for _, tech := range techs {
			if tech.CalibrationStatus() {
				tech.AdjustForCalibration(ctx, demand, s.region, period)
			}
		}
	}

	for _, tech := range techs {
		tech.Production(ctx, market, s.region, s.sector, demand, macro, period)
		tech.CalcEmission(s.sector, period)
	}
	s.served[period] = demand

	logger.V(logging.TRACE).Info("Subsector supplied",
		"region", s.region,
		"sector", s.sector,
		"subsector", s.name,
		"period", period,
		"demand", demand,
		"fixedOutput", fixedTotal)
	return nil
}

// Calc runs one full pass for period against the exogenous demand.
func (s *Subsector) Calc(ctx context.Context, market core.Ledger, macro core.MacroDriver, period int) error {
	demand, ok := s.ExogenousDemand(period)
	if !ok {
		return fmt.Errorf("subsector %s/%s has no demand for period %d", s.sector, s.name, period)
	}
	s.CalcShares(ctx, market, macro, period)
	return s.Supply(ctx, market, macro, demand, period)
}

// Demand returns the demand served in the last Supply of period.
func (s *Subsector) Demand(period int) float64 { return s.served[period] }

// Output returns the total primary output of period.
func (s *Subsector) Output(period int) float64 {
	techs := s.Technologies(period)
	out := make([]float64, 0, len(techs))
	for _, tech := range techs {
		out = append(out, tech.Output(period))
	}
	return floats.Sum(out)
}
