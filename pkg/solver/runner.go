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
	"slices"

	"github.com/google/uuid"

	"github.com/llm-d/technology-share-engine/internal/logging"
	"github.com/llm-d/technology-share-engine/pkg/core"
)

// DefaultIterations is the number of passes per period when none is given.
const DefaultIterations = 5

// Runner iterates a model over its periods. Each period gets a fixed number
// of passes; between passes ledger demand is cleared so repeated passes
// reproduce the same production.
type Runner struct {
	model      *Model
	iterations int
	runID      uuid.UUID
}

// NewRunner returns a runner with a fresh run id. Non-positive iterations
// fall back to DefaultIterations.
func NewRunner(model *Model, iterations int) *Runner {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Runner{model: model, iterations: iterations, runID: uuid.New()}
}

func (r *Runner) RunID() uuid.UUID { return r.runID }

// Run solves every period in order.
func (r *Runner) Run(ctx context.Context) error {
	logger := logging.FromContext(ctx).WithValues("runID", r.runID.String(), "scenario", r.model.Name)
	ctx = logging.IntoContext(ctx, logger)

	for period := range r.model.Modeltime.Periods() {
		if err := r.RunPeriod(ctx, period); err != nil {
			return err
		}
		logger.V(logging.DEBUG).Info("Solved period",
			"period", period,
			"year", r.model.Modeltime.PeriodToYear(period))
	}
	logger.Info("Run completed", "periods", r.model.Modeltime.Periods())
	return nil
}

// RunPeriod initializes and solves one period.
func (r *Runner) RunPeriod(ctx context.Context, period int) error {
	for _, region := range r.model.regions {
		for _, sub := range region.subsectors {
			sub.InitCalc(ctx, r.model.Ledger, region, period)
		}
	}
	for i := 0; i < r.iterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.model.Ledger.ClearDemands(period)
		for _, region := range r.model.regions {
			if err := r.pass(ctx, region, period); err != nil {
				return fmt.Errorf("region %s period %d: %w", region.Name(), period, err)
			}
		}
	}
	return nil
}

// pass prices subsectors from producers to consumers, publishing sector
// prices as it goes, then supplies them from consumers back to producers so
// derived demand has been recorded before it is served.
func (r *Runner) pass(ctx context.Context, region *Region, period int) error {
	market := r.model.Ledger
	sum := make(map[string]float64)
	count := make(map[string]int)
	for _, sub := range region.subsectors {
		price := sub.CalcShares(ctx, market, region, period)
		if r.model.PriceIsExogenous(region.Name(), sub.Sector()) {
			continue
		}
		sum[sub.Sector()] += price
		count[sub.Sector()]++
		market.SetPrice(sub.Sector(), region.Name(), sum[sub.Sector()]/float64(count[sub.Sector()]), period)
	}

	for _, sub := range slices.Backward(region.subsectors) {
		demand, ok := sub.ExogenousDemand(period)
		if !ok {
			demand = market.Demand(sub.Sector(), region.Name(), period) * sub.demandShare
		}
		if err := sub.Supply(ctx, market, region, demand, period); err != nil {
			return err
		}
	}
	return nil
}

// SubsectorVisitor is a core.Visitor that also wants to know where each
// technology sits.
type SubsectorVisitor interface {
	core.Visitor
	StartVisitSubsector(region, sector, subsector string, period int)
	EndVisitSubsector(region, sector, subsector string, period int)
}

// Accept walks visitor over every technology active in period.
func (m *Model) Accept(visitor core.Visitor, period int) {
	sv, withSubsectors := visitor.(SubsectorVisitor)
	for _, region := range m.regions {
		for _, sub := range region.subsectors {
			if withSubsectors {
				sv.StartVisitSubsector(region.Name(), sub.Sector(), sub.Name(), period)
			}
			for _, tech := range sub.Technologies(period) {
				tech.Accept(visitor, period)
			}
			if withSubsectors {
				sv.EndVisitSubsector(region.Name(), sub.Sector(), sub.Name(), period)
			}
		}
	}
}
