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

	"github.com/llm-d/technology-share-engine/internal/engines/limiter"
	"github.com/llm-d/technology-share-engine/internal/ledger"
	"github.com/llm-d/technology-share-engine/internal/logging"
	"github.com/llm-d/technology-share-engine/internal/techdb"
	"github.com/llm-d/technology-share-engine/internal/utils/fuelclass"
	"github.com/llm-d/technology-share-engine/pkg/config"
	"github.com/llm-d/technology-share-engine/pkg/core"
)

// OverrideApplier adjusts a technology before it is initialized.
type OverrideApplier interface {
	Apply(tech *core.Technology) bool
}

// ModelOptions are the run settings used to build a Model.
type ModelOptions struct {
	Limiter       limiter.LimiterStrategy
	Calibrate     bool
	DebugChecking bool
	Fuels         fuelclass.Config
	Overrides     OverrideApplier
}

// Model is a scenario built into regions, subsectors and technologies, with
// the marketplace, parameter store and sector dependencies they share.
type Model struct {
	Name         string
	Modeltime    core.Modeltime
	Ledger       *ledger.Marketplace
	Store        *techdb.Store
	Dependencies *techdb.Dependencies

	regions []*Region
	// exogenous[region][good] marks goods whose price is given by the scenario.
	exogenous map[string]map[string]bool
}

// NewModel builds and initializes a model from a validated scenario.
// Technologies missing a vintage for a period are cloned forward from the
// previous period before anything is initialized.
func NewModel(ctx context.Context, scenario *config.Scenario, opts ModelOptions) (*Model, error) {
	logger := logging.FromContext(ctx)

	mt := scenario.Modeltime.Build()
	m := &Model{
		Name:         scenario.Name,
		Modeltime:    mt,
		Ledger:       ledger.NewMarketplace(ctx),
		Store:        techdb.NewStore(),
		Dependencies: techdb.NewDependencies(),
		exogenous:    make(map[string]map[string]bool),
	}

	for _, g := range scenario.GlobalTechnologies {
		if err := m.Store.Add(ctx, g.Year, g.Parameters); err != nil {
			return nil, err
		}
	}

	lim, err := limiter.NewLimiter(opts.Limiter)
	if err != nil {
		return nil, err
	}

	coreOpts := core.Options{
		Modeltime:     mt,
		DebugChecking: opts.DebugChecking,
		Fuels:         opts.Fuels,
	}

	for _, rs := range scenario.Regions {
		region := NewRegion(rs.Name, rs.GDPPerCapita, rs.Population)
		m.loadMarkets(rs, mt.Periods())

		for _, ss := range rs.Subsectors {
			sub := NewSubsector(ss.Name, ss.Sector, rs.Name, mt.Periods(), lim)
			sub.SetCalibrate(opts.Calibrate)
			if len(ss.Demand) > 0 {
				sub.SetDemand(ss.Demand)
			}
			if ss.DemandShare != nil {
				sub.SetDemandShare(*ss.DemandShare)
			}
			for _, ts := range ss.Technologies {
				if err := m.addTechnology(ctx, sub, ts, opts.Overrides); err != nil {
					return nil, fmt.Errorf("region %s: %w", rs.Name, err)
				}
			}
			region.AddSubsector(sub)
		}

		for _, sub := range region.subsectors {
			sub.CompleteInit(ctx, m.Dependencies, m.Store, coreOpts)
			m.createTechnologyMarkets(sub, opts.Fuels)
		}
		m.regions = append(m.regions, region)
	}

	if err := m.orderSubsectors(); err != nil {
		return nil, err
	}

	logger.V(logging.DEBUG).Info("Built model",
		"scenario", m.Name,
		"regions", len(m.regions),
		"periods", mt.Periods(),
		"globalTechnologies", m.Store.Len())
	return m, nil
}

func (m *Model) loadMarkets(rs config.RegionSpec, periods int) {
	exo := make(map[string]bool)
	for _, p := range rs.Prices {
		exo[p.Good] = true
		for period, price := range p.Values {
			m.Ledger.SetPrice(p.Good, rs.Name, price, period)
		}
	}
	for _, ms := range rs.Markets {
		for period := 0; period < periods; period++ {
			m.Ledger.CreateMarket(ms.Good, rs.Name, period)
			if ms.CO2Coef != nil {
				info, _ := m.Ledger.MarketInfo(ms.Good, rs.Name, period)
				info.SetDouble(core.CO2CoefKey, *ms.CO2Coef)
			}
		}
	}
	m.exogenous[rs.Name] = exo
}

// addTechnology places one technology in every period of sub.
func (m *Model) addTechnology(ctx context.Context, sub *Subsector, ts config.TechnologySpec, overrides OverrideApplier) error {
	var prev *core.Technology
	for period, year := range m.Modeltime.Years() {
		var tech *core.Technology
		if v, ok := ts.Vintage(year); ok && v.Year == year {
			tech = v.Build(ts.Name)
			// Shared parameters are bound to the vintage year so clones keep them.
			tech.ResolveGlobalParameters(m.Store)
			if overrides != nil {
				overrides.Apply(tech)
			}
			if prev != nil {
				for _, g := range prev.EmissionSources() {
					tech.CopyGHGParameters(g)
				}
			}
		} else if prev != nil {
			tech = prev.Clone()
			tech.SetYear(ctx, year)
			// Calibration data belongs to the vintage it was given for.
			tech.SetCalibration(nil)
		} else {
			return fmt.Errorf("technology %s has no vintage for %d", ts.Name, year)
		}
		sub.AddTechnology(period, tech)
		prev = tech
	}
	return nil
}

// createTechnologyMarkets makes sure demand for priced fuels and the sector's
// own good is recorded.
func (m *Model) createTechnologyMarkets(sub *Subsector, fuels fuelclass.Config) {
	for period := range m.Modeltime.Periods() {
		m.Ledger.CreateMarket(sub.Sector(), sub.Region(), period)
		for _, tech := range sub.Technologies(period) {
			if fuel := tech.FuelName(); fuelclass.IsPriced(fuel, fuels) {
				m.Ledger.CreateMarket(fuel, sub.Region(), period)
			}
		}
	}
}

// orderSubsectors sorts every region's subsectors so producers of a good
// come before its consumers.
func (m *Model) orderSubsectors() error {
	order, err := m.Dependencies.Order()
	if err != nil {
		return err
	}
	rank := make(map[string]int, len(order))
	for i, name := range order {
		rank[name] = i
	}
	for _, r := range m.regions {
		slices.SortStableFunc(r.subsectors, func(a, b *Subsector) int {
			return rank[a.Sector()] - rank[b.Sector()]
		})
	}
	return nil
}

// Regions returns the regions in scenario order.
func (m *Model) Regions() []*Region { return m.regions }

// Region returns the named region.
func (m *Model) Region(name string) (*Region, bool) {
	for _, r := range m.regions {
		if r.Name() == name {
			return r, true
		}
	}
	return nil, false
}

// PriceIsExogenous reports whether the scenario prices good in region.
func (m *Model) PriceIsExogenous(region, good string) bool {
	return m.exogenous[region][good]
}
