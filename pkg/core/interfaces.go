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

// Collaborators consumed by a Technology. They are owned and mutated outside
// the core; a Technology only reads prices and parameters and adds demand.

// Ledger is the regional price and demand marketplace.
type Ledger interface {
	// Price returns the price of good in region for period. The boolean is
	// false when the good has no market there.
	Price(good, region string, period int) (float64, bool)

	// AddToDemand adds quantity to the demand for good in region for period.
	AddToDemand(good, region string, quantity float64, period int)

	// MarketInfo returns the auxiliary counter store of a market, if the
	// market exists.
	MarketInfo(good, region string, period int) (Info, bool)
}

// Info is a per-market auxiliary counter store keyed by name.
type Info interface {
	// GetDouble returns the value stored under key and whether it was set.
	GetDouble(key string) (float64, bool)
	// SetDouble stores value under key.
	SetDouble(key string, value float64)
}

// ParameterStore is the shared, cross-region store of technology parameters.
// Handles it returns are read-only.
type ParameterStore interface {
	TechnologyParameters(name string, year int) (*TechnologyParameters, bool)
}

// DependencyRegistrar records that a sector consumes a good, so producing
// sectors can be ordered before consuming ones.
type DependencyRegistrar interface {
	AddDependency(sector, good string)
}

// MacroDriver supplies regional macroeconomic state.
type MacroDriver interface {
	ScaledGDPPerCapita(period int) float64
}

// Demographics supplies regional population.
type Demographics interface {
	Population(period int) float64
}
