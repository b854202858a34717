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

package config

import (
	"github.com/llm-d/technology-share-engine/pkg/core"
)

// Scenario is the root of a scenario document.
type Scenario struct {
	Name               string             `yaml:"name" json:"name" validate:"required"`
	Modeltime          ModeltimeSpec      `yaml:"modeltime" json:"modeltime"`
	GlobalTechnologies []GlobalTechnology `yaml:"globalTechnologies,omitempty" json:"globalTechnologies,omitempty" validate:"dive"`
	Regions            []RegionSpec       `yaml:"regions" json:"regions" validate:"required,min=1,dive"`
}

// ModeltimeSpec lists the period years, either explicitly or as a start year
// with a constant step.
type ModeltimeSpec struct {
	Years     []int `yaml:"years,omitempty" json:"years,omitempty" validate:"omitempty,dive,gt=0"`
	StartYear int   `yaml:"startYear,omitempty" json:"startYear,omitempty" validate:"omitempty,gt=0"`
	TimeStep  int   `yaml:"timeStep,omitempty" json:"timeStep,omitempty" validate:"omitempty,gt=0"`
	Periods   int   `yaml:"periods,omitempty" json:"periods,omitempty" validate:"omitempty,gt=0"`
}

// Build returns the model time described by the spec.
func (m ModeltimeSpec) Build() core.Modeltime {
	if len(m.Years) > 0 {
		return core.NewModeltimeFromYears(m.Years)
	}
	return core.NewModeltime(m.StartYear, m.TimeStep, m.Periods)
}

// GlobalTechnology is one entry of the shared parameter store.
type GlobalTechnology struct {
	Year       int                        `yaml:"year" json:"year" validate:"gt=0"`
	Parameters *core.TechnologyParameters `yaml:"parameters" json:"parameters" validate:"required"`
}

// RegionSpec holds everything the model knows about one region.
type RegionSpec struct {
	Name string `yaml:"name" json:"name" validate:"required"`
	// GDPPerCapita is the scaled GDP per capita, one value per period.
	GDPPerCapita []float64 `yaml:"gdpPerCapita,omitempty" json:"gdpPerCapita,omitempty" validate:"omitempty,dive,gt=0"`
	// Population is one value per period.
	Population []float64       `yaml:"population,omitempty" json:"population,omitempty" validate:"omitempty,dive,gte=0"`
	Prices     []PriceSeries   `yaml:"prices,omitempty" json:"prices,omitempty" validate:"dive"`
	Markets    []MarketSpec    `yaml:"markets,omitempty" json:"markets,omitempty" validate:"dive"`
	Subsectors []SubsectorSpec `yaml:"subsectors" json:"subsectors" validate:"required,min=1,dive"`
}

// PriceSeries is an exogenous price path for one good.
type PriceSeries struct {
	Good   string    `yaml:"good" json:"good" validate:"required"`
	Values []float64 `yaml:"values" json:"values" validate:"required"`
}

// MarketSpec declares a market and its auxiliary counters.
type MarketSpec struct {
	Good string `yaml:"good" json:"good" validate:"required"`
	// CO2Coef is the CO2 emitted per unit of the good consumed.
	CO2Coef *float64 `yaml:"co2Coef,omitempty" json:"co2Coef,omitempty" validate:"omitempty,gte=0"`
}

// SubsectorSpec is a group of technologies competing to supply one sector.
type SubsectorSpec struct {
	Sector string `yaml:"sector" json:"sector" validate:"required"`
	Name   string `yaml:"name" json:"name" validate:"required"`
	// Demand is the exogenous subsector demand, one value per period. Without
	// it the subsector serves DemandShare of the demand the ledger records
	// for its sector's good.
	Demand       []float64        `yaml:"demand,omitempty" json:"demand,omitempty" validate:"omitempty,dive,gte=0"`
	DemandShare  *float64         `yaml:"demandShare,omitempty" json:"demandShare,omitempty" validate:"omitempty,gte=0,lte=1"`
	Technologies []TechnologySpec `yaml:"technologies" json:"technologies" validate:"required,min=1,dive"`
}

// TechnologySpec lists the vintages of one technology. Periods without a
// vintage reuse the previous period's vintage.
type TechnologySpec struct {
	Name     string        `yaml:"name" json:"name" validate:"required"`
	Vintages []VintageSpec `yaml:"vintages" json:"vintages" validate:"required,min=1,dive"`
}

// VintageSpec configures one technology vintage.
type VintageSpec struct {
	Year            int      `yaml:"year" json:"year" validate:"gt=0"`
	ShareWeight     *float64 `yaml:"shareWeight,omitempty" json:"shareWeight,omitempty" validate:"omitempty,gte=0"`
	LogitExponent   *float64 `yaml:"logitExponent,omitempty" json:"logitExponent,omitempty" validate:"omitempty,lte=0"`
	PriceMultiplier *float64 `yaml:"priceMultiplier,omitempty" json:"priceMultiplier,omitempty" validate:"omitempty,gt=0"`
	FixedOutput     *float64 `yaml:"fixedOutput,omitempty" json:"fixedOutput,omitempty"`
	// Global resolves parameters from the global technology of the same name.
	Global           bool                       `yaml:"global,omitempty" json:"global,omitempty"`
	Parameters       *core.TechnologyParameters `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Calibration      *CalibrationSpec           `yaml:"calibration,omitempty" json:"calibration,omitempty"`
	GHGs             []GHGSpec                  `yaml:"ghgs,omitempty" json:"ghgs,omitempty" validate:"dive"`
	SecondaryOutputs []SecondaryOutputSpec      `yaml:"secondaryOutputs,omitempty" json:"secondaryOutputs,omitempty" validate:"dive"`
	Note             string                     `yaml:"note,omitempty" json:"note,omitempty"`
}

// CalibrationSpec is a historical value the vintage is calibrated to.
type CalibrationSpec struct {
	Kind  core.CalibrationKind `yaml:"kind" json:"kind" validate:"required,oneof=input output outputPerCapita"`
	Value float64              `yaml:"value" json:"value"`
}

// GHGSpec configures one emission source.
type GHGSpec struct {
	Gas                string `yaml:"gas" json:"gas" validate:"required"`
	core.GHGParameters `yaml:",inline" json:",inline"`
}

// SecondaryOutputSpec configures a by-product.
type SecondaryOutputSpec struct {
	Good        string  `yaml:"good" json:"good" validate:"required"`
	Coefficient float64 `yaml:"coefficient" json:"coefficient" validate:"gte=0"`
}
