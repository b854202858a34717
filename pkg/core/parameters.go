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

	"gopkg.in/yaml.v3"

	"github.com/llm-d/technology-share-engine/internal/logging"
)

// TechnologyParameters holds the physical and economic parameters of one
// technology vintage. They do not change within a period.
type TechnologyParameters struct {
	// Name of the technology these parameters describe.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	// FuelName is the good consumed as input.
	FuelName string `yaml:"fuelName" json:"fuelName"`
	// Efficiency is output per unit input before penalties.
	Efficiency float64 `yaml:"efficiency" json:"efficiency"`
	// EfficiencyPenalty is the fractional loss of efficiency (0-1).
	EfficiencyPenalty float64 `yaml:"efficiencyPenalty,omitempty" json:"efficiencyPenalty,omitempty"`
	// NonEnergyCost is the cost per unit output excluding fuel.
	NonEnergyCost float64 `yaml:"nonEnergyCost,omitempty" json:"nonEnergyCost,omitempty"`
	// NonEnergyCostPenalty is the fractional markup on NonEnergyCost.
	NonEnergyCostPenalty float64 `yaml:"nonEnergyCostPenalty,omitempty" json:"nonEnergyCostPenalty,omitempty"`
	// FuelMultiplier scales the fuel price. It is 1 when not given; an
	// explicit 0 makes the fuel free.
	FuelMultiplier float64 `yaml:"fuelMultiplier" json:"fuelMultiplier"`
	// FuelPrefElasticity is the elasticity of share on scaled GDP per capita.
	FuelPrefElasticity float64 `yaml:"fuelPrefElasticity,omitempty" json:"fuelPrefElasticity,omitempty"`
}

// NewTechnologyParameters returns parameters with default values: unit
// efficiency and fuel multiplier, no penalties, no cost, no elasticity.
func NewTechnologyParameters(name string) *TechnologyParameters {
	return &TechnologyParameters{
		Name:           name,
		Efficiency:     1,
		FuelMultiplier: 1,
	}
}

// UnmarshalYAML decodes parameters over the defaults of
// NewTechnologyParameters, so omitted fields keep their default values.
func (p *TechnologyParameters) UnmarshalYAML(value *yaml.Node) error {
	type plain TechnologyParameters
	decoded := plain(*NewTechnologyParameters(""))
	if err := value.Decode(&decoded); err != nil {
		return err
	}
	*p = TechnologyParameters(decoded)
	return nil
}

// Clone returns an independent copy.
func (p *TechnologyParameters) Clone() *TechnologyParameters {
	c := *p
	return &c
}

// EffectiveEfficiency is the efficiency after the efficiency penalty.
func (p *TechnologyParameters) EffectiveEfficiency() float64 {
	return p.Efficiency * (1 - p.EfficiencyPenalty)
}

// EffectiveNonEnergyCost is the non-energy cost after its penalty.
func (p *TechnologyParameters) EffectiveNonEnergyCost() float64 {
	return p.NonEnergyCost * (1 + p.NonEnergyCostPenalty)
}

// CompleteInit corrects values that would make cost or input undefined.
func (p *TechnologyParameters) CompleteInit(ctx context.Context) {
	logger := logging.FromContext(ctx)
	if p.Efficiency <= 0 {
		logger.Info("Invalid efficiency, resetting to 1",
			"technology", p.Name,
			"efficiency", p.Efficiency)
		p.Efficiency = 1
	}
}

// parameterSource tells who owns a technology's parameter block.
type parameterSource int

const (
	// ownedParameters are exclusively owned and cloned with the technology.
	ownedParameters parameterSource = iota
	// sharedParameters point into a ParameterStore and are never modified.
	sharedParameters
)

// parameterHandle is either an owned parameter block or a read-only
// reference into the shared store.
type parameterHandle struct {
	source parameterSource
	params *TechnologyParameters
}

func ownedHandle(p *TechnologyParameters) parameterHandle {
	return parameterHandle{source: ownedParameters, params: p}
}

func sharedHandle(p *TechnologyParameters) parameterHandle {
	return parameterHandle{source: sharedParameters, params: p}
}

func (h parameterHandle) isShared() bool {
	return h.source == sharedParameters
}

func (h parameterHandle) clone() parameterHandle {
	if h.params == nil || h.isShared() {
		return h
	}
	return ownedHandle(h.params.Clone())
}
