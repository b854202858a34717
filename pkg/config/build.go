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

// Build returns a new, uninitialized technology named name for the vintage.
func (v VintageSpec) Build(name string) *core.Technology {
	tech := core.NewTechnology(name, v.Year)
	if v.Global {
		tech.UseGlobalParameters()
	} else if v.Parameters != nil {
		p := v.Parameters.Clone()
		p.Name = name
		tech.SetParameters(p)
	}
	if v.ShareWeight != nil {
		tech.SetShareWeight(*v.ShareWeight)
	}
	if v.LogitExponent != nil {
		tech.SetLogitExponent(*v.LogitExponent)
	}
	if v.PriceMultiplier != nil {
		tech.SetPriceMultiplier(*v.PriceMultiplier)
	}
	if v.FixedOutput != nil {
		tech.SetFixedOutput(*v.FixedOutput)
	}
	if v.Calibration != nil {
		tech.SetCalibration(core.NewCalibrationTarget(v.Calibration.Kind, v.Calibration.Value))
	}
	for _, g := range v.GHGs {
		tech.AddEmissionSource(g.Build())
	}
	for _, o := range v.SecondaryOutputs {
		tech.AddSecondaryOutput(core.NewSecondaryOutput(o.Good, o.Coefficient))
	}
	tech.SetNote(v.Note)
	return tech
}

// Build returns the emission source for the spec. CO2 reads its coefficient
// from the fuel market.
func (g GHGSpec) Build() core.EmissionSource {
	if g.Gas == core.CO2 {
		return core.NewCO2(g.GHGParameters)
	}
	return core.NewGHG(g.Gas, g.GHGParameters)
}

// Vintage returns the spec of the vintage active in year: the latest vintage
// whose year is not after year.
func (t TechnologySpec) Vintage(year int) (VintageSpec, bool) {
	var found VintageSpec
	ok := false
	for _, v := range t.Vintages {
		if v.Year > year {
			break
		}
		found, ok = v, true
	}
	return found, ok
}
