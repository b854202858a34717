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

// Region holds a region's macro drivers and subsectors.
type Region struct {
	name         string
	gdpPerCapita []float64
	population   []float64
	subsectors   []*Subsector
}

func NewRegion(name string, gdpPerCapita, population []float64) *Region {
	return &Region{name: name, gdpPerCapita: gdpPerCapita, population: population}
}

func (r *Region) Name() string { return r.name }

// Subsectors returns the subsectors, producers of a good before its consumers.
func (r *Region) Subsectors() []*Subsector { return r.subsectors }

func (r *Region) AddSubsector(s *Subsector) { r.subsectors = append(r.subsectors, s) }

// ScaledGDPPerCapita returns the period's scaled GDP per capita, 1 if unset.
func (r *Region) ScaledGDPPerCapita(period int) float64 {
	if period < 0 || period >= len(r.gdpPerCapita) {
		return 1
	}
	return r.gdpPerCapita[period]
}

// Population returns the period's population, 0 if unset.
func (r *Region) Population(period int) float64 {
	if period < 0 || period >= len(r.population) {
		return 0
	}
	return r.population[period]
}
