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

import "slices"

// Modeltime maps model periods to calendar years.
type Modeltime struct {
	years []int
}

// NewModeltime returns a modeltime of n periods starting at startYear with a
// constant step.
func NewModeltime(startYear, timeStep, n int) Modeltime {
	years := make([]int, 0, n)
	for p := 0; p < n; p++ {
		years = append(years, startYear+p*timeStep)
	}
	return Modeltime{years: years}
}

// NewModeltimeFromYears returns a modeltime with one period per listed year.
// Years must be increasing.
func NewModeltimeFromYears(years []int) Modeltime {
	return Modeltime{years: slices.Clone(years)}
}

// Periods returns the number of model periods.
func (m Modeltime) Periods() int {
	return len(m.years)
}

// Years returns a copy of the period years.
func (m Modeltime) Years() []int {
	return slices.Clone(m.years)
}

// PeriodToYear returns the year of period, or 0 if the period is out of range.
func (m Modeltime) PeriodToYear(period int) int {
	if period < 0 || period >= len(m.years) {
		return 0
	}
	return m.years[period]
}

// YearToPeriod returns the period whose year is year.
func (m Modeltime) YearToPeriod(year int) (int, bool) {
	i := slices.Index(m.years, year)
	return i, i >= 0
}
