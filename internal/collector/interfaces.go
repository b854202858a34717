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

package collector

import "strings"

// ReportReader provides read-only access to the series recorded by a Report.
type ReportReader interface {
	// Series returns the series of quantity with exactly the given labels.
	// Returns nil if nothing was recorded for it.
	Series(quantity Quantity, labels map[string]string) *Series

	// Select returns every series of quantity whose labels include all of
	// matchers, ordered by label set.
	Select(quantity Quantity, matchers map[string]string) []*Series

	// Snapshot returns the values of every series for one period.
	Snapshot(period int) *Snapshot
}

// Snapshot is a point-in-time view of all recorded quantities.
type Snapshot struct {
	// Period is the model period the snapshot describes.
	Period int

	// Year is the calendar year of the period.
	Year int

	// Values holds, per quantity, the value of each label set (as string).
	Values map[Quantity]map[string]float64
}

// Total sums the values of quantity whose label set contains all matchers.
func (s *Snapshot) Total(quantity Quantity, matchers map[string]string) float64 {
	want := LabelSetToKey(matchers)
	total := 0.0
	for key, v := range s.Values[quantity] {
		if want == "" || containsLabels(key, matchers) {
			total += v
		}
	}
	return total
}

// containsLabels reports whether the label set encoded in key has every
// matcher.
func containsLabels(key string, matchers map[string]string) bool {
	pairs := make(map[string]bool)
	for _, pair := range strings.Split(key, ",") {
		pairs[pair] = true
	}
	for k, v := range matchers {
		if !pairs[k+"="+v] {
			return false
		}
	}
	return true
}
