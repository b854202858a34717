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

import (
	"context"
	"maps"
	"slices"

	"github.com/llm-d/technology-share-engine/internal/logging"
	"github.com/llm-d/technology-share-engine/pkg/core"
)

// Report is a visitor that records share, cost, input, outputs and emissions
// of every technology it visits. Series are keyed by region, sector,
// subsector and technology, so a technology keeps one series across the
// vintages that serve it.
type Report struct {
	modeltime core.Modeltime
	series    map[Quantity]map[string]*Series

	region    string
	sector    string
	subsector string
	tech      *core.Technology
}

var _ ReportReader = (*Report)(nil)

// NewReport returns an empty report for a model with the given time line.
func NewReport(modeltime core.Modeltime) *Report {
	return &Report{
		modeltime: modeltime,
		series:    make(map[Quantity]map[string]*Series),
	}
}

func (r *Report) StartVisitSubsector(region, sector, subsector string, _ int) {
	r.region, r.sector, r.subsector = region, sector, subsector
}

func (r *Report) EndVisitSubsector(string, string, string, int) {
	r.region, r.sector, r.subsector = "", "", ""
}

func (r *Report) StartVisitTechnology(tech *core.Technology, period int) {
	r.tech = tech
	r.record(QuantityShare, nil, tech.Share(), period)
	r.record(QuantityTotalCost, nil, tech.TotalCost(), period)
	r.record(QuantityFuelInput, nil, tech.Input(), period)
}

func (r *Report) VisitOutput(output core.OutputChannel, period int) {
	r.record(QuantityOutput, map[string]string{LabelGood: output.Name()}, output.PhysicalOutput(period), period)
}

func (r *Report) VisitEmission(source core.EmissionSource, period int) {
	r.record(QuantityEmissions, map[string]string{LabelGas: source.Name()}, source.Emission(period), period)
}

func (r *Report) EndVisitTechnology(*core.Technology, int) {
	r.tech = nil
}

func (r *Report) record(quantity Quantity, extra map[string]string, value float64, period int) {
	if r.tech == nil {
		return
	}
	labels := map[string]string{
		LabelRegion:     r.region,
		LabelSector:     r.sector,
		LabelSubsector:  r.subsector,
		LabelTechnology: r.tech.Name(),
	}
	maps.Copy(labels, extra)

	byKey, ok := r.series[quantity]
	if !ok {
		byKey = make(map[string]*Series)
		r.series[quantity] = byKey
	}
	key := LabelSetToKey(labels)
	s, ok := byKey[key]
	if !ok {
		s = NewSeries(quantity, labels)
		byKey[key] = s
	}
	s.AddPoint(DataPoint{
		Period:  period,
		Year:    r.modeltime.PeriodToYear(period),
		Vintage: r.tech.Year(),
		Value:   value,
	})
}

// Series returns the series of quantity with exactly labels, or nil.
func (r *Report) Series(quantity Quantity, labels map[string]string) *Series {
	return r.series[quantity][LabelSetToKey(labels)]
}

// Select returns the series of quantity whose labels include matchers.
func (r *Report) Select(quantity Quantity, matchers map[string]string) []*Series {
	byKey := r.series[quantity]
	var out []*Series
	for _, key := range slices.Sorted(maps.Keys(byKey)) {
		if containsLabels(key, matchers) {
			out = append(out, byKey[key])
		}
	}
	return out
}

// Snapshot returns every recorded value of period.
func (r *Report) Snapshot(period int) *Snapshot {
	snap := &Snapshot{
		Period: period,
		Year:   r.modeltime.PeriodToYear(period),
		Values: make(map[Quantity]map[string]float64, len(r.series)),
	}
	for quantity, byKey := range r.series {
		values := make(map[string]float64)
		for key, s := range byKey {
			if v, ok := s.Value(period); ok {
				values[key] = v
			}
		}
		snap.Values[quantity] = values
	}
	return snap
}

// Log writes the share of every technology in period at debug verbosity.
func (r *Report) Log(ctx context.Context, period int) {
	logger := logging.FromContext(ctx)
	for _, s := range r.Select(QuantityShare, nil) {
		v, ok := s.Value(period)
		if !ok {
			continue
		}
		logger.V(logging.DEBUG).Info("Technology share",
			"region", s.Labels[LabelRegion],
			"sector", s.Labels[LabelSector],
			"subsector", s.Labels[LabelSubsector],
			"technology", s.Labels[LabelTechnology],
			"period", period,
			"share", v)
	}
}
