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
	"fmt"
	"maps"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Quantity names a per-technology value recorded each period.
type Quantity string

const (
	// QuantityShare is the normalized share of subsector output.
	QuantityShare Quantity = "share"

	// QuantityTotalCost is the total cost per unit output.
	QuantityTotalCost Quantity = "total_cost"

	// QuantityFuelInput is the fuel consumed.
	QuantityFuelInput Quantity = "fuel_input"

	// QuantityOutput is the physical output of one output channel.
	// Series carry the produced good in the "good" label.
	QuantityOutput Quantity = "output"

	// QuantityEmissions is the gas released.
	// Series carry the gas in the "gas" label.
	QuantityEmissions Quantity = "emissions"
)

// Label names used on every series.
const (
	LabelRegion     = "region"
	LabelSector     = "sector"
	LabelSubsector  = "subsector"
	LabelTechnology = "technology"
	LabelGood       = "good"
	LabelGas        = "gas"
)

// AggregationType defines supported aggregation functions over a series.
type AggregationType string

const (
	AggSum  AggregationType = "sum"
	AggAvg  AggregationType = "avg"
	AggMax  AggregationType = "max"
	AggMin  AggregationType = "min"
	AggLast AggregationType = "last"
)

// DataPoint is the value of one period.
type DataPoint struct {
	// Period is the model period index.
	Period int

	// Year is the calendar year of the period.
	Year int

	// Vintage is the year of the technology vintage that produced the value.
	Vintage int

	Value float64
}

// Series is the sequence of values of one quantity for one label set.
// Note: This type is not thread-safe.
type Series struct {
	// Quantity is what the series measures.
	Quantity Quantity

	// Labels are the label key-value pairs identifying this series.
	Labels map[string]string

	// Points are ordered by period, one per period.
	Points []DataPoint
}

// NewSeries creates an empty series with the given quantity and labels.
func NewSeries(quantity Quantity, labels map[string]string) *Series {
	return &Series{
		Quantity: quantity,
		Labels:   labels,
		Points:   make([]DataPoint, 0),
	}
}

// AddPoint records p, replacing any earlier value for the same period.
func (s *Series) AddPoint(p DataPoint) {
	i, found := slices.BinarySearchFunc(s.Points, p.Period, func(d DataPoint, period int) int {
		return d.Period - period
	})
	if found {
		s.Points[i] = p
		return
	}
	s.Points = slices.Insert(s.Points, i, p)
}

// Point returns the point recorded for period.
func (s *Series) Point(period int) (DataPoint, bool) {
	for _, p := range s.Points {
		if p.Period == period {
			return p, true
		}
	}
	return DataPoint{}, false
}

// Value returns the value recorded for period.
func (s *Series) Value(period int) (float64, bool) {
	p, ok := s.Point(period)
	return p.Value, ok
}

// Latest returns the point of the last period, or nil if empty.
func (s *Series) Latest() *DataPoint {
	if len(s.Points) == 0 {
		return nil
	}
	return &s.Points[len(s.Points)-1]
}

// Values returns the recorded values in period order.
func (s *Series) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return values
}

// Aggregate reduces the series with agg. An empty series aggregates to 0.
func (s *Series) Aggregate(agg AggregationType) (float64, error) {
	values := s.Values()
	if len(values) == 0 {
		return 0, nil
	}
	switch agg {
	case AggSum:
		return floats.Sum(values), nil
	case AggAvg:
		return stat.Mean(values, nil), nil
	case AggMax:
		return floats.Max(values), nil
	case AggMin:
		return floats.Min(values), nil
	case AggLast:
		return values[len(values)-1], nil
	default:
		return 0, fmt.Errorf("unsupported aggregation %q", agg)
	}
}

// LabelSetKey returns a string key representing the label set.
func (s *Series) LabelSetKey() string {
	return LabelSetToKey(s.Labels)
}

// LabelSetToKey converts a label map to a deterministic string key.
func LabelSetToKey(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	keys := slices.Sorted(maps.Keys(labels))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%s", k, labels[k])
	}
	return strings.Join(parts, ",")
}
