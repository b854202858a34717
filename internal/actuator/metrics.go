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

package actuator

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/llm-d/technology-share-engine/pkg/core"
)

// Label names of the technology gauges.
const (
	LabelRegion     = "region"
	LabelSector     = "sector"
	LabelSubsector  = "subsector"
	LabelTechnology = "technology"
	LabelVintage    = "vintage"
	LabelPeriod     = "period"
	LabelGas        = "gas"
)

var technologyLabels = []string{LabelRegion, LabelSector, LabelSubsector, LabelTechnology, LabelVintage, LabelPeriod}

// MetricsConfig configures the gauges.
type MetricsConfig struct {
	// Namespace prefixes every metric name. Empty means no prefix.
	Namespace string
}

// MetricsVisitor publishes the state of every technology it visits as
// prometheus gauges on its own registry.
type MetricsVisitor struct {
	share     *prometheus.GaugeVec
	totalCost *prometheus.GaugeVec
	fuelInput *prometheus.GaugeVec
	output    *prometheus.GaugeVec
	emissions *prometheus.GaugeVec

	registry *prometheus.Registry

	region    string
	sector    string
	subsector string
	labels    []string
}

// NewMetricsVisitor creates the gauges and registers them on a new registry.
func NewMetricsVisitor(cfg MetricsConfig) (*MetricsVisitor, error) {
	gauge := func(name, help string, labels []string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      name,
				Help:      help,
			},
			labels,
		)
	}

	m := &MetricsVisitor{
		registry:  prometheus.NewRegistry(),
		share:     gauge("technology_share", "Normalized share of subsector output", technologyLabels),
		totalCost: gauge("technology_total_cost", "Total cost per unit output", technologyLabels),
		fuelInput: gauge("technology_fuel_input", "Fuel consumed", technologyLabels),
		output:    gauge("technology_output", "Primary output produced", technologyLabels),
		emissions: gauge("technology_emissions", "Gas released",
			append(append([]string{}, technologyLabels...), LabelGas)),
	}

	for _, c := range []prometheus.Collector{m.share, m.totalCost, m.fuelInput, m.output, m.emissions} {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register technology metric: %w", err)
		}
	}
	return m, nil
}

// Registry returns the registry holding the gauges.
func (m *MetricsVisitor) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the prometheus exposition format.
func (m *MetricsVisitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *MetricsVisitor) StartVisitSubsector(region, sector, subsector string, _ int) {
	m.region, m.sector, m.subsector = region, sector, subsector
}

func (m *MetricsVisitor) EndVisitSubsector(string, string, string, int) {
	m.region, m.sector, m.subsector = "", "", ""
}

func (m *MetricsVisitor) StartVisitTechnology(tech *core.Technology, period int) {
	m.labels = []string{
		m.region,
		m.sector,
		m.subsector,
		tech.Name(),
		strconv.Itoa(tech.Year()),
		strconv.Itoa(period),
	}
	m.share.WithLabelValues(m.labels...).Set(tech.Share())
	m.totalCost.WithLabelValues(m.labels...).Set(tech.TotalCost())
	m.fuelInput.WithLabelValues(m.labels...).Set(tech.Input())
}

func (m *MetricsVisitor) VisitOutput(output core.OutputChannel, period int) {
	if m.labels == nil || !output.IsPrimary() {
		return
	}
	m.output.WithLabelValues(m.labels...).Set(output.PhysicalOutput(period))
}

func (m *MetricsVisitor) VisitEmission(source core.EmissionSource, period int) {
	if m.labels == nil {
		return
	}
	labels := append(append([]string{}, m.labels...), source.Name())
	m.emissions.WithLabelValues(labels...).Set(source.Emission(period))
}

func (m *MetricsVisitor) EndVisitTechnology(*core.Technology, int) {
	m.labels = nil
}
