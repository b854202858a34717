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

// Package actuator publishes model results as prometheus metrics.
//
// The MetricsVisitor is walked over a solved model like any other visitor.
// It sets one gauge per technology, vintage and period:
//
//	technology_share{region="USA",sector="electricity",subsector="fossil",
//	  technology="gas-plant",vintage="1990",period="0"} = 0.42
//
// Published gauges:
//   - technology_share
//   - technology_total_cost
//   - technology_fuel_input
//   - technology_output (primary output only)
//   - technology_emissions (additionally labelled by gas)
//
// A batch run has no scrape target, so results are usually written once at
// the end of the run in the text exposition format, ready for a node
// exporter textfile collector:
//
//	metrics, err := actuator.NewMetricsVisitor(actuator.MetricsConfig{})
//	if err != nil {
//		return err
//	}
//	for period := range model.Modeltime.Periods() {
//		model.Accept(metrics, period)
//	}
//	return actuator.WriteTextfile("techsim.prom", metrics.Registry())
//
// Handler exposes the same registry over HTTP for long-lived callers.
package actuator
