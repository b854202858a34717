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

// Package collector records per-technology results of a model run.
//
// A Report is a core.Visitor that also accepts subsector boundaries, so
// every value it records knows the region, sector and subsector it belongs
// to. Each visit adds one point per period to the series of:
//
//   - share: normalized share of subsector output
//   - total_cost: total cost per unit output
//   - fuel_input: fuel consumed
//   - output: physical output per output channel, labelled by good
//   - emissions: gas released per emission source, labelled by gas
//
// # Usage
//
//	report := collector.NewReport(model.Modeltime)
//	for period := range model.Modeltime.Periods() {
//		model.Accept(report, period)
//	}
//
//	shares := report.Select(collector.QuantityShare, map[string]string{
//		collector.LabelSector: "electricity",
//	})
//
// Series are keyed by label set, not by vintage. A technology served by a
// new vintage in a later period continues the same series; the vintage year
// is kept on each DataPoint.
//
// Snapshots give a consistent per-period view across quantities:
//
//	snap := report.Snapshot(0)
//	co2 := snap.Total(collector.QuantityEmissions, map[string]string{collector.LabelGas: "CO2"})
package collector
