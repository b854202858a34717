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

package commands

import (
	"fmt"
	"io"
	"maps"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/llm-d/technology-share-engine/internal/collector"
	"github.com/llm-d/technology-share-engine/pkg/core"
)

type technologySummary struct {
	Region     string             `yaml:"region"`
	Sector     string             `yaml:"sector"`
	Subsector  string             `yaml:"subsector"`
	Technology string             `yaml:"technology"`
	Vintage    int                `yaml:"vintage"`
	Share      float64            `yaml:"share"`
	TotalCost  float64            `yaml:"totalCost"`
	FuelInput  float64            `yaml:"fuelInput"`
	Output     float64            `yaml:"output"`
	Emissions  map[string]float64 `yaml:"emissions,omitempty"`
}

type periodSummary struct {
	Period       int                 `yaml:"period"`
	Year         int                 `yaml:"year"`
	CO2          float64             `yaml:"co2"`
	Technologies []technologySummary `yaml:"technologies"`
}

// technologyTotal describes one technology over the whole horizon.
type technologyTotal struct {
	Region           string  `yaml:"region"`
	Sector           string  `yaml:"sector"`
	Subsector        string  `yaml:"subsector"`
	Technology       string  `yaml:"technology"`
	LatestVintage    int     `yaml:"latestVintage"`
	MeanShare        float64 `yaml:"meanShare"`
	FinalShare       float64 `yaml:"finalShare"`
	CumulativeOutput float64 `yaml:"cumulativeOutput"`
	PeakOutput       float64 `yaml:"peakOutput"`
}

type runSummary struct {
	Periods []periodSummary   `yaml:"periods"`
	Totals  []technologyTotal `yaml:"totals"`
}

func summarizeRun(report *collector.Report, periods int) (runSummary, error) {
	totals, err := summarizeHorizon(report)
	if err != nil {
		return runSummary{}, err
	}
	return runSummary{Periods: summarize(report, periods), Totals: totals}, nil
}

// summarize reads one row per technology and period back from report.
func summarize(report *collector.Report, periods int) []periodSummary {
	co2 := map[string]string{collector.LabelGas: core.CO2}
	out := make([]periodSummary, 0, periods)
	for period := range periods {
		ps := periodSummary{
			Period: period,
			CO2:    report.Snapshot(period).Total(collector.QuantityEmissions, co2),
		}
		for _, share := range report.Select(collector.QuantityShare, nil) {
			point, ok := share.Point(period)
			if !ok {
				continue
			}
			ps.Year = point.Year
			labels := share.Labels
			row := technologySummary{
				Region:     labels[collector.LabelRegion],
				Sector:     labels[collector.LabelSector],
				Subsector:  labels[collector.LabelSubsector],
				Technology: labels[collector.LabelTechnology],
				Vintage:    point.Vintage,
				Share:      point.Value,
				TotalCost:  value(report, collector.QuantityTotalCost, labels, period),
				FuelInput:  value(report, collector.QuantityFuelInput, labels, period),
			}

			primary := maps.Clone(labels)
			primary[collector.LabelGood] = row.Sector
			row.Output = value(report, collector.QuantityOutput, primary, period)

			for _, s := range report.Select(collector.QuantityEmissions, labels) {
				if v, ok := s.Value(period); ok {
					if row.Emissions == nil {
						row.Emissions = make(map[string]float64)
					}
					row.Emissions[s.Labels[collector.LabelGas]] = v
				}
			}
			ps.Technologies = append(ps.Technologies, row)
		}
		out = append(out, ps)
	}
	return out
}

// summarizeHorizon aggregates every technology's series over all periods.
func summarizeHorizon(report *collector.Report) ([]technologyTotal, error) {
	var out []technologyTotal
	for _, share := range report.Select(collector.QuantityShare, nil) {
		latest := share.Latest()
		if latest == nil {
			continue
		}
		labels := share.Labels
		row := technologyTotal{
			Region:        labels[collector.LabelRegion],
			Sector:        labels[collector.LabelSector],
			Subsector:     labels[collector.LabelSubsector],
			Technology:    labels[collector.LabelTechnology],
			LatestVintage: latest.Vintage,
			FinalShare:    latest.Value,
		}
		var err error
		if row.MeanShare, err = share.Aggregate(collector.AggAvg); err != nil {
			return nil, err
		}

		primary := maps.Clone(labels)
		primary[collector.LabelGood] = row.Sector
		if output := report.Series(collector.QuantityOutput, primary); output != nil {
			if row.CumulativeOutput, err = output.Aggregate(collector.AggSum); err != nil {
				return nil, err
			}
			if row.PeakOutput, err = output.Aggregate(collector.AggMax); err != nil {
				return nil, err
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func value(report *collector.Report, quantity collector.Quantity, labels map[string]string, period int) float64 {
	s := report.Series(quantity, labels)
	if s == nil {
		return 0
	}
	v, _ := s.Value(period)
	return v
}

func writeYAML(w io.Writer, summary runSummary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func writeTables(w io.Writer, summary runSummary) error {
	for _, ps := range summary.Periods {
		t := newTable().
			Headers("REGION", "SECTOR", "SUBSECTOR", "TECHNOLOGY", "VINTAGE", "SHARE", "COST", "INPUT", "OUTPUT", core.CO2)
		for _, row := range ps.Technologies {
			t.Row(
				row.Region,
				row.Sector,
				row.Subsector,
				row.Technology,
				strconv.Itoa(row.Vintage),
				formatFloat(row.Share),
				formatFloat(row.TotalCost),
				formatFloat(row.FuelInput),
				formatFloat(row.Output),
				formatFloat(row.Emissions[core.CO2]),
			)
		}
		if _, err := fmt.Fprintf(w, "Period %d (%d), CO2 %s\n%s\n", ps.Period, ps.Year, formatFloat(ps.CO2), t.String()); err != nil {
			return err
		}
	}

	t := newTable().
		Headers("REGION", "SECTOR", "SUBSECTOR", "TECHNOLOGY", "LATEST VINTAGE", "MEAN SHARE", "FINAL SHARE", "CUMULATIVE OUTPUT", "PEAK OUTPUT")
	for _, row := range summary.Totals {
		t.Row(
			row.Region,
			row.Sector,
			row.Subsector,
			row.Technology,
			strconv.Itoa(row.LatestVintage),
			formatFloat(row.MeanShare),
			formatFloat(row.FinalShare),
			formatFloat(row.CumulativeOutput),
			formatFloat(row.PeakOutput),
		)
	}
	_, err := fmt.Fprintf(w, "Horizon\n%s\n", t.String())
	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
