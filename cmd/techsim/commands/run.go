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
	"context"
	"fmt"
	"io"
	"net"

	"github.com/spf13/cobra"

	"github.com/llm-d/technology-share-engine/internal/actuator"
	"github.com/llm-d/technology-share-engine/internal/collector"
	"github.com/llm-d/technology-share-engine/internal/config"
	"github.com/llm-d/technology-share-engine/internal/logging"
	pkgconfig "github.com/llm-d/technology-share-engine/pkg/config"
	"github.com/llm-d/technology-share-engine/pkg/solver"
)

// Output formats of the run command.
const (
	outputTable = "table"
	outputYAML  = "yaml"
	outputNone  = "none"
)

func newRunCommand(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "Solve a scenario and report technology shares",
		Long: `Solve every period of a scenario and print the share, cost, input, output
and CO2 emissions of every technology.

The scenario may be given as an argument or with --scenario. Metrics are
written in the prometheus text format when --metricsFile is set, and served
on /metrics until interrupted when --metricsAddr is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch output {
			case outputTable, outputYAML, outputNone:
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
			return runScenario(cmd.Context(), opts.runtime, cmd.OutOrStdout(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format (table, yaml, none)")

	return cmd
}

// buildModel loads the scenario named by rt and builds it into a model.
func buildModel(ctx context.Context, rt *config.Runtime) (*solver.Model, error) {
	scenario, err := pkgconfig.LoadScenario(rt.Scenario)
	if err != nil {
		return nil, err
	}
	return solver.NewModel(ctx, scenario, solver.ModelOptions{
		Limiter:       rt.Limiter,
		Calibrate:     rt.Calibrate,
		DebugChecking: rt.DebugChecking,
		Overrides:     config.ParseTechnologyOverrides(ctx, rt.Overrides),
	})
}

func runScenario(ctx context.Context, rt *config.Runtime, out io.Writer, output string) error {
	logger := logging.FromContext(ctx)

	model, err := buildModel(ctx, rt)
	if err != nil {
		return err
	}
	runner := solver.NewRunner(model, rt.Iterations)
	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("solving scenario %s: %w", model.Name, err)
	}

	report := collector.NewReport(model.Modeltime)
	var metrics *actuator.MetricsVisitor
	if rt.MetricsFile != "" || rt.MetricsAddr != "" {
		metrics, err = actuator.NewMetricsVisitor(actuator.MetricsConfig{})
		if err != nil {
			return err
		}
	}
	for period := range model.Modeltime.Periods() {
		model.Accept(report, period)
		if metrics != nil {
			model.Accept(metrics, period)
		}
		report.Log(ctx, period)
	}

	summary, err := summarizeRun(report, model.Modeltime.Periods())
	if err != nil {
		return err
	}
	switch output {
	case outputTable:
		if err := writeTables(out, summary); err != nil {
			return err
		}
	case outputYAML:
		if err := writeYAML(out, summary); err != nil {
			return err
		}
	}

	if rt.MetricsFile != "" {
		if err := actuator.WriteTextfile(rt.MetricsFile, metrics.Registry()); err != nil {
			return err
		}
		logger.Info("Wrote metrics", "file", rt.MetricsFile, "runID", runner.RunID().String())
	}
	if rt.MetricsAddr != "" {
		ln, err := net.Listen("tcp", rt.MetricsAddr)
		if err != nil {
			return fmt.Errorf("listening for metrics on %s: %w", rt.MetricsAddr, err)
		}
		return serveMetrics(ctx, ln, metrics.Handler())
	}
	return nil
}
