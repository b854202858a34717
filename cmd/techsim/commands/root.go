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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/llm-d/technology-share-engine/internal/config"
	"github.com/llm-d/technology-share-engine/internal/logging"
)

// options carries the runtime configuration from the root command to its
// subcommands.
type options struct {
	v       *viper.Viper
	runtime *config.Runtime
}

// Execute runs the root command.
func Execute(ctx context.Context, version string) error {
	rootCmd, err := newRootCommand(version)
	if err != nil {
		return err
	}
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version string) (*cobra.Command, error) {
	opts := &options{v: config.NewViper()}

	rootCmd := &cobra.Command{
		Use:   "techsim",
		Short: "Technology share engine",
		Long: `techsim competes technology vintages for the demand of their sectors.

Each period it prices every technology from the fuel market, splits subsector
demand by logit share, honors fixed and calibrated output, and records the
fuel demand and emissions that result.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.v.Set(config.KeyScenario, args[0])
			}
			rt, err := config.Load(opts.v)
			if err != nil {
				return err
			}
			logger, err := logging.NewLogger(rt.LogLevel)
			if err != nil {
				return err
			}
			logging.SetLogger(logger)
			cmd.SetContext(logging.IntoContext(cmd.Context(), logger))
			opts.runtime = rt
			return nil
		},
	}

	if err := config.BindFlags(rootCmd.PersistentFlags(), opts.v); err != nil {
		return nil, err
	}

	rootCmd.AddCommand(newRunCommand(opts))
	rootCmd.AddCommand(newValidateCommand(opts))

	return rootCmd, nil
}
