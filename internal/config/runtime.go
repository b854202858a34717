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

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/llm-d/technology-share-engine/internal/engines/limiter"
	"github.com/llm-d/technology-share-engine/internal/logging"
)

// EnvPrefix prefixes environment variables read by the runtime configuration,
// e.g. TECHSIM_ITERATIONS.
const EnvPrefix = "TECHSIM"

// Runtime configuration keys.
const (
	KeyConfigFile    = "config"
	KeyScenario      = "scenario"
	KeyIterations    = "iterations"
	KeyDebugChecking = "debugChecking"
	KeyLogLevel      = "logLevel"
	KeyLimiter       = "limiter"
	KeyCalibrate     = "calibrate"
	KeyMetricsFile   = "metricsFile"
	KeyMetricsAddr   = "metricsAddr"
	KeyOverrides     = "overrides"
)

// Runtime defaults.
const (
	DefaultIterations = 5
	DefaultLogLevel   = "info"
	DefaultLimiter    = "proportional"
)

// ErrNoScenario is returned by Load when no scenario document is configured.
var ErrNoScenario = errors.New("no scenario configured")

// Runtime holds the settings of one model run.
type Runtime struct {
	Scenario      string
	Iterations    int
	DebugChecking bool
	LogLevel      string
	Limiter       limiter.LimiterStrategy
	Calibrate     bool
	MetricsFile   string
	MetricsAddr   string
	Overrides     map[string]string
}

// NewViper returns a viper instance with runtime defaults that also reads
// TECHSIM_ prefixed environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyIterations, DefaultIterations)
	v.SetDefault(KeyDebugChecking, false)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLimiter, DefaultLimiter)
	v.SetDefault(KeyCalibrate, true)
	return v
}

// BindFlags registers the runtime flags on fs and binds them to v.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.String(KeyConfigFile, "", "runtime configuration file (yaml)")
	fs.String(KeyScenario, "", "scenario document path")
	fs.Int(KeyIterations, DefaultIterations, "solver passes per period")
	fs.Bool(KeyDebugChecking, false, "panic on contract violations and report calibration divergence")
	fs.String(KeyLogLevel, DefaultLogLevel, "log level (error, warn, info, debug, trace)")
	fs.String(KeyLimiter, DefaultLimiter, "fixed output limiter (proportional, passthrough)")
	fs.Bool(KeyCalibrate, true, "adjust share weights toward calibration targets")
	fs.String(KeyMetricsFile, "", "write prometheus text metrics to this file")
	fs.String(KeyMetricsAddr, "", "after the run, serve /metrics on this address until interrupted")
	fs.StringToString(KeyOverrides, nil, "technology overrides as name=yaml")

	for _, key := range []string{KeyConfigFile, KeyScenario, KeyIterations, KeyDebugChecking, KeyLogLevel,
		KeyLimiter, KeyCalibrate, KeyMetricsFile, KeyMetricsAddr, KeyOverrides} {
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			return fmt.Errorf("binding flag %s: %w", key, err)
		}
	}
	return nil
}

// Load reads the runtime configuration from v, including the configuration
// file if one is set.
func Load(v *viper.Viper) (*Runtime, error) {
	if file := v.GetString(KeyConfigFile); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	rt := &Runtime{
		Scenario:      v.GetString(KeyScenario),
		Iterations:    v.GetInt(KeyIterations),
		DebugChecking: v.GetBool(KeyDebugChecking),
		LogLevel:      v.GetString(KeyLogLevel),
		Calibrate:     v.GetBool(KeyCalibrate),
		MetricsFile:   v.GetString(KeyMetricsFile),
		MetricsAddr:   v.GetString(KeyMetricsAddr),
		Overrides:     v.GetStringMapString(KeyOverrides),
	}

	if rt.Scenario == "" {
		return nil, ErrNoScenario
	}
	if rt.Iterations < 1 {
		return nil, fmt.Errorf("iterations must be >= 1, got %d", rt.Iterations)
	}
	if _, err := logging.ParseLevel(rt.LogLevel); err != nil {
		return nil, err
	}
	strategy, err := limiter.ParseStrategy(v.GetString(KeyLimiter))
	if err != nil {
		return nil, err
	}
	rt.Limiter = strategy
	return rt, nil
}
