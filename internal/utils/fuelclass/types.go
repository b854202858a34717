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

// Package fuelclass classifies the fuel names technologies consume.
// Fuels that are unmetered (no input at all) or renewable carry no market
// price and never register demand on the ledger; every other fuel is priced.
package fuelclass

// FuelClass is the pricing class of a fuel name.
type FuelClass string

const (
	// ClassUnmetered marks a technology with no fuel input ("none" or empty).
	// Such technologies exist to drive non-CO2 emissions.
	ClassUnmetered FuelClass = "unmetered"
	// ClassRenewable marks a fuel that is not traded on any market.
	ClassRenewable FuelClass = "renewable"
	// ClassPriced marks a fuel with a ledger market.
	ClassPriced FuelClass = "priced"

	// NoneFuel is the well-known name for "no fuel input".
	NoneFuel = "none"
	// RenewableFuel is the well-known name for an unpriced renewable resource.
	RenewableFuel = "renewable"
)

// Config lists the fuel names that fall into the unpriced classes.
// Matching is exact.
type Config struct {
	// UnmeteredValues are fuel names meaning "no input".
	UnmeteredValues []string `yaml:"unmetered,omitempty" json:"unmetered,omitempty"`
	// RenewableValues are fuel names of unpriced renewable resources.
	RenewableValues []string `yaml:"renewable,omitempty" json:"renewable,omitempty"`
}

// DefaultConfig returns the standard classification: "none" and "" are
// unmetered, "renewable" is renewable.
func DefaultConfig() Config {
	return Config{
		UnmeteredValues: []string{NoneFuel, ""},
		RenewableValues: []string{RenewableFuel},
	}
}

// IsZero reports whether no value lists are configured.
func (c Config) IsZero() bool {
	return len(c.UnmeteredValues) == 0 && len(c.RenewableValues) == 0
}
