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

package fuelclass

// Classify returns the class of fuel under config. A zero config falls back
// to DefaultConfig.
func Classify(fuel string, config Config) FuelClass {
	if config.IsZero() {
		config = DefaultConfig()
	}
	return matchFuelName(fuel, config)
}

// IsPriced reports whether fuel must be priced on the ledger.
func IsPriced(fuel string, config Config) bool {
	return Classify(fuel, config) == ClassPriced
}

// matchFuelName matches a fuel name against the config's value lists.
func matchFuelName(fuel string, config Config) FuelClass {
	for _, v := range config.UnmeteredValues {
		if fuel == v {
			return ClassUnmetered
		}
	}
	for _, v := range config.RenewableValues {
		if fuel == v {
			return ClassRenewable
		}
	}
	return ClassPriced
}
