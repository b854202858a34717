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
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScenario wraps every cross-field validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadScenario reads and validates the scenario document at path.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates a scenario document. Unknown fields
// are rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks struct tags, then the rules that span fields.
func (s *Scenario) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	mt := s.Modeltime
	switch {
	case len(mt.Years) > 0:
		for i := 1; i < len(mt.Years); i++ {
			if mt.Years[i] <= mt.Years[i-1] {
				return fmt.Errorf("%w: modeltime years must increase, got %v", ErrInvalidScenario, mt.Years)
			}
		}
	case mt.StartYear > 0 && mt.TimeStep > 0 && mt.Periods > 0:
	default:
		return fmt.Errorf("%w: modeltime needs years or startYear, timeStep and periods", ErrInvalidScenario)
	}
	modeltime := mt.Build()
	periods := modeltime.Periods()

	globals := make(map[string]bool)
	for _, g := range s.GlobalTechnologies {
		if g.Parameters.Name == "" {
			return fmt.Errorf("%w: global technology for %d has no name", ErrInvalidScenario, g.Year)
		}
		globals[g.Parameters.Name] = true
	}

	regions := make(map[string]bool)
	for _, r := range s.Regions {
		if regions[r.Name] {
			return fmt.Errorf("%w: duplicate region %q", ErrInvalidScenario, r.Name)
		}
		regions[r.Name] = true

		if err := checkSeries(r.GDPPerCapita, periods, "region "+r.Name+" gdpPerCapita"); err != nil {
			return err
		}
		if err := checkSeries(r.Population, periods, "region "+r.Name+" population"); err != nil {
			return err
		}
		for _, p := range r.Prices {
			if len(p.Values) != periods {
				return fmt.Errorf("%w: region %s price of %s has %d values, want %d",
					ErrInvalidScenario, r.Name, p.Good, len(p.Values), periods)
			}
		}

		subsectors := make(map[string]bool)
		for _, sub := range r.Subsectors {
			key := sub.Sector + "/" + sub.Name
			if subsectors[key] {
				return fmt.Errorf("%w: region %s has duplicate subsector %s", ErrInvalidScenario, r.Name, key)
			}
			subsectors[key] = true
			if err := checkSeries(sub.Demand, periods, "subsector "+key+" demand"); err != nil {
				return err
			}
			if err := validateTechnologies(sub, modeltime.Years(), globals); err != nil {
				return fmt.Errorf("region %s subsector %s: %w", r.Name, key, err)
			}
		}
	}
	return nil
}

func checkSeries(values []float64, periods int, what string) error {
	if len(values) != 0 && len(values) != periods {
		return fmt.Errorf("%w: %s has %d values, want %d", ErrInvalidScenario, what, len(values), periods)
	}
	return nil
}

func validateTechnologies(sub SubsectorSpec, years []int, globals map[string]bool) error {
	onModeltime := make(map[int]bool, len(years))
	for _, y := range years {
		onModeltime[y] = true
	}

	names := make(map[string]bool)
	for _, tech := range sub.Technologies {
		if names[tech.Name] {
			return fmt.Errorf("%w: duplicate technology %q", ErrInvalidScenario, tech.Name)
		}
		names[tech.Name] = true

		prev := 0
		for _, v := range tech.Vintages {
			if !onModeltime[v.Year] {
				return fmt.Errorf("%w: technology %s vintage %d is not a model year", ErrInvalidScenario, tech.Name, v.Year)
			}
			if v.Year <= prev {
				return fmt.Errorf("%w: technology %s vintages must be in increasing year order", ErrInvalidScenario, tech.Name)
			}
			prev = v.Year
			if v.Global && !globals[tech.Name] {
				return fmt.Errorf("%w: technology %s uses global parameters but none are defined", ErrInvalidScenario, tech.Name)
			}
			for _, g := range v.GHGs {
				if g.RemoveFraction < 0 || g.RemoveFraction > 1 || g.NonEnergyFraction < 0 || g.NonEnergyFraction > 1 {
					return fmt.Errorf("%w: technology %s gas %s fractions must be within [0, 1]", ErrInvalidScenario, tech.Name, g.Gas)
				}
			}
		}
		if tech.Vintages[0].Year != years[0] {
			return fmt.Errorf("%w: technology %s has no vintage in the first model year %d", ErrInvalidScenario, tech.Name, years[0])
		}
	}
	return nil
}
