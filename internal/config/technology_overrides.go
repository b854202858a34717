package config

import (
	"context"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/llm-d/technology-share-engine/internal/logging"
	"github.com/llm-d/technology-share-engine/pkg/core"
)

const (
	// GlobalDefaultsKey is the override entry applied to every technology.
	GlobalDefaultsKey = "default"
)

// TechnologyOverride adjusts the choice parameters of a technology for a run.
// Unset fields inherit from the global defaults, then from the scenario.
type TechnologyOverride struct {
	// Technology is the technology name (only used in override entries)
	Technology string `yaml:"technology,omitempty" json:"technology,omitempty"`

	// ShareWeight replaces the configured share weight (>= 0).
	ShareWeight *float64 `yaml:"shareWeight,omitempty" json:"shareWeight,omitempty"`

	// LogitExponent replaces the logit exponent. It must not be positive.
	LogitExponent *float64 `yaml:"logitExponent,omitempty" json:"logitExponent,omitempty"`

	// PriceMultiplier scales total cost (> 0).
	PriceMultiplier *float64 `yaml:"priceMultiplier,omitempty" json:"priceMultiplier,omitempty"`

	// FixedOutput mandates an output level. A negative value removes a configured one.
	FixedOutput *float64 `yaml:"fixedOutput,omitempty" json:"fixedOutput,omitempty"`

	// Note is attached to the technology for reports.
	Note string `yaml:"note,omitempty" json:"note,omitempty"`
}

// TechnologyOverrideData holds parsed overrides for all technologies.
// Maps technology name to its override.
type TechnologyOverrideData map[string]TechnologyOverride

// Validate checks for invalid override values.
func (o *TechnologyOverride) Validate() error {
	if o.ShareWeight != nil && *o.ShareWeight < 0 {
		return fmt.Errorf("shareWeight must be >= 0, got %.2f", *o.ShareWeight)
	}
	if o.LogitExponent != nil && *o.LogitExponent > 0 {
		return fmt.Errorf("logitExponent must be <= 0, got %.2f", *o.LogitExponent)
	}
	if o.PriceMultiplier != nil && *o.PriceMultiplier <= 0 {
		return fmt.Errorf("priceMultiplier must be > 0, got %.2f", *o.PriceMultiplier)
	}
	return nil
}

// ParseTechnologyOverrides parses technology overrides from string data.
// The format:
//   - "default": global defaults for all technologies
//   - "<override-name>": per-technology override with a technology field
func ParseTechnologyOverrides(ctx context.Context, data map[string]string) TechnologyOverrideData {
	logger := logging.FromContext(ctx)
	if data == nil {
		return make(TechnologyOverrideData)
	}

	out := make(TechnologyOverrideData)
	techToKeys := make(map[string][]string)

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		var override TechnologyOverride
		if err := yaml.Unmarshal([]byte(data[key]), &override); err != nil {
			logger.Info("Failed to parse technology override entry, skipping",
				"key", key,
				"error", err)
			continue
		}

		if err := override.Validate(); err != nil {
			logger.Info("Invalid technology override entry, skipping",
				"key", key,
				"error", err)
			continue
		}

		if key == GlobalDefaultsKey {
			out[GlobalDefaultsKey] = override
			continue
		}

		if override.Technology == "" {
			logger.Info("Skipping technology override without technology field",
				"key", key)
			continue
		}

		if existingKeys, exists := techToKeys[override.Technology]; exists {
			logger.Info("Duplicate technology found in overrides - first key wins",
				"technology", override.Technology,
				"winningKey", existingKeys[0],
				"duplicateKey", key)
			continue
		}
		techToKeys[override.Technology] = append(techToKeys[override.Technology], key)

		out[override.Technology] = override
	}

	logger.V(logging.DEBUG).Info("Parsed technology overrides",
		"technologyCount", len(out))

	return out
}

// Get returns the effective override for a technology.
// It merges the technology-specific override with global defaults.
func (data TechnologyOverrideData) Get(technology string) TechnologyOverride {
	defaults := data[GlobalDefaultsKey]
	override, ok := data[technology]
	if !ok {
		return defaults
	}

	result := defaults
	result.Technology = override.Technology
	if override.ShareWeight != nil {
		result.ShareWeight = override.ShareWeight
	}
	if override.LogitExponent != nil {
		result.LogitExponent = override.LogitExponent
	}
	if override.PriceMultiplier != nil {
		result.PriceMultiplier = override.PriceMultiplier
	}
	if override.FixedOutput != nil {
		result.FixedOutput = override.FixedOutput
	}
	if override.Note != "" {
		result.Note = override.Note
	}
	return result
}

// IsEmpty reports whether the override changes nothing.
func (o TechnologyOverride) IsEmpty() bool {
	return o.ShareWeight == nil && o.LogitExponent == nil && o.PriceMultiplier == nil &&
		o.FixedOutput == nil && o.Note == ""
}

// Apply writes the effective override for tech onto it. It must run before
// the technology is initialized.
func (data TechnologyOverrideData) Apply(tech *core.Technology) bool {
	o := data.Get(tech.Name())
	if o.IsEmpty() {
		return false
	}
	if o.ShareWeight != nil {
		tech.SetShareWeight(*o.ShareWeight)
	}
	if o.LogitExponent != nil {
		tech.SetLogitExponent(*o.LogitExponent)
	}
	if o.PriceMultiplier != nil {
		tech.SetPriceMultiplier(*o.PriceMultiplier)
	}
	if o.FixedOutput != nil {
		tech.SetFixedOutput(*o.FixedOutput)
	}
	if o.Note != "" {
		tech.SetNote(o.Note)
	}
	return true
}
