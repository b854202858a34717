package limiter

import (
	"context"
	"fmt"
	"math"

	"github.com/llm-d/technology-share-engine/internal/logging"
)

// ProportionalLimiterConfig holds configuration for the ProportionalLimiter
type ProportionalLimiterConfig struct {
	LimiterConfig
}

// ProportionalLimiter scales every fixed-output technology by the same ratio
// so that total fixed output equals demand.
type ProportionalLimiter struct {
	config *ProportionalLimiterConfig
}

// NewProportionalLimiter creates a new ProportionalLimiter instance.
func NewProportionalLimiter(config *ProportionalLimiterConfig) (*ProportionalLimiter, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.Tolerance < 0 {
		return nil, fmt.Errorf("tolerance cannot be negative: %v", config.Tolerance)
	}
	return &ProportionalLimiter{
		config: config,
	}, nil
}

// Allocate scales fixed output down to demand when it is oversubscribed
func (l *ProportionalLimiter) Allocate(ctx context.Context, holders []FixedOutputHolder, demand float64) error {
	logger := logging.FromContext(ctx)

	if math.IsNaN(demand) || demand < 0 {
		return fmt.Errorf("invalid subsector demand: %v", demand)
	}

	total := TotalFixedOutput(holders)
	if total <= demand*(1+l.config.Tolerance) {
		return nil
	}

	ratio := demand / total
	for _, h := range holders {
		if !h.HasFixedOutput() {
			continue
		}
		h.ScaleFixedOutput(ratio)
	}
	logger.V(logging.DEBUG).Info("Scaled fixed output to demand",
		"demand", demand,
		"fixedOutput", total,
		"ratio", ratio)

	return nil
}
