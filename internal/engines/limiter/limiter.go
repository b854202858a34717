package limiter

import (
	"context"
	"fmt"
	"strings"
)

// FixedOutputHolder is a technology with a scalable working fixed output.
type FixedOutputHolder interface {
	Name() string
	HasFixedOutput() bool
	FixedOutput() float64
	ScaleFixedOutput(ratio float64)
}

// Limiter is an interface that defines the method for fitting the fixed output of a subsector into its demand
type Limiter interface {
	// Allocate scales the fixed output of holders when their total exceeds demand
	Allocate(ctx context.Context, holders []FixedOutputHolder, demand float64) error
}

// LimiterConfig holds the settings shared by all strategies
type LimiterConfig struct {
	// Tolerance is the relative excess of fixed output over demand that is accepted without scaling
	Tolerance float64
}

// LimiterStrategy is an enumeration of the different strategies that can be used by the Limiter
type LimiterStrategy int

// enumeration of LimiterStrategy
const (
	ProportionalStrategy LimiterStrategy = iota
	PassThroughStrategy
)

func (s LimiterStrategy) String() string {
	switch s {
	case ProportionalStrategy:
		return "proportional"
	case PassThroughStrategy:
		return "passthrough"
	default:
		return fmt.Sprintf("LimiterStrategy(%d)", int(s))
	}
}

// ParseStrategy returns the strategy with the given name, ignoring case
func ParseStrategy(name string) (LimiterStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "proportional", "":
		return ProportionalStrategy, nil
	case "passthrough", "pass-through", "none":
		return PassThroughStrategy, nil
	default:
		return 0, fmt.Errorf("unknown limiter strategy: %q", name)
	}
}

// NewLimiter is a factory that creates a new Limiter based on the provided strategy
func NewLimiter(strategy LimiterStrategy) (Limiter, error) {
	switch strategy {
	case ProportionalStrategy:
		return NewProportionalLimiter(&ProportionalLimiterConfig{})
	case PassThroughStrategy:
		return NewPassThroughLimiter(), nil
	default:
		return nil, fmt.Errorf("unsupported limiter strategy: %v", strategy)
	}
}
