package limiter

import (
	"context"

	"github.com/llm-d/technology-share-engine/internal/logging"
)

// PassThroughLimiter leaves fixed output unchanged. Oversubscribed fixed
// output is then downgraded technology by technology when shares are adjusted.
type PassThroughLimiter struct {
}

func NewPassThroughLimiter() *PassThroughLimiter {
	return &PassThroughLimiter{}
}

// Allocate only reports oversubscription
func (l *PassThroughLimiter) Allocate(ctx context.Context, holders []FixedOutputHolder, demand float64) error {
	if total := TotalFixedOutput(holders); total > demand {
		logging.FromContext(ctx).V(logging.TRACE).Info("Fixed output exceeds demand, not scaled",
			"demand", demand,
			"fixedOutput", total)
	}
	return nil
}
