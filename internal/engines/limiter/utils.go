package limiter

import (
	"gonum.org/v1/gonum/floats"
)

// FixedOutputs returns the working fixed output of every holder that has one.
func FixedOutputs(holders []FixedOutputHolder) []float64 {
	out := make([]float64, 0, len(holders))
	for _, h := range holders {
		if h.HasFixedOutput() {
			out = append(out, h.FixedOutput())
		}
	}
	return out
}

// TotalFixedOutput sums the working fixed output of holders.
func TotalFixedOutput(holders []FixedOutputHolder) float64 {
	return floats.Sum(FixedOutputs(holders))
}
