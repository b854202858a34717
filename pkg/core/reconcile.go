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

package core

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/llm-d/technology-share-engine/internal/logging"
)

const fixedOutputTolerance = 1e-10

// HasNoInputOrOutput reports whether fixed output was configured as exactly
// zero. Such a technology is inert for dependency and market registration.
func (t *Technology) HasNoInputOrOutput() bool {
	return scalar.EqualWithinAbs(t.fixedOutput, 0, fixedOutputTolerance)
}

// CalibrationStatus reports whether a calibration target is set.
func (t *Technology) CalibrationStatus() bool { return t.calibration != nil }

// OutputFixed reports whether the technology ignores price signals this
// period: it is calibrated, has a fixed output, or has a zero share weight.
func (t *Technology) OutputFixed() bool {
	return t.CalibrationStatus() || t.fixedOutput >= 0 || t.shareWeight == 0
}

// TechAvailable reports whether the technology can vary its output.
func (t *Technology) TechAvailable() bool {
	return t.CalibrationStatus() || !(t.fixedOutput >= 0 || t.shareWeight == 0)
}

// HasFixedOutput reports whether a working fixed output is set.
func (t *Technology) HasFixedOutput() bool { return t.fixedOutputCurrent >= 0 }

// ResetFixedOutput restores the working fixed output to the configured value.
func (t *Technology) ResetFixedOutput() {
	t.fixedOutputCurrent = t.fixedOutput
}

// ScaleFixedOutput multiplies the working fixed output by ratio. It is a
// no-op without a fixed output.
func (t *Technology) ScaleFixedOutput(ratio float64) {
	if t.fixedOutputCurrent >= 0 {
		t.fixedOutputCurrent *= ratio
	}
}

// FixedOutput returns the working fixed output, or 0 when unset.
func (t *Technology) FixedOutput() float64 {
	if t.fixedOutputCurrent == FixedOutputUnset {
		return 0
	}
	return t.fixedOutputCurrent
}

// FixedInput returns the input needed for the working fixed output. It is
// zero outside the vintage period.
func (t *Technology) FixedInput(period int) float64 {
	if t.fixedOutputCurrent == FixedOutputUnset || !t.isVintage(period) {
		return 0
	}
	return t.fixedOutputCurrent / t.Efficiency(period)
}

// CalibrationInput returns the calibrated input in the vintage period, else 0.
func (t *Technology) CalibrationInput(period int) float64 {
	if t.calibration == nil || !t.isVintage(period) {
		return 0
	}
	return t.calibration.CalInput(t.Efficiency(period))
}

// CalibrationOutput returns the calibrated output in the vintage period, else 0.
func (t *Technology) CalibrationOutput(period int) float64 {
	if t.calibration == nil || !t.isVintage(period) {
		return 0
	}
	return t.calibration.CalOutput(t.Efficiency(period))
}

// ScaleCalibrationInput scales the calibration target by factor.
func (t *Technology) ScaleCalibrationInput(factor float64) {
	if t.calibration != nil {
		t.calibration.Scale(factor)
	}
}

func (t *Technology) isVintage(period int) bool {
	return t.year == t.opts.Modeltime.PeriodToYear(period)
}

// adjustedShare returns the share after fixed output is accounted for, and
// whether the working fixed output must be downgraded to subsectorFixed.
// A fixed output of zero yields a zero share.
func adjustedShare(share, fixedCurrent, subsectorDemand, subsectorFixed, variableShareTotal float64) (float64, bool) {
	if subsectorDemand <= 0 {
		return 0, false
	}
	if fixedCurrent >= 0 {
		return fixedCurrent / subsectorDemand, fixedCurrent > subsectorDemand
	}
	if variableShareTotal == 0 {
		return 0, false
	}
	remaining := math.Max(subsectorDemand-subsectorFixed, 0)
	return share * (remaining / subsectorDemand) / variableShareTotal, false
}

// AdjShares makes shares consistent with the fixed output in the subsector.
// Fixed technologies take fixedOutput/demand; variable technologies split
// what remains in proportion to their shares. The subsector calls it only
// when at least one technology has a fixed output, including a fixed output
// of zero.
func (t *Technology) AdjShares(subsectorDemand, subsectorFixed, variableShareTotal float64, _ int) {
	share, downgrade := adjustedShare(t.share, t.fixedOutputCurrent, subsectorDemand, subsectorFixed, variableShareTotal)
	t.share = share
	if downgrade {
		t.fixedOutputCurrent = subsectorFixed
	}
}

// AdjustForCalibration rescales the share weight so the next share pass
// moves output toward the calibration target.
func (t *Technology) AdjustForCalibration(ctx context.Context, subsectorDemand float64, region string, period int) {
	logger := logging.FromContext(ctx)
	calOutput := t.CalibrationOutput(period)

	// A zero weight always yields a zero share.
	if t.shareWeight == 0 && calOutput > 0 {
		t.shareWeight = 1
	}

	if demand := t.share * subsectorDemand; demand > 0 {
		t.shareWeight *= calOutput / demand
	}

	if t.shareWeight < 0 {
		logger.Error(ErrNegativeShareWeight, "Share weight is less than zero, reset to 1",
			"technology", t.name,
			"region", region,
			"shareWeight", t.shareWeight)
		t.shareWeight = 1
	}

	if t.opts.DebugChecking && t.shareWeight > LargeShareWeight {
		logger.Info("Large share weight in calibration",
			"technology", t.name,
			"region", region,
			"shareWeight", t.shareWeight)
	}
}

// TabulateFixedDemands records this technology's fixed or calibrated fuel
// demand on the fuel market's counters. A variable technology marks the
// market as not all fixed.
func (t *Technology) TabulateFixedDemands(market Ledger, region string, period int) {
	info, ok := market.MarketInfo(t.FuelName(), region, period)
	if !ok {
		return
	}
	if !t.OutputFixed() {
		info.SetDouble(CalDemandKey, NotAllFixed)
		return
	}

	fixedOrCal, fixed := 0.0, 0.0
	switch {
	case t.CalibrationStatus():
		fixedOrCal = t.CalibrationInput(period)
	case t.fixedOutput >= 0:
		fixed = t.FixedInput(period)
		fixedOrCal = fixed
	}
	info.SetDouble(CalDemandKey, counter(info, CalDemandKey)+fixedOrCal)
	info.SetDouble(CalFixedDemandKey, counter(info, CalFixedDemandKey)+fixed)
}

// counter reads key, treating missing and negative values as zero.
func counter(info Info, key string) float64 {
	v, _ := info.GetDouble(key)
	return math.Max(v, 0)
}
