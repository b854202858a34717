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

// CalibrationKind names the quantity a calibration target anchors.
type CalibrationKind string

const (
	CalibrationKindInput           CalibrationKind = "input"
	CalibrationKindOutput          CalibrationKind = "output"
	CalibrationKindOutputPerCapita CalibrationKind = "outputPerCapita"
)

// CalibrationTarget is a historical input or output value a technology is
// tuned to reproduce in its vintage period.
type CalibrationTarget interface {
	// Kind returns the anchored quantity.
	Kind() CalibrationKind
	// InitCalc resolves period-dependent values.
	InitCalc(demographics Demographics, period int)
	// CalInput returns the calibrated input at efficiency.
	CalInput(efficiency float64) float64
	// CalOutput returns the calibrated output at efficiency.
	CalOutput(efficiency float64) float64
	// Scale multiplies the target by factor.
	Scale(factor float64)
	// Clone returns an independent copy.
	Clone() CalibrationTarget
}

// NewCalibrationTarget returns the target variant for kind, or nil for an
// unknown kind.
func NewCalibrationTarget(kind CalibrationKind, value float64) CalibrationTarget {
	switch kind {
	case CalibrationKindInput:
		return NewCalibrationInput(value)
	case CalibrationKindOutput:
		return NewCalibrationOutput(value)
	case CalibrationKindOutputPerCapita:
		return NewCalibrationOutputPerCapita(value)
	default:
		return nil
	}
}

// CalibrationInput anchors fuel input.
type CalibrationInput struct {
	input float64
}

func NewCalibrationInput(input float64) *CalibrationInput {
	return &CalibrationInput{input: input}
}

func (c *CalibrationInput) Kind() CalibrationKind { return CalibrationKindInput }

func (c *CalibrationInput) InitCalc(Demographics, int) {}

func (c *CalibrationInput) CalInput(float64) float64 { return c.input }

func (c *CalibrationInput) CalOutput(efficiency float64) float64 { return c.input * efficiency }

func (c *CalibrationInput) Scale(factor float64) { c.input *= factor }

func (c *CalibrationInput) Clone() CalibrationTarget {
	cp := *c
	return &cp
}

// CalibrationOutput anchors primary output.
type CalibrationOutput struct {
	output float64
}

func NewCalibrationOutput(output float64) *CalibrationOutput {
	return &CalibrationOutput{output: output}
}

func (c *CalibrationOutput) Kind() CalibrationKind { return CalibrationKindOutput }

func (c *CalibrationOutput) InitCalc(Demographics, int) {}

// CalInput returns the output divided by efficiency. Efficiency has been
// corrected to a positive value by the time this is called.
func (c *CalibrationOutput) CalInput(efficiency float64) float64 { return c.output / efficiency }

func (c *CalibrationOutput) CalOutput(float64) float64 { return c.output }

func (c *CalibrationOutput) Scale(factor float64) { c.output *= factor }

func (c *CalibrationOutput) Clone() CalibrationTarget {
	cp := *c
	return &cp
}

// CalibrationOutputPerCapita anchors output per person. The regional total
// is resolved from population in InitCalc.
type CalibrationOutputPerCapita struct {
	perCapita float64
	total     float64
}

func NewCalibrationOutputPerCapita(perCapita float64) *CalibrationOutputPerCapita {
	return &CalibrationOutputPerCapita{perCapita: perCapita}
}

func (c *CalibrationOutputPerCapita) Kind() CalibrationKind { return CalibrationKindOutputPerCapita }

func (c *CalibrationOutputPerCapita) InitCalc(demographics Demographics, period int) {
	if demographics == nil {
		c.total = 0
		return
	}
	c.total = c.perCapita * demographics.Population(period)
}

func (c *CalibrationOutputPerCapita) CalInput(efficiency float64) float64 {
	return c.total / efficiency
}

func (c *CalibrationOutputPerCapita) CalOutput(float64) float64 { return c.total }

func (c *CalibrationOutputPerCapita) Scale(factor float64) {
	c.perCapita *= factor
	c.total *= factor
}

func (c *CalibrationOutputPerCapita) Clone() CalibrationTarget {
	cp := *c
	return &cp
}
