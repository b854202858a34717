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

import "maps"

// OutputChannel is one good a technology produces. The primary output is
// always the first channel of a technology.
type OutputChannel interface {
	// Name returns the produced good.
	Name() string
	// IsPrimary reports whether this is the technology's primary output.
	IsPrimary() bool
	// CompleteInit runs once per model run. operating is false for
	// technologies that can never produce.
	CompleteInit(sector string, registrar DependencyRegistrar, operating bool)
	// InitCalc prepares the channel for period.
	InitCalc(region string, period int)
	// SetPhysicalOutput derives this channel's quantity from primaryOutput.
	SetPhysicalOutput(primaryOutput float64, region string, period int)
	// PhysicalOutput returns the quantity produced in period.
	PhysicalOutput(period int) float64
	// Value returns the revenue per unit primary output.
	Value(market Ledger, region string, period int) float64
	// Accept visits the channel.
	Accept(visitor Visitor, period int)
	// Clone returns an independent copy.
	Clone() OutputChannel
}

// PrimaryOutput is the good of the technology's sector. Its value is already
// the market price of the sector, so it contributes nothing to secondary value.
type PrimaryOutput struct {
	name     string
	physical map[int]float64
}

func NewPrimaryOutput(sector string) *PrimaryOutput {
	return &PrimaryOutput{name: sector, physical: make(map[int]float64)}
}

func (o *PrimaryOutput) Name() string    { return o.name }
func (o *PrimaryOutput) IsPrimary() bool { return true }

func (o *PrimaryOutput) CompleteInit(string, DependencyRegistrar, bool) {}

func (o *PrimaryOutput) InitCalc(string, int) {}

func (o *PrimaryOutput) SetPhysicalOutput(primaryOutput float64, _ string, period int) {
	o.physical[period] = primaryOutput
}

func (o *PrimaryOutput) PhysicalOutput(period int) float64 { return o.physical[period] }

func (o *PrimaryOutput) Value(Ledger, string, int) float64 { return 0 }

func (o *PrimaryOutput) Accept(visitor Visitor, period int) { visitor.VisitOutput(o, period) }

func (o *PrimaryOutput) Clone() OutputChannel {
	return &PrimaryOutput{name: o.name, physical: maps.Clone(o.physical)}
}

// SecondaryOutput is a by-product produced in fixed proportion to the
// primary output.
type SecondaryOutput struct {
	name        string
	coefficient float64
	physical    map[int]float64
}

// NewSecondaryOutput returns a by-product of good at coefficient units per
// unit primary output.
func NewSecondaryOutput(good string, coefficient float64) *SecondaryOutput {
	return &SecondaryOutput{name: good, coefficient: coefficient, physical: make(map[int]float64)}
}

func (o *SecondaryOutput) Name() string         { return o.name }
func (o *SecondaryOutput) IsPrimary() bool      { return false }
func (o *SecondaryOutput) Coefficient() float64 { return o.coefficient }

// CompleteInit records that the by-product good depends on the producing
// sector.
func (o *SecondaryOutput) CompleteInit(sector string, registrar DependencyRegistrar, operating bool) {
	if registrar != nil && operating {
		registrar.AddDependency(o.name, sector)
	}
}

func (o *SecondaryOutput) InitCalc(string, int) {}

func (o *SecondaryOutput) SetPhysicalOutput(primaryOutput float64, _ string, period int) {
	o.physical[period] = primaryOutput * o.coefficient
}

func (o *SecondaryOutput) PhysicalOutput(period int) float64 { return o.physical[period] }

// Value is the by-product revenue per unit primary output. An unpriced
// by-product is worth nothing.
func (o *SecondaryOutput) Value(market Ledger, region string, period int) float64 {
	if market == nil {
		return 0
	}
	price, ok := market.Price(o.name, region, period)
	if !ok {
		return 0
	}
	return price * o.coefficient
}

func (o *SecondaryOutput) Accept(visitor Visitor, period int) { visitor.VisitOutput(o, period) }

func (o *SecondaryOutput) Clone() OutputChannel {
	return &SecondaryOutput{name: o.name, coefficient: o.coefficient, physical: maps.Clone(o.physical)}
}
