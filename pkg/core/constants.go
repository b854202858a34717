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

import "errors"

const (
	// DefaultLogitExponent is the logit exponent of a technology that does not set one.
	DefaultLogitExponent = -6.0

	// FixedOutputUnset is the fixed-output sentinel meaning "no fixed output constraint".
	FixedOutputUnset = -1.0

	// SmallNumber is the floor applied to total cost so the logit power law stays defined.
	SmallNumber = 1e-6

	// LargeNumber replaces the price of a fuel that has no market.
	LargeNumber = 1e99

	// LargeShareWeight is the share weight above which calibration is reported as diverging.
	LargeShareWeight = 1e6

	// NotAllFixed is stored in CalDemandKey when a market's demand is not completely fixed.
	NotAllFixed = -1.0

	// CalDemandKey is the market info key tabulating fixed or calibrated input demand.
	CalDemandKey = "calDemand"
	// CalFixedDemandKey is the market info key tabulating fixed input demand only.
	CalFixedDemandKey = "calFixedDemand"
	// CO2CoefKey is the fuel market info key holding the fuel's CO2 coefficient.
	CO2CoefKey = "CO2Coef"

	// CO2 is the name of the carbon dioxide emission source every technology carries.
	CO2 = "CO2"
)

// Conditions reported through the logger. None of them stop a run.
var (
	ErrInvalidYear         = errors.New("technology has an invalid year")
	ErrNoMarketPrice       = errors.New("requested fuel has no market price")
	ErrNegativeOutput      = errors.New("primary output is less than zero")
	ErrNegativeShareWeight = errors.New("share weight is less than zero")
)
