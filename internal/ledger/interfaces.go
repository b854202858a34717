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

package ledger

import (
	"github.com/llm-d/technology-share-engine/pkg/core"
)

// Reader provides read-only access to the marketplace.
// Technologies use it to price fuels and secondary goods.
type Reader interface {
	// Price returns the price of good in region for period.
	// The boolean is false if the market does not exist or has no price yet.
	Price(good, region string, period int) (float64, bool)

	// Demand returns the demand accumulated for good in region for period.
	// Returns 0 if the market is not found.
	Demand(good, region string, period int) float64

	// MarketInfo returns the auxiliary counters of a market.
	MarketInfo(good, region string, period int) (core.Info, bool)

	// Markets returns the keys of all markets, sorted.
	Markets() []MarketKey
}

// Writer provides write access to the marketplace.
// The runner uses it to set prices and reset demand between passes.
type Writer interface {
	// CreateMarket makes a market for good in region for period.
	// Creating an existing market is a no-op.
	CreateMarket(good, region string, period int)

	// SetPrice sets the price of a market, creating it if needed.
	SetPrice(good, region string, price float64, period int)

	// AddToDemand adds quantity to the demand of a market.
	// Demand for a good without a market is dropped.
	AddToDemand(good, region string, quantity float64, period int)

	// ClearDemands zeroes the demand of every market in period.
	ClearDemands(period int)
}

// ReadWriter combines both read and write access to the marketplace.
type ReadWriter interface {
	Reader
	Writer
}

var _ core.Ledger = (ReadWriter)(nil)
