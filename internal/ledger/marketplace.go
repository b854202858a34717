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
	"cmp"
	"context"
	"slices"

	"github.com/go-logr/logr"

	"github.com/llm-d/technology-share-engine/internal/logging"
	"github.com/llm-d/technology-share-engine/pkg/core"
)

// MarketKey identifies one market.
type MarketKey struct {
	Good   string
	Region string
	Period int
}

func compareKeys(a, b MarketKey) int {
	return cmp.Or(
		cmp.Compare(a.Region, b.Region),
		cmp.Compare(a.Good, b.Good),
		cmp.Compare(a.Period, b.Period),
	)
}

type market struct {
	price    float64
	hasPrice bool
	demand   float64
	info     Info
}

// Info is a market's auxiliary counter store.
type Info map[string]float64

func (i Info) GetDouble(key string) (float64, bool) {
	v, ok := i[key]
	return v, ok
}

func (i Info) SetDouble(key string, value float64) { i[key] = value }

// Marketplace is an in-memory ReadWriter. It is not safe for concurrent use;
// a model run is single threaded.
type Marketplace struct {
	markets map[MarketKey]*market
	logger  logr.Logger
}

// NewMarketplace returns an empty marketplace. ctx carries the logger used
// to report dropped demand.
func NewMarketplace(ctx context.Context) *Marketplace {
	return &Marketplace{
		markets: make(map[MarketKey]*market),
		logger:  logging.FromContext(ctx),
	}
}

func (m *Marketplace) get(good, region string, period int) (*market, bool) {
	mk, ok := m.markets[MarketKey{Good: good, Region: region, Period: period}]
	return mk, ok
}

func (m *Marketplace) CreateMarket(good, region string, period int) {
	key := MarketKey{Good: good, Region: region, Period: period}
	if _, ok := m.markets[key]; ok {
		return
	}
	m.markets[key] = &market{info: make(Info)}
}

func (m *Marketplace) SetPrice(good, region string, price float64, period int) {
	m.CreateMarket(good, region, period)
	mk, _ := m.get(good, region, period)
	mk.price = price
	mk.hasPrice = true
}

func (m *Marketplace) Price(good, region string, period int) (float64, bool) {
	mk, ok := m.get(good, region, period)
	if !ok || !mk.hasPrice {
		return 0, false
	}
	return mk.price, true
}

func (m *Marketplace) AddToDemand(good, region string, quantity float64, period int) {
	mk, ok := m.get(good, region, period)
	if !ok {
		m.logger.V(logging.DEBUG).Info("Demand for good without a market dropped",
			"good", good,
			"region", region,
			"period", period,
			"quantity", quantity)
		return
	}
	mk.demand += quantity
}

func (m *Marketplace) Demand(good, region string, period int) float64 {
	mk, ok := m.get(good, region, period)
	if !ok {
		return 0
	}
	return mk.demand
}

// ClearDemands also drops the fixed-demand tabulation counters, which are
// rebuilt on every pass.
func (m *Marketplace) ClearDemands(period int) {
	for key, mk := range m.markets {
		if key.Period != period {
			continue
		}
		mk.demand = 0
		delete(mk.info, core.CalDemandKey)
		delete(mk.info, core.CalFixedDemandKey)
	}
}

func (m *Marketplace) MarketInfo(good, region string, period int) (core.Info, bool) {
	mk, ok := m.get(good, region, period)
	if !ok {
		return nil, false
	}
	return mk.info, true
}

func (m *Marketplace) Markets() []MarketKey {
	keys := make([]MarketKey, 0, len(m.markets))
	for key := range m.markets {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, compareKeys)
	return keys
}

var _ ReadWriter = (*Marketplace)(nil)
