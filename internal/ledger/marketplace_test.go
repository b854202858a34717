package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llm-d/technology-share-engine/pkg/core"
)

func TestMarketplacePrices(t *testing.T) {
	m := NewMarketplace(context.Background())

	_, ok := m.Price("gas", "USA", 0)
	assert.False(t, ok)

	m.CreateMarket("gas", "USA", 0)
	_, ok = m.Price("gas", "USA", 0)
	assert.False(t, ok, "market without a price")

	m.SetPrice("gas", "USA", 4.5, 0)
	price, ok := m.Price("gas", "USA", 0)
	require.True(t, ok)
	assert.Equal(t, 4.5, price)

	_, ok = m.Price("gas", "USA", 1)
	assert.False(t, ok, "prices are per period")
	_, ok = m.Price("gas", "CHN", 0)
	assert.False(t, ok, "prices are per region")
}

func TestMarketplaceDemand(t *testing.T) {
	m := NewMarketplace(context.Background())
	m.CreateMarket("gas", "USA", 0)
	m.CreateMarket("gas", "USA", 1)

	m.AddToDemand("gas", "USA", 2, 0)
	m.AddToDemand("gas", "USA", 3, 0)
	m.AddToDemand("gas", "USA", 7, 1)
	m.AddToDemand("coal", "USA", 9, 0)

	assert.Equal(t, 5.0, m.Demand("gas", "USA", 0))
	assert.Equal(t, 0.0, m.Demand("coal", "USA", 0))

	m.ClearDemands(0)
	assert.Equal(t, 0.0, m.Demand("gas", "USA", 0))
	assert.Equal(t, 7.0, m.Demand("gas", "USA", 1))
}

func TestMarketplaceInfo(t *testing.T) {
	m := NewMarketplace(context.Background())

	_, ok := m.MarketInfo("gas", "USA", 0)
	assert.False(t, ok)

	m.CreateMarket("gas", "USA", 0)
	info, ok := m.MarketInfo("gas", "USA", 0)
	require.True(t, ok)
	info.SetDouble(core.CO2CoefKey, 0.5)
	info.SetDouble(core.CalDemandKey, 10)

	again, _ := m.MarketInfo("gas", "USA", 0)
	v, ok := again.GetDouble(core.CO2CoefKey)
	require.True(t, ok)
	assert.Equal(t, 0.5, v)

	m.ClearDemands(0)
	_, ok = again.GetDouble(core.CalDemandKey)
	assert.False(t, ok)
	_, ok = again.GetDouble(core.CO2CoefKey)
	assert.True(t, ok)
}

func TestMarketsSorted(t *testing.T) {
	m := NewMarketplace(context.Background())
	m.CreateMarket("oil", "USA", 1)
	m.CreateMarket("gas", "USA", 0)
	m.CreateMarket("coal", "CHN", 0)
	m.CreateMarket("gas", "USA", 0)

	assert.Equal(t, []MarketKey{
		{Good: "coal", Region: "CHN", Period: 0},
		{Good: "gas", Region: "USA", Period: 0},
		{Good: "oil", Region: "USA", Period: 1},
	}, m.Markets())
}
