package specs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePricesScalar(t *testing.T) {
	prices := ParsePrices(999.0)
	require.Len(t, prices, 1)
	assert.InDelta(t, 999.0, prices[0].Price, 1e-9)
	assert.False(t, prices[0].Keyed())

	prices = ParsePrices("$1,299")
	require.Len(t, prices, 1)
	assert.InDelta(t, 1299.0, prices[0].Price, 1e-9)
}

func TestParsePricesVariants(t *testing.T) {
	raw := []any{
		map[string]any{"screenSize": "55", "price": 800.0},
		map[string]any{"screenSize": "65", "price": "1,200"},
		map[string]any{"screenSize": "75", "price": nil},
	}

	prices := ParsePrices(raw)
	require.Len(t, prices, 2)
	assert.True(t, prices[0].Keyed())

	size, ok := prices[1].Attribute("screen_size")
	require.True(t, ok)
	assert.Equal(t, "65", size)
	assert.InDelta(t, 1200.0, prices[1].Price, 1e-9)
}

func TestParsePricesShorthandMap(t *testing.T) {
	prices := ParsePrices(map[string]any{"65": 1199.0, "55": 799.0})
	require.Len(t, prices, 2)

	variant, ok := prices[0].Attribute("variant")
	require.True(t, ok)
	assert.Equal(t, "55", variant)
}

func TestParsePricesDropsInvalid(t *testing.T) {
	prices := ParsePrices([]any{0.0, -10.0, "call for price", 450.0})
	require.Len(t, prices, 1)
	assert.InDelta(t, 450.0, prices[0].Price, 1e-9)

	assert.Empty(t, ParsePrices(nil))
}

func TestMinPrice(t *testing.T) {
	min, ok := MinPrice(ParsePrices([]any{700.0, 450.0, 900.0}))
	require.True(t, ok)
	assert.InDelta(t, 450.0, min, 1e-9)

	_, ok = MinPrice(nil)
	assert.False(t, ok)
}
