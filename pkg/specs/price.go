package specs

import (
	"sort"
	"strings"
)

// VariantPrice is one priced configuration of a product. Attributes is empty for
// unkeyed prices.
type VariantPrice struct {
	Attributes map[string]any
	Price      float64
}

// Keyed reports whether the price is tied to a physical configuration.
func (vp VariantPrice) Keyed() (ok bool) {
	ok = len(vp.Attributes) > 0
	return ok
}

// Attribute looks up a variant attribute, ignoring case and "_", "-", " "
// so that "screenSize", "screen_size" and "Screen Size" are the same key.
func (vp VariantPrice) Attribute(key string) (value any, ok bool) {
	want := foldKey(key)
	for k, v := range vp.Attributes {
		if foldKey(k) == want {
			return v, true
		}
	}
	return value, ok
}

// ParsePrices normalizes every price shape a catalog uses into a flat list:
// a number, a numeric string, an array of numbers, an array of
// {<variant key>: ..., price: ...} objects, or a {variant: price} map.
// Entries without a positive price are dropped.
func ParsePrices(raw any) (prices []VariantPrice) {
	prices = make([]VariantPrice, 0)

	switch v := raw.(type) {
	case nil:
		return prices
	case []any:
		for _, entry := range v {
			prices = append(prices, ParsePrices(entry)...)
		}
	case []float64:
		for _, entry := range v {
			prices = append(prices, ParsePrices(entry)...)
		}
	case map[string]any:
		prices = append(prices, parsePriceObject(v)...)
	default:
		if p, ok := ParseNumeric(v); ok {
			prices = append(prices, VariantPrice{Price: p})
		}
	}

	return prices
}

// MinPrice returns the lowest price in the list.
func MinPrice(prices []VariantPrice) (min float64, ok bool) {
	for _, p := range prices {
		if !ok || p.Price < min {
			min = p.Price
			ok = true
		}
	}
	return min, ok
}

func parsePriceObject(obj map[string]any) (prices []VariantPrice) {
	var priceKey string
	for _, want := range []string{"price", "amount", "cost", "value"} {
		for k := range obj {
			if foldKey(k) == want {
				priceKey = k
				break
			}
		}
		if priceKey != "" {
			break
		}
	}

	if priceKey == "" {
		// {variant: price} shorthand, e.g. {"55": 799, "65": 1199}.
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if p, ok := ParseNumeric(obj[k]); ok {
				prices = append(prices, VariantPrice{Attributes: map[string]any{"variant": k}, Price: p})
			}
		}
		return prices
	}

	p, ok := ParseNumeric(obj[priceKey])
	if !ok {
		return prices
	}

	var attrs map[string]any
	for k, v := range obj {
		if k == priceKey {
			continue
		}
		if attrs == nil {
			attrs = make(map[string]any, len(obj)-1)
		}
		attrs[k] = v
	}

	prices = append(prices, VariantPrice{Attributes: attrs, Price: p})

	return prices
}

func foldKey(key string) (folded string) {
	folded = strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(key))
	return folded
}
