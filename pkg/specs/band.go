package specs

import (
	"math"
	"strconv"
	"strings"
)

// Band is an inclusive numeric interval. Max may be +Inf.
type Band struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the band.
func (b Band) Contains(v float64) (ok bool) {
	ok = v >= b.Min && v <= b.Max
	return ok
}

// Overlaps reports whether [lo, hi] shares at least one point with the band.
func (b Band) Overlaps(lo, hi float64) (ok bool) {
	if lo > hi {
		lo, hi = hi, lo
	}
	ok = lo <= b.Max && hi >= b.Min
	return ok
}

// ParseBand reads a budget-style answer such as "under-500", "500-1000",
// "1500+", "over-2000" or "$1k-$2k". A single bare number is an upper bound.
func ParseBand(answer string) (band Band, ok bool) {
	text := strings.ToLower(strings.TrimSpace(answer))
	text = strings.NewReplacer("$", "", "usd", "", "€", "", "£", "", "_", "-").Replace(text)
	if text == "" {
		return band, false
	}

	numbers := bandNumbers(text)
	if len(numbers) == 0 {
		return band, false
	}

	switch {
	case hasAnyPrefix(text, "under", "below", "less", "max", "up-to", "up to", "<"):
		band = Band{Min: 0, Max: numbers[0]}
	case hasAnyPrefix(text, "over", "above", "more", "min", "from", ">") ||
		strings.HasSuffix(text, "+") || strings.HasSuffix(text, "plus") || strings.HasSuffix(text, "and-up"):
		band = Band{Min: numbers[0], Max: math.Inf(1)}
	case len(numbers) >= 2:
		lo, hi := numbers[0], numbers[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		band = Band{Min: lo, Max: hi}
	default:
		band = Band{Min: 0, Max: numbers[0]}
	}

	return band, true
}

// bandNumbers returns every number in text, honouring a trailing "k" multiplier.
func bandNumbers(text string) (numbers []float64) {
	for _, loc := range numberPattern.FindAllStringIndex(text, -1) {
		token := strings.TrimPrefix(strings.ReplaceAll(text[loc[0]:loc[1]], ",", ""), "-")
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			continue
		}
		if loc[1] < len(text) && text[loc[1]] == 'k' {
			v *= 1000
		}
		numbers = append(numbers, v)
	}
	return numbers
}

func hasAnyPrefix(text string, prefixes ...string) (ok bool) {
	for _, p := range prefixes {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return ok
}
