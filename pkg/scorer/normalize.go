package scorer

import (
	"math"
	"strings"

	"github.com/nikogura/reviewrank/pkg/specs"
)

// Normalize maps a review score onto 0..100: round(score / scale * 100), clamped.
// scale is a denominator (5, 10, 100) or a descriptor ("5-star", "out of 10",
// "/100", "%"). A fraction score such as "4/5" supplies its own denominator when
// scale is empty. Missing, non-numeric or zero scales report ok == false.
func Normalize(score, scale any) (normalized float64, ok bool) {
	value, fractionScale, hasValue := parseScore(score)
	if !hasValue {
		return normalized, false
	}

	denominator, hasScale := parseScale(scale)
	if !hasScale {
		if fractionScale <= 0 {
			return normalized, false
		}
		denominator = fractionScale
	}

	normalized = math.Round(value / denominator * 100)
	normalized = clamp(normalized)

	return normalized, true
}

// parseScore returns the numeric score plus the denominator of a fraction
// ("4/5", "8.5 out of 10") or a percentage ("85%").
func parseScore(raw any) (value, fractionScale float64, ok bool) {
	value, ok = specs.ParseNumber(raw)
	if !ok || math.IsNaN(value) {
		return 0, 0, false
	}

	text, isText := raw.(string)
	if !isText {
		return value, 0, true
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "/"):
		fractionScale, _ = specs.ParseNumeric(lower[strings.Index(lower, "/")+1:])
	case strings.Contains(lower, "out of"):
		fractionScale, _ = specs.ParseNumeric(lower[strings.Index(lower, "out of")+len("out of"):])
	case strings.HasSuffix(strings.TrimSpace(lower), "%"):
		fractionScale = 100
	}

	return value, fractionScale, true
}

// parseScale reads a denominator from a number or descriptor.
func parseScale(raw any) (denominator float64, ok bool) {
	if text, isText := raw.(string); isText {
		lower := strings.ToLower(strings.TrimSpace(text))
		switch {
		case lower == "":
			return 0, false
		case lower == "%" || strings.HasPrefix(lower, "percent"):
			return 100, true
		case strings.Contains(lower, "star"):
			// "5-star", "5 stars", "stars" (five implied)
			if denominator, ok = specs.ParseNumeric(lower); ok {
				return denominator, ok
			}
			return 5, true
		}
	}

	denominator, ok = specs.ParseNumeric(raw)

	return denominator, ok
}

func clamp(v float64) (clamped float64) {
	clamped = math.Max(0, math.Min(100, v))
	return clamped
}
