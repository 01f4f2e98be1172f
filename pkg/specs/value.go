package specs

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Kind tags the shape a raw specification value was parsed into.
type Kind int

const (
	KindMissing Kind = iota
	KindScalar
	KindRange
	KindList
	KindText
	KindBool
)

// Unit selects the parser applied to numeric content.
type Unit int

const (
	UnitPlain Unit = iota
	UnitMemory
	UnitDuration
	UnitWeight
)

//nolint:gochecknoglobals // Compiled once
var rangeSeparator = regexp.MustCompile(`\s*(?:–|—|\bto\b|-)\s*`)

//nolint:gochecknoglobals // Compiled once
var rangeBound = regexp.MustCompile(`^(\d[\d,]*(?:\.\d+)?)\s*([^\d\s]*)$`)

// Value is the canonical shape of one specification entry. Numbers holds one
// element for KindScalar, [min max] for KindRange and the sorted values for
// KindList. Text keeps the trimmed original for keyword checks.
type Value struct {
	Kind    Kind
	Numbers []float64
	Text    string
	Bool    bool
}

// Parse converts a raw specification value into a Value using the given unit.
func Parse(raw any, unit Unit) (value Value) {
	switch v := raw.(type) {
	case nil:
		return value
	case bool:
		value = Value{Kind: KindBool, Bool: v, Text: fmt.Sprintf("%t", v)}
		return value
	case string:
		value = parseText(v, unit)
		return value
	case []any, []string, []float64, []int:
		value = parseList(v, unit)
		return value
	}

	if n, ok := parseUnit(raw, unit); ok {
		value = Value{Kind: KindScalar, Numbers: []float64{n}, Text: fmt.Sprint(raw)}
	}

	return value
}

// Missing reports whether no usable content was found.
func (v Value) Missing() (missing bool) {
	missing = v.Kind == KindMissing
	return missing
}

// Numeric reports whether the value carries numbers.
func (v Value) Numeric() (ok bool) {
	ok = len(v.Numbers) > 0
	return ok
}

// Max returns the largest number carried by the value.
func (v Value) Max() (max float64, ok bool) {
	if len(v.Numbers) == 0 {
		return max, false
	}
	max = v.Numbers[len(v.Numbers)-1]
	return max, true
}

// Min returns the smallest number carried by the value.
func (v Value) Min() (min float64, ok bool) {
	if len(v.Numbers) == 0 {
		return min, false
	}
	min = v.Numbers[0]
	return min, true
}

// Intersects reports whether any configuration described by the value falls in b.
func (v Value) Intersects(b Band) (ok bool) {
	switch v.Kind {
	case KindScalar, KindList:
		for _, n := range v.Numbers {
			if b.Contains(n) {
				return true
			}
		}
	case KindRange:
		ok = b.Overlaps(v.Numbers[0], v.Numbers[1])
	}
	return ok
}

// ContainsText reports whether the text form contains any keyword, ignoring case.
func (v Value) ContainsText(keywords ...string) (ok bool) {
	if v.Text == "" {
		return ok
	}
	lower := strings.ToLower(v.Text)
	for _, k := range keywords {
		if k != "" && strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return ok
}

// Truthy reports whether the value affirms the presence of a feature.
func (v Value) Truthy() (ok bool) {
	switch v.Kind {
	case KindBool:
		ok = v.Bool
	case KindScalar, KindRange, KindList:
		ok = true
	case KindText:
		switch strings.ToLower(v.Text) {
		case "no", "false", "none", "n/a", "not supported", "unsupported", "-":
			ok = false
		default:
			ok = true
		}
	}
	return ok
}

func parseText(text string, unit Unit) (value Value) {
	trimmed := strings.TrimSpace(strings.Trim(strings.TrimSpace(text), `"'`))
	if trimmed == "" {
		return value
	}

	value.Text = trimmed

	if lo, hi, ok := parseRange(trimmed, unit); ok {
		value.Kind = KindRange
		value.Numbers = []float64{lo, hi}
		return value
	}

	if unit != UnitDuration && multiValueSeparators.MatchString(trimmed) {
		list := parseList(trimmed, unit)
		if len(list.Numbers) > 1 {
			list.Text = trimmed
			return list
		}
	}

	if n, ok := parseUnit(trimmed, unit); ok {
		value.Kind = KindScalar
		value.Numbers = []float64{n}
		return value
	}

	value.Kind = KindText

	return value
}

func parseRange(text string, unit Unit) (lo, hi float64, ok bool) {
	parts := rangeSeparator.Split(text, 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return lo, hi, false
	}

	// Each side must be a bare "<number><unit>"; the unit usually trails the
	// upper bound only ("8-16GB") and must otherwise agree on both sides.
	left := rangeBound.FindStringSubmatch(parts[0])
	right := rangeBound.FindStringSubmatch(parts[1])
	if left == nil || right == nil {
		return lo, hi, false
	}
	if left[2] != "" && unit != UnitMemory && !strings.EqualFold(left[2], right[2]) {
		return lo, hi, false
	}

	var okLo, okHi bool
	lo, okLo = parseUnit(parts[0], unit)
	hi, okHi = parseUnit(parts[1], unit)
	if !okLo || !okHi {
		return lo, hi, false
	}

	if lo > hi {
		lo, hi = hi, lo
	}

	return lo, hi, true
}

func parseList(raw any, unit Unit) (value Value) {
	entries := splitEntries(raw)
	texts := make([]string, 0, len(entries))
	seen := make(map[float64]bool)

	for _, e := range entries {
		texts = append(texts, strings.TrimSpace(fmt.Sprint(e)))
		if n, ok := parseUnit(e, unit); ok && !seen[n] {
			seen[n] = true
			value.Numbers = append(value.Numbers, n)
		}
	}

	value.Text = strings.Join(texts, ", ")
	switch {
	case len(value.Numbers) > 0:
		value.Kind = KindList
		sort.Float64s(value.Numbers)
	case value.Text != "":
		value.Kind = KindText
	}

	return value
}

func parseUnit(raw any, unit Unit) (n float64, ok bool) {
	switch unit {
	case UnitMemory:
		n, ok = ParseMemoryOrStorage(raw)
	case UnitDuration:
		n, ok = ParseDuration(raw)
	case UnitWeight:
		n, ok = ParseWeight(raw)
	default:
		n, ok = ParseNumeric(raw)
	}
	return n, ok
}
