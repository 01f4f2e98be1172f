// Package specs turns uncurated product specification values into canonical numbers.
//
// Every parser tolerates unit suffixes, stray quotes and whitespace, and mixed
// number/string/array shapes. Parsers never panic and never return errors: a value
// that carries no meaningful number yields ok == false (or an empty slice).
package specs

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// AllDayHours is the hour count used for "all-day" battery claims without a number.
const AllDayHours = 18.0

// BytesPerTB is the GB-per-TB conversion factor.
const BytesPerTB = 1024.0

const poundsToKg = 0.45359237

const ouncesToKg = 0.028349523125

//nolint:gochecknoglobals // Compiled once
var numberPattern = regexp.MustCompile(`-?(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?|-?\.\d+`)

//nolint:gochecknoglobals // Compiled once
var multiValueSeparators = regexp.MustCompile(`[,;|/]`)

// ParseNumeric extracts the first numeric token from raw. Numbers pass through.
// Zero, negative and non-numeric input report ok == false.
func ParseNumeric(raw any) (value float64, ok bool) {
	value, _, ok = numberAndRest(raw)
	if !ok || !meaningful(value) {
		value = 0
		ok = false
		return value, ok
	}
	return value, ok
}

// ParseNumber extracts the first numeric token like ParseNumeric but keeps zero and
// negative values. Scores use it, since a score of zero is still a score.
func ParseNumber(raw any) (value float64, ok bool) {
	value, _, ok = numberAndRest(raw)
	return value, ok
}

// ParseMemoryOrStorage parses a RAM or storage amount and returns it in GB.
// "TB" is multiplied by 1024, "MB" divided by it; bare numbers are already GB.
func ParseMemoryOrStorage(raw any) (gb float64, ok bool) {
	var rest string
	gb, rest, ok = numberAndRest(raw)
	if !ok || !meaningful(gb) {
		return 0, false
	}

	switch unitPrefix(rest) {
	case "tb":
		gb *= BytesPerTB
	case "mb":
		gb /= BytesPerTB
	}

	return gb, ok
}

// ParseMultiValue accepts a scalar, a delimited string or an array and returns the
// deduplicated, ascending list of values in canonical units. Storage suffixes are
// honoured, so "256, 512GB, 1TB" yields [256 512 1024]. Entries that fail to parse
// are dropped.
func ParseMultiValue(raw any) (values []float64) {
	values = make([]float64, 0)
	seen := make(map[float64]bool)

	for _, entry := range splitEntries(raw) {
		v, ok := ParseMemoryOrStorage(entry)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}

	sort.Float64s(values)

	return values
}

// ParseDuration extracts an hour count from phrasing like "Up to 18 hours".
// Minutes and days are converted. Qualitative "all-day" claims without a number
// map to AllDayHours.
func ParseDuration(raw any) (hours float64, ok bool) {
	var rest string
	hours, rest, ok = numberAndRest(raw)
	if ok && meaningful(hours) {
		switch {
		case strings.HasPrefix(rest, "min"):
			hours /= 60
		case strings.HasPrefix(rest, "day"):
			hours *= 24
		}
		return hours, true
	}

	text, isText := asText(raw)
	if !isText {
		return 0, false
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "all-day") || strings.Contains(lower, "all day") || strings.Contains(lower, "allday") {
		return AllDayHours, true
	}

	return 0, false
}

// ParseWeight returns a weight in kilograms. Pounds, ounces and grams are converted;
// bare numbers are kilograms.
func ParseWeight(raw any) (kg float64, ok bool) {
	var rest string
	kg, rest, ok = numberAndRest(raw)
	if !ok || !meaningful(kg) {
		return 0, false
	}

	switch {
	case strings.HasPrefix(rest, "kg"), strings.HasPrefix(rest, "kilo"):
	case strings.HasPrefix(rest, "lb"), strings.HasPrefix(rest, "pound"):
		kg *= poundsToKg
	case strings.HasPrefix(rest, "oz"), strings.HasPrefix(rest, "ounce"):
		kg *= ouncesToKg
	case strings.HasPrefix(rest, "g"):
		kg /= 1000
	}

	return kg, ok
}

// numberAndRest returns the first number in raw and the lowercased text that follows it.
func numberAndRest(raw any) (value float64, rest string, ok bool) {
	if n, isNumber := asNumber(raw); isNumber {
		return n, "", true
	}

	text, isText := asText(raw)
	if !isText {
		return 0, "", false
	}

	loc := firstNumberIndex(text)
	if loc == nil {
		return 0, "", false
	}

	token := strings.ReplaceAll(text[loc[0]:loc[1]], ",", "")
	var err error
	value, err = strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, "", false
	}

	rest = strings.ToLower(strings.TrimLeft(text[loc[1]:], " \t-\"'"))
	ok = true

	return value, rest, ok
}

// firstNumberIndex locates the first numeric token. A minus sign glued to a
// preceding letter or digit ("Wi-Fi-6", "8-16") is a separator, not a sign.
func firstNumberIndex(text string) (loc []int) {
	loc = numberPattern.FindStringIndex(text)
	if loc == nil {
		return loc
	}

	if text[loc[0]] == '-' && loc[0] > 0 {
		prev := rune(text[loc[0]-1])
		if unicode.IsLetter(prev) || unicode.IsDigit(prev) {
			loc[0]++
		}
	}

	return loc
}

func asNumber(raw any) (value float64, ok bool) {
	switch v := raw.(type) {
	case float64:
		value, ok = v, true
	case float32:
		value, ok = float64(v), true
	case int:
		value, ok = float64(v), true
	case int32:
		value, ok = float64(v), true
	case int64:
		value, ok = float64(v), true
	case uint:
		value, ok = float64(v), true
	case uint32:
		value, ok = float64(v), true
	case uint64:
		value, ok = float64(v), true
	case interface{ Float64() (float64, error) }:
		f, err := v.Float64()
		value, ok = f, err == nil
	}

	if ok && (math.IsNaN(value) || math.IsInf(value, 0)) {
		return 0, false
	}

	return value, ok
}

func asText(raw any) (text string, ok bool) {
	switch v := raw.(type) {
	case string:
		text, ok = v, true
	case []byte:
		text, ok = string(v), true
	default:
		return text, false
	}

	text = strings.TrimSpace(strings.Trim(strings.TrimSpace(text), `"'`))
	if text == "" {
		return text, false
	}

	return text, ok
}

func meaningful(v float64) (ok bool) {
	ok = v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
	return ok
}

// unitPrefix names the storage unit that rest starts with: "tb", "gb", "mb" or "".
func unitPrefix(rest string) (unit string) {
	switch {
	case strings.HasPrefix(rest, "tb"), strings.HasPrefix(rest, "tib"), strings.HasPrefix(rest, "tera"):
		unit = "tb"
	case strings.HasPrefix(rest, "gb"), strings.HasPrefix(rest, "gib"), strings.HasPrefix(rest, "giga"):
		unit = "gb"
	case strings.HasPrefix(rest, "mb"), strings.HasPrefix(rest, "mib"), strings.HasPrefix(rest, "mega"):
		unit = "mb"
	}
	return unit
}

// splitEntries flattens raw into individual entries: arrays element-wise, strings
// on the multi-value separators.
func splitEntries(raw any) (entries []any) {
	switch v := raw.(type) {
	case nil:
		return entries
	case []any:
		for _, e := range v {
			entries = append(entries, splitEntries(e)...)
		}
	case []string:
		for _, e := range v {
			entries = append(entries, splitEntries(e)...)
		}
	case []float64:
		for _, e := range v {
			entries = append(entries, e)
		}
	case []int:
		for _, e := range v {
			entries = append(entries, e)
		}
	case string:
		for _, part := range multiValueSeparators.Split(v, -1) {
			if strings.TrimSpace(part) != "" {
				entries = append(entries, part)
			}
		}
	default:
		entries = append(entries, v)
	}

	return entries
}
