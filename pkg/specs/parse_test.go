package specs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   float64
		wantOK bool
	}{
		{"float passthrough", 15.6, 15.6, true},
		{"int passthrough", 42, 42, true},
		{"unit suffix", "16GB", 16, true},
		{"quoted with whitespace", `  "13.3" `, 13.3, true},
		{"thousands separator", "$1,299.99", 1299.99, true},
		{"first token wins", "8 or 16", 8, true},
		{"hyphenated word is not a sign", "Wi-Fi 6", 6, true},
		{"zero is not meaningful", "0", 0, false},
		{"negative is not meaningful", -5, 0, false},
		{"leading negative string", "-12", 0, false},
		{"no numeric content", "Retina display", 0, false},
		{"empty string", "", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
		{"NaN", math.NaN(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumeric(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseMemoryOrStorage(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   float64
		wantOK bool
	}{
		{"terabyte", "1TB", 1024, true},
		{"gigabyte", "512GB", 512, true},
		{"lowercase with space", "2 tb", 2048, true},
		{"bare number is GB", "256", 256, true},
		{"numeric input", 32.0, 32, true},
		{"megabytes", "512MB", 0.5, true},
		{"spelled terabyte", "1 terabyte", 1024, true},
		{"spelled terabytes capitalized", "2 Terabytes", 2048, true},
		{"spelled gigabytes", "16 gigabytes", 16, true},
		{"spelled megabytes", "512 megabytes", 0.5, true},
		{"binary tebibyte", "1TiB", 1024, true},
		{"zero", "0", 0, false},
		{"garbage", "lots", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMemoryOrStorage(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseMultiValue(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []float64
	}{
		{"mixed units sorted", "256, 512GB, 1TB", []float64{256, 512, 1024}},
		{"deduplicated", "512GB, 512, 0.5TB", []float64{512}},
		{"array input", []any{"1TB", 256.0, "bogus", "512GB"}, []float64{256, 512, 1024}},
		{"scalar", 55.0, []float64{55}},
		{"slash separated", `55" / 65" / 75"`, []float64{55, 65, 75}},
		{"nothing parses", "n/a", []float64{}},
		{"nil", nil, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMultiValue(tt.input))
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   float64
		wantOK bool
	}{
		{"up to hours", "Up to 18 hours", 18, true},
		{"bare number", 10.0, 10, true},
		{"minutes", "90 minutes video playback", 1.5, true},
		{"days", "2 days", 48, true},
		{"all-day phrase", "All-day battery life", AllDayHours, true},
		{"all day without hyphen", "all day", AllDayHours, true},
		{"number beats phrase", "All-day, up to 22 hours", 22, true},
		{"no content", "excellent", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDuration(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseWeight(t *testing.T) {
	kg, ok := ParseWeight("1.24 kg")
	assert.True(t, ok)
	assert.InDelta(t, 1.24, kg, 1e-9)

	kg, ok = ParseWeight("3 lbs")
	assert.True(t, ok)
	assert.InDelta(t, 1.3608, kg, 1e-3)

	kg, ok = ParseWeight("1400 g")
	assert.True(t, ok)
	assert.InDelta(t, 1.4, kg, 1e-9)

	_, ok = ParseWeight("light")
	assert.False(t, ok)
}

func TestParseBand(t *testing.T) {
	tests := []struct {
		input  string
		want   Band
		wantOK bool
	}{
		{"under-500", Band{Min: 0, Max: 500}, true},
		{"500-1000", Band{Min: 500, Max: 1000}, true},
		{"$1,000 - $1,500", Band{Min: 1000, Max: 1500}, true},
		{"1500+", Band{Min: 1500, Max: math.Inf(1)}, true},
		{"over_2000", Band{Min: 2000, Max: math.Inf(1)}, true},
		{"1k-2k", Band{Min: 1000, Max: 2000}, true},
		{"800", Band{Min: 0, Max: 800}, true},
		{"flexible", Band{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseBand(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
