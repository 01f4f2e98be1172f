package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		score  any
		scale  any
		want   float64
		wantOK bool
	}{
		{"five of five", 5.0, 5.0, 100, true},
		{"eight of ten", 8.0, 10.0, 80, true},
		{"rounded", 4.3, 5.0, 86, true},
		{"string score and scale", "8.5", "10", 85, true},
		{"star descriptor", 4.0, "5-star", 80, true},
		{"stars without number", 3.0, "stars", 60, true},
		{"out of descriptor", 7.0, "out of 10", 70, true},
		{"percent scale", 91.0, "%", 91, true},
		{"fraction score", "4/5", nil, 80, true},
		{"out of score", "8.5 out of 10", "", 85, true},
		{"percentage score", "85%", nil, 85, true},
		{"clamped above", 12.0, 10.0, 100, true},
		{"clamped below", -1.0, 10.0, 0, true},
		{"zero scale", 4.0, 0.0, 0, false},
		{"missing scale", 4.0, nil, 0, false},
		{"non-numeric scale", 4.0, "great", 0, false},
		{"missing score", nil, 10.0, 0, false},
		{"non-numeric score", "excellent", 10.0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.score, tt.scale)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
