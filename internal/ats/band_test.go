package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandFor(t *testing.T) {
	tests := []struct {
		overall  int
		expected Band
	}{
		{100, BandExcellent},
		{90, BandExcellent},
		{89, BandGood},
		{80, BandGood},
		{79, BandFair},
		{70, BandFair},
		{69, BandNeedsImprovement},
		{0, BandNeedsImprovement},
	}

	for _, tt := range tests {
		band := BandFor(tt.overall)
		assert.Equal(t, tt.expected, band, "overall %d", tt.overall)
		assert.NotEmpty(t, band.Message())
	}
}

func TestBand_Message(t *testing.T) {
	assert.Equal(t, "Fair. Consider implementing the suggestions below.", BandFair.Message())
	assert.Equal(t, "", Band("unknown").Message())
}
