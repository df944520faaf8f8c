package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMaxDistance(t *testing.T) {
	cases := map[string]float64{
		"":     0,
		"5":    5,
		"10":   10,
		"25":   25,
		"50":   50,
		"7":    0, // off-menu radius behaves like no filter
		"-10":  0,
		"100":  0,
		"far":  0,
		"10.5": 0,
	}
	for in, want := range cases {
		assert.InDelta(t, want, parseMaxDistance(in), 1e-9, "input %q", in)
	}
}
