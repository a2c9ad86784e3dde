package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTipsForBands(t *testing.T) {
	cases := []struct {
		name string
		temp float64
		want TipSet
	}{
		{"hot boundary", 30, hotTips},
		{"hot", 42.5, hotTips},
		{"just below hot", 29.99, moderateTips},
		{"moderate", 20, moderateTips},
		{"just above cold", 15.01, moderateTips},
		{"cold boundary", 15, coldTips},
		{"cold", -3, coldTips},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TipsFor(tc.temp)
			assert.Equal(t, tc.want, got)
			assert.Len(t, got, 5)
		})
	}
}

func TestTipsForReturnsCopy(t *testing.T) {
	got := TipsFor(35)
	got[0] = "changed"
	assert.NotEqual(t, "changed", TipsFor(35)[0])
}
