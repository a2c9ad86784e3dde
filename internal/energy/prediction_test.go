package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPrediction(t *testing.T) {
	cases := []struct {
		name string
		body string
		want float64
	}{
		{"primary field", `{"predicted_power_demand": 120}`, 120},
		{"alternate field", `{"prediction": 50}`, 50},
		{"primary preferred", `{"prediction": 1, "predicted_power_demand": 2}`, 2},
		{"null primary falls back", `{"predicted_power_demand": null, "prediction": 7.5}`, 7.5},
		{"zero is a value", `{"predicted_power_demand": 0, "prediction": 9}`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractPrediction([]byte(tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractPredictionContractViolations(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"predicted_power_demand": "120"}`,
		`{"predicted_power_demand": "x", "prediction": 5}`,
		`{"prediction": [1, 2]}`,
		`[120]`,
		`not json`,
	}
	for _, body := range bodies {
		_, err := ExtractPrediction([]byte(body))
		assert.ErrorIs(t, err, ErrUpstreamContract, body)
	}
}

func TestEstimateCO2(t *testing.T) {
	assert.Equal(t, 98.4, EstimateCO2(120))
	assert.Equal(t, 41.0, EstimateCO2(50))
	assert.Equal(t, 0.0, EstimateCO2(0))
	assert.Equal(t, 1.01, EstimateCO2(1.234))

	res := NewPredictionResult(120)
	assert.Equal(t, PredictionResult{PredictedPowerDemand: 120, EstimatedCO2Kg: 98.4, Unit: "kg CO2"}, res)
}

func TestParsePeriod(t *testing.T) {
	for _, s := range []string{"today", "week", "month"} {
		p, err := ParsePeriod(s)
		require.NoError(t, err)
		assert.Equal(t, UsagePeriod(s), p)
	}
	for _, s := range []string{"", "year", "Today"} {
		_, err := ParsePeriod(s)
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	}
}
