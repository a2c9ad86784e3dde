package energy

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/SumanAdhithya30/Urban-Loads/internal/common"
)

const (
	// EmissionFactorKgPerKWh is the grid emission factor used for the CO2 estimate.
	EmissionFactorKgPerKWh = 0.82
	CO2Unit                = "kg CO2"
)

// PredictionFields lists the upstream field names carrying the prediction, highest priority first.
var PredictionFields = []string{"predicted_power_demand", "prediction"}

// ExtractPrediction pulls the predicted value out of an ML service response body.
// The first field in PredictionFields with a non-null value is used; if that value is not
// a JSON number the response is a contract violation, even when a later field is numeric.
func ExtractPrediction(body []byte) (float64, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return 0, fmt.Errorf("%w: response is not a JSON object: %v", ErrUpstreamContract, err)
	}

	field, raw, ok := common.FirstPresent(obj, PredictionFields...)
	if !ok {
		return 0, fmt.Errorf("%w: none of %v present", ErrUpstreamContract, PredictionFields)
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("%w: %s is not a number", ErrUpstreamContract, field)
	}
	return v, nil
}

// EstimateCO2 converts a predicted demand into kilograms of CO2, rounded to 2 decimals.
func EstimateCO2(predicted float64) float64 {
	return math.Round(predicted*EmissionFactorKgPerKWh*100) / 100
}

// NewPredictionResult derives the full result from a predicted demand.
func NewPredictionResult(predicted float64) PredictionResult {
	return PredictionResult{
		PredictedPowerDemand: predicted,
		EstimatedCO2Kg:       EstimateCO2(predicted),
		Unit:                 CO2Unit,
	}
}
