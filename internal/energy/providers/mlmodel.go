package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/SumanAdhithya30/Urban-Loads/internal/energy"
)

// MLPredictor implements energy.Predictor against an HTTP model server exposing POST /predict.
type MLPredictor struct {
	name     string
	endpoint string
	client   *http.Client
	circuit  *gobreaker.CircuitBreaker
}

func NewMLPredictor(client *http.Client, baseURL string, breaker BreakerConfig) *MLPredictor {
	return &MLPredictor{
		name:     "ml-model",
		endpoint: strings.TrimRight(baseURL, "/") + "/predict",
		client:   client,
		circuit:  newBreaker("ml-model", breaker),
	}
}

func (p *MLPredictor) Name() string {
	return p.name
}

type predictPayload struct {
	Input []float64 `json:"input"`
}

// Predict posts {"input": features} and returns the raw response body of a 2xx reply.
func (p *MLPredictor) Predict(ctx context.Context, features []float64) ([]byte, error) {
	payload, err := json.Marshal(predictPayload{Input: features})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", energy.ErrUpstreamUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", energy.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return doRequest(p.client, p.circuit, req)
}
