package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SumanAdhithya30/Urban-Loads/internal/energy"
)

func TestMLPredictorPostsFeatures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string][]float64
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []float64{100, 25}, body["input"])
		_, _ = w.Write([]byte(`{"predicted_power_demand": 120}`))
	}))
	defer srv.Close()

	p := NewMLPredictor(srv.Client(), srv.URL+"/", BreakerConfig{FailureThreshold: 5})
	body, err := p.Predict(context.Background(), []float64{100, 25})
	require.NoError(t, err)
	assert.JSONEq(t, `{"predicted_power_demand": 120}`, string(body))
}

func TestMLPredictorUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail": "model not loaded"}`))
	}))
	defer srv.Close()

	p := NewMLPredictor(srv.Client(), srv.URL, BreakerConfig{FailureThreshold: 5})
	_, err := p.Predict(context.Background(), []float64{1, 2})
	assert.ErrorIs(t, err, energy.ErrUpstreamUnavailable)
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestMLPredictorNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	p := NewMLPredictor(&http.Client{Timeout: time.Second}, addr, BreakerConfig{FailureThreshold: 5})
	_, err := p.Predict(context.Background(), []float64{1, 2})
	assert.ErrorIs(t, err, energy.ErrUpstreamUnavailable)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewMLPredictor(srv.Client(), srv.URL, BreakerConfig{FailureThreshold: 2, Cooldown: time.Minute})
	for i := 0; i < 4; i++ {
		_, err := p.Predict(context.Background(), []float64{1, 2})
		assert.ErrorIs(t, err, energy.ErrUpstreamUnavailable)
	}
	assert.Equal(t, int32(2), hits.Load(), "open breaker must not call upstream")

	_, err := p.Predict(context.Background(), []float64{1, 2})
	assert.ErrorIs(t, err, errCircuitOpen)
}

func TestBreakerIgnoresClientErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewMLPredictor(srv.Client(), srv.URL, BreakerConfig{FailureThreshold: 1, Cooldown: time.Minute})
	for i := 0; i < 3; i++ {
		_, err := p.Predict(context.Background(), []float64{1, 2})
		assert.ErrorIs(t, err, errUnexpected)
	}
	assert.Equal(t, int32(3), hits.Load())
}
