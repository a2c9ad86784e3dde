package providers

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/SumanAdhithya30/Urban-Loads/internal/energy"
)

// maxBodyBytes bounds how much of an upstream response is read.
const maxBodyBytes = 1 << 20

// BreakerConfig controls the circuit breaker guarding one upstream.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens the breaker.
	// Zero disables tripping.
	FailureThreshold uint32
	// Cooldown is how long the breaker stays open before allowing a trial request.
	Cooldown time.Duration
	// OnStateChange is called on every breaker transition. Optional.
	OnStateChange func(name string, from, to gobreaker.State)
}

var (
	errServerError  = errors.New("server error")
	errUnexpected   = errors.New("unexpected status code")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

func newBreaker(name string, cfg BreakerConfig) *gobreaker.CircuitBreaker {
	threshold := cfg.FailureThreshold
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return threshold > 0 && counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: cfg.OnStateChange,
	})
}

type upstreamResponse struct {
	status int
	body   []byte
}

// doRequest executes req exactly once through the circuit breaker and returns the body of a
// 2xx response. Transport failures, timeouts, 429 and 5xx count against the breaker; other
// non-2xx responses fail the call without tripping it. Every error wraps
// energy.ErrUpstreamUnavailable.
func doRequest(client *http.Client, cb *gobreaker.CircuitBreaker, req *http.Request) ([]byte, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: %v", energy.ErrUpstreamUnavailable, errNoHTTPClient)
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, describeTransportError(execErr)
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if readErr != nil {
			return nil, fmt.Errorf("reading response body: %w", readErr)
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: %d: %s", errServerError, resp.StatusCode, truncate(body))
		}
		return upstreamResponse{status: resp.StatusCode, body: body}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w: %s", energy.ErrUpstreamUnavailable, errCircuitOpen, cb.Name())
		}
		return nil, fmt.Errorf("%w: %w", energy.ErrUpstreamUnavailable, err)
	}

	resp, ok := result.(upstreamResponse)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result type from circuit breaker", energy.ErrUpstreamUnavailable)
	}
	if resp.status < 200 || resp.status >= 300 {
		return nil, fmt.Errorf("%w: %w: %d: %s", energy.ErrUpstreamUnavailable, errUnexpected, resp.status, truncate(resp.body))
	}
	return resp.body, nil
}

func describeTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("timeout: %w", err)
	}
	return err
}

func truncate(b []byte) string {
	const limit = 256
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
