package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/atomic"
)

// Target is an upstream whose reachability is probed.
type Target struct {
	Name string
	URL  string
}

// UpstreamStatus is the result of the most recent probe of one target.
type UpstreamStatus struct {
	Name      string    `json:"name"`
	Reachable bool      `json:"reachable"`
	CheckedAt time.Time `json:"checkedAt"`
	Error     string    `json:"error,omitempty"`
}

type targetState struct {
	target    Target
	checked   *atomic.Bool
	reachable *atomic.Bool
	checkedAt *atomic.Int64
	lastErr   *atomic.String
}

// Prober periodically checks that upstream origins answer HTTP. Any response, whatever its
// status, counts as reachable; only transport failures do not. Results are diagnostic and
// never influence request handling.
type Prober struct {
	scheduler *gocron.Scheduler
	client    *http.Client
	logger    *slog.Logger
	interval  time.Duration
	targets   []*targetState
}

// New creates a new Prober. Each target URL is reduced to its scheme and host.
func New(client *http.Client, interval time.Duration, logger *slog.Logger, targets ...Target) (*Prober, error) {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Prober{
		scheduler: gocron.NewScheduler(time.UTC),
		client:    client,
		logger:    logger,
		interval:  interval,
	}
	for _, t := range targets {
		origin, err := originOf(t.URL)
		if err != nil {
			return nil, fmt.Errorf("probe target %s: %w", t.Name, err)
		}
		p.targets = append(p.targets, &targetState{
			target:    Target{Name: t.Name, URL: origin},
			checked:   atomic.NewBool(false),
			reachable: atomic.NewBool(false),
			checkedAt: atomic.NewInt64(0),
			lastErr:   atomic.NewString(""),
		})
	}
	return p, nil
}

// Start schedules the probe job. A non-positive interval disables probing.
func (p *Prober) Start() error {
	if p.interval <= 0 || len(p.targets) == 0 {
		p.logger.Info("scheduler: upstream probing disabled")
		return nil
	}

	_, err := p.scheduler.Every(p.interval).SingletonMode().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.interval)
		defer cancel()
		p.ProbeOnce(ctx)
	})
	if err != nil {
		return err
	}

	p.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future probes.
func (p *Prober) Stop() {
	if p.scheduler != nil {
		p.scheduler.Stop()
	}
}

// ProbeOnce checks every target concurrently and records the results.
func (p *Prober) ProbeOnce(ctx context.Context) {
	var wg sync.WaitGroup
	for _, ts := range p.targets {
		wg.Add(1)
		go func(ts *targetState) {
			defer wg.Done()
			err := p.probe(ctx, ts.target.URL)

			ts.reachable.Store(err == nil)
			ts.checkedAt.Store(time.Now().UTC().UnixNano())
			ts.checked.Store(true)
			if err != nil {
				ts.lastErr.Store(err.Error())
				p.logger.Warn("scheduler: upstream unreachable", "upstream", ts.target.Name, "error", err)
				return
			}
			ts.lastErr.Store("")
		}(ts)
	}
	wg.Wait()
}

func (p *Prober) probe(ctx context.Context, origin string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, origin, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Statuses returns the last probe result of every target that has been probed at least once.
func (p *Prober) Statuses() []UpstreamStatus {
	out := make([]UpstreamStatus, 0, len(p.targets))
	for _, ts := range p.targets {
		if !ts.checked.Load() {
			continue
		}
		out = append(out, UpstreamStatus{
			Name:      ts.target.Name,
			Reachable: ts.reachable.Load(),
			CheckedAt: time.Unix(0, ts.checkedAt.Load()).UTC(),
			Error:     ts.lastErr.Load(),
		})
	}
	return out
}

func originOf(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("url %q has no scheme or host", raw)
	}
	return u.Scheme + "://" + u.Host + "/", nil
}
