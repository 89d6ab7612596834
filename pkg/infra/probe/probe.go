package probe

import (
	"context"
	"net/http"
	"time"
)

// DefaultEndpoint is the host actually polled, so reachability reflects the
// network path the watcher cares about.
const DefaultEndpoint = "https://api.github.com"

const defaultTimeout = 5 * time.Second

// Probe performs a cheap pre-flight connectivity check used to skip polling
// cycles while offline. A false negative only delays a poll.
type Probe struct {
	endpoint string
	client   *http.Client
}

// Option is a functional option for Probe configuration
type Option func(*Probe)

// WithEndpoint overrides the probed endpoint
func WithEndpoint(endpoint string) Option {
	return func(p *Probe) {
		if endpoint != "" {
			p.endpoint = endpoint
		}
	}
}

// WithTimeout overrides the probe timeout
func WithTimeout(d time.Duration) Option {
	return func(p *Probe) {
		if d > 0 {
			p.client.Timeout = d
		}
	}
}

// New creates a reachability probe
func New(opts ...Option) *Probe {
	p := &Probe{
		endpoint: DefaultEndpoint,
		client:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsReachable reports whether the endpoint answered with a non-server-error
// status within the timeout
func (p *Probe) IsReachable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.endpoint, nil)
	if err != nil {
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < http.StatusInternalServerError
}
