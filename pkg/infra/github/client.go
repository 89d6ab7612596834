package github

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"

	"github.com/tnylea/failwhale/pkg/domain/model"
	"github.com/tnylea/failwhale/pkg/domain/types"
)

const (
	defaultMaxAttempts = 3
	defaultTimeout     = 10 * time.Second
	defaultBackoffBase = time.Second
	defaultBackoffCap  = 30 * time.Second

	// Only the latest run is consulted, but a small page keeps the response
	// useful for debugging.
	runPageSize = 10
)

// Client fetches workflow runs from the GitHub Actions API with bounded
// per-attempt timeouts and exponential backoff on transient failures.
type Client struct {
	gh          *github.Client
	maxAttempts int
	timeout     time.Duration
	backoffBase time.Duration
	backoffCap  time.Duration
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithMaxAttempts sets the total attempt cap per fetch
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithTimeout sets the per-attempt request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithBackoff sets the exponential backoff base and cap
func WithBackoff(base, limit time.Duration) Option {
	return func(c *Client) {
		if base > 0 {
			c.backoffBase = base
		}
		if limit > 0 {
			c.backoffCap = limit
		}
	}
}

// WithBaseURL points the client at a different API endpoint, used for GitHub
// Enterprise and for tests
func WithBaseURL(rawURL string) Option {
	return func(c *Client) {
		u, err := url.Parse(rawURL)
		if err != nil {
			return
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		c.gh.BaseURL = u
	}
}

// New creates a GitHub Actions client. The token may be empty for public
// repositories, at the cost of a much lower rate limit.
func New(token string, opts ...Option) (*Client, error) {
	waiter, err := github_ratelimit.NewRateLimitWaiter(nil,
		github_ratelimit.WithSingleSleepLimit(time.Minute, nil),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create rate limit transport")
	}

	var rt http.RoundTripper = waiter
	if token != "" {
		rt = &oauth2.Transport{
			Base:   waiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}

	gh := github.NewClient(&http.Client{Transport: rt})
	gh.UserAgent = "failwhale/" + types.Version

	c := &Client{
		gh:          gh,
		maxAttempts: defaultMaxAttempts,
		timeout:     defaultTimeout,
		backoffBase: defaultBackoffBase,
		backoffCap:  defaultBackoffCap,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// LatestRuns fetches the most recent workflow runs for a repository, retrying
// transient failures with exponential backoff up to the attempt cap.
func (c *Client) LatestRuns(ctx context.Context, owner, repo string) ([]model.WorkflowRun, error) {
	logger := ctxlog.From(ctx)

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := backoff(attempt-1, c.backoffBase, c.backoffCap)
			logger.Debug("retrying workflow run fetch",
				"owner", owner,
				"repo", repo,
				"attempt", attempt,
				"delay", delay,
			)
			select {
			case <-ctx.Done():
				return nil, goerr.Wrap(ctx.Err(), "fetch cancelled during backoff")
			case <-time.After(delay):
			}
		}

		runs, err := c.fetchOnce(ctx, owner, repo)
		if err == nil {
			return runs, nil
		}
		lastErr = err

		if !isTransient(err) {
			return nil, goerr.Wrap(err, "workflow run fetch failed",
				goerr.V("owner", owner), goerr.V("repo", repo))
		}
	}

	return nil, goerr.Wrap(lastErr, "workflow run fetch retries exhausted",
		goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("attempts", c.maxAttempts))
}

func (c *Client) fetchOnce(ctx context.Context, owner, repo string) ([]model.WorkflowRun, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	runs, _, err := c.gh.Actions.ListRepositoryWorkflowRuns(ctx, owner, repo,
		&github.ListWorkflowRunsOptions{
			ListOptions: github.ListOptions{PerPage: runPageSize},
		})
	if err != nil {
		return nil, err
	}
	if runs == nil {
		return nil, nil
	}

	out := make([]model.WorkflowRun, 0, len(runs.WorkflowRuns))
	for _, r := range runs.WorkflowRuns {
		if r == nil {
			continue
		}
		out = append(out, model.WorkflowRun{
			ID:         r.GetID(),
			Name:       r.GetName(),
			Status:     model.WorkflowStatus(r.GetStatus()),
			Conclusion: model.WorkflowConclusion(r.GetConclusion()),
			URL:        r.GetHTMLURL(),
			CreatedAt:  r.GetCreatedAt().Time,
			UpdatedAt:  r.GetUpdatedAt().Time,
		})
	}

	return out, nil
}

// backoff returns the delay before the given retry (1-based):
// min(base * 2^(retry-1), limit).
func backoff(retry int, base, limit time.Duration) time.Duration {
	if retry < 1 {
		retry = 1
	}
	d := base
	for i := 1; i < retry; i++ {
		d *= 2
		if d >= limit {
			return limit
		}
	}
	if d > limit {
		return limit
	}
	return d
}

// isTransient classifies a fetch failure. Rate limits, timeouts, DNS failures
// and transport-level errors are worth retrying; anything else (4xx, malformed
// responses) is not.
func isTransient(err error) bool {
	var rateLimit *github.RateLimitError
	if errors.As(err, &rateLimit) {
		return true
	}
	var abuse *github.AbuseRateLimitError
	if errors.As(err, &abuse) {
		return true
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		if ghErr.Response == nil {
			return false
		}
		switch ghErr.Response.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// url.Error covers generic transport failures (connection refused, reset)
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
