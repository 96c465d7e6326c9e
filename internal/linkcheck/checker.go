// Package linkcheck verifies that the profile links found on a resume resolve.
package linkcheck

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"atsresume/internal/config"
	"atsresume/internal/errors"
	"atsresume/internal/types"
)

// Checker reports the liveness of a set of links. Implementations never fail;
// every problem is mapped onto a status value.
type Checker interface {
	Check(ctx context.Context, links []types.Link) []types.LinkStatus
}

// LinksFor returns the LinkedIn and GitHub profile URLs of a contact, in that order.
func LinksFor(c types.ContactInfo) []types.Link {
	var links []types.Link
	if c.LinkedIn != "" {
		links = append(links, types.Link{Name: "LinkedIn", URL: "https://" + c.LinkedIn})
	}
	if c.GitHub != "" {
		links = append(links, types.Link{Name: "GitHub", URL: "https://" + c.GitHub})
	}
	return links
}

// HTTPChecker checks links with HEAD requests, following redirects
type HTTPChecker struct {
	client         *http.Client
	linkTimeout    time.Duration
	overallTimeout time.Duration
	breakers       *HostBreakers
	logger         *errors.Logger
	observe        func(context.Context, types.LinkStatus)
}

// Option configures an HTTPChecker
type Option func(*HTTPChecker)

// WithHTTPClient replaces the instrumented default client
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPChecker) {
		c.client = client
	}
}

// WithObserver registers a callback invoked once per checked link
func WithObserver(fn func(context.Context, types.LinkStatus)) Option {
	return func(c *HTTPChecker) {
		c.observe = fn
	}
}

// New creates an HTTPChecker from the analysis configuration
func New(cfg config.AnalysisConfig, logger *errors.Logger, opts ...Option) *HTTPChecker {
	if logger == nil {
		logger = errors.Discard()
	}
	c := &HTTPChecker{
		client:         &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		linkTimeout:    cfg.LinkTimeout,
		overallTimeout: cfg.LinkCheckTimeout,
		breakers:       NewHostBreakers(cfg.CircuitBreaker, logger),
		logger:         logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check probes every link concurrently. Results keep the order of links.
func (c *HTTPChecker) Check(ctx context.Context, links []types.Link) []types.LinkStatus {
	results := make([]types.LinkStatus, len(links))
	if len(links) == 0 {
		return results
	}

	if c.overallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.overallTimeout)
		defer cancel()
	}

	var g errgroup.Group
	for i, link := range links {
		g.Go(func() error {
			results[i] = types.LinkStatus{Name: link.Name, URL: link.URL, Status: c.probe(ctx, link.URL)}
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		c.logger.Debug("Link checked", "name", r.Name, "url", r.URL, "status", r.Status)
		if c.observe != nil {
			c.observe(ctx, r)
		}
	}
	return results
}

// Breakers exposes the per-host circuit breakers for health and stats reporting
func (c *HTTPChecker) Breakers() *HostBreakers {
	return c.breakers
}

func (c *HTTPChecker) probe(ctx context.Context, rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return types.LinkTimeout
	}

	status, err := c.breakers.Execute(u.Host, func() (string, error) {
		return c.head(ctx, rawURL)
	})
	if err == nil {
		return status
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		c.logger.Debug("Link check timed out", "url", rawURL)
	} else {
		c.logger.Debug("Link check failed", "url", rawURL, "error", err.Error())
	}
	if status == types.LinkBroken {
		return status
	}
	return types.LinkTimeout
}

// head issues the request. Server errors count as breaker failures but still
// report the link as Broken.
func (c *HTTPChecker) head(ctx context.Context, rawURL string) (string, error) {
	if c.linkTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.linkTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode < http.StatusBadRequest:
		return types.LinkActive, nil
	case resp.StatusCode >= http.StatusInternalServerError:
		return types.LinkBroken, fmt.Errorf("server error: %s", resp.Status)
	default:
		return types.LinkBroken, nil
	}
}
