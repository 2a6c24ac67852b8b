package suggest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/bmispelon/noyel/internal/config"
	"github.com/bmispelon/noyel/internal/core/models"
	"github.com/bmispelon/noyel/internal/metrics"
	"github.com/rs/zerolog"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// Client looks up suggestions on the remote search endpoints.
type Client struct {
	cfg          config.SearchConfig
	httpClient   *http.Client
	timeout      time.Duration
	discardStale bool
	logger       zerolog.Logger
	metrics      *metrics.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets where failed lookups are logged. The default discards.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics shares a metrics registry instead of a private one.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTimeout bounds each lookup started by a source function.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithDiscardStale makes source functions drop responses of queries that
// were superseded by a newer one.
func WithDiscardStale(discard bool) Option {
	return func(c *Client) {
		c.discardStale = discard
	}
}

// New returns a client for the endpoints of cfg. Stale responses are
// discarded when cfg.DiscardStale is set, unless an option overrides it.
func New(cfg config.SearchConfig, opts ...Option) *Client {
	c := &Client{
		cfg:          cfg,
		httpClient:   http.DefaultClient,
		discardStale: cfg.DiscardStale,
		logger:       zerolog.Nop(),
		metrics:      metrics.NewMetrics(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Metrics returns the request counters of the client.
func (c *Client) Metrics() *metrics.Metrics {
	return c.metrics
}

// Path returns the configured path of an endpoint.
func (c *Client) Path(endpoint models.Endpoint) (string, error) {
	switch endpoint {
	case models.EndpointGiftee:
		return c.cfg.GifteeSearchPath, nil
	case models.EndpointFriend:
		return c.cfg.FriendSearchPath, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEndpoint, endpoint)
	}
}

// URL builds the lookup URL of query on endpoint.
func (c *Client) URL(endpoint models.Endpoint, query string) (string, error) {
	path, err := c.Path(endpoint)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(c.cfg.BaseURL + path)
	if err != nil {
		return "", fmt.Errorf("building %s search url: %w", endpoint, err)
	}

	param := c.cfg.QueryParam
	if param == "" {
		param = config.DefaultQueryParam
	}
	values := u.Query()
	values.Set(param, query)
	u.RawQuery = values.Encode()

	return u.String(), nil
}

// Fetch performs one GET lookup and parses the suggestions.
func (c *Client) Fetch(ctx context.Context, endpoint models.Endpoint, query string) (models.SuggestionList, error) {
	target, err := c.URL(endpoint, query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	start := time.Now()
	c.metrics.RequestStarted(string(endpoint))

	list, err := c.do(req)
	c.metrics.RequestFinished(string(endpoint), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("%s search for %q: %w", endpoint, query, err)
	}
	return list, nil
}

func (c *Client) do(req *http.Request) (models.SuggestionList, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}

	return ParseSuggestions(body)
}

// Source returns the widget data source of endpoint. Every call starts an
// independent lookup and returns at once; process is only invoked when the
// lookup succeeds.
func (c *Client) Source(endpoint models.Endpoint) (models.SourceFunc, error) {
	if _, err := c.Path(endpoint); err != nil {
		return nil, err
	}

	var latest uint64

	return func(query string, process models.ProcessFunc) *models.Request {
		req := models.NewRequest(endpoint, query, atomic.AddUint64(&latest, 1))
		go c.run(req, &latest, process)
		return req
	}, nil
}

func (c *Client) run(req *models.Request, latest *uint64, process models.ProcessFunc) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s suggestion callback panicked: %v", req.Endpoint, r)
			c.logger.Error().Err(err).Str("query", req.Query).Msg("suggestion delivery failed")
		}
		req.Finish(err)
	}()

	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	list, err := c.Fetch(ctx, req.Endpoint, req.Query)
	if err != nil {
		c.logger.Debug().Err(err).
			Str("endpoint", string(req.Endpoint)).
			Str("query", req.Query).
			Msg("suggestion lookup failed")
		return
	}

	if c.discardStale && req.Generation < atomic.LoadUint64(latest) {
		c.metrics.StaleDiscarded(string(req.Endpoint))
		c.logger.Debug().
			Str("endpoint", string(req.Endpoint)).
			Str("query", req.Query).
			Uint64("generation", req.Generation).
			Msg("dropping stale suggestions")
		err = ErrStale
		return
	}

	process(list)
}
