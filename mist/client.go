package mist

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/mist-tools/misttopo/internal/httpclient"
	"github.com/mist-tools/misttopo/internal/middleware"
	"github.com/mist-tools/misttopo/internal/ratelimit"
	"github.com/mist-tools/misttopo/internal/response"
	"github.com/mist-tools/misttopo/observability"
	"github.com/mist-tools/misttopo/record"
)

const (
	// DefaultHost is the US region Mist API endpoint. EU and APAC orgs
	// use api.eu.mist.com and api.ac2.mist.com.
	DefaultHost = "api.mist.com"

	// DefaultRateLimitPerMinute keeps a busy discovery run well under the
	// Mist per-org API quota.
	DefaultRateLimitPerMinute = 300

	// DefaultMaxRetries is the default number of retries for failed requests.
	DefaultMaxRetries = 3
	// DefaultRetryWaitTime is the default wait time between retries.
	DefaultRetryWaitTime = 1 * time.Second
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// Client issues bulk read calls against one Mist organization.
type Client struct {
	http    *httpclient.Client
	baseURL string
	orgID   string
}

// ClientConfig holds configuration for the Mist API client.
type ClientConfig struct {
	// Token is the Mist API token for authentication (required).
	Token string

	// OrgID is the organization to discover (required).
	OrgID string

	// Host is the regional API endpoint (defaults to api.mist.com).
	// A https:// prefix is tolerated and stripped.
	Host string

	// BaseURL overrides Host with a full scheme://host base, mainly for
	// tests and self-hosted proxies.
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient *http.Client

	// RateLimitPerMinute sets the client-side rate limit (defaults to 300).
	RateLimitPerMinute int

	// MaxRetries sets maximum number of retries for failed requests.
	MaxRetries int

	// RetryWaitTime sets the initial wait time between retries.
	RetryWaitTime time.Duration

	// Timeout sets the HTTP client timeout.
	Timeout time.Duration

	// InsecureTLS disables certificate verification, for self-hosted
	// proxies with self-signed certificates. Never use in production.
	InsecureTLS bool

	// Logger for observability (optional, uses noop logger if nil).
	Logger observability.Logger

	// Metrics recorder for observability (optional, uses noop recorder if nil).
	Metrics observability.MetricsRecorder
}

// NewClient creates a Mist API client with token auth, client-side rate
// limiting and retry with exponential backoff, composed as RoundTripper
// middleware the same way for every endpoint.
func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if cfg.Token == "" {
		return nil, errors.New("API token is required")
	}
	if cfg.OrgID == "" {
		return nil, errors.New("organization id is required")
	}

	// Set defaults
	host := stripScheme(cfg.Host)
	if host == "" {
		host = DefaultHost
	}
	if cfg.RateLimitPerMinute == 0 {
		cfg.RateLimitPerMinute = DefaultRateLimitPerMinute
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryWaitTime == 0 {
		cfg.RetryWaitTime = DefaultRetryWaitTime
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	// Build middleware chain, outermost first:
	// Observability -> Auth -> RateLimit -> Retry.
	// Retry sits innermost so a retried attempt does not consume another
	// rate limit token or count as a second logical request.
	chain := []httpclient.Middleware{
		middleware.Observability(cfg.Logger, cfg.Metrics),
		middleware.TokenAuth(cfg.Token),
		middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: ratelimit.New(cfg.RateLimitPerMinute),
			Logger:  cfg.Logger,
			Metrics: cfg.Metrics,
		}),
		middleware.Retry(middleware.RetryConfig{
			MaxRetries:  cfg.MaxRetries,
			InitialWait: cfg.RetryWaitTime,
			Logger:      cfg.Logger,
			Metrics:     cfg.Metrics,
		}),
	}
	if cfg.InsecureTLS {
		chain = append(chain, middleware.TLSConfig(middleware.InsecureSkipVerify()))
	}

	opts := []httpclient.Option{
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithMiddleware(chain...),
	}
	if cfg.HTTPClient != nil {
		opts = append([]httpclient.Option{httpclient.WithHTTPClient(cfg.HTTPClient)}, opts...)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://" + host
	}

	return &Client{
		http:    httpclient.New(opts...),
		baseURL: strings.TrimSuffix(baseURL, "/") + "/api/v1",
		orgID:   cfg.OrgID,
	}, nil
}

// OrgID returns the organization this client is scoped to.
func (c *Client) OrgID() string {
	return c.orgID
}

// OrgInventory retrieves every device in the organization, across all
// sites, in a single call.
func (c *Client) OrgInventory(ctx context.Context) ([]record.Value, error) {
	resp, err := c.get(ctx, "/orgs/"+c.orgID+"/inventory", nil)
	//nolint:wrapcheck // response.DecodeList wraps errors internally
	return response.DecodeList(resp, err, "failed to get organization inventory")
}

// OrgSites retrieves the organization's site list (names, addresses,
// timezones).
func (c *Client) OrgSites(ctx context.Context) ([]record.Value, error) {
	resp, err := c.get(ctx, "/orgs/"+c.orgID+"/sites", nil)
	//nolint:wrapcheck // response.DecodeList wraps errors internally
	return response.DecodeList(resp, err, "failed to get organization sites")
}

// SiteDeviceStats retrieves live device statistics for one site, including
// port counters and LLDP neighbor data.
func (c *Client) SiteDeviceStats(ctx context.Context, siteID string) ([]record.Value, error) {
	resp, err := c.get(ctx, "/sites/"+siteID+"/stats/devices", nil)
	//nolint:wrapcheck // response.DecodeList wraps errors internally
	return response.DecodeList(resp, err, "failed to get device statistics for site "+siteID)
}

// SiteDiscoveredSwitches retrieves switches a site has discovered but does
// not manage.
func (c *Client) SiteDiscoveredSwitches(ctx context.Context, siteID string) ([]record.Value, error) {
	resp, err := c.get(ctx, "/sites/"+siteID+"/discovered_switches", nil)
	//nolint:wrapcheck // response.DecodeList wraps errors internally
	return response.DecodeList(resp, err, "failed to get discovered switches for site "+siteID)
}

// SearchDevices searches the organization for devices, optionally filtered
// by type. The endpoint wraps its matches in a results envelope; a bare
// list is accepted too.
func (c *Client) SearchDevices(ctx context.Context, deviceType string, limit int) ([]record.Value, error) {
	if limit <= 0 {
		limit = 1000
	}

	query := url.Values{"limit": {strconv.Itoa(limit)}}
	if deviceType != "" {
		query.Set("type", deviceType)
	}

	resp, err := c.get(ctx, "/orgs/"+c.orgID+"/devices/search", query)
	v, err := response.Decode(resp, err, "failed to search devices")
	if err != nil {
		//nolint:wrapcheck // response.Decode wraps errors internally
		return nil, err
	}

	if items := v.Items(); items != nil {
		return items, nil
	}
	return v.Get("results").Items(), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	//nolint:wrapcheck // callers wrap with endpoint context via response helpers
	return c.http.Do(req)
}

func stripScheme(host string) string {
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	return strings.TrimSuffix(host, "/")
}
