// Package lawapi fetches statutes and administrative rules from the national
// law information open API.
package lawapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"sentinel-ds/internal/lawtext"
)

const (
	DefaultLawEndpoint    = "https://open.law.go.kr/LSO/openApi/getMOLSLaw.do"
	DefaultAdmRulEndpoint = "https://open.law.go.kr/LSO/openApi/getMOLSAdmRul.do"
	DefaultUserAgent      = "sentinel-ds/1.0"
	DefaultTimeout        = 30 * time.Second
)

// LawType selects which catalogue of the service is queried.
type LawType string

const (
	LawTypeLaw    LawType = "law"
	LawTypeAdmRul LawType = "admrul"
)

// ParseLawType validates a type name from configuration.
func ParseLawType(s string) (LawType, error) {
	switch t := LawType(strings.TrimSpace(s)); t {
	case LawTypeLaw, LawTypeAdmRul:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLawType, s)
	}
}

// HTTPClient is the subset of *http.Client used by Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	APIKey         string
	LawEndpoint    string
	AdmRulEndpoint string
	UserAgent      string
	Timeout        time.Duration
	// RatePerSecond limits outgoing requests; zero or less disables limiting.
	RatePerSecond float64
	Burst         int
}

// Result is one fetched document.
type Result struct {
	Name        string
	Type        LawType
	EnactedDate string
	Articles    []lawtext.Article
}

type Client struct {
	cfg     Config
	http    HTTPClient
	limiter *rate.Limiter
}

// NewClient builds a client. A nil httpClient gets an *http.Client bounded by
// cfg.Timeout.
func NewClient(cfg Config, httpClient HTTPClient) *Client {
	if cfg.LawEndpoint == "" {
		cfg.LawEndpoint = DefaultLawEndpoint
	}
	if cfg.AdmRulEndpoint == "" {
		cfg.AdmRulEndpoint = DefaultAdmRulEndpoint
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	return &Client{cfg: cfg, http: httpClient, limiter: limiter}
}

func (c *Client) endpoint(t LawType) (string, error) {
	switch t {
	case LawTypeLaw:
		return c.cfg.LawEndpoint, nil
	case LawTypeAdmRul:
		return c.cfg.AdmRulEndpoint, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLawType, t)
	}
}

// Fetch retrieves the articles and effective date of the named law.
// Configuration problems are reported before any I/O.
func (c *Client) Fetch(ctx context.Context, name string, t LawType) (*Result, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	endpoint, err := c.endpoint(t)
	if err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Endpoint: endpoint, Err: err}
		}
	}

	params := url.Values{}
	params.Set("OC", c.cfg.APIKey)
	params.Set("target", string(t))
	params.Set("type", "XML")
	params.Set("query", name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	result, err := ParseResponse(resp.Body)
	if err != nil {
		return nil, err
	}
	result.Name = name
	result.Type = t
	return result, nil
}
