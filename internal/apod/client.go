package apod

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RecordFetcher fetches the APOD record for a date.
// This interface is implemented by *Client and can be used for testing.
type RecordFetcher interface {
	FetchRecord(ctx context.Context, date string) (Record, error)
}

// Ensure Client implements RecordFetcher at compile time.
var _ RecordFetcher = (*Client)(nil)

// Client talks to the APOD HTTP API.
type Client struct {
	baseURL   *url.URL
	apiKey    string
	http      *http.Client
	userAgent string
}

const (
	DefaultBaseURL = "https://api.nasa.gov/planetary/apod"
	DemoKey        = "DEMO_KEY"

	defaultUserAgent = "stargazer/0.1"
	requestTimeout   = 15 * time.Second
	maxErrorBody     = 4 << 10
)

// NewClient builds a Client for the given endpoint and key. Empty values fall
// back to the public endpoint and the demo key.
func NewClient(baseURL, apiKey string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	key := strings.TrimSpace(apiKey)
	if key == "" {
		key = DemoKey
	}
	return &Client{
		baseURL: base,
		apiKey:  key,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchRecord retrieves the record published on date (YYYY-MM-DD). It does
// not filter on media type.
func (c *Client) FetchRecord(ctx context.Context, date string) (Record, error) {
	if c == nil {
		return Record{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("api_key", c.apiKey)
	values.Set("date", date)

	reqURL := *c.baseURL
	reqURL.RawQuery = values.Encode()

	var payload Record
	if err := c.doURL(ctx, http.MethodGet, &reqURL, &payload); err != nil {
		return Record{}, err
	}
	return payload, nil
}

func (c *Client) doURL(ctx context.Context, method string, reqURL *url.URL, dest any) error {
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload errorResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return payload.message()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
