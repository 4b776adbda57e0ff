// Package geocoding resolves free-text addresses to coordinates via the
// OpenStreetMap Nominatim service.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// nominatimBaseURL is the public Nominatim search endpoint.
	nominatimBaseURL = "https://nominatim.openstreetmap.org"

	// defaultTimeout is the maximum duration for one Nominatim call.
	defaultTimeout = 15 * time.Second

	// defaultMinDelay is the minimum spacing between requests. The public
	// Nominatim usage policy requires at most one request per second.
	defaultMinDelay = time.Second

	// httpMaxIdleConns is the keep-alive pool size for the transport.
	httpMaxIdleConns = 10

	// httpIdleConnTimeout is how long an idle connection stays pooled.
	httpIdleConnTimeout = 30 * time.Second
)

// NominatimClient implements Geocoder against the Nominatim HTTP API.
// Requests are serialized through a rate limiter so that the provider's
// one-request-per-second policy holds regardless of caller concurrency.
type NominatimClient struct {
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	// baseURL is the Nominatim endpoint. Overrideable in tests.
	baseURL string
}

// NominatimOption configures a NominatimClient.
type NominatimOption func(*NominatimClient)

// WithBaseURL points the client at an alternate Nominatim instance.
func WithBaseURL(u string) NominatimOption {
	return func(c *NominatimClient) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) NominatimOption {
	return func(c *NominatimClient) { c.httpClient.Timeout = d }
}

// WithMinDelay overrides the minimum inter-request delay.
func WithMinDelay(d time.Duration) NominatimOption {
	return func(c *NominatimClient) {
		if d <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// NewNominatimClient creates a Geocoder backed by Nominatim. userAgent must
// identify the application; Nominatim rejects anonymous default agents.
func NewNominatimClient(userAgent string, opts ...NominatimOption) *NominatimClient {
	transport := &http.Transport{
		MaxIdleConns:        httpMaxIdleConns,
		MaxIdleConnsPerHost: httpMaxIdleConns,
		IdleConnTimeout:     httpIdleConnTimeout,
	}
	c := &NominatimClient{
		userAgent: userAgent,
		baseURL:   nominatimBaseURL,
		limiter:   rate.NewLimiter(rate.Every(defaultMinDelay), 1),
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: transport,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// nominatimCandidate mirrors one element of the Nominatim jsonv2 response.
// Nominatim serializes coordinates as strings.
type nominatimCandidate struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Type        string `json:"type"`
}

// Resolve geocodes address and returns the best single match.
//
// Errors:
//   - ErrEmptyAddress (wrapped) when address is empty or whitespace; no
//     provider call is made.
//   - *Failure with Kind set for every provider-side outcome.
func (c *NominatimClient) Resolve(ctx context.Context, address string) (*Location, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("geocoding: nominatim: %w", ErrEmptyAddress)
	}

	// Serialize calls per the provider's usage policy. A caller-cancelled
	// wait is reported as a timeout, same as a slow provider.
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &Failure{Kind: KindTimeout, Err: err}
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")
	q.Set("addressdetails", "1")
	q.Set("accept-language", "en")

	reqURL := c.baseURL + "/search?" + q.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Failure{Kind: KindMalformed, Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("User-Agent", c.userAgent)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return nil, &Failure{Kind: KindTimeout, Err: err}
		}
		return nil, &Failure{Kind: KindServiceUnavailable, Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &Failure{Kind: KindServiceUnavailable, Err: fmt.Errorf("read response: %w", err)}
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &Failure{
			Kind: KindServiceUnavailable,
			Err:  fmt.Errorf("status %d: %s", httpResp.StatusCode, truncate(body, 200)),
		}
	}

	var candidates []json.RawMessage
	if err := json.Unmarshal(body, &candidates); err != nil {
		return nil, &Failure{Kind: KindMalformed, Err: fmt.Errorf("unmarshal response: %w", err)}
	}
	if len(candidates) == 0 {
		return nil, &Failure{Kind: KindNotFound, Err: fmt.Errorf("no match for %q", address)}
	}

	// exactly_one semantics: first candidate only.
	raw := candidates[0]
	var cand nominatimCandidate
	if err := json.Unmarshal(raw, &cand); err != nil {
		return nil, &Failure{Kind: KindMalformed, Err: fmt.Errorf("unmarshal candidate: %w", err)}
	}

	lat, err := strconv.ParseFloat(cand.Lat, 64)
	if err != nil {
		return nil, &Failure{Kind: KindMalformed, Err: fmt.Errorf("parse lat %q: %w", cand.Lat, err)}
	}
	lon, err := strconv.ParseFloat(cand.Lon, 64)
	if err != nil {
		return nil, &Failure{Kind: KindMalformed, Err: fmt.Errorf("parse lon %q: %w", cand.Lon, err)}
	}

	return &Location{
		Lat:         lat,
		Lon:         lon,
		DisplayName: cand.DisplayName,
		OSMType:     cand.Type,
		Raw:         raw,
	}, nil
}

// isTimeout reports whether err represents a deadline rather than a transport
// failure.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
