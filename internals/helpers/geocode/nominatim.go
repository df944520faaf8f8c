// Address → coordinate lookup via OpenStreetMap Nominatim. Nominatim asks for
// a descriptive User-Agent and allows 1 request/second; registration volume is
// nowhere near that.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrAddressNotFound means the service answered but had no match; the
	// user has to correct the address before retrying.
	ErrAddressNotFound = errors.New("address not found")
	// ErrServiceUnavailable means we could not reach the service at all.
	ErrServiceUnavailable = errors.New("geocoding service unavailable")
)

type Result struct {
	Lat         float64
	Lng         float64
	DisplayName string
}

// Geocoder is what the registration and church-update workflows depend on.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Result, error)
}

type Client struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		UserAgent:  "churchfinder-backend",
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type nominatimHit struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (c *Client) Geocode(ctx context.Context, address string) (Result, error) {
	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", c.BaseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, fmt.Errorf("geocode: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var hits []nominatimHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	if len(hits) == 0 {
		return Result{}, ErrAddressNotFound
	}

	var lat, lng float64
	if _, err := fmt.Sscanf(hits[0].Lat, "%f", &lat); err != nil {
		return Result{}, fmt.Errorf("%w: bad latitude %q", ErrServiceUnavailable, hits[0].Lat)
	}
	if _, err := fmt.Sscanf(hits[0].Lon, "%f", &lng); err != nil {
		return Result{}, fmt.Errorf("%w: bad longitude %q", ErrServiceUnavailable, hits[0].Lon)
	}

	display := hits[0].DisplayName
	if display == "" {
		display = address
	}
	return Result{Lat: lat, Lng: lng, DisplayName: display}, nil
}

// ComposeAddress builds the single-line query Nominatim expects from the
// separate form fields ("123 Main St, Los Angeles, CA 90001").
func ComposeAddress(street, city, state, zip string) string {
	return fmt.Sprintf("%s, %s, %s %s", street, city, state, zip)
}
