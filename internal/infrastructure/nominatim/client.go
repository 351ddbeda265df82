package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/liquiverde/backend/internal/domain"
)

// Nominatim's usage policy allows at most 1 request per second.
const requestsPerSecond = 1

// Client talks to the Nominatim (OpenStreetMap) geocoding API. It
// implements domain.Geocoder.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
}

// NewClient creates a Nominatim API client
func NewClient(baseURL, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     baseURL,
		userAgent:   userAgent,
		rateLimiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// geocodeResult is one entry of a Nominatim search response. Coordinates
// arrive as strings.
type geocodeResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a street address to coordinates. An address Nominatim
// cannot resolve returns domain.ErrAddressNotFound.
func (c *Client) Geocode(ctx context.Context, address string) (*domain.Location, error) {
	log.Printf("[GEO] Geocode called with address: %q", address)

	params := url.Values{}
	params.Add("q", address)
	params.Add("format", "json")
	params.Add("limit", "1")

	body, err := c.get(ctx, fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode()))
	if err != nil {
		return nil, err
	}

	var results []geocodeResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(results) == 0 {
		return nil, domain.ErrAddressNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}

	return &domain.Location{
		Latitude:  lat,
		Longitude: lon,
		Address:   results[0].DisplayName,
	}, nil
}

// ReverseGeocode resolves coordinates to a formatted address
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	params := url.Values{}
	params.Add("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Add("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Add("format", "json")

	body, err := c.get(ctx, fmt.Sprintf("%s/reverse?%s", c.baseURL, params.Encode()))
	if err != nil {
		return "", err
	}

	var result struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.DisplayName == "" {
		return "", domain.ErrAddressNotFound
	}

	return result.DisplayName, nil
}

// get performs a rate-limited GET and returns the response body
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalAPIFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrExternalAPIFailure, resp.StatusCode)
	}

	return body, nil
}
