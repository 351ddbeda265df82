package openfoodfacts

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

// Open Food Facts asks heavy users to stay under ~100 req/min for product
// queries; 1 req/sec with a small burst keeps well inside that.
const (
	requestsPerSecond = 1
	requestBurst      = 5

	maxRetries = 3
)

// Client handles communication with the Open Food Facts API. It implements
// domain.ProductSource.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
}

// NewClient creates an Open Food Facts API client
func NewClient(baseURL, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     baseURL,
		userAgent:   userAgent,
		rateLimiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
	}
}

// doRequest executes an HTTP GET with the mandatory User-Agent header
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalAPIFailure, err)
	}

	return resp, nil
}

// GetByBarcode fetches a single product by barcode. A product unknown to
// Open Food Facts returns domain.ErrProductNotFound.
func (c *Client) GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	log.Printf("[OFF] GetByBarcode called with barcode: %q", barcode)

	reqURL := fmt.Sprintf("%s/product/%s.json", c.baseURL, url.PathEscape(barcode))

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Printf("[OFF] Request error (attempt %d): %v", attempt, err)
			lastErr = err
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrProductNotFound
		}
		if resp.StatusCode != http.StatusOK {
			log.Printf("[OFF] API error (attempt %d) - Status: %d", attempt, resp.StatusCode)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrExternalAPIFailure, resp.StatusCode)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		var productResp productResponse
		if err := json.Unmarshal(body, &productResp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		// status 1 means the barcode is known
		if productResp.Status != 1 || productResp.Product == nil {
			log.Printf("[OFF] Product not found for barcode: %q", barcode)
			return nil, domain.ErrProductNotFound
		}

		return mapProduct(productResp.Product), nil
	}

	log.Printf("[OFF] All retries failed for barcode: %q", barcode)
	return nil, lastErr
}

// Search queries Open Food Facts for products matching the query, filtered
// by country and optionally category. An empty result list is not an error.
func (c *Client) Search(ctx context.Context, query, country, category string, page, pageSize int) ([]domain.Product, error) {
	log.Printf("[OFF] Search called with query: %q country: %q", query, country)

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	params := url.Values{}
	params.Add("search_terms", query)
	params.Add("countries", country)
	params.Add("page", strconv.Itoa(page))
	params.Add("page_size", strconv.Itoa(pageSize))
	params.Add("json", "1")
	if category != "" {
		params.Add("categories", category)
	}

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrExternalAPIFailure, resp.StatusCode, string(body))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	products := make([]domain.Product, 0, len(searchResp.Products))
	for i := range searchResp.Products {
		products = append(products, *mapProduct(&searchResp.Products[i]))
	}

	log.Printf("[OFF] Found %d products for query: %q", len(products), query)
	return products, nil
}
