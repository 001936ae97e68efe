package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/compile-and-cry/GlobePay/pkg/config"
)

// FxAPIClient fetches live conversion rates from the exchangerate.host live
// endpoint. Quotes are published against a fixed basis currency (USD), so a
// base->quote rate is derived as quote_per_basis / base_per_basis. The client
// performs no retries: a single failure makes the caller fall back.
type FxAPIClient struct {
	baseURL    string
	basis      string
	httpClient *http.Client
	config     *config.FxAPIConfig
	logger     zerolog.Logger
}

func NewFxAPIClient(cfg *config.FxAPIConfig, logger zerolog.Logger) *FxAPIClient {
	basis := strings.ToUpper(cfg.BasisCurrency)
	if basis == "" {
		basis = "USD"
	}

	return &FxAPIClient{
		baseURL: cfg.BaseURL,
		basis:   basis,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				DisableCompression:  false,
				DisableKeepAlives:   false,
				MaxIdleConnsPerHost: 10,
			},
		},
		config: cfg,
		logger: logger.With().Str("component", "fx_api_client").Logger(),
	}
}

// GetLiveRate returns the base->quote rate and the provider-reported quote
// timestamp.
func (c *FxAPIClient) GetLiveRate(ctx context.Context, base, quote string) (float64, time.Time, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path = "/live"

	baseUp := strings.ToUpper(base)
	quoteUp := strings.ToUpper(quote)

	currencies := quoteUp
	if baseUp != c.basis {
		currencies = quoteUp + "," + baseUp
	}

	q := u.Query()
	q.Set("access_key", c.config.AccessKey)
	q.Set("currencies", currencies)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("creating request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, time.Time{}, c.handleErrorResponse(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("reading response body failed: %w", err)
	}

	return c.parseLiveResponse(body, baseUp, quoteUp)
}

func (c *FxAPIClient) parseLiveResponse(body []byte, base, quote string) (float64, time.Time, error) {
	var response struct {
		Success   bool               `json:"success"`
		Timestamp int64              `json:"timestamp"`
		Quotes    map[string]float64 `json:"quotes"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return 0, time.Time{}, fmt.Errorf("parsing JSON response failed: %w", err)
	}

	if !response.Success {
		return 0, time.Time{}, fmt.Errorf("rate API returned error: %s", string(body))
	}

	if response.Quotes == nil {
		return 0, time.Time{}, fmt.Errorf("missing quotes in response")
	}

	quoteKey := c.basis + quote
	basisToQuote, ok := response.Quotes[quoteKey]
	if !ok {
		return 0, time.Time{}, fmt.Errorf("missing %s quote", quoteKey)
	}

	rate := basisToQuote
	if base != c.basis {
		baseKey := c.basis + base
		basisToBase, ok := response.Quotes[baseKey]
		if !ok {
			return 0, time.Time{}, fmt.Errorf("missing %s quote", baseKey)
		}
		if basisToBase == 0 {
			return 0, time.Time{}, fmt.Errorf("invalid zero rate for %s", baseKey)
		}
		rate = basisToQuote / basisToBase
	}

	fetchedAt := time.Now().UTC()
	if response.Timestamp > 0 {
		fetchedAt = time.Unix(response.Timestamp, 0).UTC()
	}

	return rate, fetchedAt, nil
}

func (c *FxAPIClient) handleErrorResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("HTTP error %d: failed to read response body", resp.StatusCode)
	}

	var errorResp struct {
		Error string `json:"error"`
	}

	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error != "" {
		return fmt.Errorf("HTTP error %d: %s", resp.StatusCode, errorResp.Error)
	}

	return fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(body))
}
