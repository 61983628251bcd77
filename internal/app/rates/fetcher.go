/*
Package rates provides live CAD exchange rates for the currencies the ledger trades in.

Rates are pulled from third-party HTTP endpoints, fall back to hard-coded values when
the sources are unreachable, are cached with a timestamp, persisted for the page layer,
and broadcast to subscribed WebSocket clients on refresh.
*/
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"goldbook/internal/app/ledger"
)

// Fetcher retrieves one currency rate, returning the rate, a source label, and any error.
type Fetcher interface {
	Fetch(ctx context.Context) (float64, string, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) (float64, string, error)

func (f FetcherFunc) Fetch(ctx context.Context) (float64, string, error) {
	if f == nil {
		return 0, "", nil
	}
	return f(ctx)
}

const (
	pricetoDayURL      = "https://api.priceto.day/v1/latest/irr/usd"
	exchangerateHostURL = "https://api.exchangerate.host/latest?base=CAD&symbols=USD"

	// browserUserAgent is sent to priceto.day, which rejects default Go clients.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// IRRFetcher fetches the free-market IRR rate from priceto.day. The endpoint reports
// USD per IRR; the result is converted to IRR per CAD via the USD cross.
type IRRFetcher struct {
	Client  *http.Client
	BaseURL string
}

func (f *IRRFetcher) Fetch(ctx context.Context) (float64, string, error) {
	url := f.BaseURL
	if url == "" {
		url = pricetoDayURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")

	res, err := client(f.Client).Do(req)
	if err != nil {
		return 0, "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, "", fmt.Errorf("priceto.day responded %d", res.StatusCode)
	}

	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, "", fmt.Errorf("priceto.day response not parseable: %w", err)
	}

	usdPerIRR, ok := body.Rates["USD"]
	if !ok || usdPerIRR == 0 {
		return 0, "", fmt.Errorf("priceto.day response carries no USD rate")
	}

	irrPerCAD := (1 / usdPerIRR) * ledger.FallbackUSDPerCAD
	return irrPerCAD, "priceto.day", nil
}

// USDFetcher fetches the USD-per-CAD rate from exchangerate.host.
type USDFetcher struct {
	Client  *http.Client
	BaseURL string
}

func (f *USDFetcher) Fetch(ctx context.Context) (float64, string, error) {
	url := f.BaseURL
	if url == "" {
		url = exchangerateHostURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, "", err
	}

	res, err := client(f.Client).Do(req)
	if err != nil {
		return 0, "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, "", fmt.Errorf("exchangerate.host responded %d", res.StatusCode)
	}

	var body struct {
		Success bool               `json:"success"`
		Rates   map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, "", fmt.Errorf("exchangerate.host response not parseable: %w", err)
	}

	if !body.Success {
		return 0, "", fmt.Errorf("exchangerate.host reported failure")
	}

	usdPerCAD, ok := body.Rates["USD"]
	if !ok || usdPerCAD == 0 {
		return 0, "", fmt.Errorf("exchangerate.host response carries no USD rate")
	}

	return usdPerCAD, "exchangerate.host", nil
}

func client(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return http.DefaultClient
}
