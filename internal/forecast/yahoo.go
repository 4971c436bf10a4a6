package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// YahooTargets reads the analyst mean target from the Yahoo Finance
// quoteSummary API.
type YahooTargets struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooTargets creates a provider with the given request timeout.
func NewYahooTargets(timeout time.Duration, proxyURL string) *YahooTargets {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooTargets{
		BaseURL: "https://query1.finance.yahoo.com",
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

type quoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			FinancialData struct {
				TargetMeanPrice struct {
					Raw float64 `json:"raw"`
				} `json:"targetMeanPrice"`
			} `json:"financialData"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func (y *YahooTargets) TargetMeanPrice(ctx context.Context, symbol string) (float64, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=financialData",
		y.BaseURL, url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := y.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("target fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("target fetch: status %d", resp.StatusCode)
	}

	var summary quoteSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return 0, fmt.Errorf("target decode: %w", err)
	}
	if summary.QuoteSummary.Error != nil {
		return 0, fmt.Errorf("target api error: %s", summary.QuoteSummary.Error.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return 0, fmt.Errorf("no analyst data for %s", symbol)
	}

	target := summary.QuoteSummary.Result[0].FinancialData.TargetMeanPrice.Raw
	if target <= 0 {
		return 0, fmt.Errorf("no analyst target for %s", symbol)
	}
	return target, nil
}
