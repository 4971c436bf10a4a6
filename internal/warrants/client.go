package warrants

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"WarrantSentinel/internal/config"
	"WarrantSentinel/internal/model"
)

// finderColumns is the column set requested from the finder endpoint.
const finderColumns = "instrument,strikeAbs,dateMaturity,quote.bid,quote.ask," +
	"leverage,omega,impliedVolatilityAsk,spreadAskPct,premiumAsk," +
	"nameExerciseStyle,issuer.name,theta"

// Client queries a JSON warrant finder endpoint.
type Client struct {
	BaseURL string
	Client  *http.Client

	cfg *config.ScraperConfig
	now func() time.Time
}

// NewClient creates a finder client with optional proxy support.
func NewClient(cfg *config.ScraperConfig, proxyURL string) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		BaseURL: cfg.BaseURL,
		Client: &http.Client{
			Timeout:   cfg.Timeout(),
			Transport: transport,
		},
		cfg: cfg,
		now: time.Now,
	}
}

// finderRow mirrors one finder result row. Numeric fields may arrive as
// numbers or as German-formatted strings, depending on the endpoint.
type finderRow struct {
	WKN           string      `json:"wkn"`
	Name          string      `json:"name"`
	Issuer        string      `json:"issuer"`
	ExerciseStyle string      `json:"nameExerciseStyle"`
	Currency      string      `json:"currency"`
	StrikeAbs     interface{} `json:"strikeAbs"`
	DateMaturity  string      `json:"dateMaturity"`
	Bid           interface{} `json:"bid"`
	Ask           interface{} `json:"ask"`
	Leverage      interface{} `json:"leverage"`
	Omega         interface{} `json:"omega"`
	ImpliedVol    interface{} `json:"impliedVolatilityAsk"`
	SpreadAskPct  interface{} `json:"spreadAskPct"`
	PremiumAsk    interface{} `json:"premiumAsk"`
	Theta         interface{} `json:"theta"`
}

type finderResponse struct {
	List []finderRow `json:"list"`
}

// Search runs one finder query and converts the rows into candidates.
// Structural filtering happens later in the prefilter.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]model.InstrumentCandidate, error) {
	params := url.Values{}
	params.Set("underlying", req.Name)
	params.Set("type", string(req.Type))
	params.Set("page", "0")
	params.Set("cols", finderColumns)
	params.Set("strikeAbsRange", fmt.Sprintf("%d;%d", int(req.StrikeMin), int(req.StrikeMax)))

	today := c.now()
	params.Set("dateMaturityRange", fmt.Sprintf("%s;%s",
		today.AddDate(0, 0, req.DaysMin).Format("2006-01-02"),
		today.AddDate(0, 0, req.DaysMax).Format("2006-01-02")))

	params.Set("spreadAskPctRange", fmt.Sprintf("%.1f;%.1f", c.cfg.SpreadMinPct, c.cfg.SpreadMaxPct))
	params.Set("sort", "spreadAskPct")
	params.Set("order", "ASC")
	if req.BrokerID > 0 {
		params.Set("brokerId", strconv.Itoa(req.BrokerID))
	}

	u := c.BaseURL + "?" + params.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("User-Agent", "Mozilla/5.0")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("finder fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("finder: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result finderResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("finder decode: %w", err)
	}

	candidates := make([]model.InstrumentCandidate, 0, len(result.List))
	for _, row := range result.List {
		candidates = append(candidates, rowToCandidate(row, req.Type))
	}
	return candidates, nil
}

func rowToCandidate(row finderRow, typ model.WarrantType) model.InstrumentCandidate {
	strike, _ := parseNumber(row.StrikeAbs)
	bid, hasBid := parseNumber(row.Bid)
	ask, hasAsk := parseNumber(row.Ask)
	leverage, _ := parseNumber(row.Leverage)
	omega, _ := parseNumber(row.Omega)
	impliedVol, _ := parseNumber(row.ImpliedVol)
	spreadPct, _ := parseNumber(row.SpreadAskPct)
	premiumPct, _ := parseNumber(row.PremiumAsk)
	theta, _ := parseNumber(row.Theta)

	mid := 0.0
	if hasAsk && ask > 0 {
		mid = ask
		if hasBid && bid > 0 {
			mid = (bid + ask) / 2
		}
	}
	spreadAbs := 0.0
	if hasBid && bid > 0 && hasAsk {
		spreadAbs = ask - bid
	}

	currency := row.Currency
	if currency == "" {
		if s, ok := row.Ask.(string); ok {
			currency = detectCurrency(s)
		}
	}
	if currency == "" {
		if s, ok := row.Bid.(string); ok {
			currency = detectCurrency(s)
		}
	}

	return model.InstrumentCandidate{
		WKN:         row.WKN,
		Name:        row.Name,
		Issuer:      row.Issuer,
		Type:        typ,
		Strike:      strike,
		Maturity:    row.DateMaturity,
		Bid:         bid,
		Ask:         ask,
		Mid:         mid,
		SpreadPct:   spreadPct,
		SpreadAbs:   spreadAbs,
		Leverage:    leverage,
		Omega:       omega,
		ImpliedVol:  impliedVol,
		PremiumPct:  premiumPct,
		SourceTheta: theta,
		Currency:    currency,
	}
}

// detailResponse mirrors the instrument detail endpoint; keys follow the
// source's German vocabulary.
type detailResponse struct {
	Bezugsverhaeltnis interface{} `json:"bezugsverhaeltnis"`
	Currency          string      `json:"currency"`
	Restlaufzeit      interface{} `json:"restlaufzeit"`
}

// Details fetches ratio, quote currency and remaining runtime for one WKN.
func (c *Client) Details(ctx context.Context, wkn string) (*InstrumentDetails, error) {
	u := fmt.Sprintf("%s/%s", c.BaseURL, url.PathEscape(wkn))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("User-Agent", "Mozilla/5.0")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("details fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("details: status %d", resp.StatusCode)
	}

	var detail detailResponse
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("details decode: %w", err)
	}

	ratio, _ := parseNumber(detail.Bezugsverhaeltnis)
	days, _ := parseNumber(detail.Restlaufzeit)
	return &InstrumentDetails{
		Ratio:         ratio,
		Currency:      detail.Currency,
		RemainingDays: int(days),
	}, nil
}
