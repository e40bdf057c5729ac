package market

import (
	"context"
	"fmt"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

// CompanyProfile is live company metadata for a ticker.
type CompanyProfile struct {
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name"`
	Exchange  string  `json:"exchange"`
	Currency  string  `json:"currency"`
	Country   string  `json:"country"`
	Industry  string  `json:"industry"`
	MarketCap float64 `json:"market_cap"`
	WebURL    string  `json:"web_url"`
	Logo      string  `json:"logo"`
	IPO       string  `json:"ipo"`
}

// FinnHubClient enriches the static coverage universe with live profiles.
type FinnHubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnHubClient(apiKey string) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnHubClient{client: client}
}

func (c *FinnHubClient) Profile(ticker string) (*CompanyProfile, error) {
	res, _, err := c.client.CompanyProfile2(context.Background()).Symbol(ticker).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub profile: %w", err)
	}

	p := &CompanyProfile{Ticker: ticker}

	if res.Name != nil {
		p.Name = *res.Name
	}
	if res.Exchange != nil {
		p.Exchange = *res.Exchange
	}
	if res.Currency != nil {
		p.Currency = *res.Currency
	}
	if res.Country != nil {
		p.Country = *res.Country
	}
	if res.FinnhubIndustry != nil {
		p.Industry = *res.FinnhubIndustry
	}
	if res.MarketCapitalization != nil {
		p.MarketCap = float64(*res.MarketCapitalization)
	}
	if res.Weburl != nil {
		p.WebURL = *res.Weburl
	}
	if res.Logo != nil {
		p.Logo = *res.Logo
	}
	if res.Ipo != nil {
		p.IPO = *res.Ipo
	}

	if p.Name == "" {
		return nil, fmt.Errorf("finnhub profile: no data for %s", ticker)
	}

	return p, nil
}
