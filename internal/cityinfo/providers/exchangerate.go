package providers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/TOLUWALASE007/worldclock/internal/catalog"
	"github.com/TOLUWALASE007/worldclock/internal/cityinfo"
)

const quoteCurrency = "USD"

// ExchangeRateProvider reads the latest rates from exchangerate-api.com.
type ExchangeRateProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewExchangeRateProvider(client *http.Client, backoff BackoffConfig) *ExchangeRateProvider {
	return &ExchangeRateProvider{
		name:    "exchangerate",
		baseURL: "https://api.exchangerate-api.com/v4",
		httpCfg: HTTPClientConfig{Client: client, Backoff: backoff},
		circuit: newBreaker("exchangerate"),
	}
}

func (p *ExchangeRateProvider) Name() string {
	return p.name
}

// Rate returns the USD value of one unit of the currency of the country code.
// Unknown countries yield (nil, nil).
func (p *ExchangeRateProvider) Rate(ctx context.Context, code string) (*cityinfo.ExchangeRate, error) {
	currency := catalog.CurrencyCode(code)
	if currency == "" {
		return nil, nil
	}

	var payload struct {
		Base               string             `json:"base"`
		Date               string             `json:"date"`
		TimeLastUpdatedUTC string             `json:"time_last_updated_utc"`
		Rates              map[string]float64 `json:"rates"`
	}
	u := fmt.Sprintf("%s/latest/%s", p.baseURL, currency)
	if err := getJSON(ctx, p.httpCfg, p.circuit, u, &payload); err != nil {
		return nil, fmt.Errorf("exchange rate %s: %w", currency, err)
	}

	rate, ok := payload.Rates[quoteCurrency]
	if !ok {
		return nil, fmt.Errorf("exchange rate %s: no %s quote", currency, quoteCurrency)
	}
	asOf := payload.TimeLastUpdatedUTC
	if asOf == "" {
		asOf = payload.Date
	}
	return &cityinfo.ExchangeRate{
		Base:  currency,
		Quote: quoteCurrency,
		Rate:  rate,
		AsOf:  asOf,
	}, nil
}
