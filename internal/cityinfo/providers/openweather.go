package providers

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/TOLUWALASE007/worldclock/internal/cityinfo"
)

// OpenWeatherProvider reads current conditions from OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	randInt func(n int) int
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, backoff BackoffConfig) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		httpCfg: HTTPClientConfig{Client: client, Backoff: backoff},
		circuit: newBreaker("openweather"),
		randInt: rand.Intn,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Weather returns metric readings for "{city},{country}". Without an API key a
// synthetic reading is returned and no request is made.
func (p *OpenWeatherProvider) Weather(ctx context.Context, city, country string) (*cityinfo.Weather, error) {
	if p.apiKey == "" {
		return p.synthetic(), nil
	}

	values := url.Values{}
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	q := city
	if country != "" {
		q = fmt.Sprintf("%s,%s", city, country)
	}
	values.Set("q", q)

	var payload struct {
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	}
	if err := getJSON(ctx, p.httpCfg, p.circuit, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), &payload); err != nil {
		return nil, fmt.Errorf("openweather %s: %w", q, err)
	}

	w := &cityinfo.Weather{
		Temperature: int(math.Round(payload.Main.Temp)),
		FeelsLike:   int(math.Round(payload.Main.FeelsLike)),
		Humidity:    int(math.Round(payload.Main.Humidity)),
	}
	if len(payload.Weather) > 0 {
		w.Description = payload.Weather[0].Description
		w.Icon = payload.Weather[0].Icon
	}
	return w, nil
}

func (p *OpenWeatherProvider) synthetic() *cityinfo.Weather {
	return &cityinfo.Weather{
		Temperature: p.randInt(30) + 10,
		FeelsLike:   p.randInt(30) + 10,
		Humidity:    60,
		Description: "Weather data unavailable",
		Icon:        "01d",
		Synthetic:   true,
	}
}
