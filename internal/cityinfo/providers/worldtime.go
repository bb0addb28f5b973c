package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/TOLUWALASE007/worldclock/internal/cityinfo"
)

// WorldTimeProvider describes time zones using worldtimeapi.org.
type WorldTimeProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWorldTimeProvider(client *http.Client, backoff BackoffConfig) *WorldTimeProvider {
	return &WorldTimeProvider{
		name:    "worldtimeapi",
		baseURL: "http://worldtimeapi.org/api",
		httpCfg: HTTPClientConfig{Client: client, Backoff: backoff},
		circuit: newBreaker("worldtimeapi"),
	}
}

func (p *WorldTimeProvider) Name() string {
	return p.name
}

func (p *WorldTimeProvider) Zone(ctx context.Context, zone string) (*cityinfo.ZoneInfo, error) {
	if strings.TrimSpace(zone) == "" {
		return nil, fmt.Errorf("worldtimeapi: empty zone")
	}

	var payload struct {
		Timezone     string `json:"timezone"`
		Datetime     string `json:"datetime"`
		UTCOffset    string `json:"utc_offset"`
		DayOfWeek    int    `json:"day_of_week"`
		Abbreviation string `json:"abbreviation"`
	}
	// Zone names keep their "/" separators in the path.
	u := fmt.Sprintf("%s/timezone/%s", p.baseURL, zone)
	if err := getJSON(ctx, p.httpCfg, p.circuit, u, &payload); err != nil {
		return nil, fmt.Errorf("worldtimeapi %s: %w", zone, err)
	}
	return &cityinfo.ZoneInfo{
		Timezone:     payload.Timezone,
		Datetime:     payload.Datetime,
		UTCOffset:    payload.UTCOffset,
		DayOfWeek:    payload.DayOfWeek,
		Abbreviation: payload.Abbreviation,
	}, nil
}
