package providers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/TOLUWALASE007/worldclock/internal/cityinfo"
)

// WikipediaClient talks to the Wikipedia REST API. It backs the encyclopedia
// excerpt and the first two photo sources.
type WikipediaClient struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWikipediaClient(client *http.Client, backoff BackoffConfig) *WikipediaClient {
	return &WikipediaClient{
		name:    "wikipedia",
		baseURL: "https://en.wikipedia.org/api/rest_v1",
		httpCfg: HTTPClientConfig{Client: client, Backoff: backoff},
		circuit: newBreaker("wikipedia"),
	}
}

func (w *WikipediaClient) Name() string {
	return w.name
}

type wikiThumbnail struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type pageSummary struct {
	Title       string         `json:"title"`
	Extract     string         `json:"extract"`
	Thumbnail   *wikiThumbnail `json:"thumbnail"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

type pageMedia struct {
	Items []struct {
		Title     string         `json:"title"`
		Type      string         `json:"type"`
		Thumbnail *wikiThumbnail `json:"thumbnail"`
	} `json:"items"`
}

func (w *WikipediaClient) pageSummary(ctx context.Context, title string) (pageSummary, error) {
	var payload pageSummary
	u := fmt.Sprintf("%s/page/summary/%s", w.baseURL, encodeComponent(title))
	err := getJSON(ctx, w.httpCfg, w.circuit, u, &payload)
	return payload, err
}

func (w *WikipediaClient) pageMedia(ctx context.Context, title string) (pageMedia, error) {
	var payload pageMedia
	u := fmt.Sprintf("%s/page/media/%s", w.baseURL, encodeComponent(title))
	err := getJSON(ctx, w.httpCfg, w.circuit, u, &payload)
	return payload, err
}

// Summary returns the encyclopedia excerpt for "{city}, {country}".
func (w *WikipediaClient) Summary(ctx context.Context, city, country string) (*cityinfo.Summary, error) {
	p, err := w.pageSummary(ctx, fmt.Sprintf("%s, %s", city, country))
	if err != nil {
		return nil, fmt.Errorf("wikipedia summary: %w", err)
	}

	s := &cityinfo.Summary{
		Title:   p.Title,
		Extract: p.Extract,
		URL:     p.ContentURLs.Desktop.Page,
	}
	if p.Thumbnail != nil {
		s.Thumbnail = p.Thumbnail.Source
	}
	return s, nil
}
