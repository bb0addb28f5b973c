package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/TOLUWALASE007/worldclock/internal/common"
)

// commonsSearch queries the Wikimedia Commons full-text search and links the
// first non-emblem file through Special:FilePath.
type commonsSearch struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewCommonsPhotoSource returns the Wikimedia Commons search source.
func NewCommonsPhotoSource(client *http.Client, backoff BackoffConfig) PhotoSource {
	return &commonsSearch{
		baseURL: "https://commons.wikimedia.org",
		httpCfg: HTTPClientConfig{Client: client, Backoff: backoff},
		circuit: newBreaker("commons"),
	}
}

func (s *commonsSearch) Name() string { return "wikimedia_commons" }

type commonsSearchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

func (s *commonsSearch) Attempt(ctx context.Context, q PhotoQuery) (string, error) {
	for _, term := range searchVariants(q) {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		values := url.Values{}
		values.Set("action", "query")
		values.Set("list", "search")
		values.Set("srsearch", term)
		values.Set("format", "json")
		values.Set("origin", "*")

		var payload commonsSearchResponse
		if err := getJSON(ctx, s.httpCfg, s.circuit, fmt.Sprintf("%s/w/api.php?%s", s.baseURL, values.Encode()), &payload); err != nil {
			continue
		}
		for _, result := range payload.Query.Search {
			if result.Title == "" || common.HasAny(result.Title, mediaExclusions...) {
				continue
			}
			return fmt.Sprintf("%s/wiki/Special:FilePath/%s?width=800&height=450", s.baseURL, encodeComponent(result.Title)), nil
		}
	}
	return "", ErrNoPhoto
}
