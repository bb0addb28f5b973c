package providers

import (
	"context"
	"fmt"
)

const unsplashBaseURL = "https://source.unsplash.com"

var unsplashQueries = map[string]string{
	"Singapore": "Singapore Marina Bay skyline cityscape",
	"Dubai":     "Dubai Burj Khalifa skyline cityscape",
	"Tokyo":     "Tokyo skyline cityscape buildings",
}

// unsplashSearch builds a random-image URL without contacting the upstream,
// so it always yields.
type unsplashSearch struct {
	baseURL string
}

// NewUnsplashPhotoSource returns the last, always-accepting photo source.
func NewUnsplashPhotoSource() PhotoSource {
	return &unsplashSearch{baseURL: unsplashBaseURL}
}

func (s *unsplashSearch) Name() string { return "unsplash" }

func (s *unsplashSearch) Attempt(_ context.Context, q PhotoQuery) (string, error) {
	query, ok := unsplashQueries[q.City]
	if !ok {
		query = fmt.Sprintf("%s %s city landscape", q.City, q.Country)
	}
	return fmt.Sprintf("%s/800x450/?%s", s.baseURL, encodeComponent(query)), nil
}
