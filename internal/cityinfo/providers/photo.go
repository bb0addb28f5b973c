package providers

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/rs/zerolog/log"

	"github.com/TOLUWALASE007/worldclock/internal/common"
	"github.com/TOLUWALASE007/worldclock/internal/metrics"
)

// ErrNoPhoto is returned by a PhotoSource that found no eligible image.
var ErrNoPhoto = errors.New("no eligible photo")

// PhotoQuery is the input shared by every photo source.
type PhotoQuery struct {
	City    string
	Country string
}

// PhotoSource is one step of the photo fallback chain.
type PhotoSource interface {
	Name() string
	Attempt(ctx context.Context, q PhotoQuery) (string, error)
}

// Titles and URLs containing these are flags, seals or emblems, not photos.
var (
	thumbnailExclusions = []string{"Flag", "flag", "Coat_of_arms", "coat_of_arms"}
	mediaExclusions     = []string{"Flag", "flag", "Icon", "icon", "Coat_of_arms", "coat_of_arms", "Seal", "seal"}
)

// Cities whose generic queries tend to land on flags.
var overrideVariants = map[string][]string{
	"Singapore": {
		"Singapore skyline",
		"Singapore Marina Bay",
		"Singapore cityscape",
		"Singapore downtown",
		"Singapore city buildings",
	},
	"Dubai": {
		"Dubai skyline",
		"Dubai Burj Khalifa",
		"Dubai cityscape",
		"Dubai downtown",
		"Dubai city buildings",
	},
	"Tokyo": {
		"Tokyo skyline",
		"Tokyo cityscape",
		"Tokyo downtown",
		"Tokyo city buildings",
		"Tokyo Shibuya",
	},
}

func pageVariants(q PhotoQuery) []string {
	if v, ok := overrideVariants[q.City]; ok {
		return v
	}
	return []string{
		fmt.Sprintf("%s city, %s", q.City, q.Country),
		fmt.Sprintf("%s %s city", q.City, q.Country),
		fmt.Sprintf("%s skyline, %s", q.City, q.Country),
		fmt.Sprintf("%s downtown, %s", q.City, q.Country),
		fmt.Sprintf("%s landscape, %s", q.City, q.Country),
		fmt.Sprintf("%s, %s", q.City, q.Country),
	}
}

func searchVariants(q PhotoQuery) []string {
	if v, ok := overrideVariants[q.City]; ok {
		return v
	}
	return []string{
		fmt.Sprintf("%s %s city skyline", q.City, q.Country),
		fmt.Sprintf("%s %s city downtown", q.City, q.Country),
		fmt.Sprintf("%s %s city landscape", q.City, q.Country),
		fmt.Sprintf("%s %s city buildings", q.City, q.Country),
		fmt.Sprintf("%s %s city view", q.City, q.Country),
		fmt.Sprintf("%s city skyline", q.City),
		fmt.Sprintf("%s city downtown", q.City),
		fmt.Sprintf("%s city landscape", q.City),
	}
}

var thumbWidth = regexp.MustCompile(`/\d+px-`)

// upscaleThumbnail rewrites the first "/NNNpx-" segment of a thumbnail URL to 800px.
func upscaleThumbnail(src string) string {
	loc := thumbWidth.FindStringIndex(src)
	if loc == nil {
		return src
	}
	return src[:loc[0]] + "/800px-" + src[loc[1]:]
}

// PhotoChain tries each source in order and returns the first accepted URL.
type PhotoChain struct {
	sources      []PhotoSource
	fallbackBase string
}

// NewPhotoChain builds a chain over sources, tried strictly in order.
func NewPhotoChain(sources ...PhotoSource) *PhotoChain {
	return &PhotoChain{
		sources:      sources,
		fallbackBase: unsplashBaseURL,
	}
}

// Resolve never returns "": when every source fails, errors or panics, a URL
// derived from the city name alone is returned.
func (c *PhotoChain) Resolve(ctx context.Context, city, country string) (photo string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("city", city).Msg("photo chain panicked, using fallback")
			photo = c.fallback(city)
		}
	}()

	q := PhotoQuery{City: city, Country: country}
	for i, src := range c.sources {
		u, err := src.Attempt(ctx, q)
		if err == nil && u != "" {
			metrics.PhotoSourceHits.WithLabelValues(src.Name()).Inc()
			log.Debug().Str("city", city).Str("source", src.Name()).Str("url", u).Msg("photo resolved")
			return u
		}
		log.Debug().Err(err).Str("city", city).Str("source", src.Name()).
			Int("step", i+1).Int("of", len(c.sources)).Msg("photo source yielded nothing, trying next")
	}

	metrics.PhotoSourceHits.WithLabelValues("fallback").Inc()
	log.Info().Str("city", city).Msg("all photo sources failed, using fallback")
	return c.fallback(city)
}

func (c *PhotoChain) fallback(city string) string {
	return fmt.Sprintf("%s/800x450/?%s%%20city", c.fallbackBase, encodeComponent(city))
}

// wikipediaThumbnail accepts the page-summary thumbnail of the first variant
// whose image is not a flag or coat of arms.
type wikipediaThumbnail struct {
	wiki *WikipediaClient
}

func (s *wikipediaThumbnail) Name() string { return "wikipedia_thumbnail" }

func (s *wikipediaThumbnail) Attempt(ctx context.Context, q PhotoQuery) (string, error) {
	for _, variant := range pageVariants(q) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p, err := s.wiki.pageSummary(ctx, variant)
		if err != nil || p.Thumbnail == nil || p.Thumbnail.Source == "" {
			continue
		}
		if common.HasAny(p.Thumbnail.Source, thumbnailExclusions...) {
			continue
		}
		return upscaleThumbnail(p.Thumbnail.Source), nil
	}
	return "", ErrNoPhoto
}

// wikipediaMedia accepts the first wide enough, non-emblem item of a page's
// media list.
type wikipediaMedia struct {
	wiki     *WikipediaClient
	minWidth int
}

func (s *wikipediaMedia) Name() string { return "wikipedia_media" }

func (s *wikipediaMedia) Attempt(ctx context.Context, q PhotoQuery) (string, error) {
	for _, variant := range pageVariants(q) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p, err := s.wiki.pageMedia(ctx, variant)
		if err != nil {
			continue
		}
		for _, item := range p.Items {
			if item.Title == "" || common.HasAny(item.Title, mediaExclusions...) {
				continue
			}
			if item.Thumbnail == nil || item.Thumbnail.Width <= s.minWidth || item.Thumbnail.Source == "" {
				continue
			}
			return upscaleThumbnail(item.Thumbnail.Source), nil
		}
	}
	return "", ErrNoPhoto
}

// NewWikipediaPhotoSources returns the thumbnail and media-list sources.
func NewWikipediaPhotoSources(wiki *WikipediaClient) (PhotoSource, PhotoSource) {
	return &wikipediaThumbnail{wiki: wiki}, &wikipediaMedia{wiki: wiki, minWidth: 300}
}
