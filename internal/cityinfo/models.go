package cityinfo

import (
	"time"

	"github.com/TOLUWALASE007/worldclock/internal/catalog"
	"github.com/TOLUWALASE007/worldclock/internal/clock"
)

// Location identifies the city a bundle is resolved for.
// City/Country must be provided.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Key returns a canonical string key for indexing this location in caches.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// LocalNow returns now in the location's zone: the catalog city's zone, else
// the zone of the first catalog city of the country, else now unchanged.
func LocalNow(now time.Time, loc Location) time.Time {
	if c, ok := catalog.ByName(loc.City, loc.Country); ok {
		return now.In(clock.Location(c.TimeZone))
	}
	if c, ok := catalog.ByCountry(loc.Country); ok {
		return now.In(clock.Location(c.TimeZone))
	}
	return now
}

// CountryFacts is the country panel of a bundle.
type CountryFacts struct {
	Name            string `json:"name"`
	Capital         string `json:"capital"`
	Population      string `json:"population"`
	PopulationCount int64  `json:"populationCount"`
	Region          string `json:"region"`
	Subregion       string `json:"subregion"`
	Languages       string `json:"languages"`
	Area            string `json:"area"`
	FlagURL         string `json:"flag"`
	Currency        string `json:"currency"`
}

// ExchangeRate is the value of one unit of Base in Quote.
type ExchangeRate struct {
	Base  string  `json:"base"`
	Quote string  `json:"quote"`
	Rate  float64 `json:"rate"`
	AsOf  string  `json:"asOf"`
}

// Summary is the encyclopedia excerpt for a city.
type Summary struct {
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail string `json:"thumbnail,omitempty"`
	URL       string `json:"url,omitempty"`
}

// Demographics is the country-level population view shown next to a city.
type Demographics struct {
	CountryPopulation string `json:"countryPopulation"`
	Capital           string `json:"capital"`
	Region            string `json:"region"`
}

// Holiday is one public holiday. Date is an ISO-8601 calendar date.
type Holiday struct {
	Name      string `json:"name"`
	LocalName string `json:"localName"`
	Date      string `json:"date"`
}

// Bundle is every auxiliary fact resolved for one city selection.
// Nil sections failed or were skipped; Photo is never empty.
type Bundle struct {
	RequestID    string        `json:"requestId"`
	Location     Location      `json:"location"`
	CountryCode  string        `json:"countryCode"`
	Photo        string        `json:"photo"`
	CountryInfo  *CountryFacts `json:"countryInfo"`
	ExchangeRate *ExchangeRate `json:"exchangeRate"`
	Summary      *Summary      `json:"summary"`
	Demographics *Demographics `json:"demographics"`
	Holidays     []Holiday     `json:"holidays"`
	ResolvedAt   time.Time     `json:"resolvedAt"` // always UTC
}

// Weather is the current-conditions panel. Synthetic readings are produced
// when no weather API key is configured.
type Weather struct {
	Temperature int    `json:"temperature"`
	FeelsLike   int    `json:"feelsLike"`
	Humidity    int    `json:"humidity"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Synthetic   bool   `json:"synthetic"`
}

// ZoneInfo is the remote description of a time zone.
type ZoneInfo struct {
	Timezone     string `json:"timezone"`
	Datetime     string `json:"datetime"`
	UTCOffset    string `json:"utcOffset"`
	DayOfWeek    int    `json:"dayOfWeek"`
	Abbreviation string `json:"abbreviation"`
}
