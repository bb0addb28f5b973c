package providers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"

	"github.com/sony/gobreaker"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/TOLUWALASE007/worldclock/internal/cityinfo"
	"github.com/TOLUWALASE007/worldclock/internal/common"
)

// RestCountriesProvider resolves country facts from restcountries.com.
type RestCountriesProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	printer *message.Printer
}

func NewRestCountriesProvider(client *http.Client, backoff BackoffConfig) *RestCountriesProvider {
	return &RestCountriesProvider{
		name:    "restcountries",
		baseURL: "https://restcountries.com/v3.1",
		httpCfg: HTTPClientConfig{Client: client, Backoff: backoff},
		circuit: newBreaker("restcountries"),
		printer: message.NewPrinter(language.English),
	}
}

func (p *RestCountriesProvider) Name() string {
	return p.name
}

type restCountry struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Capital    []string            `json:"capital"`
	Population int64               `json:"population"`
	Region     string              `json:"region"`
	Subregion  string              `json:"subregion"`
	Languages  map[string]string   `json:"languages"`
	Area       float64             `json:"area"`
	Currencies map[string]struct{} `json:"currencies"`
	Flags      struct {
		SVG string `json:"svg"`
		PNG string `json:"png"`
	} `json:"flags"`
}

// Country returns facts for an ISO 3166-1 alpha-2 code. An empty code is not
// an error and makes no request.
func (p *RestCountriesProvider) Country(ctx context.Context, code string) (*cityinfo.CountryFacts, error) {
	if code == "" {
		return nil, nil
	}

	var payload []restCountry
	u := fmt.Sprintf("%s/alpha/%s", p.baseURL, encodeComponent(code))
	if err := getJSON(ctx, p.httpCfg, p.circuit, u, &payload); err != nil {
		return nil, fmt.Errorf("restcountries %s: %w", code, err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("restcountries %s: empty response", code)
	}
	c := payload[0]

	facts := &cityinfo.CountryFacts{
		Name:            common.OrNA(c.Name.Common),
		Capital:         common.NotAvailable,
		Population:      common.NotAvailable,
		PopulationCount: c.Population,
		Region:          common.OrNA(c.Region),
		Subregion:       common.OrNA(c.Subregion),
		Languages:       common.NotAvailable,
		Area:            common.NotAvailable,
		FlagURL:         c.Flags.SVG,
		Currency:        common.NotAvailable,
	}
	if facts.FlagURL == "" {
		facts.FlagURL = c.Flags.PNG
	}
	if len(c.Capital) > 0 {
		facts.Capital = common.OrNA(c.Capital[0])
	}
	if c.Population > 0 {
		facts.Population = p.printer.Sprintf("%d", c.Population)
	}
	if len(c.Languages) > 0 {
		facts.Languages = strings.Join(sortedValues(c.Languages), ", ")
	}
	if c.Area > 0 {
		facts.Area = p.printer.Sprintf("%d km²", int64(math.Round(c.Area)))
	}
	if len(c.Currencies) > 0 {
		codes := make([]string, 0, len(c.Currencies))
		for k := range c.Currencies {
			codes = append(codes, k)
		}
		sort.Strings(codes)
		facts.Currency = codes[0]
	}
	return facts, nil
}

// Demographics is the population view derived from Country.
func (p *RestCountriesProvider) Demographics(ctx context.Context, code string) (*cityinfo.Demographics, error) {
	facts, err := p.Country(ctx, code)
	if err != nil || facts == nil {
		return nil, err
	}
	return &cityinfo.Demographics{
		CountryPopulation: facts.Population,
		Capital:           facts.Capital,
		Region:            facts.Region,
	}, nil
}

// sortedValues orders map values by key so output is stable across calls.
func sortedValues(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
