package catalog

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHas25LoadableZones(t *testing.T) {
	list := Cities()
	require.Len(t, list, 25)

	seen := make(map[string]bool)
	for _, c := range list {
		_, err := time.LoadLocation(c.TimeZone)
		assert.NoError(t, err, c.TimeZone)
		assert.False(t, seen[c.TimeZone], "duplicate zone %s", c.TimeZone)
		seen[c.TimeZone] = true
		assert.NotEmpty(t, CountryCode(c.Country), "country %s has no code", c.Country)
		assert.NotEmpty(t, CurrencyCode(CountryCode(c.Country)), "country %s has no currency", c.Country)
	}
}

func TestCountryCode(t *testing.T) {
	assert.Equal(t, "US", CountryCode("USA"))
	assert.Equal(t, "GB", CountryCode("UK"))
	assert.Equal(t, "KR", CountryCode("South Korea"))
	assert.Equal(t, "", CountryCode("Atlantis"))
	assert.Equal(t, "", CountryCode("usa"))
}

func TestLookups(t *testing.T) {
	c, ok := ByTimeZone("Asia/Kolkata")
	require.True(t, ok)
	assert.Equal(t, "Mumbai", c.City)

	_, ok = ByTimeZone("Not/AZone")
	assert.False(t, ok)

	c, ok = ByName("Paris", "France")
	require.True(t, ok)
	assert.Equal(t, "Europe/Paris", c.TimeZone)

	c, ok = ByCountry("USA")
	require.True(t, ok)
	assert.Equal(t, "New York", c.City)

	_, ok = ByCountry("Atlantis")
	assert.False(t, ok)

	assert.Equal(t, "Lagos", Default().City)
}

func TestCitiesReturnsCopy(t *testing.T) {
	list := Cities()
	list[0].City = "Changed"
	assert.Equal(t, "Lagos", Cities()[0].City)
}
