package catalog

// City is one selectable entry of the world clock.
type City struct {
	TimeZone string `json:"timezone"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

// Key returns a canonical string key for indexing this city in caches.
func (c City) Key() string {
	return c.City + ":" + c.Country
}

var cities = []City{
	{TimeZone: "Africa/Lagos", City: "Lagos", Country: "Nigeria"},
	{TimeZone: "America/New_York", City: "New York", Country: "USA"},
	{TimeZone: "Europe/London", City: "London", Country: "UK"},
	{TimeZone: "Asia/Tokyo", City: "Tokyo", Country: "Japan"},
	{TimeZone: "Australia/Sydney", City: "Sydney", Country: "Australia"},
	{TimeZone: "America/Los_Angeles", City: "Los Angeles", Country: "USA"},
	{TimeZone: "Europe/Paris", City: "Paris", Country: "France"},
	{TimeZone: "Asia/Dubai", City: "Dubai", Country: "UAE"},
	{TimeZone: "America/Chicago", City: "Chicago", Country: "USA"},
	{TimeZone: "Asia/Shanghai", City: "Shanghai", Country: "China"},
	{TimeZone: "Europe/Berlin", City: "Berlin", Country: "Germany"},
	{TimeZone: "Asia/Kolkata", City: "Mumbai", Country: "India"},
	{TimeZone: "America/Toronto", City: "Toronto", Country: "Canada"},
	{TimeZone: "Europe/Moscow", City: "Moscow", Country: "Russia"},
	{TimeZone: "Asia/Singapore", City: "Singapore", Country: "Singapore"},
	{TimeZone: "America/Sao_Paulo", City: "São Paulo", Country: "Brazil"},
	{TimeZone: "Africa/Cairo", City: "Cairo", Country: "Egypt"},
	{TimeZone: "Asia/Seoul", City: "Seoul", Country: "South Korea"},
	{TimeZone: "Europe/Rome", City: "Rome", Country: "Italy"},
	{TimeZone: "America/Mexico_City", City: "Mexico City", Country: "Mexico"},
	{TimeZone: "Asia/Bangkok", City: "Bangkok", Country: "Thailand"},
	{TimeZone: "Europe/Amsterdam", City: "Amsterdam", Country: "Netherlands"},
	{TimeZone: "Asia/Jakarta", City: "Jakarta", Country: "Indonesia"},
	{TimeZone: "Europe/Stockholm", City: "Stockholm", Country: "Sweden"},
	{TimeZone: "America/Buenos_Aires", City: "Buenos Aires", Country: "Argentina"},
}

// Cities returns a copy of the catalog in display order.
func Cities() []City {
	out := make([]City, len(cities))
	copy(out, cities)
	return out
}

// Default is the city selected when nothing else was chosen.
func Default() City {
	return cities[0]
}

// ByTimeZone finds the catalog entry for a time zone identifier.
func ByTimeZone(tz string) (City, bool) {
	for _, c := range cities {
		if c.TimeZone == tz {
			return c, true
		}
	}
	return City{}, false
}

// ByName finds the catalog entry for a city/country pair.
func ByName(city, country string) (City, bool) {
	for _, c := range cities {
		if c.City == city && c.Country == country {
			return c, true
		}
	}
	return City{}, false
}

// ByCountry returns the first catalog city of a country.
func ByCountry(country string) (City, bool) {
	for _, c := range cities {
		if c.Country == country {
			return c, true
		}
	}
	return City{}, false
}
