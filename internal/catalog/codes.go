package catalog

// countryCodes maps the display country names used by the catalog to
// ISO 3166-1 alpha-2 codes.
var countryCodes = map[string]string{
	"Nigeria":     "NG",
	"USA":         "US",
	"UK":          "GB",
	"Japan":       "JP",
	"Australia":   "AU",
	"France":      "FR",
	"UAE":         "AE",
	"China":       "CN",
	"Germany":     "DE",
	"India":       "IN",
	"Canada":      "CA",
	"Russia":      "RU",
	"Singapore":   "SG",
	"Brazil":      "BR",
	"Egypt":       "EG",
	"South Korea": "KR",
	"Italy":       "IT",
	"Mexico":      "MX",
	"Thailand":    "TH",
	"Netherlands": "NL",
	"Indonesia":   "ID",
	"Sweden":      "SE",
	"Argentina":   "AR",
}

// currencies maps ISO 3166-1 alpha-2 codes to ISO 4217 currency codes.
var currencies = map[string]string{
	"NG": "NGN",
	"US": "USD",
	"GB": "GBP",
	"JP": "JPY",
	"AU": "AUD",
	"FR": "EUR",
	"AE": "AED",
	"CN": "CNY",
	"DE": "EUR",
	"IN": "INR",
	"CA": "CAD",
	"RU": "RUB",
	"SG": "SGD",
	"BR": "BRL",
	"EG": "EGP",
	"KR": "KRW",
	"IT": "EUR",
	"MX": "MXN",
	"TH": "THB",
	"NL": "EUR",
	"ID": "IDR",
	"SE": "SEK",
	"AR": "ARS",
}

// CountryCode returns the ISO 3166-1 alpha-2 code for a display country name,
// or "" when the name is not mapped.
func CountryCode(name string) string {
	return countryCodes[name]
}

// CurrencyCode returns the ISO 4217 currency for an alpha-2 country code,
// or "" when unknown.
func CurrencyCode(countryCode string) string {
	return currencies[countryCode]
}
