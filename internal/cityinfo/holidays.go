package cityinfo

import (
	"sort"
	"time"
)

// MaxDisplayHolidays caps the number of holidays shown for a city.
const MaxDisplayHolidays = 5

// DisplayHoliday is a holiday tagged for presentation. IsToday and
// IsUpcoming are never both set.
type DisplayHoliday struct {
	Holiday
	IsToday    bool `json:"isToday"`
	IsUpcoming bool `json:"isUpcoming"`
}

// HolidayList is the display view of a holiday set.
type HolidayList struct {
	Items []DisplayHoliday `json:"items"`
	Total int              `json:"total"`
}

type datedHoliday struct {
	Holiday
	at time.Time
}

// OrderHolidays keeps the holidays of now's calendar year, puts upcoming ones
// first (ascending) followed by past and today's ones (ascending), and returns
// at most MaxDisplayHolidays entries. Dates are read as midnight in now's
// location; records with unparseable dates are dropped.
func OrderHolidays(records []Holiday, now time.Time) []DisplayHoliday {
	return orderDated(currentYear(records, now), now)
}

// DisplayHolidays wraps OrderHolidays with the number of records that
// survived the year and date filter.
func DisplayHolidays(records []Holiday, now time.Time) HolidayList {
	dated := currentYear(records, now)
	return HolidayList{
		Items: orderDated(dated, now),
		Total: len(dated),
	}
}

// currentYear parses records and keeps those in now's year, sorted by date.
func currentYear(records []Holiday, now time.Time) []datedHoliday {
	loc := now.Location()

	dated := make([]datedHoliday, 0, len(records))
	for _, h := range records {
		at, err := time.ParseInLocation("2006-01-02", h.Date, loc)
		if err != nil {
			continue
		}
		if at.Year() != now.Year() {
			continue
		}
		dated = append(dated, datedHoliday{Holiday: h, at: at})
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].at.Before(dated[j].at)
	})
	return dated
}

func orderDated(dated []datedHoliday, now time.Time) []DisplayHoliday {
	ordered := make([]datedHoliday, 0, len(dated))
	for _, d := range dated {
		if d.at.After(now) {
			ordered = append(ordered, d)
		}
	}
	for _, d := range dated {
		if !d.at.After(now) {
			ordered = append(ordered, d)
		}
	}

	if len(ordered) > MaxDisplayHolidays {
		ordered = ordered[:MaxDisplayHolidays]
	}

	out := make([]DisplayHoliday, 0, len(ordered))
	for _, d := range ordered {
		today := sameDay(d.at, now)
		out = append(out, DisplayHoliday{
			Holiday:    d.Holiday,
			IsToday:    today,
			IsUpcoming: !today && d.at.After(now),
		})
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
