package cityinfo

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func holidayDates(list []DisplayHoliday) []string {
	out := make([]string, 0, len(list))
	for _, h := range list {
		out = append(out, h.Date)
	}
	return out
}

var yearEnd = []Holiday{
	{Name: "New Year's Day", Date: "2024-01-01"},
	{Name: "Christmas Day", Date: "2024-12-25"},
	{Name: "New Year's Eve", Date: "2024-12-31"},
}

func TestOrderHolidaysUpcomingFirst(t *testing.T) {
	now := time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)

	got := OrderHolidays(yearEnd, now)

	assert.Equal(t, []string{"2024-12-25", "2024-12-31", "2024-01-01"}, holidayDates(got))
	assert.True(t, got[0].IsUpcoming)
	assert.True(t, got[1].IsUpcoming)
	assert.False(t, got[2].IsUpcoming)
	assert.False(t, got[2].IsToday)
}

func TestOrderHolidaysAfterChristmas(t *testing.T) {
	now := time.Date(2024, 12, 26, 10, 0, 0, 0, time.UTC)

	got := OrderHolidays(yearEnd, now)

	assert.Equal(t, []string{"2024-12-31", "2024-01-01", "2024-12-25"}, holidayDates(got))
}

func TestOrderHolidaysTodayIsNotUpcoming(t *testing.T) {
	now := time.Date(2024, 12, 25, 9, 30, 0, 0, time.UTC)

	got := OrderHolidays(yearEnd, now)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"2024-12-31", "2024-01-01", "2024-12-25"}, holidayDates(got))
	today := got[2]
	assert.True(t, today.IsToday)
	assert.False(t, today.IsUpcoming)
	for _, h := range got {
		assert.False(t, h.IsToday && h.IsUpcoming)
	}
}

func TestOrderHolidaysFiltersAndTruncates(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []Holiday{
		{Name: "a", Date: "2024-12-01"},
		{Name: "b", Date: "2024-04-01"},
		{Name: "stale", Date: "2023-05-01"},
		{Name: "c", Date: "2024-05-01"},
		{Name: "broken", Date: "May 1st"},
		{Name: "d", Date: "2024-06-01"},
		{Name: "e", Date: "2024-01-15"},
		{Name: "f", Date: "2024-07-01"},
		{Name: "g", Date: "2024-08-01"},
		{Name: "next", Date: "2025-01-01"},
	}

	got := OrderHolidays(records, now)

	assert.Equal(t, []string{"2024-04-01", "2024-05-01", "2024-06-01", "2024-07-01", "2024-08-01"}, holidayDates(got))

	list := DisplayHolidays(records, now)
	assert.Len(t, list.Items, MaxDisplayHolidays)
	// stale, broken and next are not counted.
	assert.Equal(t, 7, list.Total)
}

func TestOrderHolidaysUsesObserverLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	// 2024-12-25 08:00 in Tokyo is still Dec 24 in UTC.
	now := time.Date(2024, 12, 25, 8, 0, 0, 0, tokyo)

	got := OrderHolidays(yearEnd, now)

	require.Len(t, got, 3)
	assert.Equal(t, "2024-12-25", got[2].Date)
	assert.True(t, got[2].IsToday)
}

func TestOrderHolidaysEmpty(t *testing.T) {
	got := OrderHolidays(nil, time.Now())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
