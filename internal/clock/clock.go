package clock

import (
	"errors"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var errEmptyZone = errors.New("empty time zone identifier")

// Reading is the wall-clock time of one instant in one time zone.
// Every field is projected from the same instant, so the 12-hour view and the
// calendar date can never disagree at midnight or noon.
type Reading struct {
	Zone     string `json:"zone"`
	Hour     int    `json:"hour"`
	Minute   int    `json:"minute"`
	Second   int    `json:"second"`
	Hour12   int    `json:"hour12"`
	Meridiem string `json:"meridiem"`
	Date     string `json:"date"`

	// Fallback is set when the requested zone was not recognized and the
	// machine's local zone was used instead.
	Fallback bool `json:"fallback"`
}

// maxWarnedZones caps how many invalid zone names are remembered for the
// log-once warning. Zone names come from clients.
const maxWarnedZones = 256

var (
	locations sync.Map // zone -> *time.Location, valid zones only

	warnedMu sync.Mutex
	warned   = make(map[string]struct{}, maxWarnedZones)

	// At most 10 invalid-zone warnings per second, whatever the names.
	zoneWarnSampler = &zerolog.BurstSampler{Burst: 10, Period: time.Second}
)

// firstWarning reports whether zone has not been warned about yet. The set is
// reset when full, so a zone may be warned about again later.
func firstWarning(zone string) bool {
	warnedMu.Lock()
	defer warnedMu.Unlock()
	if _, ok := warned[zone]; ok {
		return false
	}
	if len(warned) >= maxWarnedZones {
		warned = make(map[string]struct{}, maxWarnedZones)
	}
	warned[zone] = struct{}{}
	return true
}

func warnedCount() int {
	warnedMu.Lock()
	defer warnedMu.Unlock()
	return len(warned)
}

func loadLocation(zone string) (*time.Location, error) {
	if zone == "" {
		return nil, errEmptyZone
	}
	if loc, ok := locations.Load(zone); ok {
		return loc.(*time.Location), nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	locations.Store(zone, loc)
	return loc, nil
}

// Location returns the location for zone, or time.Local when zone is unknown.
func Location(zone string) *time.Location {
	loc, err := loadLocation(zone)
	if err != nil {
		return time.Local
	}
	return loc
}

// ComputeLocalTime converts ref into wall-clock components for zone.
// An unknown zone never fails: the local zone is used and a warning is logged
// the first time that zone is seen.
func ComputeLocalTime(zone string, ref time.Time) Reading {
	loc, err := loadLocation(zone)
	fallback := false
	if err != nil {
		if firstWarning(zone) {
			sampled := log.Sample(zoneWarnSampler)
			sampled.Warn().Err(err).Str("timezone", zone).Msg("invalid time zone, falling back to local time")
		}
		loc = time.Local
		fallback = true
	}

	t := ref.In(loc)
	r := Reading{
		Zone:     loc.String(),
		Hour:     t.Hour(),
		Minute:   t.Minute(),
		Second:   t.Second(),
		Date:     t.Format("Jan 2, 2006"),
		Fallback: fallback,
	}
	r.Hour12, r.Meridiem = to12Hour(r.Hour)
	return r
}

func to12Hour(hour int) (int, string) {
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return h, meridiem
}
