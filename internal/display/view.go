package display

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/TOLUWALASE007/worldclock/internal/catalog"
	"github.com/TOLUWALASE007/worldclock/internal/cityinfo"
	"github.com/TOLUWALASE007/worldclock/internal/clock"
)

// EventKind names what an Event carries.
type EventKind string

const (
	EventAnalog      EventKind = "analog"
	EventDigital     EventKind = "digital"
	EventBundle      EventKind = "bundle"
	EventUnavailable EventKind = "unavailable"
)

// UnavailableMessage is shown when a city bundle could not be resolved.
const UnavailableMessage = "City information unavailable"

// Event is one update published by a View.
type Event struct {
	Kind       EventKind `json:"kind"`
	Generation uint64    `json:"generation,omitempty"`
	Zone       string    `json:"zone,omitempty"`

	Analog   *clock.AnalogFace     `json:"analog,omitempty"`
	Digital  *clock.DigitalDisplay `json:"digital,omitempty"`
	City     *catalog.City         `json:"city,omitempty"`
	Bundle   *cityinfo.Bundle      `json:"bundle,omitempty"`
	Holidays *cityinfo.HolidayList `json:"holidays,omitempty"`
	Message  string                `json:"message,omitempty"`
}

// Resolver resolves the bundle of a city.
type Resolver interface {
	Resolve(ctx context.Context, loc cityinfo.Location) (*cityinfo.Bundle, error)
}

// View is one subscriber's display: an analog and a digital clock following
// the selected city, plus that city's bundle. Only the most recent selection
// is ever published.
type View struct {
	resolver Resolver
	analog   *clock.Ticker
	digital  *clock.Ticker
	events   chan Event
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	selectMu sync.Mutex
	// publishMu makes the generation check and the bundle send one step.
	publishMu sync.Mutex

	mu      sync.Mutex
	gen     uint64
	pending context.CancelFunc
	closed  bool
	wg      sync.WaitGroup
}

// NewView creates an idle view; call Select to start it. interval is the
// clock cadence (1s when <= 0).
func NewView(ctx context.Context, resolver Resolver, interval time.Duration) *View {
	ctx, cancel := context.WithCancel(ctx)
	v := &View{
		resolver: resolver,
		events:   make(chan Event, 16),
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}
	v.analog = clock.NewTicker(interval, func(t clock.Tick) {
		face := clock.Analog(t.Reading)
		v.publishTick(Event{Kind: EventAnalog, Zone: t.Zone, Analog: &face})
	})
	v.digital = clock.NewTicker(interval, func(t clock.Tick) {
		d := clock.Digital(t.Reading)
		v.publishTick(Event{Kind: EventDigital, Zone: t.Zone, Digital: &d})
	})
	return v
}

// Events is closed by Close.
func (v *View) Events() <-chan Event {
	return v.events
}

// Select switches the view to city: both clocks are retuned before Select
// returns and a new bundle resolution starts. A resolution for an earlier
// selection that completes later is dropped.
func (v *View) Select(city catalog.City) {
	v.selectMu.Lock()
	defer v.selectMu.Unlock()

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	// Release a publisher blocked on a full channel before waiting on it.
	if v.pending != nil {
		v.pending()
		v.pending = nil
	}
	v.mu.Unlock()

	v.publishMu.Lock()
	v.mu.Lock()
	v.gen++
	gen := v.gen
	ctx, cancel := context.WithCancel(v.ctx)
	v.pending = cancel
	v.wg.Add(1)
	v.mu.Unlock()
	v.publishMu.Unlock()

	v.analog.Retune(city.TimeZone)
	v.digital.Retune(city.TimeZone)

	go v.load(ctx, gen, city)
}

// Close stops both clocks, abandons any pending resolution and closes the
// event channel. It is safe to call more than once.
func (v *View) Close() {
	v.selectMu.Lock()
	defer v.selectMu.Unlock()

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.mu.Unlock()

	v.analog.Stop()
	v.digital.Stop()
	v.cancel()
	v.wg.Wait()
	close(v.events)
}

func (v *View) current(gen uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.closed && v.gen == gen
}

// publishTick drops the tick when the consumer lags; the next one supersedes it.
// Ticks carry their zone rather than a generation.
func (v *View) publishTick(ev Event) {
	select {
	case v.events <- ev:
	default:
	}
}

func (v *View) load(ctx context.Context, gen uint64, city catalog.City) {
	defer v.wg.Done()

	b, err := v.resolver.Resolve(ctx, cityinfo.Location{City: city.City, Country: city.Country})

	v.publishMu.Lock()
	defer v.publishMu.Unlock()
	// A cancelled load was superseded even if the generation has not moved yet.
	if ctx.Err() != nil || !v.current(gen) {
		log.Debug().Str("city", city.City).Uint64("generation", gen).Msg("dropping stale city bundle")
		return
	}

	ev := Event{Kind: EventBundle, Generation: gen, Zone: city.TimeZone, City: &city}
	if err != nil {
		log.Warn().Err(err).Str("city", city.City).Msg("city bundle unavailable")
		ev.Kind = EventUnavailable
		ev.Message = UnavailableMessage
	} else {
		holidays := cityinfo.DisplayHolidays(b.Holidays, cityinfo.LocalNow(v.now(), cityinfo.Location{City: city.City, Country: city.Country}))
		ev.Bundle = b
		ev.Holidays = &holidays
	}

	select {
	case v.events <- ev:
	case <-ctx.Done():
	}
}
