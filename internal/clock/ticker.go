package clock

import (
	"sync"
	"time"
)

// Tick is one clock update delivered by a Ticker.
type Tick struct {
	Zone    string
	Reading Reading
}

// Ticker republishes the time of one zone at a fixed cadence.
// Retune replaces the running loop, so a view never has two loops alive.
type Ticker struct {
	interval time.Duration
	onTick   func(Tick)
	now      func() time.Time

	mu     sync.Mutex
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewTicker creates an idle ticker; nothing is emitted until Retune is called.
func NewTicker(interval time.Duration, onTick func(Tick)) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{
		interval: interval,
		onTick:   onTick,
		now:      time.Now,
	}
}

// Retune stops the current loop, waits for it to exit, then starts a loop for
// zone that emits immediately and on every interval after that.
func (t *Ticker) Retune(zone string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()

	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})
	go t.run(zone, t.stopCh, t.doneCh)
}

// Stop terminates the running loop, if any. It is safe to call more than once.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Ticker) stopLocked() {
	if t.stopCh == nil {
		return
	}
	close(t.stopCh)
	<-t.doneCh
	t.stopCh = nil
	t.doneCh = nil
}

func (t *Ticker) run(zone string, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	t.emit(zone, stopCh)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.emit(zone, stopCh)
		case <-stopCh:
			return
		}
	}
}

func (t *Ticker) emit(zone string, stopCh <-chan struct{}) {
	select {
	case <-stopCh:
		return
	default:
	}
	// Each tick re-reads the wall clock, so timer drift never accumulates.
	t.onTick(Tick{Zone: zone, Reading: ComputeLocalTime(zone, t.now())})
}
