// Package pollin samples registered GPIO inputs at a fixed period and
// reports debounced logical transitions. A transition is accepted only
// after the raw level has held steady for the configured debounce window,
// so contact bounce collapses into a single event.
package pollin

import (
	"context"
	"sync"
	"time"

	"feedminder-go/services/hal/internal/halcore"
)

// Event is one debounced logical transition.
type Event struct {
	ID      string
	Pressed bool // logical level after inversion
	TS      time.Time
}

type watch struct {
	id       string
	pin      halcore.GPIOPin
	invert   bool
	debounce time.Duration

	stable   bool // last reported logical level
	raw      bool // most recent raw sample (post-invert)
	rawSince time.Time
}

type Worker struct {
	mu     sync.Mutex
	period time.Duration
	inputs map[string]*watch
	outQ   chan Event
}

func New(period time.Duration, outBuf int) *Worker {
	if period <= 0 {
		period = 10 * time.Millisecond
	}
	if outBuf <= 0 {
		outBuf = 16
	}
	return &Worker{
		period: period,
		inputs: map[string]*watch{},
		outQ:   make(chan Event, outBuf),
	}
}

func (w *Worker) Events() <-chan Event { return w.outQ }

// Watch registers an input. The current level becomes the initial stable
// state, so registration itself never produces an event.
func (w *Worker) Watch(id string, pin halcore.GPIOPin, invert bool, debounce time.Duration) func() {
	lvl := pin.Get()
	if invert {
		lvl = !lvl
	}
	wh := &watch{
		id:       id,
		pin:      pin,
		invert:   invert,
		debounce: debounce,
		stable:   lvl,
		raw:      lvl,
		rawSince: time.Now(),
	}
	w.mu.Lock()
	w.inputs[id] = wh
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		delete(w.inputs, id)
		w.mu.Unlock()
	}
}

func (w *Worker) Start(ctx context.Context) {
	go func() {
		tick := time.NewTicker(w.period)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-tick.C:
				w.scan(now)
			}
		}
	}()
}

func (w *Worker) scan(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, wh := range w.inputs {
		raw := wh.pin.Get()
		if wh.invert {
			raw = !raw
		}
		if raw != wh.raw {
			wh.raw = raw
			wh.rawSince = now
		}
		if wh.raw != wh.stable && now.Sub(wh.rawSince) >= wh.debounce {
			wh.stable = wh.raw
			select {
			case w.outQ <- Event{ID: wh.id, Pressed: wh.stable, TS: now}:
			default:
				// drop to protect the sampler if the consumer is slow
			}
		}
	}
}
