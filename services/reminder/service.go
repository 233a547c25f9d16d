// services/reminder: owns the feed timer and drives the reminder LED and
// status display from debounced button presses.
package reminder

import (
	"context"
	"time"

	"feedminder-go/bus"
	"feedminder-go/types"
	"feedminder-go/x/timex"
)

// Single-fixture device: the first configured LED and display are ours.
const (
	ledCap     = 0
	displayCap = 0
)

// Run starts the reminder service and blocks until the context is
// cancelled.
func Run(ctx context.Context, conn *bus.Connection) {
	s := &service{conn: conn}
	s.loop(ctx)
}

type service struct {
	conn *bus.Connection
	cfg  Config
	ctrl *Controller
}

func (s *service) loop(ctx context.Context) {
	cfgSub := s.conn.Subscribe(bus.T("config", "reminder"))
	btnSub := s.conn.Subscribe(bus.T("hal", "capability", "button", "+", "event"))
	defer s.conn.Unsubscribe(cfgSub)
	defer s.conn.Unsubscribe(btnSub)

	// Armed once configured: dueTimer fires when the reminder becomes due,
	// statusTick republishes the countdown.
	dueTimer := time.NewTimer(time.Hour)
	dueTimer.Stop()
	timex.DrainTimer(dueTimer)
	statusTick := time.NewTicker(time.Hour)
	statusTick.Stop()
	defer dueTimer.Stop()
	defer statusTick.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case msg := <-cfgSub.Channel():
			cfg, err := asConfig(msg.Payload)
			if err != nil {
				println("[reminder] bad config:", err.Error())
				continue
			}
			s.cfg = cfg
			s.ctrl = NewController(cfg.FeedDelay, time.Now(), cfg.StartDue)
			statusTick.Reset(cfg.Tick)
			s.sync(dueTimer)

		case msg := <-btnSub.Channel():
			if s.ctrl == nil {
				continue
			}
			ev, ok := msg.Payload.(types.ButtonEvent)
			if !ok || !ev.Pressed {
				continue
			}
			s.feed(dueTimer)

		case <-dueTimer.C:
			if s.ctrl == nil {
				continue
			}
			s.sync(dueTimer)

		case <-statusTick.C:
			if s.ctrl == nil {
				continue
			}
			s.sync(dueTimer)
		}
	}
}

// feed registers a button press: timer reset, LED off, feed event out.
func (s *service) feed(dueTimer *time.Timer) {
	now := time.Now()
	s.ctrl.Press(now)
	println("[reminder] feeding registered")

	s.conn.Publish(s.conn.NewMessage(bus.T("reminder", "event"),
		types.FeedEvent{TSms: now.UnixMilli()}, false))
	s.sync(dueTimer)
}

// sync makes the outputs agree with the controller: evaluates the due
// flag, drives the LED and display, publishes state, and re-arms the due
// timer for the next transition.
func (s *service) sync(dueTimer *time.Timer) {
	now := time.Now()
	s.ctrl.Tick(now)

	s.setLED(s.ctrl.Due())
	s.showStatus(now)
	s.publishState(now)

	if s.ctrl.Due() {
		dueTimer.Stop()
		timex.DrainTimer(dueTimer)
	} else {
		timex.ResetTimer(dueTimer, s.ctrl.Remaining(now))
	}
}

func (s *service) setLED(on bool) {
	s.conn.Publish(s.conn.NewMessage(
		bus.T("hal", "capability", "led", ledCap, "control", "set"),
		types.LEDSet{Level: on}, false))
}

func (s *service) showStatus(now time.Time) {
	var txt types.DisplayText
	if s.ctrl.Due() {
		txt.Line1 = DueText
	} else {
		txt.Line1 = RemainingText(s.ctrl.Remaining(now))
		txt.Line2 = "until next feeding"
	}
	s.conn.Publish(s.conn.NewMessage(
		bus.T("hal", "capability", "display", displayCap, "control", "show"),
		txt, false))
}

func (s *service) publishState(now time.Time) {
	s.conn.Publish(s.conn.NewMessage(bus.T("reminder", "state"), types.ReminderState{
		Due:         s.ctrl.Due(),
		RemainingMS: s.ctrl.Remaining(now).Milliseconds(),
		LastFedMS:   s.ctrl.LastFed().UnixMilli(),
		TSms:        now.UnixMilli(),
	}, true))
}
