// services/hal/hal.go
package hal

import (
	"context"
	"time"

	"feedminder-go/bus"
	"feedminder-go/errcode"
	"feedminder-go/services/hal/internal/halcore"
	"feedminder-go/services/hal/internal/platform"
	"feedminder-go/services/hal/internal/pollin"
	"feedminder-go/types"
	"feedminder-go/x/mathx"
	"feedminder-go/x/timex"
)

// Input sampling: 10 ms poll period, debounce clamped to one sample..1 s.
const (
	pollPeriod  = 10 * time.Millisecond
	maxDebounce = time.Second
)

// -----------------------------------------------------------------------------
// Entry point
// -----------------------------------------------------------------------------

// Run starts the HAL service on the platform's default pin and I²C
// factories and blocks until the context is cancelled.
func Run(ctx context.Context, conn *bus.Connection) {
	runWith(ctx, conn, platform.DefaultPinFactory(), platform.DefaultI2CFactory())
}

func runWith(ctx context.Context, conn *bus.Connection, pins halcore.PinFactory, i2cs halcore.I2CBusFactory) {
	s := &service{
		conn:       conn,
		pins:       pins,
		i2cs:       i2cs,
		devices:    map[string]devEntry{},
		capToDev:   map[capKey]string{},
		nextCapID:  map[string]int{},
		pollW:      pollin.New(pollPeriod, 32),
		pollCancel: map[string]func(){},
	}
	s.pollW.Start(ctx)
	s.loop(ctx)
}

// -----------------------------------------------------------------------------
// Types
// -----------------------------------------------------------------------------

type devEntry struct {
	adaptor halcore.Adaptor
	caps    map[string]int // kind -> numeric capability id
}

type capKey struct {
	kind string
	id   int
}

type service struct {
	conn *bus.Connection
	pins halcore.PinFactory
	i2cs halcore.I2CBusFactory

	devices map[string]devEntry

	capToDev  map[capKey]string
	nextCapID map[string]int

	pollW      *pollin.Worker
	pollCancel map[string]func() // devID -> watch cancel
}

// -----------------------------------------------------------------------------
// Main loop
// -----------------------------------------------------------------------------

func (s *service) loop(ctx context.Context) {
	cfgSub := s.conn.Subscribe(bus.T("config", "hal"))
	ctrlSub := s.conn.Subscribe(bus.T("hal", "capability", "+", "+", "control", "+"))
	defer s.conn.Unsubscribe(cfgSub)
	defer s.conn.Unsubscribe(ctrlSub)

	s.publishState("idle", "awaiting_config", nil)

	pollEv := s.pollW.Events()

	for {
		select {
		case <-ctx.Done():
			s.publishState("stopped", "context_cancelled", nil)
			for _, c := range s.pollCancel {
				c()
			}
			return

		case msg := <-cfgSub.Channel():
			cfg, err := asHALConfig(msg.Payload)
			if err != nil {
				s.publishState("error", "config_decode_failed", err)
				continue
			}
			if err := s.applyConfig(cfg); err != nil {
				s.publishState("error", "apply_config_failed", err)
				continue
			}
			s.publishState("ready", "configured", nil)

		case msg := <-ctrlSub.Channel():
			s.handleControl(msg)

		case ev := <-pollEv:
			s.handleButtonEvent(ev)
		}
	}
}

// handleControl dispatches hal/capability/<kind>/<id:int>/control/<method>.
func (s *service) handleControl(msg *bus.Message) {
	if len(msg.Topic) < 6 {
		return
	}
	kind, _ := msg.Topic[2].(string)
	idNum, ok := asInt(msg.Topic[3])
	if !ok || kind == "" {
		s.replyErr(msg, errcode.InvalidTopic)
		return
	}
	devID, ok := s.capToDev[capKey{kind: kind, id: idNum}]
	if !ok {
		s.replyErr(msg, errcode.UnknownCapability)
		return
	}
	method, _ := msg.Topic[5].(string)

	ent := s.devices[devID]
	if ent.adaptor == nil {
		s.replyErr(msg, errcode.UnknownCapability)
		return
	}
	res, err := ent.adaptor.Control(kind, method, msg.Payload)
	if err != nil {
		if err == halcore.ErrUnsupported {
			s.replyErr(msg, errcode.Unsupported)
		} else {
			s.replyErr(msg, errcode.Of(err))
		}
		return
	}
	s.conn.Reply(msg, res, false)
}

// -----------------------------------------------------------------------------
// Configuration
// -----------------------------------------------------------------------------

func (s *service) applyConfig(cfg types.HALConfig) error {
	seen := map[string]struct{}{}

	for i := range cfg.Devices {
		d := &cfg.Devices[i]
		seen[d.ID] = struct{}{}

		// Simple idempotence: a device id is configured once.
		if _, exists := s.devices[d.ID]; exists {
			continue
		}

		var ad halcore.Adaptor

		switch d.Type {
		case "gpio_button":
			p, err := buttonParams(d.Params)
			if err != nil {
				println("[hal] bad params for:", d.ID)
				continue
			}
			pin, ok := s.pins.ByNumber(p.Pin)
			if !ok {
				println("[hal] unknown pin for:", d.ID)
				continue
			}
			if err := pin.ConfigureInput(parsePull(p.Pull)); err != nil {
				continue
			}
			deb := time.Duration(mathx.Clamp(p.DebounceMS, 0, int(maxDebounce/time.Millisecond))) * time.Millisecond
			ad = newButtonAdaptor(d.ID, pin, p)
			s.pollCancel[d.ID] = s.pollW.Watch(d.ID, pin, p.Invert, deb)

		case "gpio_led":
			p, err := ledParams(d.Params)
			if err != nil {
				println("[hal] bad params for:", d.ID)
				continue
			}
			pin, ok := s.pins.ByNumber(p.Pin)
			if !ok {
				println("[hal] unknown pin for:", d.ID)
				continue
			}
			la := newLEDAdaptor(d.ID, pin, p)
			if err := la.init(); err != nil {
				continue
			}
			ad = la

		case "ssd1306":
			p, err := displayParams(d.Params)
			if err != nil {
				println("[hal] bad params for:", d.ID)
				continue
			}
			i2c, ok := s.i2cs.ByID(p.Bus)
			if !ok {
				println("[hal] unknown i2c bus for:", d.ID)
				continue
			}
			da := newDisplayAdaptor(d.ID, i2c, p)
			if err := da.init(); err != nil {
				println("[hal] display init failed for:", d.ID)
				continue
			}
			ad = da

		default:
			println("[hal] no adaptor for type:", d.Type, "id:", d.ID)
			continue
		}

		// Record adaptor and publish retained capability info/state.
		entry := devEntry{adaptor: ad, caps: map[string]int{}}

		for _, ci := range ad.Capabilities() {
			id := s.nextCapID[ci.Kind]
			s.nextCapID[ci.Kind]++

			entry.caps[ci.Kind] = id
			s.capToDev[capKey{kind: ci.Kind, id: id}] = d.ID

			s.pubRet(capTopic(ci.Kind, id, "info"), types.Info{
				SchemaVersion: 1,
				Driver:        d.Type,
				Detail:        ci.Info,
			})
			s.pubRet(capTopic(ci.Kind, id, "state"),
				types.CapabilityStatus{Link: types.LinkUp, TS: timex.NowMs()})
		}
		s.devices[d.ID] = entry

		// Buttons publish their initial debounced value right away.
		if ba, ok := ad.(*buttonAdaptor); ok {
			id := entry.caps[string(types.KindButton)]
			s.pubRet(capTopic(string(types.KindButton), id, "value"),
				types.ButtonValue{Pressed: ba.logical()})
		}
	}

	// Tidy-up: remove devices not in config.
	for devID, ent := range s.devices {
		if _, ok := seen[devID]; ok {
			continue
		}
		for kind, id := range ent.caps {
			s.pubRet(capTopic(kind, id, "info"), nil)
			s.pubRet(capTopic(kind, id, "state"),
				types.CapabilityStatus{Link: types.LinkDown, TS: timex.NowMs()})
			delete(s.capToDev, capKey{kind: kind, id: id})
		}
		if c, ok := s.pollCancel[devID]; ok {
			c()
			delete(s.pollCancel, devID)
		}
		delete(s.devices, devID)
	}

	return nil
}

// -----------------------------------------------------------------------------
// Events and helpers
// -----------------------------------------------------------------------------

func (s *service) handleButtonEvent(ev pollin.Event) {
	ent, ok := s.devices[ev.ID]
	if !ok {
		return
	}
	id, ok := ent.caps[string(types.KindButton)]
	if !ok {
		return
	}
	ts := ev.TS.UnixMilli()

	// Event (non-retained)
	s.conn.Publish(s.conn.NewMessage(
		capTopic(string(types.KindButton), id, "event"),
		types.ButtonEvent{Pressed: ev.Pressed, TSms: ts},
		false,
	))
	// Value (retained)
	s.pubRet(capTopic(string(types.KindButton), id, "value"),
		types.ButtonValue{Pressed: ev.Pressed})
}

func (s *service) publishState(level, status string, err error) {
	st := types.HALState{Level: level, Status: status, TS: timex.NowMs()}
	if err != nil {
		st.Status = st.Status + ":" + err.Error()
	}
	s.conn.Publish(s.conn.NewMessage(bus.T("hal", "state"), st, true))
}

func (s *service) replyErr(req *bus.Message, c errcode.Code) {
	if len(req.ReplyTo) == 0 {
		return
	}
	s.conn.Reply(req, types.ErrorReply{OK: false, Error: string(c)}, false)
}

func capTopic(kind string, id int, rest ...any) bus.Topic {
	base := bus.Topic{"hal", "capability", kind, id}
	return append(base, rest...)
}

func (s *service) pubRet(t bus.Topic, p any) {
	s.conn.Publish(s.conn.NewMessage(t, p, true))
}
