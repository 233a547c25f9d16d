package hal

import (
	"feedminder-go/services/hal/internal/halcore"
	"feedminder-go/types"
)

// ledAdaptor drives one LED on a GPIO output. "Logical on" means lit;
// active-low wiring is applied at the pin boundary.
type ledAdaptor struct {
	id     string
	pin    halcore.GPIOPin
	params types.LEDParams
}

func newLEDAdaptor(id string, pin halcore.GPIOPin, p types.LEDParams) *ledAdaptor {
	return &ledAdaptor{id: id, pin: pin, params: p}
}

func (a *ledAdaptor) init() error {
	level := a.params.Initial
	if a.params.ActiveLow {
		level = !level
	}
	return a.pin.ConfigureOutput(level)
}

func (a *ledAdaptor) ID() string { return a.id }

func (a *ledAdaptor) Capabilities() []halcore.CapInfo {
	return []halcore.CapInfo{{
		Kind: string(types.KindLED),
		Info: map[string]any{
			"pin":        a.pin.Number(),
			"active_low": a.params.ActiveLow,
		},
	}}
}

func (a *ledAdaptor) Control(kind, method string, payload any) (any, error) {
	if kind != string(types.KindLED) {
		return nil, halcore.ErrUnsupported
	}
	switch method {
	case "set":
		on, ok := ledLevel(payload)
		if !ok {
			return nil, halcore.ErrUnsupported
		}
		a.setLogical(on)
		return types.OKReply{OK: true}, nil
	case "toggle":
		a.setLogical(!a.getLogical())
		return types.OKReply{OK: true}, nil
	case "read":
		return types.LEDValue{Level: boolToInt(a.getLogical())}, nil
	default:
		return nil, halcore.ErrUnsupported
	}
}

func ledLevel(payload any) (bool, bool) {
	switch p := payload.(type) {
	case types.LEDSet:
		return p.Level, true
	case *types.LEDSet:
		return p.Level, true
	case bool:
		return p, true
	case map[string]any:
		return wantBool(p, "level"), true
	default:
		return false, false
	}
}

func (a *ledAdaptor) setLogical(on bool) {
	level := on
	if a.params.ActiveLow {
		level = !level
	}
	a.pin.Set(level)
}

func (a *ledAdaptor) getLogical() bool {
	level := a.pin.Get()
	if a.params.ActiveLow {
		level = !level
	}
	return level
}
