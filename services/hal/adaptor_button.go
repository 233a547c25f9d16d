package hal

import (
	"feedminder-go/services/hal/internal/halcore"
	"feedminder-go/types"
)

// buttonAdaptor exposes one debounced push button. Edge reporting is done
// by the poll worker; the adaptor only answers on-demand reads.
type buttonAdaptor struct {
	id     string
	pin    halcore.GPIOPin
	params types.ButtonParams
}

func newButtonAdaptor(id string, pin halcore.GPIOPin, p types.ButtonParams) *buttonAdaptor {
	return &buttonAdaptor{id: id, pin: pin, params: p}
}

func (a *buttonAdaptor) ID() string { return a.id }

func (a *buttonAdaptor) Capabilities() []halcore.CapInfo {
	return []halcore.CapInfo{{
		Kind: string(types.KindButton),
		Info: map[string]any{
			"pin":         a.pin.Number(),
			"pull":        a.params.Pull,
			"invert":      a.params.Invert,
			"debounce_ms": a.params.DebounceMS,
		},
	}}
}

func (a *buttonAdaptor) Control(kind, method string, _ any) (any, error) {
	if kind != string(types.KindButton) {
		return nil, halcore.ErrUnsupported
	}
	switch method {
	case "read":
		return types.ButtonValue{Pressed: a.logical()}, nil
	default:
		return nil, halcore.ErrUnsupported
	}
}

// logical applies the wiring polarity to the raw level.
func (a *buttonAdaptor) logical() bool {
	lvl := a.pin.Get()
	if a.params.Invert {
		lvl = !lvl
	}
	return lvl
}
