package hal

import (
	"tinygo.org/x/drivers"

	"feedminder-go/services/hal/internal/halcore"
	"feedminder-go/types"
)

// screen is the render surface behind the display adaptor. The MCU build
// drives a real SSD1306; the host build writes over the injected I²C bus
// so bench tests can observe the traffic. See display_rp2.go /
// display_host.go.
type screen interface {
	Init() error
	Show(line1, line2 string) error
	Clear() error
}

// displayAdaptor renders short status lines on an SSD1306 OLED. It is a
// pure output: no value/event publication, only "show" and "clear".
type displayAdaptor struct {
	id     string
	scr    screen
	params types.DisplayParams
}

func newDisplayAdaptor(id string, i2c drivers.I2C, p types.DisplayParams) *displayAdaptor {
	return &displayAdaptor{
		id:     id,
		scr:    newScreen(i2c, p),
		params: p,
	}
}

func (a *displayAdaptor) init() error { return a.scr.Init() }

func (a *displayAdaptor) ID() string { return a.id }

func (a *displayAdaptor) Capabilities() []halcore.CapInfo {
	return []halcore.CapInfo{{
		Kind: string(types.KindDisplay),
		Info: map[string]any{
			"bus":    a.params.Bus,
			"addr":   int(a.params.Addr),
			"width":  a.params.Width,
			"height": a.params.Height,
		},
	}}
}

func (a *displayAdaptor) Control(kind, method string, payload any) (any, error) {
	if kind != string(types.KindDisplay) {
		return nil, halcore.ErrUnsupported
	}
	switch method {
	case "show":
		txt, ok := displayText(payload)
		if !ok {
			return nil, halcore.ErrUnsupported
		}
		if err := a.scr.Show(txt.Line1, txt.Line2); err != nil {
			return nil, err
		}
		return types.OKReply{OK: true}, nil
	case "clear":
		if err := a.scr.Clear(); err != nil {
			return nil, err
		}
		return types.OKReply{OK: true}, nil
	default:
		return nil, halcore.ErrUnsupported
	}
}

func displayText(payload any) (types.DisplayText, bool) {
	switch p := payload.(type) {
	case types.DisplayText:
		return p, true
	case *types.DisplayText:
		return *p, true
	case string:
		return types.DisplayText{Line1: p}, true
	case map[string]any:
		return types.DisplayText{Line1: asString(p["line1"]), Line2: asString(p["line2"])}, true
	default:
		return types.DisplayText{}, false
	}
}
