package hal

import (
	"feedminder-go/errcode"
	"feedminder-go/types"
)

// The config service publishes JSON-decoded maps; tests and on-device
// bootstrap publish typed structs. Both shapes are accepted here, decoded
// by hand to keep encoding/json off MCU builds.

func asHALConfig(payload any) (types.HALConfig, error) {
	switch v := payload.(type) {
	case types.HALConfig:
		return v, nil
	case *types.HALConfig:
		return *v, nil
	case map[string]any:
		return halConfigFromMap(v)
	default:
		return types.HALConfig{}, errcode.InvalidPayload
	}
}

func halConfigFromMap(m map[string]any) (types.HALConfig, error) {
	var cfg types.HALConfig
	devs, ok := m["devices"].([]any)
	if !ok {
		return cfg, errcode.InvalidPayload
	}
	for _, dv := range devs {
		dm, ok := dv.(map[string]any)
		if !ok {
			continue
		}
		d := types.HALDevice{
			ID:     asString(dm["id"]),
			Type:   asString(dm["type"]),
			Params: dm["params"],
		}
		if d.ID == "" || d.Type == "" {
			continue
		}
		cfg.Devices = append(cfg.Devices, d)
	}
	return cfg, nil
}

func buttonParams(v any) (types.ButtonParams, error) {
	switch p := v.(type) {
	case types.ButtonParams:
		return p, nil
	case *types.ButtonParams:
		return *p, nil
	case map[string]any:
		var out types.ButtonParams
		pin, ok := asInt(p["pin"])
		if !ok {
			return out, errcode.InvalidParams
		}
		out.Pin = pin
		out.Pull = asString(p["pull"])
		out.Invert = wantBool(p, "invert")
		if n, ok := asInt(p["debounce_ms"]); ok {
			out.DebounceMS = n
		}
		return out, nil
	default:
		return types.ButtonParams{}, errcode.InvalidParams
	}
}

func ledParams(v any) (types.LEDParams, error) {
	switch p := v.(type) {
	case types.LEDParams:
		return p, nil
	case *types.LEDParams:
		return *p, nil
	case map[string]any:
		var out types.LEDParams
		pin, ok := asInt(p["pin"])
		if !ok {
			return out, errcode.InvalidParams
		}
		out.Pin = pin
		out.Initial = wantBool(p, "initial")
		out.ActiveLow = wantBool(p, "active_low")
		return out, nil
	default:
		return types.LEDParams{}, errcode.InvalidParams
	}
}

func displayParams(v any) (types.DisplayParams, error) {
	var out types.DisplayParams
	switch p := v.(type) {
	case types.DisplayParams:
		out = p
	case *types.DisplayParams:
		out = *p
	case map[string]any:
		out.Bus = asString(p["bus"])
		if n, ok := asInt(p["addr"]); ok {
			out.Addr = uint16(n)
		}
		if n, ok := asInt(p["width"]); ok {
			out.Width = n
		}
		if n, ok := asInt(p["height"]); ok {
			out.Height = n
		}
	default:
		return out, errcode.InvalidParams
	}
	if out.Bus == "" {
		return out, errcode.InvalidParams
	}
	if out.Addr == 0 {
		out.Addr = 0x3C
	}
	if out.Width == 0 {
		out.Width = 128
	}
	if out.Height == 0 {
		out.Height = 32
	}
	return out, nil
}
