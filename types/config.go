package types

// ---- Public HAL configuration ----

type HALConfig struct {
	Devices []HALDevice `json:"devices"`
}

type HALDevice struct {
	ID     string `json:"id"`     // logical device id, e.g. "feed-led"
	Type   string `json:"type"`   // e.g. "gpio_led"
	Params any    `json:"params"` // device-specific params (typed struct or JSON map)
}

// ---- Device params ----

type ButtonParams struct {
	Pin        int    `json:"pin"`
	Pull       string `json:"pull,omitempty"` // "none","up","down"
	Invert     bool   `json:"invert,omitempty"`
	DebounceMS int    `json:"debounce_ms,omitempty"`
}

type LEDParams struct {
	Pin       int  `json:"pin"`
	Initial   bool `json:"initial,omitempty"`
	ActiveLow bool `json:"active_low,omitempty"`
}

type DisplayParams struct {
	Bus    string `json:"bus"`            // I2C bus id, e.g. "i2c0"
	Addr   uint16 `json:"addr,omitempty"` // default 0x3C
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}
