package types

// ---- Common HAL state (retained) ----

type HALState struct {
	Level  string `json:"level"`  // e.g. "idle", "ready", "stopped"
	Status string `json:"status"` // freeform short code
	TS     int64  `json:"ts_ms"`
}

// Link is the link/state reported for a capability.
type Link string

const (
	LinkUp       Link = "up"
	LinkDown     Link = "down"
	LinkDegraded Link = "degraded"
)

type CapabilityStatus struct {
	Link  Link   `json:"link"`
	TS    int64  `json:"ts_ms"`
	Error string `json:"error,omitempty"`
}

// ---- Capability kinds & info ----

type Kind string

const (
	KindButton  Kind = "button"
	KindLED     Kind = "led"
	KindDisplay Kind = "display"
)

// Info envelope each device/cap exposes (retained)
type Info struct {
	SchemaVersion int    `json:"schema_version"`
	Driver        string `json:"driver"`
	Detail        any    `json:"detail,omitempty"`
}

// ---- Button capability ----

type ButtonInfo struct {
	Pin        int    `json:"pin"`
	Pull       string `json:"pull,omitempty"`
	DebounceMS int    `json:"debounce_ms,omitempty"`
}

// ButtonValue is the debounced logical level (retained on value topic).
type ButtonValue struct {
	Pressed bool `json:"pressed"`
}

// ButtonEvent is emitted once per debounced transition (non-retained).
type ButtonEvent struct {
	Pressed bool  `json:"pressed"`
	TSms    int64 `json:"ts_ms"`
}

// ---- LED capability ----

type LEDInfo struct {
	Pin int `json:"pin"`
}

type LEDValue struct {
	Level uint8 `json:"level"` // 0 or 1
}

// Controls
type LEDSet struct {
	Level bool `json:"level"`
}

// ---- Display capability ----

type DisplayInfo struct {
	Bus    string `json:"bus"`  // e.g. "i2c0"
	Addr   uint16 `json:"addr"` // I2C address
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// DisplayText is the "show" control payload: up to two text lines.
type DisplayText struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2,omitempty"`
}

// ---- Generic replies ----

type OKReply struct {
	OK bool `json:"ok"`
}

type ErrorReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// ---- Reminder state (retained on reminder/state) ----

type ReminderState struct {
	Due         bool  `json:"due"`
	RemainingMS int64 `json:"remaining_ms"` // 0 when due
	LastFedMS   int64 `json:"last_fed_ms"`  // Unix ms of last reset
	TSms        int64 `json:"ts_ms"`
}

// FeedEvent marks a registered feeding (non-retained on reminder/event).
type FeedEvent struct {
	TSms int64 `json:"ts_ms"`
}
