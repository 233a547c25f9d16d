// services/hal/internal/halcore/types.go
package halcore

import (
	"errors"

	"tinygo.org/x/drivers"
)

// CapInfo describes one capability's retained info document.
type CapInfo struct {
	Kind string         // capability kind
	Info map[string]any // small JSONable map
}

// Adaptor abstracts a concrete device/driver. Adaptors must not touch the
// bus or spawn goroutines; the HAL service owns all publication.
type Adaptor interface {
	ID() string
	Capabilities() []CapInfo
	// Pass-through control for device-specific methods.
	// Returns (nil, ErrUnsupported) for unknown kind/method pairs.
	Control(kind, method string, payload any) (result any, err error)
}

// ErrUnsupported for adaptor Control pass-through.
var ErrUnsupported = errors.New("unsupported")

// ---- Buses ----

// I2CBusFactory injects configured I²C instances by id.
// Uses the TinyGo drivers.I2C interface to remain compatible on MCU builds.
type I2CBusFactory interface {
	ByID(id string) (drivers.I2C, bool)
}

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Toggle()
	Number() int
}

// PinFactory supplies GPIO pins by the configured number scheme.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}
