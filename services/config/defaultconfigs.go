package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// Val: raw JSON bytes for that device
//
// Wiring for the reference build: LED on GP0, feed button on GP1 with an
// external pull-down (pressed = high), optional 128x32 OLED on I2C0.
// -----------------------------------------------------------------------------

const cfgPico = `{
  "hal": {
    "devices": [
      {
        "id": "feed-led",
        "type": "gpio_led",
        "params": {"pin": 0, "initial": false}
      },
      {
        "id": "feed-btn",
        "type": "gpio_button",
        "params": {"pin": 1, "pull": "down", "debounce_ms": 25}
      },
      {
        "id": "status-oled",
        "type": "ssd1306",
        "params": {"bus": "i2c0", "addr": 60, "width": 128, "height": 32}
      }
    ]
  },
  "reminder": {
    "feed_delay_hr": 6,
    "feed_delay_min": 0,
    "start_due": true,
    "tick_s": 60
  },
  "heartbeat": {
    "interval": 30
  }
}`

var embeddedConfigs = map[string][]byte{
	"pico": []byte(cfgPico),
}
