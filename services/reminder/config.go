package reminder

import (
	"time"

	"feedminder-go/errcode"
)

// Config for the reminder service. On-device configs arrive as JSON maps
// with the interval split into hours and minutes, matching the constants
// the serial console reports in.
type Config struct {
	FeedDelay time.Duration // interval between feedings
	StartDue  bool          // treat boot as an overdue feeding
	Tick      time.Duration // status/state republish period
}

const defaultTick = 60 * time.Second

func asConfig(payload any) (Config, error) {
	switch v := payload.(type) {
	case Config:
		return normalise(v)
	case *Config:
		return normalise(*v)
	case map[string]any:
		return configFromMap(v)
	default:
		return Config{}, errcode.InvalidPayload
	}
}

func normalise(c Config) (Config, error) {
	if c.FeedDelay <= 0 {
		return c, errcode.InvalidParams
	}
	if c.Tick <= 0 {
		c.Tick = defaultTick
	}
	return c, nil
}

func configFromMap(m map[string]any) (Config, error) {
	hr, _ := mapInt(m, "feed_delay_hr")
	min, _ := mapInt(m, "feed_delay_min")

	c := Config{
		FeedDelay: time.Duration(hr)*time.Hour + time.Duration(min)*time.Minute,
		StartDue:  true,
		Tick:      defaultTick,
	}
	if v, ok := m["start_due"]; ok {
		b, _ := v.(bool)
		c.StartDue = b
	}
	if s, ok := mapInt(m, "tick_s"); ok && s > 0 {
		c.Tick = time.Duration(s) * time.Second
	}
	return normalise(c)
}

func mapInt(m map[string]any, key string) (int, bool) {
	switch v := m[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case uint64:
		return int(v), true
	default:
		return 0, false
	}
}
