package reminder

import (
	"testing"
	"time"
)

func TestController_StaysOffBeforeInterval(t *testing.T) {
	start := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	c := NewController(6*time.Hour, start, false)

	for _, d := range []time.Duration{0, time.Minute, time.Hour, 6*time.Hour - time.Second} {
		if c.Tick(start.Add(d)); c.Due() {
			t.Fatalf("due after %v, want off before interval", d)
		}
	}
	if got := c.Remaining(start.Add(4 * time.Hour)); got != 2*time.Hour {
		t.Fatalf("remaining = %v, want 2h", got)
	}
}

func TestController_LatchesOnAtInterval(t *testing.T) {
	start := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	c := NewController(6*time.Hour, start, false)

	if !c.Tick(start.Add(6 * time.Hour)) {
		t.Fatal("expected transition at exactly the interval")
	}
	if !c.Due() {
		t.Fatal("due flag not set")
	}
	if c.Remaining(start.Add(7 * time.Hour)) != 0 {
		t.Fatal("remaining should be zero while due")
	}
	// A later tick is not a second transition.
	if c.Tick(start.Add(8 * time.Hour)) {
		t.Fatal("due flag latched twice")
	}
}

func TestController_PressResetsFromAnyState(t *testing.T) {
	start := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	c := NewController(6*time.Hour, start, false)

	// Press while not yet due still restarts the timer.
	pressAt := start.Add(3 * time.Hour)
	if c.Press(pressAt) {
		t.Fatal("press before due reported an active reminder")
	}
	if c.LastFed() != pressAt {
		t.Fatal("timer not restarted by early press")
	}
	c.Tick(start.Add(6 * time.Hour)) // 3h after the press
	if c.Due() {
		t.Fatal("due fired relative to the old reset point")
	}

	// Press while due clears the reminder.
	c.Tick(pressAt.Add(6 * time.Hour))
	if !c.Due() {
		t.Fatal("setup: expected due")
	}
	if !c.Press(pressAt.Add(7 * time.Hour)) {
		t.Fatal("press while due should report it was active")
	}
	if c.Due() {
		t.Fatal("press did not clear the reminder")
	}
}

func TestController_StartDue(t *testing.T) {
	start := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	c := NewController(6*time.Hour, start, true)

	if !c.Due() {
		t.Fatal("start-due controller should boot active")
	}
	if c.Remaining(start) != 0 {
		t.Fatal("remaining should be zero at boot")
	}
	c.Press(start.Add(time.Minute))
	if c.Due() {
		t.Fatal("press did not clear the boot reminder")
	}
	if got := c.Remaining(start.Add(time.Minute)); got != 6*time.Hour {
		t.Fatalf("remaining after press = %v, want full interval", got)
	}
}

func TestController_TwentyFourHourCycle(t *testing.T) {
	start := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	c := NewController(24*time.Hour, start, false)

	c.Tick(start.Add(23*time.Hour + 59*time.Minute))
	if c.Due() {
		t.Fatal("due at 23h59m")
	}
	c.Tick(start.Add(24 * time.Hour))
	if !c.Due() {
		t.Fatal("not due at 24h")
	}
	pressAt := start.Add(24*time.Hour + time.Minute)
	c.Press(pressAt)
	if c.Due() {
		t.Fatal("press at 24h01m did not clear the reminder")
	}
	if got := c.Remaining(pressAt); got != 24*time.Hour {
		t.Fatalf("remaining after reset = %v, want 24h", got)
	}
}

func TestRemainingText(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{6 * time.Hour, "6 hour(s) 0 minute(s)"},
		{90 * time.Minute, "1 hour(s) 30 minute(s)"},
		{61 * time.Second, "0 hour(s) 2 minute(s)"}, // part-minutes round up
		{30 * time.Second, "0 hour(s) 1 minute(s)"},
		{0, "0 hour(s) 0 minute(s)"},
	}
	for _, tc := range cases {
		if got := RemainingText(tc.d); got != tc.want {
			t.Errorf("RemainingText(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
