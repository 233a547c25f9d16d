package reminder

import "time"

// Controller is the feed-reminder state machine: a last-feed instant, a
// fixed interval and a due flag. The flag latches on once the elapsed time
// reaches the interval and clears only through Press. It holds no clock of
// its own; callers pass the current time in.
type Controller struct {
	interval time.Duration
	lastFed  time.Time
	due      bool
}

// NewController starts the timer at now. With startDue the fish count as
// unfed: the reminder is immediately active, as if a full interval had
// already passed.
func NewController(interval time.Duration, now time.Time, startDue bool) *Controller {
	c := &Controller{interval: interval, lastFed: now}
	if startDue {
		c.lastFed = now.Add(-interval)
		c.due = true
	}
	return c
}

// Tick re-evaluates the due flag against now. It reports whether the flag
// just latched on.
func (c *Controller) Tick(now time.Time) bool {
	if !c.due && now.Sub(c.lastFed) >= c.interval {
		c.due = true
		return true
	}
	return false
}

// Press registers a feeding: the timer restarts from now and the reminder
// clears, whatever state it was in. It reports whether the reminder had
// been active.
func (c *Controller) Press(now time.Time) bool {
	wasDue := c.due
	c.due = false
	c.lastFed = now
	return wasDue
}

func (c *Controller) Due() bool { return c.due }

func (c *Controller) LastFed() time.Time { return c.lastFed }

func (c *Controller) Interval() time.Duration { return c.interval }

// Remaining is the time left until the reminder activates, zero when it
// already has.
func (c *Controller) Remaining(now time.Time) time.Duration {
	if c.due {
		return 0
	}
	rem := c.interval - now.Sub(c.lastFed)
	if rem < 0 {
		return 0
	}
	return rem
}
