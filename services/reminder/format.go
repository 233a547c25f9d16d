package reminder

import (
	"strconv"
	"time"
)

// DueText is shown while a feeding is owed.
const DueText = "Feed the fish!"

// RemainingText renders a countdown as "N hour(s) M minute(s)", rounding
// part-minutes up so the count never reads zero while time is left.
func RemainingText(remaining time.Duration) string {
	mins := int((remaining + time.Minute - 1) / time.Minute)
	h := mins / 60
	m := mins % 60
	return strconv.Itoa(h) + " hour(s) " + strconv.Itoa(m) + " minute(s)"
}
