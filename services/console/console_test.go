package console

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"feedminder-go/bus"
	"feedminder-go/types"
)

// syncBuffer is a concurrency-safe line sink for the writer under test.
type syncBuffer struct {
	mu    sync.Mutex
	lines []string
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	b.lines = append(b.lines, strings.TrimRight(string(p), "\r\n"))
	b.mu.Unlock()
	return len(p), nil
}

func (b *syncBuffer) snapshot() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.lines...)
}

func (b *syncBuffer) waitFor(t *testing.T, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, l := range b.snapshot() {
			if l == want {
				return
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("line %q never printed; got %v", want, b.snapshot())
}

func startConsole(t *testing.T) (*bus.Connection, *syncBuffer) {
	t.Helper()
	b := bus.NewBus(16)
	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	go runWith(ctx, b.NewConnection("console"), out)
	t.Cleanup(cancel)
	return b.NewConnection("test-pub"), out
}

func TestConsole_PrintsCountdown(t *testing.T) {
	pub, out := startConsole(t)

	pub.Publish(pub.NewMessage(bus.T("reminder", "state"), types.ReminderState{
		Due:         false,
		RemainingMS: (4*time.Hour + 30*time.Minute).Milliseconds(),
	}, true))

	out.waitFor(t, "4 hour(s) 30 minute(s) until next feeding")
}

func TestConsole_PrintsDueAndFed(t *testing.T) {
	pub, out := startConsole(t)

	pub.Publish(pub.NewMessage(bus.T("reminder", "state"),
		types.ReminderState{Due: true}, true))
	out.waitFor(t, "Feed the fish!")

	pub.Publish(pub.NewMessage(bus.T("reminder", "event"),
		types.FeedEvent{TSms: time.Now().UnixMilli()}, false))
	out.waitFor(t, "The fish have been fed")
}

func TestConsole_SuppressesRepeatedLines(t *testing.T) {
	pub, out := startConsole(t)

	st := types.ReminderState{RemainingMS: time.Hour.Milliseconds()}
	for i := 0; i < 3; i++ {
		st.TSms = int64(i) // changes the payload, not the line
		pub.Publish(pub.NewMessage(bus.T("reminder", "state"), st, true))
	}
	out.waitFor(t, "1 hour(s) 0 minute(s) until next feeding")

	time.Sleep(100 * time.Millisecond)
	count := 0
	for _, l := range out.snapshot() {
		if strings.HasSuffix(l, "until next feeding") {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("countdown printed %d times, want once", count)
	}
}
