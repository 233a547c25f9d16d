// services/console: mirrors reminder state to the serial console as
// human-readable lines.
package console

import (
	"context"
	"io"
	"time"

	"feedminder-go/bus"
	"feedminder-go/services/reminder"
	"feedminder-go/types"
)

const fedText = "The fish have been fed"

// Run starts the console service on the platform's default writer and
// blocks until the context is cancelled.
func Run(ctx context.Context, conn *bus.Connection) {
	runWith(ctx, conn, defaultWriter())
}

func runWith(ctx context.Context, conn *bus.Connection, out io.Writer) {
	stateSub := conn.Subscribe(bus.T("reminder", "state"))
	evSub := conn.Subscribe(bus.T("reminder", "event"))
	defer conn.Unsubscribe(stateSub)
	defer conn.Unsubscribe(evSub)

	var lastLine string

	for {
		select {
		case <-ctx.Done():
			return

		case msg := <-stateSub.Channel():
			st, ok := msg.Payload.(types.ReminderState)
			if !ok {
				continue
			}
			line := stateLine(st)
			// State republishes on every output sync; only countdown
			// changes are worth a line.
			if line == lastLine {
				continue
			}
			lastLine = line
			writeLine(out, line)

		case msg := <-evSub.Channel():
			if _, ok := msg.Payload.(types.FeedEvent); !ok {
				continue
			}
			lastLine = ""
			writeLine(out, fedText)
		}
	}
}

func stateLine(st types.ReminderState) string {
	if st.Due {
		return reminder.DueText
	}
	rem := time.Duration(st.RemainingMS) * time.Millisecond
	return reminder.RemainingText(rem) + " until next feeding"
}

func writeLine(out io.Writer, s string) {
	_, _ = out.Write([]byte(s + "\r\n"))
}
