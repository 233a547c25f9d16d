// config/config_test.go
package config

import (
	"context"
	"testing"
	"time"

	"feedminder-go/bus"
)

func TestConfig_PublishEmbedded_RetainedPerSection(t *testing.T) {
	b := bus.NewBus(16)
	conn := b.NewConnection("test-config")
	svc := NewConfigService()

	ctx := context.WithValue(context.Background(), CtxDeviceKey, "pico")
	svc.Start(ctx, conn)

	sub := conn.Subscribe(bus.T(configPrefix, "#"))

	got := map[string]any{}
	wantSections := []string{"hal", "reminder", "heartbeat"}

	deadline := time.Now().Add(600 * time.Millisecond)
	for len(got) < len(wantSections) && time.Now().Before(deadline) {
		select {
		case m := <-sub.Channel():
			if len(m.Topic) < 2 {
				t.Fatalf("unexpected topic length: %#v", m.Topic)
			}
			key, ok := m.Topic[1].(string)
			if !ok {
				t.Fatalf("topic[1] type %T, want string", m.Topic[1])
			}
			got[key] = m.Payload
		case <-time.After(10 * time.Millisecond):
		}
	}
	for _, s := range wantSections {
		if _, ok := got[s]; !ok {
			t.Fatalf("missing config section %q (got %v)", s, got)
		}
	}

	// The reminder section decodes to numbers the reminder service accepts.
	rem, ok := got["reminder"].(map[string]any)
	if !ok {
		t.Fatalf("reminder payload type = %T, want map[string]any", got["reminder"])
	}
	if v, ok := rem["start_due"].(bool); !ok || !v {
		t.Fatalf("reminder.start_due = %#v, want true", rem["start_due"])
	}

	// The hal section carries the device list with string-keyed params.
	hal, ok := got["hal"].(map[string]any)
	if !ok {
		t.Fatalf("hal payload type = %T, want map[string]any", got["hal"])
	}
	devs, ok := hal["devices"].([]any)
	if !ok || len(devs) != 3 {
		t.Fatalf("hal.devices = %#v, want 3 entries", hal["devices"])
	}
	first, ok := devs[0].(map[string]any)
	if !ok {
		t.Fatalf("device entry type = %T", devs[0])
	}
	if id, _ := first["id"].(string); id != "feed-led" {
		t.Fatalf("first device id = %#v, want feed-led", first["id"])
	}
}

func TestConfig_PublishConfig_MissingDevice(t *testing.T) {
	b := bus.NewBus(4)
	conn := b.NewConnection("test-missing-device")
	svc := NewConfigService()

	// No device ID in context
	if err := svc.publishConfig(context.Background(), conn); err == nil {
		t.Fatal("expected error for missing device ID, got nil")
	}
}

func TestConfig_PublishConfig_NoConfigFound(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) { return nil, false }
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	b := bus.NewBus(4)
	conn := b.NewConnection("test-no-config")
	svc := NewConfigService()

	ctx := context.WithValue(context.Background(), CtxDeviceKey, "unknown-device")
	if err := svc.publishConfig(ctx, conn); err == nil {
		t.Fatal("expected error for missing embedded config, got nil")
	}
}
