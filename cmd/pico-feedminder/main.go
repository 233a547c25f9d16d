package main

import (
	"context"
	"time"

	"feedminder-go/bus"
	"feedminder-go/services/config"
	"feedminder-go/services/console"
	"feedminder-go/services/hal"
	"feedminder-go/services/heartbeat"
	"feedminder-go/services/reminder"
)

const deviceID = "pico"

func printTopicWith(prefix string, t bus.Topic) {
	print(prefix)
	print(" ")
	for i := 0; i < t.Len(); i++ {
		if i > 0 {
			print("/")
		}
		switch v := t.At(i).(type) {
		case string:
			print(v)
		case int:
			print(v)
		case int32:
			print(int(v))
		case int64:
			print(int(v))
		default:
			print("?")
		}
	}
	println()
}

func main() {
	// Give the USB serial monitor a chance to attach.
	time.Sleep(2 * time.Second)
	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, deviceID)

	println("[main] bootstrapping bus …")
	b := bus.NewBus(8)

	println("[main] subscribing to hal/state for diagnostics …")
	monConn := b.NewConnection("monitor")
	mon := monConn.Subscribe(bus.T("hal", "state"))
	go func() {
		for m := range mon.Channel() {
			printTopicWith("[monitor] <-", m.Topic)
		}
	}()

	println("[main] starting hal …")
	go hal.Run(ctx, b.NewConnection("hal"))

	println("[main] starting reminder …")
	go reminder.Run(ctx, b.NewConnection("reminder"))

	println("[main] starting console …")
	go console.Run(ctx, b.NewConnection("console"))

	println("[main] starting heartbeat …")
	hb := &heartbeat.Service{}
	_ = hb.Start(ctx, b.NewConnection("heartbeat"))

	// Config goes out last so every subscriber sees the retained sections.
	println("[main] publishing embedded config …")
	cfg := config.NewConfigService()
	cfg.Start(ctx, b.NewConnection("config"))

	select {}
}
