package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ai-homework-helper-be/pkg/events"
	pktNats "ai-homework-helper-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// Tails the tutoring lifecycle events on the NATS bus. Handy while building
// downstream consumers (notifications, analytics) against the stream.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}

	sub, err := pktNats.NewSubscriber(natsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS at %s: %v", natsURL, err)
	}
	defer sub.Close()

	err = sub.Subscribe("events.>", "event-tail", func(_ context.Context, event events.Event) error {
		switch event.EventType() {
		case events.TypeSessionStarted:
			color.Green("▶ %s  %v", event.EventType(), event.Payload())
		case events.TypeSessionEnded:
			color.Yellow("■ %s  %v", event.EventType(), event.Payload())
		default:
			color.Cyan("• %s  %v", event.EventType(), event.Payload())
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	color.White("Tailing lifecycle events from %s (Ctrl+C to stop)...", natsURL)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
}
