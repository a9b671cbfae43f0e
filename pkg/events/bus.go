package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// Publisher is what domain code needs to emit events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Bus publishes events on an in-process watermill channel. Nothing is persisted;
// events published with no subscriber are dropped.
type Bus struct {
	pubSub *gochannel.GoChannel
}

var _ Publisher = &Bus{}

func NewBus(pubSub *gochannel.GoChannel) *Bus {
	return &Bus{pubSub: pubSub}
}

// Subject is the watermill topic an event type is published on.
func Subject(eventType string) string {
	return fmt.Sprintf("events.%s", eventType)
}

// Publish sends the event payload as JSON.
func (b *Bus) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event.Payload())
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(uuid.NewString(), data)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", event.EventType())
	msg.Metadata.Set("occurred_at", event.Timestamp().UTC().Format("2006-01-02T15:04:05.000Z07:00"))

	subject := Subject(event.EventType())
	if err := b.pubSub.Publish(subject, msg); err != nil {
		return fmt.Errorf("failed to publish event to subject %s: %w", subject, err)
	}

	return nil
}

// Subscribe returns the message stream for eventType. The stream closes when ctx ends.
func (b *Bus) Subscribe(ctx context.Context, eventType string) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, Subject(eventType))
}

// Close shuts the underlying channel down.
func (b *Bus) Close() error {
	return b.pubSub.Close()
}

// FanOut publishes every event to each of its publishers in order. All publishers
// are attempted; the first error is returned.
type FanOut []Publisher

func (f FanOut) Publish(ctx context.Context, event Event) error {
	var firstErr error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
