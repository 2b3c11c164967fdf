package event

import (
	"context"
	"errors"
)

// Subscriber consumes match events. Handlers must not mutate the event.
type Subscriber interface {
	HandleEvent(ctx context.Context, evt Event) error
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(ctx context.Context, evt Event) error

// HandleEvent calls the function.
func (f SubscriberFunc) HandleEvent(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// Bus fans events out to subscribers in subscription order. Delivery is
// synchronous; the round engine stays single-threaded (one round resolves
// at a time), so no locking is needed.
type Bus struct {
	subscribers []Subscriber
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a subscriber for all future events.
func (b *Bus) Subscribe(sub Subscriber) {
	if sub == nil {
		return
	}
	b.subscribers = append(b.subscribers, sub)
}

// Publish delivers the event to every subscriber. All subscribers see the
// event even when an earlier one fails; their errors are joined.
func (b *Bus) Publish(ctx context.Context, evt Event) error {
	if b == nil {
		return nil
	}
	var errs []error
	for _, sub := range b.subscribers {
		if err := sub.HandleEvent(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
