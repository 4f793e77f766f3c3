package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var seen []EventType
	d.Subscribe(EventOrderPlaced, func(_ context.Context, e Event) error {
		seen = append(seen, e.Type)
		return nil
	})
	d.Subscribe(EventOrderPlaced, func(_ context.Context, e Event) error {
		seen = append(seen, e.Type)
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventOrderPlaced}))
	assert.Len(t, seen, 2)
}

func TestDispatcherHandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var called bool
	d.Subscribe(EventCatalogChanged, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventCatalogChanged, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventCatalogChanged}))
	assert.True(t, called)
}

func TestDispatcherIgnoresUnsubscribedTypes(t *testing.T) {
	d := NewInMemoryDispatcher()
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventOrderStatusChanged}))
}
