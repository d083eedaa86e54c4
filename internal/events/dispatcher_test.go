package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{
		ID:      "evt-1",
		Type:    EventTicketCreated,
		Payload: TicketCreatedPayload{TicketNumber: "HD-0042"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "evt-1", got[0].ID)
}

func TestDispatcher_TypeIsolation(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventTicketUpdated, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketCreated}))
	assert.False(t, called)
}

func TestDispatcher_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()

	second := false
	d.Subscribe(EventChatMessageAdded, func(context.Context, Event) error {
		return errors.New("handler failed")
	})
	d.Subscribe(EventChatMessageAdded, func(context.Context, Event) error {
		second = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventChatMessageAdded}))
	assert.True(t, second)
}
