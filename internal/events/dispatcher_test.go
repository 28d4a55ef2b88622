package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventUserRegistered, func(_ context.Context, event Event) error {
		got = append(got, event)
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "e1", Type: EventUserRegistered})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].ID)

	// Other event types are not delivered to this subscriber.
	err = d.Publish(context.Background(), Event{ID: "e2", Type: EventShiftCreated})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestHandlerErrorsDoNotStopDispatch(t *testing.T) {
	d := NewInMemoryDispatcher()

	var calls int
	d.Subscribe(EventUserLoggedIn, func(context.Context, Event) error {
		calls++
		return errors.New("boom")
	})
	d.Subscribe(EventUserLoggedIn, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventUserLoggedIn})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
