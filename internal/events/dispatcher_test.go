package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherInvokesSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var seen []EventType
	dispatcher.Subscribe(EventShiftAssigned, func(_ context.Context, event Event) error {
		seen = append(seen, event.Type)
		return nil
	})
	dispatcher.Subscribe(EventShiftAssigned, func(_ context.Context, event Event) error {
		seen = append(seen, event.Type)
		return nil
	})
	dispatcher.Subscribe(EventShiftRemoved, func(_ context.Context, event Event) error {
		seen = append(seen, event.Type)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventShiftAssigned, ShiftID: "s-1"})
	require.NoError(t, err)
	assert.Equal(t, []EventType{EventShiftAssigned, EventShiftAssigned}, seen)
}

func TestDispatcherRunsAllHandlersAndJoinsErrors(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	first := errors.New("first failed")
	ran := false
	dispatcher.Subscribe(EventShiftRemoved, func(_ context.Context, _ Event) error {
		return first
	})
	dispatcher.Subscribe(EventShiftRemoved, func(_ context.Context, _ Event) error {
		ran = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventShiftRemoved})
	assert.ErrorIs(t, err, first)
	assert.True(t, ran, "a failing handler must not stop later handlers")
}

func TestDispatcherIgnoresUnsubscribedEvents(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	err := dispatcher.Publish(context.Background(), Event{Type: EventShiftCreated})
	assert.NoError(t, err)
}
