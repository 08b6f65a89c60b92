package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	events []ActivityEvent
	fail   bool
	closed bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	f.events = append(f.events, v.(ActivityEvent))
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func TestActivityHubDelivers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewActivityHub()
	go hub.Run(ctx)

	good := &fakeConn{}
	bad := &fakeConn{fail: true}
	hub.Add(good)
	hub.Add(bad)

	hub.Broadcast(ActivityEvent{Type: EventLessonDone, LessonCode: "MATH.G5.01.P1"})

	require.Eventually(t, func() bool { return good.count() == 1 }, time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "MATH.G5.01.P1", good.events[0].LessonCode)
	assert.False(t, good.events[0].At.IsZero())

	cancel()
	require.Eventually(t, func() bool {
		good.mu.Lock()
		defer good.mu.Unlock()
		return good.closed
	}, time.Second, 10*time.Millisecond)
}

func TestNilHubBroadcastIsNoop(t *testing.T) {
	var hub *ActivityHub
	assert.NotPanics(t, func() { hub.Broadcast(ActivityEvent{Type: EventLessonDone}) })
}
