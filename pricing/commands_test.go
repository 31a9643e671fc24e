package pricing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingFollower struct {
	mu       sync.Mutex
	received []CommandKind
	started  chan struct{}
	release  chan struct{}
}

func newBlockingFollower() *blockingFollower {
	return &blockingFollower{started: make(chan struct{}, 16), release: make(chan struct{})}
}

func (f *blockingFollower) Dispatch(_ context.Context, cmds []Command) error {
	f.started <- struct{}{}
	<-f.release
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range cmds {
		f.received = append(f.received, c.Kind)
	}
	return nil
}

func (f *blockingFollower) kinds() []CommandKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]CommandKind(nil), f.received...)
}

func dispatchWithin(t *testing.T, d Dispatcher, cmds []Command) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- d.Dispatch(context.Background(), cmds) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on a slow follower")
	}
}

func TestQueuedDispatcher_DoesNotWaitForFollower(t *testing.T) {
	f := newBlockingFollower()
	q := NewQueuedDispatcher(f, 8)

	dispatchWithin(t, q, []Command{{Kind: CmdAddChannel}})
	<-f.started
	dispatchWithin(t, q, []Command{{Kind: CmdUpdateChannel}, {Kind: CmdUpdateChannel}})
	dispatchWithin(t, q, []Command{{Kind: CmdDeleteChannel}})

	close(f.release)
	require.NoError(t, q.Close(context.Background()))
	assert.Equal(t, []CommandKind{CmdAddChannel, CmdUpdateChannel, CmdUpdateChannel, CmdDeleteChannel}, f.kinds())
}

func TestQueuedDispatcher_DropsWhenFull(t *testing.T) {
	f := newBlockingFollower()
	q := NewQueuedDispatcher(f, 1)

	dispatchWithin(t, q, []Command{{Kind: CmdAddChannel}})
	<-f.started
	dispatchWithin(t, q, []Command{{Kind: CmdUpdateChannel}})
	dispatchWithin(t, q, []Command{{Kind: CmdDeleteChannel}})

	close(f.release)
	require.NoError(t, q.Close(context.Background()))
	assert.Equal(t, []CommandKind{CmdAddChannel, CmdUpdateChannel}, f.kinds())
}

func TestQueuedDispatcher_Close(t *testing.T) {
	f := newBlockingFollower()
	q := NewQueuedDispatcher(f, 4)
	dispatchWithin(t, q, []Command{{Kind: CmdAddChannelTab}})
	<-f.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Close(ctx), context.DeadlineExceeded)

	// closed: later batches are dropped, not delivered and not a panic
	assert.NoError(t, q.Dispatch(context.Background(), []Command{{Kind: CmdDeleteChannelTab}}))

	close(f.release)
	require.NoError(t, q.Close(context.Background()))
	assert.Equal(t, []CommandKind{CmdAddChannelTab}, f.kinds())
}

func TestRegistry_SlowFollowerDoesNotHoldLock(t *testing.T) {
	f := newBlockingFollower()
	q := NewQueuedDispatcher(f, 8)
	store := &recordingDispatcher{}
	r := newTestRegistry(MultiDispatcher{Primary: store, Followers: []Dispatcher{q}})

	_, err := r.Rename(context.Background(), "ota-1", "Booking")
	require.NoError(t, err)
	<-f.started

	// the follower is still stuck, yet reads and writes go through
	got, ok := r.Channel("ota-1")
	require.True(t, ok)
	assert.Equal(t, "Booking", got.Name)
	_, err = r.Rename(context.Background(), "ota-2", "Expedia.com")
	require.NoError(t, err)
	assert.Len(t, store.batches, 2)

	close(f.release)
	require.NoError(t, q.Close(context.Background()))
	assert.Equal(t, []CommandKind{CmdUpdateChannel, CmdUpdateChannel}, f.kinds())
}
