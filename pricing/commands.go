package pricing

import (
	"context"
	"log"
	"sync"

	"pricing-backend/models"
)

type CommandKind string

const (
	CmdAddRoomType      CommandKind = "ADD_ROOM_TYPE"
	CmdUpdateRoomType   CommandKind = "UPDATE_ROOM_TYPE"
	CmdDeleteRoomType   CommandKind = "DELETE_ROOM_TYPE"
	CmdAddChannel       CommandKind = "ADD_CHANNEL"
	CmdUpdateChannel    CommandKind = "UPDATE_CHANNEL"
	CmdDeleteChannel    CommandKind = "DELETE_CHANNEL"
	CmdAddChannelTab    CommandKind = "ADD_CHANNEL_TAB"
	CmdDeleteChannelTab CommandKind = "DELETE_CHANNEL_TAB"
)

// Command is a write intent issued by the engine. The collaborator store
// receiving it is the system of record.
type Command struct {
	Kind     CommandKind        `json:"kind"`
	StayType *models.StayType   `json:"stayType,omitempty"`
	Channel  *models.Channel    `json:"channel,omitempty"`
	Tab      *models.ChannelTab `json:"tab,omitempty"`

	// ID identifies the record for delete commands.
	ID string `json:"id,omitempty"`
}

// Dispatcher executes a batch of commands. A non-nil error means none of
// them took effect.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmds []Command) error
}

type DispatcherFunc func(ctx context.Context, cmds []Command) error

func (f DispatcherFunc) Dispatch(ctx context.Context, cmds []Command) error {
	return f(ctx, cmds)
}

// MultiDispatcher sends commands to a primary dispatcher, then to each
// follower. Only the primary's error is returned; follower errors are logged.
type MultiDispatcher struct {
	Primary   Dispatcher
	Followers []Dispatcher
}

func (m MultiDispatcher) Dispatch(ctx context.Context, cmds []Command) error {
	if m.Primary != nil {
		if err := m.Primary.Dispatch(ctx, cmds); err != nil {
			return err
		}
	}
	for _, f := range m.Followers {
		if err := f.Dispatch(ctx, cmds); err != nil {
			log.Printf("⚠️ follower dispatch failed (%d commands): %v", len(cmds), err)
		}
	}
	return nil
}

// QueuedDispatcher hands command batches to next on its own goroutine, one
// at a time and in order, so callers holding the registry lock never wait on
// it. A batch that finds the buffer full is dropped and logged.
type QueuedDispatcher struct {
	next  Dispatcher
	queue chan []Command
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewQueuedDispatcher(next Dispatcher, size int) *QueuedDispatcher {
	if size <= 0 {
		size = 64
	}
	q := &QueuedDispatcher{
		next:  next,
		queue: make(chan []Command, size),
		done:  make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *QueuedDispatcher) run() {
	defer close(q.done)
	for cmds := range q.queue {
		// the request that issued the batch may be gone by now
		if err := q.next.Dispatch(context.Background(), cmds); err != nil {
			log.Printf("⚠️ queued dispatch failed (%d commands): %v", len(cmds), err)
		}
	}
}

// Dispatch enqueues a copy of cmds and returns at once. It never fails.
func (q *QueuedDispatcher) Dispatch(_ context.Context, cmds []Command) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		log.Printf("⚠️ queued dispatcher closed, dropping %d commands", len(cmds))
		return nil
	}
	select {
	case q.queue <- append([]Command(nil), cmds...):
	default:
		log.Printf("⚠️ dispatch queue full, dropping %d commands", len(cmds))
	}
	return nil
}

// Close stops accepting batches and waits until the queued ones have been
// delivered or ctx is done.
func (q *QueuedDispatcher) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.queue)
	}
	q.mu.Unlock()

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(context.Context, []Command) error { return nil }
