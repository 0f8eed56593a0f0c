package export

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// MemoryQueue is a Queue backed by a buffered channel. It lets the API
// export leads in-process when no SQS queue is configured.
type MemoryQueue struct {
	ch        chan queueMessage
	delayed   atomic.Int64
	done      chan struct{}
	closeOnce sync.Once
}

// ErrQueueClosed is returned by Send after Close.
var ErrQueueClosed = errors.New("export: memory queue closed")

// NewMemoryQueue creates a MemoryQueue with the provided buffer capacity.
func NewMemoryQueue(buffer int) *MemoryQueue {
	if buffer <= 0 {
		buffer = 128
	}
	return &MemoryQueue{
		ch:   make(chan queueMessage, buffer),
		done: make(chan struct{}),
	}
}

// Send enqueues a payload or blocks until ctx is done. A positive delay
// hands the message to a timer and returns at once.
func (q *MemoryQueue) Send(ctx context.Context, body string, delay time.Duration) error {
	msg := queueMessage{
		ID:            uuid.NewString(),
		Body:          body,
		ReceiptHandle: uuid.NewString(),
	}

	select {
	case <-q.done:
		return ErrQueueClosed
	default:
	}

	if delay > 0 {
		q.delayed.Add(1)
		time.AfterFunc(delay, func() {
			defer q.delayed.Add(-1)
			select {
			case q.ch <- msg:
			case <-q.done:
			}
		})
		return nil
	}

	select {
	case q.ch <- msg:
		return nil
	case <-q.done:
		return ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting messages and drops delayed ones still waiting on
// a full buffer. Buffered messages stay receivable.
func (q *MemoryQueue) Close() {
	q.closeOnce.Do(func() { close(q.done) })
}

// Receive blocks until a message is available, ctx is done, or waitSeconds
// elapses. A zero wait returns immediately when the queue is empty.
func (q *MemoryQueue) Receive(ctx context.Context, maxMessages int, waitSeconds int) ([]queueMessage, error) {
	if maxMessages <= 0 {
		maxMessages = 1
	}

	if waitSeconds <= 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case msg := <-q.ch:
			return q.collect(msg, maxMessages), nil
		default:
			return nil, nil
		}
	}

	timer := time.NewTimer(time.Duration(waitSeconds) * time.Second)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, nil
	case msg := <-q.ch:
		return q.collect(msg, maxMessages), nil
	}
}

// Delete is a no-op for the in-memory queue.
func (q *MemoryQueue) Delete(_ context.Context, _ string) error {
	return nil
}

// Len reports buffered messages plus those still waiting on a delay.
func (q *MemoryQueue) Len() int {
	return len(q.ch) + int(q.delayed.Load())
}

func (q *MemoryQueue) collect(first queueMessage, max int) []queueMessage {
	messages := make([]queueMessage, 0, max)
	messages = append(messages, first)

	for len(messages) < max {
		select {
		case msg := <-q.ch:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
	return messages
}
