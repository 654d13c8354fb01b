// Package brain implements C5: the event-driven state machine that consumes
// inbound game messages, maintains expectation flags across multi-phase
// turns, and emits actions through the planner/tracker/oracle substrate.
package brain

import (
	"context"
	"time"

	channerics "github.com/niceyeti/channerics/channels"

	"github.com/settlers/robotbrain/pkg/catan"
)

// tickInterval is the companion pinger's 1 Hz cadence (spec 5).
const tickInterval = time.Second

// Queue is the brain's single ordered event source: inbound wire messages
// plus the pinger's synthetic Ping. A single task drains it; the bounded
// channel capacity gives the "finite queue, producer drops/blocks on
// overflow" policy described in spec 5 a concrete home.
type Queue struct {
	events chan catan.Message
	done   chan struct{}
}

// NewQueue allocates a bounded event queue of the given capacity.
func NewQueue(capacity int) *Queue {
	return &Queue{
		events: make(chan catan.Message, capacity),
		done:   make(chan struct{}),
	}
}

// Push enqueues a real inbound message. While the queue is full it blocks
// until space frees, ctx is done, or the queue is closed; it returns false
// in the last two cases, leaving the message undelivered.
func (q *Queue) Push(ctx context.Context, m catan.Message) bool {
	select {
	case q.events <- m:
		return true
	case <-ctx.Done():
		return false
	case <-q.done:
		return false
	}
}

// Close implements the kill() signal: closes the done channel so the next
// dequeue observes it and tears down (spec 5 Cancellation).
func (q *Queue) Close() { close(q.done) }

// Events exposes the raw channel for the brain's select loop.
func (q *Queue) Events() <-chan catan.Message { return q.events }

// Done exposes the cancellation channel for the brain's select loop.
func (q *Queue) Done() <-chan struct{} { return q.done }

// RunPinger enqueues a synthetic TimingPing at tickInterval until ctx is
// cancelled or the queue is closed (spec 5: "a second task periodically
// enqueues tick messages into that same queue"). Grounded on the teacher's
// pingPong/channerics.NewTicker pattern (fastview/client.go), simplified to
// a one-directional producer since the brain needs no pong liveness check.
func RunPinger(ctx context.Context, q *Queue) {
	ticks := channerics.NewTicker(ctx.Done(), tickInterval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.done:
			return
		case <-ticks:
			select {
			case q.events <- catan.Message{Kind: catan.MsgTimingPing}:
			default:
				// Queue full: drop the tick, counter still advances next tick.
			}
		}
	}
}
