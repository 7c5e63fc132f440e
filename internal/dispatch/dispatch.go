// Package dispatch runs inbound events on a fixed set of workers so that the
// events of one chat are handled in order while different chats run in parallel.
package dispatch

import (
	"context"
	"errors"
	"log"
	"sync"

	"gratitude-bot/internal/conversation"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("dispatch: pool is closed")

// HandlerFunc processes one event. Errors are logged by the pool.
type HandlerFunc func(ctx context.Context, in conversation.Inbound) error

type Pool struct {
	handle HandlerFunc
	queues []chan conversation.Inbound
	ctx    context.Context
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// New starts workers goroutines, each with a queue of queueSize events.
// ctx is passed to the handler; cancelling it does not stop the workers,
// Close does.
func New(ctx context.Context, workers, queueSize int, handle HandlerFunc) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	p := &Pool{handle: handle, ctx: ctx, queues: make([]chan conversation.Inbound, workers)}
	for i := range p.queues {
		q := make(chan conversation.Inbound, queueSize)
		p.queues[i] = q
		p.wg.Add(1)
		go p.run(q)
	}
	return p
}

func (p *Pool) run(q <-chan conversation.Inbound) {
	defer p.wg.Done()
	for in := range q {
		if err := p.handle(p.ctx, in); err != nil {
			log.Printf("❌ failed to handle message in chat %d: %v", in.ChatID, err)
		}
	}
}

// Submit queues in on the worker that owns its chat. It blocks while that
// worker's queue is full, until ctx is done.
func (p *Pool) Submit(ctx context.Context, in conversation.Inbound) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.queues[p.slot(in.ChatID)] <- in:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) slot(chatID int64) int {
	n := int64(len(p.queues))
	i := chatID % n
	if i < 0 {
		i += n
	}
	return int(i)
}

// Close stops accepting events, lets queued ones finish and waits for the workers.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	for _, q := range p.queues {
		close(q)
	}
	p.mu.Unlock()
	p.wg.Wait()
}
