package gamification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/microbridge/pkg/metrics"
	"github.com/artem13815/microbridge/pkg/wizard"
)

type envelope struct {
	userID uuid.UUID
	event  wizard.Event
}

// Dispatcher applies wizard events in the background. Publishing never blocks the
// wizard: when the queue is full the event is dropped and logged.
type Dispatcher struct {
	svc     UseCase
	log     *zap.Logger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan envelope
	done   chan struct{}
}

// NewDispatcher starts the worker goroutine. Close must be called to stop it.
func NewDispatcher(svc UseCase, size int, log *zap.Logger) *Dispatcher {
	if size <= 0 {
		size = 1
	}
	d := &Dispatcher{
		svc:     svc,
		log:     log,
		timeout: 5 * time.Second,
		queue:   make(chan envelope, size),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

// Publish enqueues events for userID. It reports how many were accepted.
func (d *Dispatcher) Publish(userID uuid.UUID, events ...wizard.Event) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return 0
	}
	accepted := 0
	for _, e := range events {
		select {
		case d.queue <- envelope{userID: userID, event: e}:
			accepted++
		default:
			metrics.GamificationEvents.WithLabelValues(string(e.Type), "dropped").Inc()
			d.log.Warn("gamification queue full, event dropped",
				zap.String("user_id", userID.String()),
				zap.String("type", string(e.Type)))
		}
	}
	return accepted
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for env := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := d.svc.Apply(ctx, env.userID, env.event); err != nil {
			d.log.Error("apply gamification event",
				zap.String("user_id", env.userID.String()),
				zap.String("type", string(env.event.Type)),
				zap.Error(err))
		}
		cancel()
	}
}

// Close stops accepting events and waits until the queue is drained or ctx ends.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
