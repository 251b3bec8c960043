package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/veridian/identity-service/internal/core/domain"
	"github.com/veridian/identity-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher is the in-process event bus. Events are routed to a fixed set of
// workers by consistent hashing on the user UUID, so events for one user are
// always handled in order. Handler failures are logged and never propagate to
// the publisher.
type Dispatcher struct {
	workers  []chan domain.UserCreated
	handlers []ports.UserCreatedHandler
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.UserCreated, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.UserCreated, channelBuffer)
	}
	return d
}

// Subscribe registers a handler for UserCreated events. All subscriptions
// must happen before Start.
func (d *Dispatcher) Subscribe(handler ports.UserCreatedHandler) {
	d.handlers = append(d.handlers, handler)
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish sends an event to the worker responsible for its user UUID.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Publish(evt domain.UserCreated) {
	d.workers[d.shardIndex(evt.User.UUID)] <- evt
}

// shardIndex maps a user UUID deterministically to a worker index.
func (d *Dispatcher) shardIndex(userUUID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userUUID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.UserCreated) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-ch:
			if !ok {
				return
			}
			for _, h := range d.handlers {
				err := h.HandleUserCreated(ctx, evt)
				if err == nil {
					continue
				}
				d.log.Warn().Err(err).
					Str("user_uuid", evt.User.UUID).
					Int("worker_id", id).
					Msg("user created handler failed, retrying")
				if err := h.HandleUserCreated(ctx, evt); err != nil {
					d.log.Error().Err(err).
						Str("user_uuid", evt.User.UUID).
						Int("worker_id", id).
						Msg("user created handler failed after retry")
				}
			}
		}
	}
}
