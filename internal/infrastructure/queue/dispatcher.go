package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/studytrack/task-system/internal/api/metrics"
	"github.com/studytrack/task-system/internal/core/domain"
	"github.com/studytrack/task-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes activity entries to a fixed set of workers using
// consistent hashing on the user id, guaranteeing per-user ordering of the
// audit trail.
type Dispatcher struct {
	workers []chan domain.Activity
	service ports.ActivityService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Activity, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an entry for the worker responsible for its user.
// Fire-and-forget: if the worker channel is full the entry is dropped with
// a warning rather than blocking a request.
func (d *Dispatcher) Record(entry domain.Activity) {
	idx := d.shardIndex(entry.UserID)
	select {
	case d.workers[idx] <- entry:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().Str("user_id", entry.UserID).Str("action", entry.Action).Msg("activity queue full, entry dropped")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, entry); err != nil {
				metrics.ActivityErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("user_id", entry.UserID).
					Int("worker_id", id).
					Msg("activity processing failed")
			}
			metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
