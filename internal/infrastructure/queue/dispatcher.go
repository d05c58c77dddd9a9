package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/wahho/rewards-platform/internal/api/metrics"
	"github.com/wahho/rewards-platform/internal/core/domain"
	"github.com/wahho/rewards-platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes ledger audit entries to a fixed set of workers using
// consistent hashing on the user id, guaranteeing per-user write ordering.
// Entries are best-effort: a failed insert is counted and logged, never
// retried, because the balance mutation it describes has already happened.
type Dispatcher struct {
	workers []chan domain.LedgerEntry
	repo    ports.LedgerRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.LedgerRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.LedgerEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.LedgerEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record assigns the entry an id and sends it to the worker responsible for
// its user. The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Record(entry domain.LedgerEntry) {
	if entry.ID == "" {
		entry.ID = ulid.Make().String()
	}
	i := d.shardIndex(entry.UserID)
	d.workers[i] <- entry
	metrics.LedgerQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.LedgerEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := d.repo.Insert(ctx, &entry); err != nil {
				metrics.LedgerErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("user_id", entry.UserID).
					Str("type", string(entry.Type)).
					Int("worker_id", id).
					Msg("ledger entry persist failed")
				continue
			}
			metrics.LedgerEntriesTotal.WithLabelValues(string(entry.Type)).Inc()
			metrics.LedgerQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
