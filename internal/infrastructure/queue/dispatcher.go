package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/vidshare/platform/internal/core/ports"
	"github.com/vidshare/platform/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 1024
	writeTimeout   = 5 * time.Second
)

// ViewDispatcher applies view increments in the background. Increments are
// routed to a fixed set of workers by hashing the video id, so writes for the
// same video are serialized on one worker.
type ViewDispatcher struct {
	workers []chan string
	counter ports.ViewCounter
	log     zerolog.Logger
}

// NewViewDispatcher creates a ViewDispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewViewDispatcher(numWorkers int, counter ports.ViewCounter, log zerolog.Logger) *ViewDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &ViewDispatcher{
		workers: make([]chan string, numWorkers),
		counter: counter,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *ViewDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an increment to the worker responsible for videoID. It never
// blocks: when that worker's queue is full the increment is dropped and
// Enqueue returns false.
func (d *ViewDispatcher) Enqueue(videoID string) bool {
	idx := d.shardIndex(videoID)
	select {
	case d.workers[idx] <- videoID:
		metrics.ViewsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return true
	default:
		metrics.ViewsDroppedTotal.Inc()
		return false
	}
}

// shardIndex maps a video id deterministically to a worker index.
func (d *ViewDispatcher) shardIndex(videoID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(videoID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *ViewDispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case videoID, ok := <-ch:
			if !ok {
				return
			}
			metrics.ViewsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.apply(ctx, id, videoID)
		}
	}
}

func (d *ViewDispatcher) apply(ctx context.Context, worker int, videoID string) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := d.counter.IncrementViews(ctx, videoID); err != nil {
		metrics.ViewIncrementErrorsTotal.Inc()
		d.log.Error().Err(err).
			Str("video_id", videoID).
			Int("worker_id", worker).
			Msg("view increment failed")
	}
}
