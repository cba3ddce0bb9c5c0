// Package metrics defines the custom Prometheus metrics of the vidshare API.
// It is the single source of truth for metric names, labels and help strings.
//
// Metrics are registered with the default registry at package init through
// promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vidshare"

// ── Lifecycle metrics ─────────────────────────────────────────────────────────

// CascadeDeletesTotal counts completed cascading deletes.
// Label:
//   - entity: the root entity deleted ("user", "video", "comment")
var CascadeDeletesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascade_deletes_total",
		Help:      "Total number of completed delete operations, by root entity.",
	},
	[]string{"entity"},
)

// CascadeRemovedRecordsTotal counts dependent records removed by cascades.
// Label:
//   - entity: the dependent entity removed ("video", "comment")
var CascadeRemovedRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascade_removed_records_total",
		Help:      "Total number of dependent records removed while cascading a delete.",
	},
	[]string{"entity"},
)

// BlobDeleteFailuresTotal counts blob deletions that failed and were tolerated.
var BlobDeleteFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blob_delete_failures_total",
		Help:      "Total number of blob deletions that failed during a cascade and were skipped.",
	},
)

// ── View metrics ──────────────────────────────────────────────────────────────

// ViewsDroppedTotal counts view increments dropped because a worker queue was full.
var ViewsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "views_dropped_total",
		Help:      "Total number of view increments dropped because the dispatcher queue was full.",
	},
)

// ViewIncrementErrorsTotal counts view increments that reached the store and failed.
var ViewIncrementErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_increment_errors_total",
		Help:      "Total number of view counter writes that failed.",
	},
)

// ViewsQueueDepth tracks pending increments per dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var ViewsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "views_queue_depth",
		Help:      "Current number of view increments pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Upload and auth metrics ───────────────────────────────────────────────────

// UploadsTotal counts upload attempts.
// Label:
//   - result: "stored", "rejected" (validation) or "failed" (storage)
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of video uploads, by result.",
	},
	[]string{"result"},
)

// UploadedBytes records the size of stored uploads.
var UploadedBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "uploaded_bytes",
		Help:      "Size of successfully stored video uploads in bytes.",
		Buckets:   prometheus.ExponentialBuckets(1<<20, 4, 6), // 1MiB .. 1GiB
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "invalid"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthorizationDenialsTotal counts denied operations.
// Labels:
//   - action: the authorization action (e.g. "video:delete")
//   - reason: "unauthenticated" or "forbidden"
var AuthorizationDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denials_total",
		Help:      "Total number of operations denied by the authorization engine.",
	},
	[]string{"action", "reason"},
)
