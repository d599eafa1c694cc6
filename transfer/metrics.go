package transfer

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rat/modsync/metrics"
)

const subsystem = "transfer"

var (
	transfers = metrics.NewCounter(
		"transfers",
		subsystem,
		"number of finished transfers",
		[]string{"kind", "result"},
	)
	itemsFetched = metrics.NewCounter(
		"items",
		subsystem,
		"number of items handled",
		[]string{"outcome"},
	)
	fetchedItem   = itemsFetched.WithLabelValues("fetched")
	skippedItem   = itemsFetched.WithLabelValues("skipped")
	requestedItem = itemsFetched.WithLabelValues("requested")

	receivedBytes = metrics.NewCounter(
		"bytes",
		subsystem,
		"bytes downloaded by source scheme",
		[]string{"scheme"},
	)
	duration = metrics.NewHistogramWithBuckets(
		"duration_seconds",
		subsystem,
		"duration of transfers",
		[]string{"kind"},
		prometheus.ExponentialBuckets(0.01, 4, 10),
	)
	extractedEntries = metrics.NewCounter(
		"archive_entries",
		subsystem,
		"archive entries by outcome",
		[]string{"outcome"},
	)
)
