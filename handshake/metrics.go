package handshake

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rat/modsync/metrics"
)

const subsystem = "handshake"

var (
	attempts = metrics.NewCounter(
		"attempts",
		subsystem,
		"number of finished connection attempts",
		[]string{"state", "reason"},
	)
	attemptDuration = metrics.NewHistogramWithBuckets(
		"attempt_duration_seconds",
		subsystem,
		"duration of connection attempts",
		[]string{"state"},
		prometheus.ExponentialBuckets(0.01, 4, 10),
	)
	decisions = metrics.NewCounter(
		"decisions",
		subsystem,
		"answers to the download prompt",
		[]string{"choice"},
	)
	droppedMessages = metrics.NewCounter(
		"dropped",
		subsystem,
		"number of received messages dropped",
		[]string{"channel", "reason"},
	)

	pings = metrics.NewCounter(
		"pings",
		subsystem,
		"number of pings answered by the host",
		[]string{"compatible"},
	)
	completions = metrics.NewCounter(
		"completions",
		subsystem,
		"handshake-complete messages received by the host",
		[]string{"success"},
	)
	downloadRequests = metrics.NewCounter(
		"download_requests",
		subsystem,
		"download requests received by the host",
		[]string{"outcome"},
	)
)
