package chunks

import (
	"github.com/rat/modsync/metrics"
)

const subsystem = "chunks"

var (
	sentChunks = metrics.NewCounter(
		"sent",
		subsystem,
		"number of chunks sent to peers",
		[]string{"kind"},
	)
	sentData  = sentChunks.WithLabelValues("data")
	sentFinal = sentChunks.WithLabelValues("final")

	assembled = metrics.NewCounter(
		"assembled",
		subsystem,
		"number of items reassembled from chunks",
		[]string{"result"},
	)

	inFlight = metrics.NewGauge(
		"in_flight",
		subsystem,
		"number of items being reassembled",
		[]string{},
	).WithLabelValues()

	droppedChunks = metrics.NewCounter(
		"dropped",
		subsystem,
		"number of received chunks dropped",
		[]string{"reason"},
	)
)
