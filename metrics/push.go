package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
)

// PushPeriodically pushes the default registry to url every period until ctx is done.
func PushPeriodically(
	ctx context.Context,
	logger *zap.Logger,
	url string,
	headers map[string]string,
	period time.Duration,
	role string,
) {
	header := http.Header{}
	for k, v := range headers {
		header.Add(k, v)
	}
	pusher := push.New(url, Namespace).
		Gatherer(prometheus.DefaultGatherer).
		Grouping("role", role).
		Header(header)

	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := pusher.PushContext(ctx); err != nil {
				logger.Warn("failed to push metrics", zap.Error(err))
			}
		}
	}
}
