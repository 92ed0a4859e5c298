package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/sc-commander/internal/application/common"
)

// PrometheusMiddleware records the duration and outcome of every mediator request.
// A nil collector disables recording.
func PrometheusMiddleware(collector *RequestMetricsCollector) common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordRequest(common.RequestName(request), time.Since(start).Seconds(), err == nil)

		return response, err
	}
}
