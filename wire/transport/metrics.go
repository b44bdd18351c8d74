package transport

import (
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"
)

// Transport counters. Exposed through the metrics default set so embedding
// applications can serve them via metrics.WritePrometheus.
var (
	oneShotRequests   = metrics.NewCounter(`lynx_client_requests_total{mode="oneshot"}`)
	subscribeRequests = metrics.NewCounter(`lynx_client_requests_total{mode="subscribe"}`)
	transportErrors   = metrics.NewCounter(`lynx_client_transport_errors_total`)
	bytesWritten      = metrics.NewCounter(`lynx_client_bytes_written_total`)
	bytesRead         = metrics.NewCounter(`lynx_client_bytes_read_total`)
	framesDelivered   = metrics.NewCounter(`lynx_client_stream_frames_total`)

	activeSubscriptions int64
	_                   = metrics.NewGauge(`lynx_client_active_subscriptions`, func() float64 {
		return float64(atomic.LoadInt64(&activeSubscriptions))
	})
)
