// Package transport implements the network layer of the Lynx wire client:
// per-call connections over plain TCP or TLS and the two read protocols of
// the wire exchange.
//
// The package focuses on:
//   - One abstraction over plain and TLS sockets, selected per Endpoint
//   - A bounded one-shot exchange (Send): accumulate 256 KB chunks under a
//     per-read deadline until one frame delimiter arrives or the server
//     closes the stream
//   - An unbounded, cancellable streaming exchange (Subscribe): deliver each
//     delimiter-terminated frame to a callback until the server closes or
//     the cancellation token is set
//   - Transport counters via VictoriaMetrics metrics
//
// Design properties, deliberately kept:
//
//   - One socket per logical exchange. Connections are never pooled or
//     reused; pooling would change the error-isolation and cancellation
//     semantics of the protocol.
//
//   - No retries. Requests may not be idempotent, so every failure is
//     surfaced immediately as a typed common.Error.
//
//   - Cooperative cancellation. The token is polled between reads and never
//     interrupts an in-flight read.
//
// Thread Safety:
//
//	A Transport is stateless apart from its configuration and may be used
//	concurrently. Each call owns its socket; a subscription callback is
//	invoked strictly sequentially from the subscription's goroutine.
package transport
