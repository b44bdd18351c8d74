// Package wire contains the wire-protocol core of the Lynx client, split
// into three layers:
//
//   - common: configuration, error taxonomy and logging
//   - protocol: request/response envelopes, framing and payload
//     normalization
//   - transport: per-call plain/TLS connections with the one-shot and
//     streaming read protocols
//
// Higher-level APIs (lib/engine, lib/keyspace) build command objects and
// defer to this core to move bytes and interpret replies.
package wire
