// Package common provides the shared building blocks of the wire client:
// the client configuration, the error taxonomy and the logging setup.
//
// The package focuses on:
//   - ClientConfig: timeouts, chunk sizing and TLS settings for the transport
//   - Error/ErrorKind: a closed taxonomy of every failure the client surfaces,
//     with messages that are safe to display or log directly
//   - Logger factory and initialization with leveled, named loggers
//
// No layer of the client retries or recovers from a failure. Every error is
// classified at the point it occurs and propagated verbatim to the caller, so
// a caller can always tell "never reached the host" (ErrKConnection) apart
// from "reached the host but TLS failed" (ErrKTLSHandshake) or "the server
// answered garbage" (ErrKValueParsing).
package common
