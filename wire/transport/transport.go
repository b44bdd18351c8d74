package transport

import (
	"bytes"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/lynxkv/lynx-go/wire/common"
	"github.com/lynxkv/lynx-go/wire/protocol"
)

var Logger = logger.GetLogger("transport")

// Callback receives one complete frame per invocation: the accumulated bytes
// up to and including one frame delimiter. It is invoked solely from the
// subscription's goroutine, never concurrently with itself. The frame slice
// is only valid for the duration of the call.
type Callback func(frame []byte)

// Transport moves encoded requests across the network and interprets what
// comes back. Each call opens an independent socket for exactly one logical
// exchange - there is no pooling, no multiplexing and no cross-call state.
// No failure is retried at this layer; requests may not be idempotent, so
// retries are the caller's responsibility.
type Transport struct {
	config common.ClientConfig
	dialer dialer
}

// New creates a Transport with the given configuration.
func New(config common.ClientConfig) *Transport {
	return &Transport{
		config: config,
		dialer: dialer{config: config},
	}
}

// Config returns the client configuration this transport runs with.
func (t *Transport) Config() common.ClientConfig {
	return t.config
}

// NewDefault creates a Transport with the default configuration.
func NewDefault() *Transport {
	return New(common.DefaultClientConfig())
}

// --------------------------------------------------------------------------
// One-Shot Exchange
// --------------------------------------------------------------------------

// Send performs a bounded single-response exchange: connect, write the
// request, accumulate chunks until a frame delimiter or EOF, shut down the
// write half and return the accumulated bytes. A nil, nil return means the
// server closed the stream cleanly without sending anything - a valid empty
// completion, not an error. A single read exceeding the configured read
// timeout aborts the whole call with ErrKTimeout.
func (t *Transport) Send(endpoint Endpoint, request []byte) ([]byte, error) {
	oneShotRequests.Inc()

	conn, err := t.dialer.dial(endpoint)
	if err != nil {
		transportErrors.Inc()
		return nil, err
	}
	defer conn.Close()

	if err := t.write(conn, request); err != nil {
		transportErrors.Inc()
		return nil, err
	}

	buf, err := t.readOneShot(conn)
	if err != nil {
		transportErrors.Inc()
		return nil, err
	}

	if err := conn.closeWrite(); err != nil {
		transportErrors.Inc()
		return nil, common.NewError(common.ErrKWrite, "failed to shut down write half: %v", err)
	}

	Logger.Debugf("one-shot exchange with %s returned %d bytes", endpoint.Addr(), len(buf))
	return buf, nil
}

// readOneShot accumulates chunks until the buffer contains a frame delimiter
// or the stream ends.
func (t *Transport) readOneShot(conn *connection) ([]byte, error) {
	chunk := make([]byte, t.config.ChunkSize())
	var buf []byte

	for {
		if err := conn.SetReadDeadline(time.Now().Add(t.config.ReadTimeout())); err != nil {
			return nil, common.NewError(common.ErrKRead, "failed to arm read deadline: %v", err)
		}

		n, err := conn.Read(chunk)
		if n > 0 {
			bytesRead.Add(n)
			buf = append(buf, chunk[:n]...)
			if bytes.IndexByte(buf, protocol.Delimiter) >= 0 {
				break
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if isTimeout(err) {
				return nil, common.NewError(common.ErrKTimeout,
					"read timed out after %s without a complete response", t.config.ReadTimeout())
			}
			return nil, common.NewError(common.ErrKRead, "failed to read response: %v", err)
		}
	}

	if len(buf) == 0 {
		// Clean close before any data: "no response", not an error.
		return nil, nil
	}
	return buf, nil
}

// --------------------------------------------------------------------------
// Streaming Exchange (subscriptions)
// --------------------------------------------------------------------------

// Subscribe performs an unbounded streaming exchange: connect, write the
// request, then read until the server closes the stream or the token is
// cancelled. Every complete delimiter-terminated frame is handed to the
// callback exactly once; bytes past a delimiter are carried into the next
// accumulation cycle, never dropped. Subscriptions have no read timeout -
// an idle stream is healthy. The token is polled between reads on the
// configured poll interval, so cancellation latency is bounded by that
// interval rather than by the next chunk's arrival.
//
// Subscribe never returns response data: it returns nil once the
// subscription has ended, and data flows exclusively through the callback.
func (t *Transport) Subscribe(endpoint Endpoint, request []byte, callback Callback, token *CancelToken) error {
	subscribeRequests.Inc()

	conn, err := t.dialer.dial(endpoint)
	if err != nil {
		transportErrors.Inc()
		return err
	}
	defer conn.Close()

	if err := t.write(conn, request); err != nil {
		transportErrors.Inc()
		return err
	}

	atomic.AddInt64(&activeSubscriptions, 1)
	defer atomic.AddInt64(&activeSubscriptions, -1)

	Logger.Infof("subscription to %s established", endpoint.Addr())

	chunk := make([]byte, t.config.ChunkSize())
	var buf []byte

	for {
		if token.Cancelled() {
			Logger.Infof("subscription to %s cancelled", endpoint.Addr())
			break
		}

		// The deadline here is not a timeout: it bounds how long the
		// loop stays blind to the cancellation token while idle.
		if err := conn.SetReadDeadline(time.Now().Add(t.config.SubscribePoll())); err != nil {
			transportErrors.Inc()
			return common.NewError(common.ErrKRead, "failed to arm poll deadline: %v", err)
		}

		n, err := conn.Read(chunk)
		if n > 0 {
			bytesRead.Add(n)
			buf = deliverFrames(append(buf, chunk[:n]...), callback)
		}
		if err != nil {
			if isTimeout(err) {
				continue // idle, poll the token again
			}
			if errors.Is(err, io.EOF) {
				Logger.Infof("subscription to %s closed by server", endpoint.Addr())
				break
			}
			transportErrors.Inc()
			return common.NewError(common.ErrKRead, "failed to read stream: %v", err)
		}
	}

	if err := conn.closeWrite(); err != nil {
		transportErrors.Inc()
		return common.NewError(common.ErrKWrite, "failed to shut down write half: %v", err)
	}
	return nil
}

// deliverFrames invokes the callback once per complete frame in buf and
// returns the unfinished remainder.
func deliverFrames(buf []byte, callback Callback) []byte {
	for {
		i := bytes.IndexByte(buf, protocol.Delimiter)
		if i < 0 {
			return buf
		}
		framesDelivered.Inc()
		if callback != nil {
			callback(buf[:i+1])
		}
		// Copy the remainder so delivered frames are not re-sliced away
		// underneath a callback that retains its argument too long.
		buf = append([]byte(nil), buf[i+1:]...)
	}
}

// --------------------------------------------------------------------------
// Mode Dispatch
// --------------------------------------------------------------------------

// SendAuto selects the read protocol by inspecting the encoded request: if
// the bytes self-identify as a subscription the streaming loop runs and the
// returned buffer is always nil, otherwise a one-shot exchange runs.
func (t *Transport) SendAuto(endpoint Endpoint, request []byte, callback Callback, token *CancelToken) ([]byte, error) {
	if protocol.IsSubscription(request) {
		return nil, t.Subscribe(endpoint, request, callback, token)
	}
	return t.Send(endpoint, request)
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// write sends the request bytes fully. net.Conn.Write only returns without
// error once all bytes are accepted, so no explicit flush is needed.
func (t *Transport) write(conn *connection, request []byte) error {
	n, err := conn.Write(request)
	if err != nil {
		return common.NewError(common.ErrKWrite, "failed to write request: %v", err)
	}
	bytesWritten.Add(n)
	return nil
}
