package transport

import (
	"crypto/tls"
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/lynxkv/lynx-go/wire/common"
)

// --------------------------------------------------------------------------
// Endpoint
// --------------------------------------------------------------------------

// Endpoint addresses one logical exchange. It is immutable per call:
// connections are never pooled or reused across requests.
type Endpoint struct {
	Host   string
	Port   int
	UseTLS bool
}

// Addr returns the host:port form of the endpoint.
func (e Endpoint) Addr() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// Subscription returns the endpoint of the secondary streaming listener,
// which the server exposes on port+1 relative to the primary service port.
func (e Endpoint) Subscription() Endpoint {
	e.Port++
	return e
}

// --------------------------------------------------------------------------
// Connection
// --------------------------------------------------------------------------

// closeWriter is satisfied by both *net.TCPConn and *tls.Conn.
type closeWriter interface {
	CloseWrite() error
}

// connection wraps a plain or TLS socket behind one type. The variant is
// fixed at dial time by Endpoint.UseTLS.
type connection struct {
	net.Conn
	cw closeWriter
}

// closeWrite shuts down the write half so the server observes a clean EOF
// while reads can still drain from the read half.
func (c *connection) closeWrite() error {
	return c.cw.CloseWrite()
}

// --------------------------------------------------------------------------
// Dialer
// --------------------------------------------------------------------------

// dialer establishes per-call connections, plain or TLS.
type dialer struct {
	config common.ClientConfig
}

// dial opens a fresh connection to the endpoint. Socket failures surface as
// ErrKConnection; a failed or timed-out TLS handshake as ErrKTLSHandshake so
// callers can tell "never reached host" apart from "reached host but TLS
// failed". When TLS is disabled in the config, a TLS-requested dial fails
// with ErrKTLSUnavailable before any socket is opened - there is no
// plaintext fallback.
func (d *dialer) dial(endpoint Endpoint) (*connection, error) {
	if endpoint.UseTLS && d.config.DisableTLS {
		return nil, common.NewError(common.ErrKTLSUnavailable,
			"tls requested for %s but tls is disabled in the client configuration", endpoint.Addr())
	}

	raw, err := net.Dial("tcp", endpoint.Addr())
	if err != nil {
		return nil, common.NewError(common.ErrKConnection, "failed to connect to %s: %v", endpoint.Addr(), err)
	}

	if !endpoint.UseTLS {
		return &connection{Conn: raw, cw: raw.(*net.TCPConn)}, nil
	}

	tlsConf := &tls.Config{
		ServerName: endpoint.Host,
		RootCAs:    d.config.TLSRootCAs, // nil means the system root pool
		MinVersion: tls.VersionTLS12,
	}
	tlsConn := tls.Client(raw, tlsConf)

	// Bound the handshake. The deadline is cleared afterwards - read
	// deadlines are managed per protocol mode by the transport.
	if err := tlsConn.SetDeadline(time.Now().Add(d.config.HandshakeTimeout())); err != nil {
		raw.Close()
		return nil, common.NewError(common.ErrKTLSHandshake, "failed to arm handshake deadline for %s: %v", endpoint.Addr(), err)
	}
	if err := tlsConn.Handshake(); err != nil {
		raw.Close()
		if isTimeout(err) {
			return nil, common.NewError(common.ErrKTLSHandshake, "tls handshake with %s timed out after %s", endpoint.Addr(), d.config.HandshakeTimeout())
		}
		return nil, common.NewError(common.ErrKTLSHandshake, "tls handshake with %s failed: %v", endpoint.Addr(), err)
	}
	if err := tlsConn.SetDeadline(time.Time{}); err != nil {
		tlsConn.Close()
		return nil, common.NewError(common.ErrKTLSHandshake, "failed to clear handshake deadline for %s: %v", endpoint.Addr(), err)
	}

	return &connection{Conn: tlsConn, cw: tlsConn}, nil
}

// isTimeout reports whether err is a network timeout.
func isTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}
