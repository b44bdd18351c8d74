package common

import (
	"crypto/x509"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// Default configuration values for the wire protocol. The read timeout and
// chunk size are fixed by the server's framing behaviour, the handshake
// timeout bounds how long a TLS server may stall before the dial fails.
const (
	DefaultReadTimeoutSecond      = 120
	DefaultHandshakeTimeoutSecond = 10
	DefaultChunkSizeKB            = 256
	DefaultSubscribePollMillis    = 1000
)

// ClientConfig holds all configuration parameters for the wire client.
// The zero value is not usable - use DefaultClientConfig as a starting point.
type ClientConfig struct {
	// ReadTimeoutSecond is the per-read deadline for one-shot exchanges.
	// Subscriptions are not subject to it.
	ReadTimeoutSecond int

	// HandshakeTimeoutSecond bounds the TLS handshake.
	HandshakeTimeoutSecond int

	// ChunkSizeKB is the size of the read buffer per chunk (in KB).
	ChunkSizeKB int

	// SubscribePollMillis is the interval at which a subscription read loop
	// wakes up to observe its cancellation token while the stream is idle.
	SubscribePollMillis int

	// DisableTLS makes any TLS-requested dial fail immediately with a
	// configuration error instead of negotiating. There is never a
	// plaintext fallback.
	DisableTLS bool

	// TLSRootCAs overrides the trusted root store used to verify the
	// server certificate. Nil means the system root pool.
	TLSRootCAs *x509.CertPool

	// Logging configuration
	LogLevel string
}

// DefaultClientConfig returns the configuration matching the wire protocol
// defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ReadTimeoutSecond:      DefaultReadTimeoutSecond,
		HandshakeTimeoutSecond: DefaultHandshakeTimeoutSecond,
		ChunkSizeKB:            DefaultChunkSizeKB,
		SubscribePollMillis:    DefaultSubscribePollMillis,
		LogLevel:               "info",
	}
}

// ReadTimeout returns the per-read deadline as a time.Duration.
func (c *ClientConfig) ReadTimeout() time.Duration {
	if c.ReadTimeoutSecond <= 0 {
		return DefaultReadTimeoutSecond * time.Second
	}
	return time.Duration(c.ReadTimeoutSecond) * time.Second
}

// HandshakeTimeout returns the TLS handshake deadline as a time.Duration.
func (c *ClientConfig) HandshakeTimeout() time.Duration {
	if c.HandshakeTimeoutSecond <= 0 {
		return DefaultHandshakeTimeoutSecond * time.Second
	}
	return time.Duration(c.HandshakeTimeoutSecond) * time.Second
}

// ChunkSize returns the read buffer size in bytes.
func (c *ClientConfig) ChunkSize() int {
	if c.ChunkSizeKB <= 0 {
		return DefaultChunkSizeKB * 1024
	}
	return c.ChunkSizeKB * 1024
}

// SubscribePoll returns the idle poll interval for subscription loops.
func (c *ClientConfig) SubscribePoll() time.Duration {
	if c.SubscribePollMillis <= 0 {
		return DefaultSubscribePollMillis * time.Millisecond
	}
	return time.Duration(c.SubscribePollMillis) * time.Millisecond
}

// String returns a formatted string representation of the configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Wire Client")
	addField("Read Timeout", fmt.Sprintf("%d sec", c.ReadTimeoutSecond))
	addField("Handshake Timeout", fmt.Sprintf("%d sec", c.HandshakeTimeoutSecond))
	addField("Chunk Size", fmt.Sprintf("%d KB", c.ChunkSizeKB))
	addField("Subscribe Poll", fmt.Sprintf("%d ms", c.SubscribePollMillis))

	addSection("TLS")
	addField("Enabled", strconv.FormatBool(!c.DisableTLS))
	addField("Custom Root CAs", strconv.FormatBool(c.TLSRootCAs != nil))

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}
