package transport

import (
	"bufio"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/lynxkv/lynx-go/wire/common"
)

// testConfig returns a configuration with short timeouts suitable for
// loopback testing
func testConfig() common.ClientConfig {
	conf := common.DefaultClientConfig()
	conf.ReadTimeoutSecond = 1
	conf.HandshakeTimeoutSecond = 1
	conf.SubscribePollMillis = 50
	return conf
}

// startServer starts a loopback listener that serves exactly one connection
// with the given handler and returns the endpoint to reach it
func startServer(t *testing.T, handler func(conn net.Conn)) Endpoint {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to start loopback listener: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		handler(conn)
	}()

	return Endpoint{Host: "127.0.0.1", Port: ln.Addr().(*net.TCPAddr).Port}
}

// readRequestLine reads one delimiter-terminated request off a server-side
// connection
func readRequestLine(conn net.Conn) ([]byte, error) {
	return bufio.NewReader(conn).ReadBytes('\n')
}

// TestEndpointAddressing tests address rendering and the subscription port
// convention
func TestEndpointAddressing(t *testing.T) {
	e := Endpoint{Host: "example.com", Port: 21210}

	if got := e.Addr(); got != "example.com:21210" {
		t.Errorf("Unexpected address: %s", got)
	}

	sub := e.Subscription()
	if sub.Port != 21211 {
		t.Errorf("Subscription endpoint should use port+1, got %d", sub.Port)
	}
	if e.Port != 21210 {
		t.Errorf("Subscription() must not mutate the original endpoint")
	}
}

// TestSendOneShot tests the bounded exchange: write a request, read one
// delimited response
func TestSendOneShot(t *testing.T) {
	var gotRequest []byte
	var mu sync.Mutex

	endpoint := startServer(t, func(conn net.Conn) {
		line, err := readRequestLine(conn)
		if err != nil {
			return
		}
		mu.Lock()
		gotRequest = line
		mu.Unlock()

		conn.Write([]byte(`{"status":true,"payload":"ok","error":null}` + "\n"))
		// hold the connection open: the client must stop at the delimiter
		time.Sleep(100 * time.Millisecond)
	})

	tr := New(testConfig())
	resp, err := tr.Send(endpoint, []byte(`{"command":"get_len"}`+"\n"))
	if err != nil {
		t.Fatalf("Failed to send: %v", err)
	}

	if string(resp) != `{"status":true,"payload":"ok","error":null}`+"\n" {
		t.Errorf("Unexpected response: %q", resp)
	}

	mu.Lock()
	defer mu.Unlock()
	if string(gotRequest) != `{"command":"get_len"}`+"\n" {
		t.Errorf("Server saw unexpected request: %q", gotRequest)
	}
}

// TestSendEmptyClose tests that a clean close without data is a valid empty
// outcome, not an error
func TestSendEmptyClose(t *testing.T) {
	endpoint := startServer(t, func(conn net.Conn) {
		readRequestLine(conn)
		// close without responding
	})

	tr := New(testConfig())
	resp, err := tr.Send(endpoint, []byte("{}\n"))
	if err != nil {
		t.Fatalf("Clean empty close should not error: %v", err)
	}
	if resp != nil {
		t.Errorf("Expected nil response, got %q", resp)
	}
}

// TestSendTimeout tests that a silent server aborts the one-shot exchange
// with a timeout error
func TestSendTimeout(t *testing.T) {
	release := make(chan struct{})
	endpoint := startServer(t, func(conn net.Conn) {
		readRequestLine(conn)
		<-release // never respond within the test's deadline
	})
	defer close(release)

	tr := New(testConfig())
	_, err := tr.Send(endpoint, []byte("{}\n"))
	if !common.IsKind(err, common.ErrKTimeout) {
		t.Errorf("Expected timeout error, got %v", err)
	}
}

// TestSendConnectionRefused tests the error kind when no server listens
func TestSendConnectionRefused(t *testing.T) {
	// grab a port that is certainly closed by binding and releasing it
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to find a free port: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	tr := New(testConfig())
	_, err = tr.Send(Endpoint{Host: "127.0.0.1", Port: port}, []byte("{}\n"))
	if !common.IsKind(err, common.ErrKConnection) {
		t.Errorf("Expected connection error, got %v", err)
	}
}

// TestSubscribeFrames tests the streaming loop: frames split across reads
// are reassembled and bytes past a delimiter are carried over, not dropped
func TestSubscribeFrames(t *testing.T) {
	endpoint := startServer(t, func(conn net.Conn) {
		readRequestLine(conn)
		// first write ends mid-frame, the tail belongs to the second frame
		conn.Write([]byte("{\"message\":\"first\"}\n{\"mess"))
		time.Sleep(50 * time.Millisecond)
		conn.Write([]byte("age\":\"second\"}\n"))
	})

	var mu sync.Mutex
	var frames []string
	callback := func(frame []byte) {
		mu.Lock()
		frames = append(frames, string(frame))
		mu.Unlock()
	}

	tr := New(testConfig())
	err := tr.Subscribe(endpoint, []byte(`{"subscribe":true}`+"\n"), callback, NewCancelToken())
	if err != nil {
		t.Fatalf("Subscription failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{"{\"message\":\"first\"}\n", "{\"message\":\"second\"}\n"}
	if len(frames) != len(want) {
		t.Fatalf("Expected %d frames, got %d: %q", len(want), len(frames), frames)
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Errorf("Frame %d mismatch: got %q, want %q", i, frames[i], want[i])
		}
	}
}

// TestSubscribeCancel tests cooperative cancellation of an idle stream
func TestSubscribeCancel(t *testing.T) {
	release := make(chan struct{})
	endpoint := startServer(t, func(conn net.Conn) {
		readRequestLine(conn)
		<-release // idle stream, nothing to send
	})
	defer close(release)

	token := NewCancelToken()
	done := make(chan error, 1)

	tr := New(testConfig())
	go func() {
		done <- tr.Subscribe(endpoint, []byte(`{"subscribe":true}`+"\n"), nil, token)
	}()

	// let the loop establish, then cancel
	time.Sleep(100 * time.Millisecond)
	token.Cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Cancelled subscription should end cleanly: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Subscription did not observe cancellation")
	}
}

// TestSendAuto tests read-protocol selection from the encoded request bytes
func TestSendAuto(t *testing.T) {
	t.Run("OneShot", func(t *testing.T) {
		endpoint := startServer(t, func(conn net.Conn) {
			readRequestLine(conn)
			conn.Write([]byte("{\"status\":true}\n"))
		})

		tr := New(testConfig())
		resp, err := tr.SendAuto(endpoint, []byte(`{"command":"get_len"}`+"\n"), nil, nil)
		if err != nil {
			t.Fatalf("One-shot dispatch failed: %v", err)
		}
		if resp == nil {
			t.Errorf("One-shot dispatch should return response bytes")
		}
	})

	t.Run("Streaming", func(t *testing.T) {
		endpoint := startServer(t, func(conn net.Conn) {
			readRequestLine(conn)
			conn.Write([]byte("{\"status\":true}\n"))
		})

		var mu sync.Mutex
		var count int
		callback := func(frame []byte) {
			mu.Lock()
			count++
			mu.Unlock()
		}

		tr := New(testConfig())
		resp, err := tr.SendAuto(endpoint, []byte(`{"subscribe":true}`+"\n"), callback, NewCancelToken())
		if err != nil {
			t.Fatalf("Streaming dispatch failed: %v", err)
		}
		if resp != nil {
			t.Errorf("Streaming dispatch must not return response bytes")
		}

		mu.Lock()
		defer mu.Unlock()
		if count != 1 {
			t.Errorf("Expected 1 delivered frame, got %d", count)
		}
	})
}

// TestCancelToken tests token semantics including the nil receiver
func TestCancelToken(t *testing.T) {
	token := NewCancelToken()
	if token.Cancelled() {
		t.Errorf("Fresh token must not be cancelled")
	}

	select {
	case <-token.Done():
		t.Errorf("Done must not be ready before Cancel")
	default:
	}

	token.Cancel()
	token.Cancel() // idempotent
	if !token.Cancelled() {
		t.Errorf("Token must report cancellation after Cancel")
	}

	select {
	case <-token.Done():
	default:
		t.Errorf("Done must be closed after Cancel")
	}

	var nilToken *CancelToken
	if nilToken.Cancelled() {
		t.Errorf("Nil token must never be cancelled")
	}
	select {
	case <-nilToken.Done():
		t.Errorf("A nil token's Done channel must never become ready")
	default:
	}
}

// TestDeliverFrames tests frame splitting and remainder handling directly
func TestDeliverFrames(t *testing.T) {
	var frames []string
	callback := func(frame []byte) {
		frames = append(frames, string(frame))
	}

	remainder := deliverFrames([]byte("a\nb\npartial"), callback)

	if len(frames) != 2 || frames[0] != "a\n" || frames[1] != "b\n" {
		t.Errorf("Unexpected frames: %q", frames)
	}
	if string(remainder) != "partial" {
		t.Errorf("Expected remainder %q, got %q", "partial", remainder)
	}

	// no delimiter: everything stays buffered
	frames = nil
	remainder = deliverFrames([]byte("incomplete"), callback)
	if len(frames) != 0 {
		t.Errorf("No frames expected without a delimiter, got %q", frames)
	}
	if string(remainder) != "incomplete" {
		t.Errorf("Expected remainder %q, got %q", "incomplete", remainder)
	}
}
