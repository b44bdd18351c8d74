package keyspace

import (
	"github.com/lynxkv/lynx-go/lib/keys"
	"github.com/lynxkv/lynx-go/wire/common"
	"github.com/lynxkv/lynx-go/wire/protocol"
	"github.com/lynxkv/lynx-go/wire/transport"
)

// frameBuffer is the channel capacity between the read loop and the
// consumer. The read loop blocks once it is full, which in turn applies
// backpressure on the socket.
const frameBuffer = 16

// Subscription is a long-lived stream of change frames for a keyspace,
// running on its own goroutine. Frames are raw wire frames; decode them
// with protocol.ParseStreamMessage. The stream ends when the server closes
// the connection or Cancel is called.
type Subscription struct {
	id     uint64
	token  *transport.CancelToken
	frames chan []byte
	done   chan struct{}
	err    error
}

// Frames returns the channel of raw stream frames. It is closed when the
// subscription ends.
func (s *Subscription) Frames() <-chan []byte {
	return s.frames
}

// Done returns a channel closed once the subscription has fully ended.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Cancel requests cooperative termination of the subscription. The read
// loop observes the token between reads, so termination is not immediate.
func (s *Subscription) Cancel() {
	s.token.Cancel()
}

// Err returns the error that ended the subscription, if any. Only valid
// after Done is closed.
func (s *Subscription) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Subscribe opens a subscription for this keyspace, narrowed to a single
// record if key or customKey is given (at most one of the two). The
// subscription connects to the server's secondary streaming listener on
// port+1 and registers itself with the engine so it can be cancelled
// individually or via CancelAllSubscriptions.
func (k *Keyspace) Subscribe(key, customKey string) (*Subscription, error) {
	store, err := k.engine.RequireStore()
	if err != nil {
		return nil, err
	}
	if key != "" && customKey != "" {
		return nil, common.NewError(common.ErrKBothKeys, "you selected both key and custom key, choose one")
	}

	var keyPtr *string
	if customKey != "" {
		key = keys.HashKey(customKey)
	}
	if key != "" {
		keyPtr = &key
	}

	req := protocol.NewSubscribeRequest(k.engine.Credentials(), store, k.name, keyPtr)
	data, err := req.Encode()
	if err != nil {
		return nil, err
	}

	token := transport.NewCancelToken()
	sub := &Subscription{
		token:  token,
		frames: make(chan []byte, frameBuffer),
		done:   make(chan struct{}),
	}
	sub.id = k.engine.RegisterSubscription(token)

	endpoint := k.engine.Endpoint().Subscription()

	go func() {
		defer close(sub.done)
		defer close(sub.frames)
		defer k.engine.UnregisterSubscription(sub.id)

		// The callback's frame is only valid during the call, so copy
		// before handing it across the channel boundary. A consumer
		// that cancelled may have stopped draining the channel, so a
		// blocked delivery races against the token: frames arriving
		// after cancellation are dropped rather than wedging the read
		// loop away from its token poll.
		err := k.engine.Transport().Subscribe(endpoint, data, func(frame []byte) {
			select {
			case sub.frames <- append([]byte(nil), frame...):
			case <-token.Done():
			}
		}, token)
		if err != nil {
			Logger.Errorf("subscription to %s/%s failed: %v", store, k.name, err)
			sub.err = err
		}
	}()

	return sub, nil
}
