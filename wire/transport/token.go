package transport

import (
	"sync"
	"sync/atomic"
)

// CancelToken is the cooperative cancellation signal for a subscription.
// The owner sets it, the read loop only polls it between reads - it never
// interrupts an in-flight read. A token outlives a single subscription: it
// is created alongside the subscription and dropped when the subscription
// ends. Create tokens with NewCancelToken.
type CancelToken struct {
	flag atomic.Bool
	once sync.Once
	done chan struct{}
}

// NewCancelToken creates an unset token.
func NewCancelToken() *CancelToken {
	return &CancelToken{done: make(chan struct{})}
}

// Cancel requests termination of the subscription observing this token.
// Safe to call from any goroutine, and more than once.
func (t *CancelToken) Cancel() {
	t.flag.Store(true)
	t.once.Do(func() {
		if t.done != nil {
			close(t.done)
		}
	})
}

// Cancelled reports whether the token has been set. A nil token is never
// cancelled.
func (t *CancelToken) Cancelled() bool {
	if t == nil {
		return false
	}
	return t.flag.Load()
}

// Done returns a channel closed on cancellation, so frame producers can
// select between delivering and giving up. A nil token returns a nil
// channel, which never becomes ready.
func (t *CancelToken) Done() <-chan struct{} {
	if t == nil {
		return nil
	}
	return t.done
}
