package task

import "sync/atomic"

// CancelToken is a shared cooperative-cancellation flag with a single
// state transition: armed to cancelled. It has no other states and cannot
// be un-cancelled.
type CancelToken struct {
	cancelled atomic.Bool
}

// NewCancelToken returns a freshly armed token.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel flips the token to cancelled. Calling it more than once is a
// no-op.
func (t *CancelToken) Cancel() {
	t.cancelled.Store(true)
}

// Cancelled reports whether Cancel has been called. Satisfies
// history.CancelToken.
func (t *CancelToken) Cancelled() bool {
	return t.cancelled.Load()
}
