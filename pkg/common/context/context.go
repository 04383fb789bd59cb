// Package context provides deadline helpers shared by the flush and
// close paths, where a timed-out wait and a canceled wait have to be
// told apart.
package context

import (
	"context"
	"time"
)

// WithTimeoutOrCancel creates a context that is canceled either when the
// parent is canceled or when the timeout duration elapses, whichever
// comes first.
func WithTimeoutOrCancel(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// IsTimedOut returns true if the context ended because its deadline
// passed rather than because it was canceled.
func IsTimedOut(ctx context.Context) bool {
	return ctx.Err() == context.DeadlineExceeded
}
