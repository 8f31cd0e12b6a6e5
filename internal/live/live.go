// Package live fans out "interview changed" signals to live comment queries.
//
// Signals carry no payload: a subscriber re-reads the store when woken.
// Each subscription buffers at most one pending signal, so a slow reader
// coalesces bursts instead of blocking publishers.
package live

import "context"

// Notifier publishes and subscribes to per-interview change signals.
type Notifier interface {
	Publish(ctx context.Context, interviewID int64) error
	Subscribe(ctx context.Context, interviewID int64) (Subscription, error)
}

// Subscription receives a value on C after every change to its interview.
type Subscription interface {
	C() <-chan struct{}
	Close() error
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
