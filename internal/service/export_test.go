package service

import "time"

// SetClock replaces the limiter's clock in tests.
func (tb *TokenBucket) SetClock(now func() time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.now = now
}

// SetClock replaces the client's clock in tests.
func (c *StreamClient) SetClock(now func() time.Time) {
	c.now = now
}
