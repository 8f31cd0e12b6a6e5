package domain

import "time"

// StreamToken is a credential for the real-time video service, bound to one
// identity. It is minted per request and never stored.
type StreamToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}
