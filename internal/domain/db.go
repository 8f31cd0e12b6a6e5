package domain

import "context"

// Database is the lifecycle surface of the backing store. Implementations
// own their migrations.
type Database interface {
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
