package messaging

import (
	"context"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	// Healthy reports whether the broker is currently accepting publishes.
	// Readiness probes use it to take a wedged worker out of rotation.
	Healthy() bool
	Close() error
}
