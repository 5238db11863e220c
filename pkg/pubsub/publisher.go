package pubsub

import "context"

type Publisher interface {
	Publish(ctx context.Context, topic string, pack *Pack) error
}

// Pack is a message travelling through the queue. Messages having the same key
// are delivered in order.
type Pack struct {
	Key []byte
	Msg []byte
}
