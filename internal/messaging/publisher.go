package messaging

import (
	"fmt"

	"github.com/google/uuid"
)

// NatsPublisher publishes messages to individual player NATS channels.
type NatsPublisher struct {
	server *NatsServer
}

// NewNatsPublisher wraps a NatsServer for per-player message delivery.
func NewNatsPublisher(server *NatsServer) *NatsPublisher {
	return &NatsPublisher{server: server}
}

func (p *NatsPublisher) PublishToPlayer(id uuid.UUID, data []byte) error {
	return p.server.Publish(PlayerSubject(id), data)
}

// PlayerSubject is the subject a host listens on to relay chat to a player.
func PlayerSubject(id uuid.UUID) string {
	return fmt.Sprintf("player-%s", id)
}
