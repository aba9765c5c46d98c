package messaging

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pixil98/go-essentials/internal/game"
	"github.com/pixil98/go-essentials/internal/teleport"
)

const DefaultRequestTimeout = 2 * time.Second

// RemoteHost asks the host process over NATS to resolve dimensions and move
// players.
type RemoteHost struct {
	server  *NatsServer
	timeout time.Duration
}

func NewRemoteHost(server *NatsServer, timeout time.Duration) *RemoteHost {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &RemoteHost{server: server, timeout: timeout}
}

// ResolveWorld reports a dimension as unknown when the host cannot be asked.
func (h *RemoteHost) ResolveWorld(dimension string) (teleport.World, bool) {
	var reply WorldReply
	if err := h.request(WorldSubject, WorldRequest{Dimension: dimension}, &reply); err != nil {
		return nil, false
	}
	if !reply.Loaded {
		return nil, false
	}
	return dimension, true
}

func (h *RemoteHost) Relocate(p teleport.Player, _ teleport.World, dest game.Location) error {
	var reply RelocateReply
	err := h.request(RelocateSubject, RelocateRequest{
		Player:   p.UUID(),
		Location: NewWireLocation(dest),
	}, &reply)
	if err != nil {
		return err
	}
	if reply.Error != "" {
		return errors.New(reply.Error)
	}
	return nil
}

func (h *RemoteHost) request(subject string, req any, reply any) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", subject, err)
	}

	resp, err := h.server.Request(subject, data, h.timeout)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", subject, err)
	}

	if err := json.Unmarshal(resp, reply); err != nil {
		return fmt.Errorf("decoding %s reply: %w", subject, err)
	}
	return nil
}
