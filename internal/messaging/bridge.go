package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pixil98/go-essentials/internal/commands"
	"github.com/pixil98/go-essentials/internal/display"
	"github.com/pixil98/go-essentials/internal/game"
)

// remotePlayer is a player as described by a command request. Its location
// is the one the host sent with the command.
type remotePlayer struct {
	id  uuid.UUID
	loc game.Location
}

func (p *remotePlayer) UUID() uuid.UUID         { return p.id }
func (p *remotePlayer) Location() game.Location { return p.loc }

// Bridge receives parsed commands from the host and runs them.
type Bridge struct {
	server  *NatsServer
	handler *commands.Handler
	pub     commands.Publisher
}

func NewBridge(server *NatsServer, handler *commands.Handler, pub commands.Publisher) *Bridge {
	return &Bridge{server: server, handler: handler, pub: pub}
}

func (b *Bridge) Start(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	case <-b.server.Ready():
	}

	unsub, err := b.server.Respond(CommandSubject, func(data []byte) []byte {
		return b.handle(ctx, data)
	})
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", CommandSubject, err)
	}
	defer unsub()

	slog.InfoContext(ctx, "command bridge ready", "subject", CommandSubject)

	<-ctx.Done()
	return nil
}

func (b *Bridge) handle(ctx context.Context, data []byte) []byte {
	var reply CommandReply

	var req CommandRequest
	if err := json.Unmarshal(data, &req); err != nil {
		reply.Error = fmt.Sprintf("decoding command: %v", err)
	} else if err := b.dispatch(ctx, req); err != nil {
		var userErr *commands.UserError
		if errors.As(err, &userErr) {
			b.tell(req.Player, userErr.Message)
		} else {
			slog.ErrorContext(ctx, "command failed", "uuid", req.Player, "command", req.Command, "error", err)
			reply.Error = err.Error()
		}
	}

	out, err := json.Marshal(reply)
	if err != nil {
		slog.ErrorContext(ctx, "encoding command reply", "error", err)
		return nil
	}
	return out
}

func (b *Bridge) dispatch(ctx context.Context, req CommandRequest) error {
	if req.Player == uuid.Nil {
		return fmt.Errorf("command has no player")
	}
	p := &remotePlayer{id: req.Player, loc: req.Location.Location()}

	switch strings.ToLower(req.Command) {
	case "sethome":
		return b.handler.SetHome(ctx, p, req.Arg)
	case "delhome":
		return b.handler.DelHome(ctx, p, req.Arg)
	case "home":
		return b.handler.Home(ctx, p, req.Arg)
	case "homes":
		return b.handler.Homes(ctx, p)
	case "back":
		return b.handler.Back(ctx, p)
	case "savehomes":
		return b.handler.Save(ctx, p)
	default:
		return fmt.Errorf("unknown command %q", req.Command)
	}
}

func (b *Bridge) tell(id uuid.UUID, msg string) {
	if b.pub == nil {
		return
	}
	if err := b.pub.PublishToPlayer(id, []byte(display.Wrap(msg))); err != nil {
		slog.Warn("failed to publish to player", "uuid", id, "error", err)
	}
}
