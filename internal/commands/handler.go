package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/google/uuid"
	"github.com/pixil98/go-essentials/internal/display"
	"github.com/pixil98/go-essentials/internal/game"
	"github.com/pixil98/go-essentials/internal/storage"
	"github.com/pixil98/go-essentials/internal/teleport"
)

// DefaultHomeName is used when a home command is given no name.
const DefaultHomeName = "home"

// Publisher delivers a reply to a single player.
type Publisher interface {
	PublishToPlayer(id uuid.UUID, data []byte) error
}

// Handler runs the home and back commands once the host has parsed them.
// Problems the player can fix are returned as *UserError.
type Handler struct {
	records  storage.Storer
	tp       *teleport.Teleporter
	pub      Publisher
	messages *messageTemplates
}

func NewHandler(records storage.Storer, tp *teleport.Teleporter, pub Publisher, messages Messages) (*Handler, error) {
	mt, err := messages.compile()
	if err != nil {
		return nil, fmt.Errorf("compiling messages: %w", err)
	}

	return &Handler{
		records:  records,
		tp:       tp,
		pub:      pub,
		messages: mt,
	}, nil
}

type homeData struct {
	Name  string
	Count int
	Max   int
	Names []string
}

// SetHome saves the player's current location as a home.
func (h *Handler) SetHome(ctx context.Context, p teleport.Player, name string) error {
	name = homeName(name)
	loc := p.Location()

	if err := loc.Validate(); err != nil {
		slog.WarnContext(ctx, "refusing home at invalid location", "uuid", p.UUID(), "error", err)
		return h.userError(h.messages.invalidLocation, homeData{Name: name})
	}

	data := h.records.Get(p.UUID())
	if !data.AddHome(name, loc) {
		return h.userError(h.messages.homeLimit, homeData{Name: name, Max: data.MaxHomes()})
	}

	h.records.Save(p.UUID())
	slog.InfoContext(ctx, "home set", "uuid", p.UUID(), "home", game.NormalizeHomeName(name))

	return h.reply(p, h.messages.homeSet, homeData{
		Name:  game.NormalizeHomeName(name),
		Count: data.HomeCount(),
		Max:   data.MaxHomes(),
	})
}

func (h *Handler) DelHome(ctx context.Context, p teleport.Player, name string) error {
	name = homeName(name)
	data := h.records.Get(p.UUID())

	if !data.RemoveHome(name) {
		return h.userError(h.messages.homeNotFound, homeData{Name: name})
	}

	h.records.Save(p.UUID())
	slog.InfoContext(ctx, "home deleted", "uuid", p.UUID(), "home", game.NormalizeHomeName(name))

	return h.reply(p, h.messages.homeDeleted, homeData{Name: game.NormalizeHomeName(name)})
}

// Home teleports the player to a saved home.
func (h *Handler) Home(ctx context.Context, p teleport.Player, name string) error {
	name = homeName(name)

	dest, ok := h.records.Get(p.UUID()).Home(name)
	if !ok {
		return h.userError(h.messages.homeNotFound, homeData{Name: name})
	}

	if err := h.teleport(p, dest); err != nil {
		return err
	}

	return h.reply(p, h.messages.homeTeleport, homeData{Name: game.NormalizeHomeName(name)})
}

// Homes lists the player's homes in the order they were set.
func (h *Handler) Homes(ctx context.Context, p teleport.Player) error {
	data := h.records.Get(p.UUID())

	homes := data.Homes()
	if len(homes) == 0 {
		return h.reply(p, h.messages.noHomes, nil)
	}

	names := make([]string, 0, len(homes))
	for _, home := range homes {
		names = append(names, home.Name)
	}

	return h.reply(p, h.messages.homeList, homeData{
		Count: len(homes),
		Max:   data.MaxHomes(),
		Names: names,
	})
}

// Back returns the player to where they were before their last teleport.
func (h *Handler) Back(ctx context.Context, p teleport.Player) error {
	dest, ok := h.records.Get(p.UUID()).LastPosition()
	if !ok {
		return h.userError(h.messages.noBack, nil)
	}

	if err := h.teleport(p, dest); err != nil {
		return err
	}

	return h.reply(p, h.messages.back, struct{ Location string }{display.FormatLocation(dest)})
}

// Save persists the player's record immediately.
func (h *Handler) Save(ctx context.Context, p teleport.Player) error {
	h.records.Save(p.UUID())
	return h.reply(p, h.messages.saved, nil)
}

func (h *Handler) teleport(p teleport.Player, dest game.Location) error {
	err := h.tp.Teleport(p, dest)
	if errors.Is(err, teleport.ErrUnknownDimension) {
		return h.userError(h.messages.unknownDimension, struct{ Dimension string }{dest.Dimension})
	}
	if err != nil {
		return fmt.Errorf("teleporting player: %w", err)
	}
	return nil
}

func (h *Handler) reply(p teleport.Player, tmpl *template.Template, data any) error {
	msg, err := expand(tmpl, data)
	if err != nil {
		return err
	}
	if h.pub == nil {
		return nil
	}
	return h.pub.PublishToPlayer(p.UUID(), []byte(display.Wrap(msg)))
}

func (h *Handler) userError(tmpl *template.Template, data any) error {
	msg, err := expand(tmpl, data)
	if err != nil {
		return err
	}
	return NewUserError(msg)
}

func homeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultHomeName
	}
	return name
}
