package teleport

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pixil98/go-essentials/internal/game"
)

var (
	ErrUnknownDimension = errors.New("unknown dimension")
	ErrNoLastPosition   = errors.New("no last position")
)

// Player is the host's live player. Location is read once per teleport and
// never retained.
type Player interface {
	UUID() uuid.UUID
	Location() game.Location
}

// World is an opaque handle to a loaded dimension.
type World any

// Host resolves dimensions and moves players between them.
type Host interface {
	ResolveWorld(dimension string) (World, bool)
	Relocate(p Player, w World, dest game.Location) error
}

// Records is the part of the player store the teleporter needs.
type Records interface {
	Get(uuid.UUID) *game.PlayerData
}

type Teleporter struct {
	host    Host
	records Records
}

func NewTeleporter(host Host, records Records) *Teleporter {
	return &Teleporter{host: host, records: records}
}

// Teleport moves p to dest and, once the move succeeds, records where p
// stood before as the last position.
func (t *Teleporter) Teleport(p Player, dest game.Location) error {
	w, ok := t.host.ResolveWorld(dest.Dimension)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDimension, dest.Dimension)
	}

	from := p.Location()

	if err := t.host.Relocate(p, w, dest); err != nil {
		return fmt.Errorf("relocating player: %w", err)
	}

	t.records.Get(p.UUID()).SetLastPosition(from)
	return nil
}

// Back returns p to its last position. The position p leaves becomes the new
// last position, so repeated calls alternate between two places.
func (t *Teleporter) Back(p Player) error {
	dest, ok := t.records.Get(p.UUID()).LastPosition()
	if !ok {
		return ErrNoLastPosition
	}
	return t.Teleport(p, dest)
}
