package storage

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pixil98/go-essentials/internal/game"
	"github.com/pixil98/go-essentials/internal/snbt"
)

// Codec converts a player record to and from the bytes of its file.
type Codec interface {
	Extension() string
	Marshal(*game.PlayerData) ([]byte, error)
	Unmarshal(uuid.UUID, []byte) (*game.PlayerData, error)
}

// SNBTCodec stores records as indented SNBT text.
type SNBTCodec struct {
	// CompactEmpty writes empty lists and compounds as [] and {}.
	CompactEmpty bool
}

func (c *SNBTCodec) Extension() string {
	return ".snbt"
}

func (c *SNBTCodec) Marshal(p *game.PlayerData) ([]byte, error) {
	var opts []snbt.PrettyOpt
	if c.CompactEmpty {
		opts = append(opts, snbt.WithCompactEmpty())
	}
	return []byte(snbt.Pretty(snbt.Marshal(p.Encode()), opts...)), nil
}

func (c *SNBTCodec) Unmarshal(id uuid.UUID, b []byte) (*game.PlayerData, error) {
	tree, err := snbt.ParseCompound(string(b))
	if err != nil {
		return nil, fmt.Errorf("parsing snbt: %w", err)
	}
	return game.DecodePlayerData(id, tree)
}
