package storage

import (
	"fmt"

	"github.com/Tnze/go-mc/nbt"
	"github.com/google/uuid"
	"github.com/pixil98/go-essentials/internal/game"
	"github.com/pixil98/go-essentials/internal/snbt"
)

// NBTCodec stores records as uncompressed binary NBT with an unnamed root
// compound. The field layout matches the SNBT files.
type NBTCodec struct{}

func (c *NBTCodec) Extension() string {
	return ".dat"
}

func (c *NBTCodec) Marshal(p *game.PlayerData) ([]byte, error) {
	msg := nbt.StringifiedMessage(snbt.Marshal(p.Encode()))

	b, err := nbt.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshalling nbt: %w", err)
	}
	return b, nil
}

func (c *NBTCodec) Unmarshal(id uuid.UUID, b []byte) (*game.PlayerData, error) {
	var msg nbt.StringifiedMessage
	if err := nbt.Unmarshal(b, &msg); err != nil {
		return nil, fmt.Errorf("unmarshalling nbt: %w", err)
	}

	tree, err := snbt.ParseCompound(string(msg))
	if err != nil {
		return nil, fmt.Errorf("parsing nbt text: %w", err)
	}
	return game.DecodePlayerData(id, tree)
}
