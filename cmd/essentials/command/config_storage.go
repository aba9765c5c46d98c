package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-essentials/internal/storage"
)

type Format int

const (
	FormatSNBT Format = iota
	FormatNBT
)

func (f *Format) UnmarshalText(text []byte) error {
	switch string(text) {
	case "snbt":
		*f = FormatSNBT
	case "nbt":
		*f = FormatNBT
	default:
		return fmt.Errorf("unknown storage format: %s", text)
	}
	return nil
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case FormatSNBT:
		return []byte("snbt"), nil
	case FormatNBT:
		return []byte("nbt"), nil
	}
	return nil, fmt.Errorf("unknown storage format: %d", int(f))
}

type StorageConfig struct {
	WorldRoot       string `json:"world_root"`
	DataDir         string `json:"data_dir"`
	Format          Format `json:"format"`
	CompactEmpty    bool   `json:"compact_empty"`
	DefaultMaxHomes int    `json:"default_max_homes"`
}

func (c *StorageConfig) Validate() error {
	el := errors.NewErrorList()

	if c.WorldRoot == "" {
		el.Add(fmt.Errorf("world_root is required"))
	} else if info, err := os.Stat(c.WorldRoot); err != nil {
		el.Add(fmt.Errorf("invalid world_root %q: %w", c.WorldRoot, err))
	} else if !info.IsDir() {
		el.Add(fmt.Errorf("world_root %q is not a directory", c.WorldRoot))
	}

	if c.DataDir == "" {
		el.Add(fmt.Errorf("data_dir is required"))
	}
	if c.DefaultMaxHomes < 0 {
		el.Add(fmt.Errorf("default_max_homes must not be negative"))
	}

	return el.Err()
}

// Path is the directory holding one file per player.
func (c *StorageConfig) Path() string {
	if filepath.IsAbs(c.DataDir) {
		return c.DataDir
	}
	return filepath.Join(c.WorldRoot, c.DataDir)
}

func (c *StorageConfig) BuildPlayerStore() (*storage.PlayerStore, error) {
	var codec storage.Codec = &storage.SNBTCodec{CompactEmpty: c.CompactEmpty}
	if c.Format == FormatNBT {
		codec = &storage.NBTCodec{}
	}

	return storage.NewPlayerStore(c.Path(),
		storage.WithCodec(codec),
		storage.WithDefaultMaxHomes(c.DefaultMaxHomes),
	)
}
