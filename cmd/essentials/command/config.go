package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-essentials/internal/commands"
	"github.com/pixil98/go-essentials/internal/driver"
	"github.com/pixil98/go-essentials/internal/game"
	"github.com/pixil98/go-essentials/internal/storage"
)

type Config struct {
	AutosaveInterval string            `json:"autosave_interval"`
	Storage          StorageConfig     `json:"storage"`
	Messages         commands.Messages `json:"messages"`
	Nats             *NatsConfig       `json:"nats,omitempty"`
}

// NewConfig returns a config holding the defaults. Keys missing from the
// config file keep these values.
func NewConfig() *Config {
	return &Config{
		AutosaveInterval: driver.DefaultTickLength.String(),
		Storage: StorageConfig{
			DataDir:         storage.DefaultDirName,
			Format:          FormatSNBT,
			DefaultMaxHomes: game.DefaultMaxHomes,
		},
		Messages: commands.DefaultMessages(),
	}
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	d, err := time.ParseDuration(c.AutosaveInterval)
	if err != nil {
		el.Add(fmt.Errorf("parsing autosave_interval: %w", err))
	} else if d < time.Second {
		el.Add(fmt.Errorf("autosave_interval must be at least 1 second"))
	}

	if err := c.Storage.Validate(); err != nil {
		el.Add(fmt.Errorf("storage: %w", err))
	}
	if err := c.Messages.Validate(); err != nil {
		el.Add(fmt.Errorf("messages: %w", err))
	}
	if c.Nats != nil {
		if err := c.Nats.Validate(); err != nil {
			el.Add(fmt.Errorf("nats: %w", err))
		}
	}

	return el.Err()
}

func (c *Config) autosaveInterval() time.Duration {
	d, err := time.ParseDuration(c.AutosaveInterval)
	if err != nil {
		return driver.DefaultTickLength
	}
	return d
}
