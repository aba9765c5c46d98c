package command

import (
	"fmt"

	"github.com/pixil98/go-essentials/internal/commands"
	"github.com/pixil98/go-essentials/internal/driver"
	"github.com/pixil98/go-essentials/internal/messaging"
	"github.com/pixil98/go-essentials/internal/teleport"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	store, err := cfg.Storage.BuildPlayerStore()
	if err != nil {
		return nil, fmt.Errorf("creating player store: %w", err)
	}

	// Flush resident records on the autosave interval and on shutdown
	autosave := driver.NewDriver([]driver.Manager{
		store,
	}, driver.WithTickLength(cfg.autosaveInterval()))

	workers := service.WorkerList{
		"autosave": autosave,
	}

	if cfg.Nats == nil {
		return workers, nil
	}

	// Commands arrive from the host over nats
	server, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	pub := messaging.NewNatsPublisher(server)
	tp := teleport.NewTeleporter(messaging.NewRemoteHost(server, cfg.Nats.requestTimeout()), store)

	handler, err := commands.NewHandler(store, tp, pub, cfg.Messages)
	if err != nil {
		return nil, fmt.Errorf("creating command handler: %w", err)
	}

	workers["nats"] = server
	workers["bridge"] = messaging.NewBridge(server, handler, pub)

	return workers, nil
}
