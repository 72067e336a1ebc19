package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/frobware/go-ipa/server"
)

// ServeCmd runs the emulation daemon.
type ServeCmd struct {
	TCPAddress string `name:"tcp-address" help:"TCP address for the diagnostics server. Overrides server.address in the config file."`
}

// Run executes the serve command.
func (c *ServeCmd) Run(cli *CLI) error {
	logger, err := cli.LoggerFromConfig()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	appConfig, err := cli.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.TCPAddress != "" {
		appConfig.Server.Address = c.TCPAddress
	}
	dirs, err := cli.RuntimeDirs()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return server.Run(ctx, server.RunConfig{
		Dirs:   dirs,
		Config: appConfig,
		Logger: logger,
	})
}
