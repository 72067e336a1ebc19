package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/config"
	"github.com/frobware/go-ipa/interpreter/sim"
	"github.com/frobware/go-ipa/interpreter/store/sqlite"
	"github.com/frobware/go-ipa/lock"
	"github.com/frobware/go-ipa/manager"
)

// RunConfig configures the daemon.
type RunConfig struct {
	Dirs   config.RuntimeDirs
	Config config.Config
	Logger *slog.Logger
}

// Run attaches to the emulation backend under the attach lock and
// serves diagnostics until ctx is cancelled. The lock is held for the
// lifetime of the daemon so no second process reprograms the
// hardware.
func Run(ctx context.Context, cfg RunConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = manager.WithOpIDHandler(logger)
	hwCfg := cfg.Config.Hardware

	hw, err := hwCfg.ParsedHWType()
	if err != nil {
		return err
	}
	platform, err := hwCfg.ParsedPlatform()
	if err != nil {
		return err
	}
	mode, err := hwCfg.ParsedMode()
	if err != nil {
		return err
	}
	if mode != ipa.HWModeEmulation {
		return fmt.Errorf("hardware mode %s: only the emulation backend is available", mode)
	}

	dirs := cfg.Dirs
	if err := dirs.EnsureDirectories(); err != nil {
		return fmt.Errorf("runtime directory setup failed: %w", err)
	}

	held, err := lock.Acquire(ctx, dirs.Lock())
	if err != nil {
		return fmt.Errorf("acquire attach lock: %w", err)
	}
	defer held.Close()

	dbPath := cfg.Config.Store.Path
	if dbPath == "" {
		dbPath = dirs.DBPath()
	}
	st, err := sqlite.New(ctx, dbPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open store at %s: %w", dbPath, err)
	}
	defer st.Close()

	mgr := manager.New(manager.Options{
		Hardware:      sim.New(hw, logger),
		Store:         st,
		Platform:      platform,
		Mode:          mode,
		StopPolicy:    cfg.Config.Channel.StopPolicy(),
		SuspendSettle: cfg.Config.Channel.SuspendSettle.Duration,
		Logger:        logger,
	})
	if _, err := mgr.Attach(ctx, held.Scope()); err != nil {
		return err
	}

	listeners, err := listen(dirs.SocketPath(), cfg.Config.Server.Address)
	if err != nil {
		return err
	}
	return New(mgr, logger).Serve(ctx, listeners...)
}

// listen opens the unix socket and, when tcpAddr is set, a TCP
// listener.
func listen(socketPath, tcpAddr string) ([]net.Listener, error) {
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}
	unixListener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", socketPath, err)
	}
	if err := os.Chmod(socketPath, 0o660); err != nil {
		unixListener.Close()
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}
	if tcpAddr == "" {
		return []net.Listener{unixListener}, nil
	}
	tcpListener, err := net.Listen("tcp", tcpAddr)
	if err != nil {
		unixListener.Close()
		return nil, fmt.Errorf("failed to listen on TCP %s: %w", tcpAddr, err)
	}
	return []net.Listener{unixListener, tcpListener}, nil
}
