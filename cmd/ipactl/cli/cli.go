package cli

import (
	"io"
	"log/slog"
	"os"
	"reflect"

	"github.com/alecthomas/kong"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/client"
	"github.com/frobware/go-ipa/config"
	"github.com/frobware/go-ipa/logging"
)

// CLI is the root command structure for ipactl.
type CLI struct {
	Config  string `name:"config" help:"Config file path." default:"${default_config_path}"`
	Log     string `name:"log" help:"Log spec (e.g., 'info,manager=debug')." env:"IPA_LOG"`
	RunRoot string `name:"run-root" help:"Runtime directory root." default:"${default_run_root}"`

	Revisions RevisionsCmd `cmd:"" help:"List known hardware revisions."`
	Map       MapCmd       `cmd:"" help:"Dump the endpoint table of a revision."`
	Limits    LimitsCmd    `cmd:"" help:"Dump resource group limits of a revision."`
	Quantize  QuantizeCmd  `cmd:"" help:"Encode a timer value for a revision."`
	Validate  ValidateCmd  `cmd:"" help:"Check every endpoint table and resource limit."`
	Serve     ServeCmd     `cmd:"" help:"Attach to the emulation backend and serve diagnostics."`
	Status    StatusCmd    `cmd:"" help:"Query a running daemon."`

	// Out receives command output. Nil selects os.Stdout.
	Out io.Writer `kong:"-"`
}

// KongOptions returns the Kong configuration options for the CLI.
func KongOptions() []kong.Option {
	return []kong.Option{
		kong.Name("ipactl"),
		kong.Description("IPA endpoint tables, resource limits and emulation daemon."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.TypeMapper(reflect.TypeOf(ipa.Revision(0)), revisionMapper()),
		kong.Vars{
			"default_config_path": config.DefaultConfigPath,
			"default_run_root":    config.DefaultRuntimeDirs().Base(),
			"default_revision":    ipa.Rev4_5.String(),
		},
	}
}

func (c *CLI) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// LoadConfig loads the configuration from the config file path.
func (c *CLI) LoadConfig() (config.Config, error) {
	return config.Load(c.Config)
}

// RuntimeDirs returns the runtime directories under --run-root.
func (c *CLI) RuntimeDirs() (config.RuntimeDirs, error) {
	return config.NewRuntimeDirs(c.RunRoot)
}

// Logger creates a logger for one-shot commands. They default to
// warn unless --log is given.
func (c *CLI) Logger() (*slog.Logger, error) {
	spec := c.Log
	if spec == "" {
		spec = "warn"
	}
	logger, err := c.logger(spec)
	if err != nil {
		return nil, err
	}
	return logger.With("component", "cli"), nil
}

// LoggerFromConfig creates a logger using config file settings, for
// the daemon.
func (c *CLI) LoggerFromConfig() (*slog.Logger, error) {
	return c.logger(c.Log)
}

func (c *CLI) logger(cliSpec string) (*slog.Logger, error) {
	cfg, err := c.LoadConfig()
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		CLISpec:    cliSpec,
		EnvSpec:    os.Getenv(logging.EnvVar),
		ConfigSpec: cfg.Logging.ToSpec(),
		Format:     format,
		Output:     os.Stderr,
	})
}

// Client dials the daemon at address, or the default socket under
// --run-root when address is empty. The returned client must be
// closed.
func (c *CLI) Client(address string) (client.Client, error) {
	logger, err := c.Logger()
	if err != nil {
		return nil, err
	}
	if address == "" {
		dirs, err := c.RuntimeDirs()
		if err != nil {
			return nil, err
		}
		address = dirs.SocketPath()
	}
	return client.Dial(address, client.WithLogger(logger))
}
