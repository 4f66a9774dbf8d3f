package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/bookcfg-go/internal/bookconf"
	"github.com/yndnr/bookcfg-go/internal/core/domain"
	"github.com/yndnr/bookcfg-go/internal/infra/buildinfo"
	"github.com/yndnr/bookcfg-go/internal/infra/confloader"
	"github.com/yndnr/bookcfg-go/internal/telemetry/logger"
)

const loggerKey = "logger"

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "bookcfg",
		Usage:   "Load, validate and inspect a book's _config.yml",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ValidateCommand(),
			ShowCommand(),
			GetCommand(),
			KeysCommand(),
			WatchCommand(),
			VersionCommand(),
		},
		Before: func(c *cli.Context) error {
			flags := ParseGlobalFlags(c)
			log, err := logger.New(logger.Config{
				Level:  flags.LogLevel,
				Format: flags.LogFormat,
				Output: c.App.ErrWriter,
			})
			if err != nil {
				return domain.ErrInvalidArgument.WithCause(err)
			}
			logger.SetDefault(log)
			if c.App.Metadata == nil {
				c.App.Metadata = make(map[string]any)
			}
			c.App.Metadata[loggerKey] = log
			return nil
		},
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Aliases: []string{"l"},
			Usage:   "Log level: debug, info, warn, error",
			EnvVars: []string{"BOOKCFG_LOG_LEVEL"},
			Value:   "warn",
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "Log format: text, json",
			EnvVars: []string{"BOOKCFG_LOG_FORMAT"},
			Value:   "text",
		},
		&cli.StringSliceFlag{
			Name:  "set",
			Usage: "Override a configuration value (key=value, repeatable)",
		},
		&cli.StringSliceFlag{
			Name:    "overlay",
			Usage:   "Merge a YAML file over the configuration file (repeatable)",
			EnvVars: []string{"BOOKCFG_OVERLAY"},
		},
		&cli.StringFlag{
			Name:  "env-prefix",
			Usage: "Environment variable prefix for overrides (empty disables)",
			Value: confloader.DefaultEnvPrefix,
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	LogLevel  string
	LogFormat string

	// Overrides
	Set       []string
	Overlays  []string
	EnvPrefix string
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		LogLevel:  c.String("log-level"),
		LogFormat: c.String("log-format"),
		Set:       c.StringSlice("set"),
		Overlays:  c.StringSlice("overlay"),
		EnvPrefix: c.String("env-prefix"),
	}
}

// GetLogger retrieves the logger created by the Before hook.
func GetLogger(c *cli.Context) logger.Logger {
	if c.App.Metadata != nil {
		if l, ok := c.App.Metadata[loggerKey].(logger.Logger); ok {
			return l
		}
	}
	return logger.Default()
}

// loadOptions builds the bookconf options shared by every command.
func loadOptions(c *cli.Context, extra ...bookconf.Option) []bookconf.Option {
	flags := ParseGlobalFlags(c)
	opts := []bookconf.Option{
		bookconf.WithEnvPrefix(flags.EnvPrefix),
		bookconf.WithAssignments(flags.Set...),
		bookconf.WithOverlays(flags.Overlays...),
		bookconf.WithLogger(GetLogger(c)),
	}
	return append(opts, extra...)
}

// loadBook loads the FILE argument of the current command.
func loadBook(c *cli.Context, extra ...bookconf.Option) (*bookconf.Book, error) {
	path, err := fileArg(c)
	if err != nil {
		return nil, err
	}
	return bookconf.Load(c.Context, path, loadOptions(c, extra...)...)
}

func fileArg(c *cli.Context) (string, error) {
	path := c.Args().First()
	if path == "" {
		return "", domain.ErrMissingArgument.WithDetails("configuration file path required")
	}
	return path, nil
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
