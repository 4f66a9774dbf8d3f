package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/bookcfg-go/internal/bookconf"
	"github.com/yndnr/bookcfg-go/internal/bookconf/config"
	"github.com/yndnr/bookcfg-go/internal/cli/output"
	"github.com/yndnr/bookcfg-go/internal/core/domain"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output format: yaml, json, table",
		Value:   string(output.FormatYAML),
	}
}

// ShowCommand returns the show command.
func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print a configuration file",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			outputFlag(),
			&cli.BoolFlag{
				Name:  "merged",
				Usage: "Show the file merged with overlays, environment and --set overrides",
			},
			&cli.BoolFlag{
				Name:  "typed",
				Usage: "Show the decoded configuration with defaults applied",
			},
			&cli.BoolFlag{
				Name:  "sanitize",
				Usage: "Mask credentials in the typed configuration (implies --typed)",
			},
			&cli.StringSliceFlag{
				Name:  "define",
				Usage: "Replace __NAME__ placeholders (NAME=VALUE, repeatable)",
			},
		},
		Action: showAction,
	}
}

func showAction(c *cli.Context) error {
	formatter, err := formatterFor(c)
	if err != nil {
		return err
	}
	defines, err := parseDefines(c.StringSlice("define"))
	if err != nil {
		return err
	}

	book, err := loadBook(c, bookconf.WithDefines(defines))
	if err != nil {
		return err
	}

	var data any = book.Document
	switch {
	case c.Bool("sanitize"):
		data = config.Sanitize(book.Config)
	case c.Bool("typed"):
		data = book.Config
	case c.Bool("merged"):
		data = book.Effective
	default:
		if tf, ok := formatter.(*output.TableFormatter); ok {
			tf.Lines = true
		}
	}
	return formatter.Format(c.App.Writer, data)
}

func formatterFor(c *cli.Context) (output.Formatter, error) {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return nil, domain.ErrInvalidArgument.WithCause(err)
	}
	return output.NewFormatter(format), nil
}

// parseDefines turns NAME=VALUE pairs into a placeholder map.
func parseDefines(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	vars := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("define %q: want NAME=VALUE", p))
		}
		vars[name] = value
	}
	return vars, nil
}
