package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/bookcfg-go/internal/bookconf/config"
	"github.com/yndnr/bookcfg-go/internal/core/document"
	"github.com/yndnr/bookcfg-go/internal/core/domain"
)

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Print one value of the merged configuration",
		ArgsUsage: "FILE KEY",
		Flags:     []cli.Flag{outputFlag()},
		Action:    getAction,
	}
}

// KeysCommand returns the keys command.
func KeysCommand() *cli.Command {
	return &cli.Command{
		Name:      "keys",
		Usage:     "List the flattened keys of the merged configuration",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "values",
				Usage: "Show values next to the keys",
			},
			&cli.BoolFlag{
				Name:  "schema",
				Usage: "List the recognised keys instead of reading a file",
			},
		},
		Action: keysAction,
	}
}

func getAction(c *cli.Context) error {
	key := c.Args().Get(1)
	if key == "" {
		return domain.ErrMissingArgument.WithDetails("key required")
	}
	formatter, err := formatterFor(c)
	if err != nil {
		return err
	}

	book, err := loadBook(c)
	if err != nil {
		return err
	}

	n, ok := book.Effective.Lookup(key)
	if !ok {
		return domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("key %q not found in %s", key, book.Path))
	}
	switch n.Kind() {
	case document.KindMapping, document.KindSequence:
		return formatter.Format(c.App.Writer, n)
	default:
		_, err := fmt.Fprintln(c.App.Writer, n.String())
		return err
	}
}

func keysAction(c *cli.Context) error {
	if c.Bool("schema") {
		for _, k := range config.KnownKeys() {
			fmt.Fprintln(c.App.Writer, k)
		}
		return nil
	}

	book, err := loadBook(c)
	if err != nil {
		return err
	}

	w := c.App.Writer
	for _, e := range book.Effective.Flatten() {
		if c.Bool("values") {
			fmt.Fprintf(w, "%s = %s\n", e.Key(), e.Value.String())
			continue
		}
		fmt.Fprintln(w, e.Key())
	}
	return nil
}
