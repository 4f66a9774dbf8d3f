package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/bookcfg-go/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show build information",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output format: text, yaml, json",
				Value:   "text",
			},
		},
		Action: versionAction,
	}
}

func versionAction(c *cli.Context) error {
	if c.String("output") == "text" {
		_, err := fmt.Fprintf(c.App.Writer, "%s %s\n", c.App.Name, buildinfo.String())
		return err
	}
	formatter, err := formatterFor(c)
	if err != nil {
		return err
	}
	return formatter.Format(c.App.Writer, buildinfo.Get())
}
