package command

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/bookcfg-go/internal/bookconf"
	"github.com/yndnr/bookcfg-go/internal/bookconf/config"
	"github.com/yndnr/bookcfg-go/internal/cli/output"
)

// ValidateCommand returns the validate command.
func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Load and verify a configuration file",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Treat unrecognised keys as errors",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only print warnings and errors",
			},
		},
		Action: validateAction,
	}
}

func validateAction(c *cli.Context) error {
	book, err := loadBook(c, bookconf.WithStrict(c.Bool("strict")))
	if err != nil {
		return err
	}

	w := c.App.Writer
	for _, warn := range book.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
	fmt.Fprintf(w, "✓ %s is valid (%d warnings)\n", book.Path, len(book.Warnings))
	if c.Bool("quiet") {
		return nil
	}
	fmt.Fprintln(w)
	return summary(book.Config).Render(w)
}

// summary lists the settings a book build depends on most.
func summary(cfg *config.Config) *output.Table {
	md := cfg.Metadata()
	ext := cfg.Extensions()

	t := &output.Table{}
	t.SetHeaders("SETTING", "VALUE")
	t.AddRow("title", md.Title)
	t.AddRow("author", md.Author)
	if md.Copyright != "" {
		t.AddRow("copyright", md.Copyright)
	}
	t.AddRow("execute_notebooks", string(cfg.Execute.Mode))
	if cfg.Repository.URL != "" {
		t.AddRow("repository", config.Sanitize(cfg).Repository.URL+"@"+cfg.Repository.Branch)
	}
	t.AddRow("extensions", strconv.Itoa(len(ext.Identifiers)))

	names := make([]string, 0, len(ext.Settings.IntersphinxMapping))
	for name := range ext.Settings.IntersphinxMapping {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		target := ext.Settings.IntersphinxMapping[name]
		inv := target.InventoryOrDefault()
		if inv == "" {
			inv = "(default inventory)"
		}
		t.AddRow("intersphinx."+name, target.URL+" "+inv)
	}

	if ps := config.Placeholders(cfg); len(ps) > 0 {
		for i, p := range ps {
			ps[i] = "__" + p + "__"
		}
		t.AddRow("placeholders", strings.Join(ps, ", "))
	}
	return t
}
