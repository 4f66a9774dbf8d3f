// Package config defines the typed view of a book configuration.
package config

// Default configuration values.
const (
	DefaultTitle  = "My Jupyter Book"
	DefaultAuthor = "The Jupyter Book Community"

	DefaultExecutionMode = ExecuteAuto
	DefaultTimeout       = 30
	DefaultStderrOutput  = "show"

	DefaultRepositoryURL    = "https://github.com/executablebooks/jupyter-book"
	DefaultRepositoryBranch = "master"

	DefaultExtraNavbar = `Powered by <a href="https://jupyterbook.org">Jupyter Book</a>`

	DefaultLatexEngine       = "pdflatex"
	DefaultLatexTargetname   = "book.tex"
	DefaultNotebookInterface = "classic"
)

// Default returns the default book configuration.
// Each call returns fresh slices and maps.
func Default() *Config {
	return &Config{
		Title:  DefaultTitle,
		Author: DefaultAuthor,
		ExcludePatterns: []string{
			"_build", "Thumbs.db", ".DS_Store", "**.ipynb_checkpoints",
		},
		Execute: ExecutionPolicy{
			Mode:         DefaultExecutionMode,
			Timeout:      DefaultTimeout,
			StderrOutput: DefaultStderrOutput,
		},
		Parse: ParseSection{
			MystEnableExtensions: []string{
				"colon_fence", "dollarmath", "linkify", "substitution", "tasklist",
			},
			MystURLSchemes: []string{"mailto", "http", "https"},
		},
		HTML: HTMLSection{
			ExtraNavbar:          DefaultExtraNavbar,
			UseMultitocNumbering: true,
		},
		Latex: LatexSection{
			LatexEngine:         DefaultLatexEngine,
			UseJupyterbookLatex: true,
			LatexDocuments: LatexDocuments{
				Targetname: DefaultLatexTargetname,
			},
		},
		LaunchButtons: LaunchButtons{
			NotebookInterface: DefaultNotebookInterface,
		},
		Repository: RepositoryLink{
			URL:    DefaultRepositoryURL,
			Branch: DefaultRepositoryBranch,
		},
	}
}
