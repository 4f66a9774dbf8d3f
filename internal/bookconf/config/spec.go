// Package config defines the typed view of a book configuration.
package config

// ExecutionMode controls whether notebooks are re-executed before rendering.
type ExecutionMode string

const (
	// ExecuteAuto executes notebooks that have missing outputs.
	ExecuteAuto ExecutionMode = "auto"
	// ExecuteCache executes notebooks and caches outputs between builds.
	ExecuteCache ExecutionMode = "cache"
	// ExecuteForce executes every notebook on every build.
	ExecuteForce ExecutionMode = "force"
	// ExecuteOff never executes notebooks.
	ExecuteOff ExecutionMode = "off"
)

// ExecutionModes lists the accepted modes.
var ExecutionModes = []ExecutionMode{ExecuteAuto, ExecuteCache, ExecuteForce, ExecuteOff}

// Valid reports whether m is one of ExecutionModes.
func (m ExecutionMode) Valid() bool {
	for _, v := range ExecutionModes {
		if m == v {
			return true
		}
	}
	return false
}

// StderrOutputs lists the accepted execute.stderr_output values.
var StderrOutputs = []string{"show", "remove", "remove-warn", "warn", "error", "severe"}

// Config is the root configuration of a book build (_config.yml).
type Config struct {
	Title     string `koanf:"title" json:"title"`
	Author    string `koanf:"author" json:"author"`
	Copyright string `koanf:"copyright" json:"copyright"`
	Logo      string `koanf:"logo" json:"logo"`

	ExcludePatterns   []string `koanf:"exclude_patterns" json:"exclude_patterns"`
	OnlyBuildTOCFiles bool     `koanf:"only_build_toc_files" json:"only_build_toc_files"`
	BibtexBibfiles    []string `koanf:"bibtex_bibfiles" json:"bibtex_bibfiles"`

	Execute       ExecutionPolicy `koanf:"execute" json:"execute"`
	Parse         ParseSection    `koanf:"parse" json:"parse"`
	HTML          HTMLSection     `koanf:"html" json:"html"`
	Latex         LatexSection    `koanf:"latex" json:"latex"`
	LaunchButtons LaunchButtons   `koanf:"launch_buttons" json:"launch_buttons"`
	Repository    RepositoryLink  `koanf:"repository" json:"repository"`
	Sphinx        SphinxSection   `koanf:"sphinx" json:"sphinx"`
}

// BookMetadata is the title/author/copyright subset of Config.
type BookMetadata struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Copyright string `json:"copyright"`
}

// Metadata returns the book metadata.
func (c *Config) Metadata() BookMetadata {
	return BookMetadata{
		Title:     c.Title,
		Author:    c.Author,
		Copyright: c.Copyright,
	}
}

// ExecutionPolicy configures notebook execution before rendering.
type ExecutionPolicy struct {
	// Mode is execute.execute_notebooks.
	Mode ExecutionMode `koanf:"execute_notebooks" json:"execute_notebooks"`

	// Cache is the cache directory; empty means the default under _build.
	Cache string `koanf:"cache" json:"cache"`

	ExcludePatterns []string `koanf:"exclude_patterns" json:"exclude_patterns"`

	// Timeout is the per-cell timeout in seconds; -1 disables it.
	Timeout int `koanf:"timeout" json:"timeout"`

	RunInTemp    bool   `koanf:"run_in_temp" json:"run_in_temp"`
	AllowErrors  bool   `koanf:"allow_errors" json:"allow_errors"`
	StderrOutput string `koanf:"stderr_output" json:"stderr_output"`
}

// ParseSection configures markup parsing.
type ParseSection struct {
	MystExtendedSyntax   bool           `koanf:"myst_extended_syntax" json:"myst_extended_syntax"`
	MystEnableExtensions []string       `koanf:"myst_enable_extensions" json:"myst_enable_extensions"`
	MystURLSchemes       []string       `koanf:"myst_url_schemes" json:"myst_url_schemes"`
	MystSubstitutions    map[string]any `koanf:"myst_substitutions" json:"myst_substitutions,omitempty"`
}

// HTMLSection configures HTML output.
type HTMLSection struct {
	Favicon string `koanf:"favicon" json:"favicon"`
	Baseurl string `koanf:"baseurl" json:"baseurl"`

	UseIssuesButton     bool `koanf:"use_issues_button" json:"use_issues_button"`
	UseRepositoryButton bool `koanf:"use_repository_button" json:"use_repository_button"`
	UseEditPageButton   bool `koanf:"use_edit_page_button" json:"use_edit_page_button"`

	// ExtraNavbar and ExtraFooter are raw HTML; they may contain
	// __NAME__ placeholders substituted at build time.
	ExtraNavbar string `koanf:"extra_navbar" json:"extra_navbar"`
	ExtraFooter string `koanf:"extra_footer" json:"extra_footer"`

	HomePageInNavbar     bool `koanf:"home_page_in_navbar" json:"home_page_in_navbar"`
	UseMultitocNumbering bool `koanf:"use_multitoc_numbering" json:"use_multitoc_numbering"`

	Analytics AnalyticsConfig `koanf:"analytics" json:"analytics"`
	Comments  CommentsConfig  `koanf:"comments" json:"comments"`
}

// AnalyticsConfig configures page analytics.
type AnalyticsConfig struct {
	GoogleAnalyticsID        string `koanf:"google_analytics_id" json:"google_analytics_id"`
	PlausibleAnalyticsDomain string `koanf:"plausible_analytics_domain" json:"plausible_analytics_domain"`
	PlausibleAnalyticsURL    string `koanf:"plausible_analytics_url" json:"plausible_analytics_url"`
}

// CommentsConfig configures page comment widgets.
type CommentsConfig struct {
	Hypothesis bool `koanf:"hypothesis" json:"hypothesis"`
	// Utterances is false or a mapping of utterances settings.
	Utterances any `koanf:"utterances" json:"utterances"`
}

// LatexSection configures PDF output.
type LatexSection struct {
	LatexEngine         string         `koanf:"latex_engine" json:"latex_engine"`
	UseJupyterbookLatex bool           `koanf:"use_jupyterbook_latex" json:"use_jupyterbook_latex"`
	LatexDocuments      LatexDocuments `koanf:"latex_documents" json:"latex_documents"`
}

// LatexDocuments names the generated LaTeX document.
type LatexDocuments struct {
	Targetname string `koanf:"targetname" json:"targetname"`
}

// LaunchButtons configures interactive launch buttons.
type LaunchButtons struct {
	NotebookInterface string `koanf:"notebook_interface" json:"notebook_interface"`
	BinderhubURL      string `koanf:"binderhub_url" json:"binderhub_url"`
	JupyterhubURL     string `koanf:"jupyterhub_url" json:"jupyterhub_url"`
	Thebe             bool   `koanf:"thebe" json:"thebe"`
	ColabURL          string `koanf:"colab_url" json:"colab_url"`
}

// RepositoryLink locates the book sources for edit/issue links.
type RepositoryLink struct {
	URL        string `koanf:"url" json:"url"`
	Branch     string `koanf:"branch" json:"branch"`
	PathToBook string `koanf:"path_to_book" json:"path_to_book"`
}

// SphinxSection configures the documentation extensions.
type SphinxSection struct {
	// ExtraExtensions are plugin identifiers loaded in order.
	ExtraExtensions []string `koanf:"extra_extensions" json:"extra_extensions"`
	// LocalExtensions maps an extension name to a path inside the book.
	LocalExtensions map[string]string `koanf:"local_extensions" json:"local_extensions,omitempty"`
	RecursiveUpdate bool              `koanf:"recursive_update" json:"recursive_update"`
	Config          SphinxConfig      `koanf:"config" json:"config"`
}

// SphinxConfig holds extension settings. Keys without a dedicated field
// are kept in Extra.
type SphinxConfig struct {
	IssuesGithubPath   string                       `koanf:"issues_github_path" json:"issues_github_path"`
	TodoIncludeTodos   bool                         `koanf:"todo_include_todos" json:"todo_include_todos"`
	IntersphinxMapping map[string]IntersphinxTarget `koanf:"intersphinx_mapping" json:"intersphinx_mapping,omitempty"`
	Extra              map[string]any               `koanf:",remain" json:"extra,omitempty"`
}

// ExtensionList is the ordered plugin list plus its settings.
type ExtensionList struct {
	Identifiers []string
	Settings    SphinxConfig
}

// Extensions returns the plugin identifiers and their settings.
func (c *Config) Extensions() ExtensionList {
	ids := make([]string, len(c.Sphinx.ExtraExtensions))
	copy(ids, c.Sphinx.ExtraExtensions)
	return ExtensionList{
		Identifiers: ids,
		Settings:    c.Sphinx.Config,
	}
}

// Has reports whether the extension identifier is listed.
func (l ExtensionList) Has(id string) bool {
	for _, v := range l.Identifiers {
		if v == id {
			return true
		}
	}
	return false
}
