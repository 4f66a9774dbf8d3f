// Package config defines the typed view of a book configuration.
package config

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/yndnr/bookcfg-go/internal/core/domain"
)

var (
	githubPathRE = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)
	scpLikeRE    = regexp.MustCompile(`^[A-Za-z0-9_.-]+@[A-Za-z0-9_.-]+:[^\s]+$`)
)

// Verify validates recognised values. All problems are collected into a
// single *domain.ValidationError.
func Verify(cfg *Config) error {
	var problems []string
	problems = append(problems, verifyExecute(&cfg.Execute)...)
	problems = append(problems, verifyRepository(&cfg.Repository)...)
	problems = append(problems, verifyHTML(&cfg.HTML)...)
	problems = append(problems, verifySphinx(&cfg.Sphinx)...)

	if len(problems) == 0 {
		return nil
	}
	return &domain.ValidationError{Problems: problems}
}

func verifyExecute(e *ExecutionPolicy) []string {
	var problems []string
	if !e.Mode.Valid() {
		problems = append(problems, fmt.Sprintf(
			"execute.execute_notebooks must be one of %s, got %q", joinModes(), string(e.Mode)))
	}
	if e.Timeout < -1 {
		problems = append(problems, fmt.Sprintf(
			"execute.timeout must be -1 (no limit) or a positive number of seconds, got %d", e.Timeout))
	}
	if e.StderrOutput != "" && !contains(StderrOutputs, e.StderrOutput) {
		problems = append(problems, fmt.Sprintf(
			"execute.stderr_output must be one of %s, got %q", strings.Join(StderrOutputs, ", "), e.StderrOutput))
	}
	return problems
}

func verifyRepository(r *RepositoryLink) []string {
	var problems []string
	if r.URL != "" && !isRepositoryURL(r.URL) {
		problems = append(problems, fmt.Sprintf(
			"repository.url must be an absolute http(s), ssh or git URL, got %q", r.URL))
	}
	if p := r.PathToBook; p != "" {
		clean := path.Clean(strings.ReplaceAll(p, "\\", "/"))
		if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
			problems = append(problems, fmt.Sprintf(
				"repository.path_to_book must be a relative path inside the repository, got %q", p))
		}
	}
	return problems
}

func verifyHTML(h *HTMLSection) []string {
	var problems []string
	if h.Baseurl != "" && !isHTTPURL(h.Baseurl) {
		problems = append(problems, fmt.Sprintf("html.baseurl must be an absolute http(s) URL, got %q", h.Baseurl))
	}
	if u := h.Comments.Utterances; u != nil {
		switch u.(type) {
		case bool, map[string]any:
		default:
			problems = append(problems, fmt.Sprintf("html.comments.utterances must be false or a mapping, got %T", u))
		}
	}
	return problems
}

func verifySphinx(s *SphinxSection) []string {
	var problems []string
	for i, ext := range s.ExtraExtensions {
		if strings.TrimSpace(ext) == "" {
			problems = append(problems, fmt.Sprintf("sphinx.extra_extensions[%d] is empty", i))
		}
	}
	if p := s.Config.IssuesGithubPath; p != "" && !githubPathRE.MatchString(p) {
		problems = append(problems, fmt.Sprintf(
			"sphinx.config.issues_github_path must be owner/repo, got %q", p))
	}

	names := make([]string, 0, len(s.Config.IntersphinxMapping))
	for name := range s.Config.IntersphinxMapping {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		target := s.Config.IntersphinxMapping[name]
		if !isHTTPURL(target.URL) {
			problems = append(problems, fmt.Sprintf(
				"sphinx.config.intersphinx_mapping.%s url must be an absolute http(s) URL, got %q", name, target.URL))
		}
	}
	return problems
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isRepositoryURL(raw string) bool {
	if scpLikeRE.MatchString(raw) && !strings.Contains(raw, "://") {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ssh", "git":
		return true
	}
	return false
}

func joinModes() string {
	s := make([]string, len(ExecutionModes))
	for i, m := range ExecutionModes {
		s[i] = string(m)
	}
	return strings.Join(s, ", ")
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
