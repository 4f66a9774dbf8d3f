package config

import (
	"sort"
	"strings"

	"github.com/yndnr/bookcfg-go/internal/core/document"
	"github.com/yndnr/bookcfg-go/internal/core/domain"
)

// keyNode is one level of the recognised key tree.
type keyNode struct {
	children map[string]*keyNode
	// open accepts any sub-keys without warnings.
	open bool
}

func leaf() *keyNode { return &keyNode{} }

func open() *keyNode { return &keyNode{open: true} }

func section(children map[string]*keyNode) *keyNode {
	return &keyNode{children: children}
}

// schema mirrors the koanf tags of Config.
var schema = section(map[string]*keyNode{
	"title":                leaf(),
	"author":               leaf(),
	"copyright":            leaf(),
	"logo":                 leaf(),
	"exclude_patterns":     leaf(),
	"only_build_toc_files": leaf(),
	"bibtex_bibfiles":      leaf(),
	"execute": section(map[string]*keyNode{
		"execute_notebooks": leaf(),
		"cache":             leaf(),
		"exclude_patterns":  leaf(),
		"timeout":           leaf(),
		"run_in_temp":       leaf(),
		"allow_errors":      leaf(),
		"stderr_output":     leaf(),
	}),
	"parse": section(map[string]*keyNode{
		"myst_extended_syntax":   leaf(),
		"myst_enable_extensions": leaf(),
		"myst_url_schemes":       leaf(),
		"myst_substitutions":     open(),
	}),
	"html": section(map[string]*keyNode{
		"favicon":                leaf(),
		"baseurl":                leaf(),
		"use_issues_button":      leaf(),
		"use_repository_button":  leaf(),
		"use_edit_page_button":   leaf(),
		"extra_navbar":           leaf(),
		"extra_footer":           leaf(),
		"home_page_in_navbar":    leaf(),
		"use_multitoc_numbering": leaf(),
		"analytics": section(map[string]*keyNode{
			"google_analytics_id":        leaf(),
			"plausible_analytics_domain": leaf(),
			"plausible_analytics_url":    leaf(),
		}),
		"comments": section(map[string]*keyNode{
			"hypothesis": leaf(),
			"utterances": open(),
		}),
	}),
	"latex": section(map[string]*keyNode{
		"latex_engine":          leaf(),
		"use_jupyterbook_latex": leaf(),
		"latex_documents": section(map[string]*keyNode{
			"targetname": leaf(),
		}),
	}),
	"launch_buttons": section(map[string]*keyNode{
		"notebook_interface": leaf(),
		"binderhub_url":      leaf(),
		"jupyterhub_url":     leaf(),
		"thebe":              leaf(),
		"colab_url":          leaf(),
	}),
	"repository": section(map[string]*keyNode{
		"url":          leaf(),
		"branch":       leaf(),
		"path_to_book": leaf(),
	}),
	"sphinx": section(map[string]*keyNode{
		"extra_extensions": leaf(),
		"local_extensions": open(),
		"recursive_update": leaf(),
		"config":           open(),
	}),
})

// ExpectedKeys are the top-level sections a complete file declares.
// Absent ones are reported as missing and take their defaults.
var ExpectedKeys = []string{
	"title", "author", "copyright", "execute", "repository", "html", "sphinx",
}

// IsKnownKey reports whether a dotted key is recognised. Keys below an
// open section are always recognised.
func IsKnownKey(key string) bool {
	n := schema
	for _, part := range strings.Split(key, ".") {
		if n.open {
			return true
		}
		next, ok := n.children[part]
		if !ok {
			return false
		}
		n = next
	}
	return true
}

// KnownKeys returns every recognised dotted key, sorted.
func KnownKeys() []string {
	var out []string
	var walk func(prefix string, n *keyNode)
	walk = func(prefix string, n *keyNode) {
		for name, child := range n.children {
			key := name
			if prefix != "" {
				key = prefix + "." + name
			}
			out = append(out, key)
			walk(key, child)
		}
	}
	walk("", schema)
	sort.Strings(out)
	return out
}

// CheckKeys reports unrecognised keys and missing expected sections.
// Unknown keys are listed in source order, followed by missing ones.
func CheckKeys(doc *document.Document) []domain.SchemaWarning {
	var warnings []domain.SchemaWarning
	checkMapping(doc.Name(), doc.Root(), schema, nil, &warnings)

	for _, key := range ExpectedKeys {
		if !doc.Has(key) {
			warnings = append(warnings, domain.SchemaWarning{
				Position: domain.Position{File: doc.Name()},
				Kind:     domain.WarningMissingKey,
				Key:      key,
			})
		}
	}
	return warnings
}

func checkMapping(file string, n *document.Node, s *keyNode, prefix []string, out *[]domain.SchemaWarning) {
	for _, p := range n.Pairs() {
		path := append(append([]string(nil), prefix...), p.Key)

		child, ok := s.children[p.Key]
		if !ok {
			*out = append(*out, domain.SchemaWarning{
				Position: domain.Position{File: file, Line: p.Line()},
				Kind:     domain.WarningUnknownKey,
				Key:      strings.Join(path, "."),
			})
			continue
		}
		if child.open || len(child.children) == 0 {
			continue
		}
		if p.Value.Kind() == document.KindMapping {
			checkMapping(file, p.Value, child, path, out)
		}
	}
}

// UnknownKeys filters warnings down to unrecognised keys.
func UnknownKeys(warnings []domain.SchemaWarning) []domain.SchemaWarning {
	var out []domain.SchemaWarning
	for _, w := range warnings {
		if w.Kind == domain.WarningUnknownKey {
			out = append(out, w)
		}
	}
	return out
}
