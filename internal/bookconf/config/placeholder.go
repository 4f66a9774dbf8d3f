package config

import (
	"regexp"
	"sort"
)

// placeholderRE matches build-time placeholders such as __MSPRIME_VERSION__.
var placeholderRE = regexp.MustCompile(`__([A-Z][A-Z0-9_]*[A-Z0-9])__`)

// Placeholders returns the sorted, de-duplicated placeholder names found in
// html.extra_navbar and html.extra_footer.
func Placeholders(cfg *Config) []string {
	seen := make(map[string]struct{})
	for _, s := range []string{cfg.HTML.ExtraNavbar, cfg.HTML.ExtraFooter} {
		for _, m := range placeholderRE.FindAllStringSubmatch(s, -1) {
			seen[m[1]] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExpandPlaceholders returns a copy of cfg with __NAME__ placeholders in
// html.extra_navbar and html.extra_footer replaced by vars[NAME].
// Placeholders without a value are left as they are.
func ExpandPlaceholders(cfg *Config, vars map[string]string) *Config {
	out := *cfg
	out.HTML.ExtraNavbar = expand(out.HTML.ExtraNavbar, vars)
	out.HTML.ExtraFooter = expand(out.HTML.ExtraFooter, vars)
	return &out
}

func expand(s string, vars map[string]string) string {
	if len(vars) == 0 {
		return s
	}
	return placeholderRE.ReplaceAllStringFunc(s, func(m string) string {
		name := placeholderRE.FindStringSubmatch(m)[1]
		if v, ok := vars[name]; ok {
			return v
		}
		return m
	})
}
