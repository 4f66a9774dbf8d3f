// Package config defines the typed view of a book configuration.
package config

import "strings"

// Sanitize returns a copy of the config with credentials masked.
//
// Repository and hub URLs may embed user:token pairs; analytics IDs are
// masked too. This is used for display and logging.
func Sanitize(cfg *Config) *Config {
	// Create a shallow copy
	sanitized := *cfg

	sanitized.Repository.URL = maskURL(sanitized.Repository.URL)
	sanitized.LaunchButtons.BinderhubURL = maskURL(sanitized.LaunchButtons.BinderhubURL)
	sanitized.LaunchButtons.JupyterhubURL = maskURL(sanitized.LaunchButtons.JupyterhubURL)

	if sanitized.HTML.Analytics.GoogleAnalyticsID != "" {
		sanitized.HTML.Analytics.GoogleAnalyticsID = maskSecret(sanitized.HTML.Analytics.GoogleAnalyticsID)
	}

	return &sanitized
}

// maskURL masks the userinfo part of a URL, if any. It works on the raw
// string so that the masked form is printed as written.
func maskURL(raw string) string {
	scheme := strings.Index(raw, "://")
	if scheme < 0 {
		return raw
	}
	rest := raw[scheme+3:]
	authority := rest
	if end := strings.IndexAny(rest, "/?#"); end >= 0 {
		authority = rest[:end]
	}
	at := strings.LastIndex(authority, "@")
	if at < 0 {
		return raw
	}
	info := authority[:at]
	if user, _, ok := strings.Cut(info, ":"); ok {
		info = user + ":****"
	} else {
		info = maskSecret(info)
	}
	return raw[:scheme+3] + info + rest[at:]
}

// maskSecret masks a secret value for safe logging.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
