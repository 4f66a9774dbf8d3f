package logger

import (
	"log/slog"
	"strings"
)

// tokenPrefixes mark hosting-service tokens that can end up in a
// repository URL or an environment override.
var tokenPrefixes = []string{
	"github_pat_",
	"ghp_",
	"gho_",
	"glpat-",
}

// secretKeyParts mark attribute keys whose values are never printed.
// "auth" is absent so that "author" survives.
var secretKeyParts = []string{
	"password", "secret", "token", "api_key", "apikey",
	"credential", "authorization", "bearer",
}

const redactedValue = "***REDACTED***"

// redactSensitive is the ReplaceAttr hook installed by New.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindGroup:
		group := a.Value.Group()
		out := make([]slog.Attr, len(group))
		for i := range group {
			out[i] = redactSensitive(group[i])
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	case slog.KindString:
		s := a.Value.String()
		if p := tokenPrefix(s); p != "" {
			return slog.String(a.Key, maskValue(s, p))
		}
		if s != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
		if r := redactURL(s); r != s {
			return slog.String(a.Key, r)
		}
	}
	return a
}

// RedactString masks a token or URL credentials in value. Other values
// are returned unchanged.
func RedactString(value string) string {
	if p := tokenPrefix(value); p != "" {
		return maskValue(value, p)
	}
	return redactURL(value)
}

// IsSensitiveKey reports whether key names a secret.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, part := range secretKeyParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

func tokenPrefix(s string) string {
	for _, p := range tokenPrefixes {
		if strings.HasPrefix(s, p) {
			return p
		}
	}
	return ""
}

// maskValue keeps prefix and three characters at each end of the rest.
func maskValue(value, prefix string) string {
	body := value[len(prefix):]
	if len(body) <= 6 {
		return prefix + "***"
	}
	return prefix + body[:3] + "..." + body[len(body)-3:]
}

// redactURL replaces the password of a URL's userinfo with "***". A lone
// user that looks like a token is masked instead.
func redactURL(s string) string {
	i := strings.Index(s, "://")
	if i < 0 {
		return s
	}
	head, rest := s[:i+3], s[i+3:]

	host := rest
	if j := strings.IndexAny(rest, "/?#"); j >= 0 {
		host = rest[:j]
	}
	at := strings.LastIndex(host, "@")
	if at < 0 {
		return s
	}

	userinfo := host[:at]
	if user, _, ok := strings.Cut(userinfo, ":"); ok {
		userinfo = user + ":***"
	} else if p := tokenPrefix(userinfo); p != "" {
		userinfo = maskValue(userinfo, p)
	}
	return head + userinfo + rest[at:]
}
