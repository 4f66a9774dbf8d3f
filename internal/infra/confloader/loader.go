package confloader

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/yndnr/bookcfg-go/internal/core/document"
)

// DefaultEnvPrefix is the default environment variable prefix.
const DefaultEnvPrefix = "BOOKCFG_"

// envLevelSep separates nesting levels in environment variable names.
const envLevelSep = "__"

// Loader merges configuration from multiple sources.
type Loader struct {
	k          *koanf.Koanf
	envPrefix  string
	envFilter  func(key string) bool
	decodeHook mapstructure.DecodeHookFunc
}

// Option is a function that configures the Loader.
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
// An empty prefix disables environment loading.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithEnvFilter restricts environment loading to keys accepted by keep.
func WithEnvFilter(keep func(key string) bool) Option {
	return func(l *Loader) {
		l.envFilter = keep
	}
}

// WithDecodeHook sets the mapstructure hook used by Unmarshal.
func WithDecodeHook(hook mapstructure.DecodeHookFunc) Option {
	return func(l *Loader) {
		l.decodeHook = hook
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: DefaultEnvPrefix,
		decodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// LoadFile reads path with the koanf file provider, parses it into a
// document and merges it. The parsed document is returned so callers can
// keep the untyped view. Errors from reading or parsing are returned
// unwrapped.
func (l *Loader) LoadFile(path string) (*document.Document, error) {
	p := &documentParser{name: path}
	if err := l.k.Load(file.Provider(path), p); err != nil {
		return nil, err
	}
	return p.doc, nil
}

// LoadBytes parses data as a document named name and merges it.
func (l *Loader) LoadBytes(name string, data []byte) (*document.Document, error) {
	p := &documentParser{name: name}
	if err := l.k.Load(bytesProvider(data), p); err != nil {
		return nil, err
	}
	return p.doc, nil
}

// LoadOverlay merges the YAML file at path over the layers loaded so far
// and returns the dotted keys it sets, sorted. The file is read with
// koanf's YAML parser, so it carries no line information and is not
// subject to the checks Parse applies to the main file. Errors from
// reading or parsing are returned unwrapped.
func (l *Loader) LoadOverlay(path string) ([]string, error) {
	overlay := koanf.New(".")
	if err := overlay.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, err
	}
	if err := l.k.Merge(overlay); err != nil {
		return nil, fmt.Errorf("merge overlay %s: %w", path, err)
	}
	return overlay.Keys(), nil
}

// LoadEnv loads configuration from environment variables.
// Values are typed the way a YAML scalar would be, so
// BOOKCFG_EXECUTE__TIMEOUT=60 yields an integer.
func (l *Loader) LoadEnv() error {
	if l.envPrefix == "" {
		return nil
	}

	provider := env.ProviderWithValue(l.envPrefix, ".", func(key, value string) (string, any) {
		k := EnvKey(l.envPrefix, key)
		if k == "" || (l.envFilter != nil && !l.envFilter(k)) {
			return "", nil
		}
		return k, document.ParseScalar(value)
	})
	if err := l.k.Load(provider, nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	return nil
}

// EnvKey converts an environment variable name to a dotted key path.
// BOOKCFG_HTML__USE_EDIT_PAGE_BUTTON becomes html.use_edit_page_button.
// It returns "" for names that carry an empty level.
func EnvKey(prefix, name string) string {
	s := strings.ToLower(strings.TrimPrefix(name, prefix))
	parts := strings.Split(s, envLevelSep)
	for _, p := range parts {
		if p == "" {
			return ""
		}
	}
	return strings.Join(parts, ".")
}

// LoadMap loads configuration from a map (useful for flags or testing).
// Keys may be dotted paths.
func (l *Loader) LoadMap(data map[string]any) error {
	for key, val := range data {
		if err := l.k.Set(key, val); err != nil {
			return fmt.Errorf("load map: %w", err)
		}
	}
	return nil
}

// LoadOverrides merges key=value assignments. Values are typed like YAML
// scalars.
func (l *Loader) LoadOverrides(assignments []string) error {
	data := make(map[string]any, len(assignments))
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("invalid override %q: expected key=value", a)
		}
		data[key] = document.ParseScalar(value)
	}
	return l.LoadMap(data)
}

// Unmarshal decodes the merged configuration into target using koanf
// tags. Fields absent from every source keep the values already in
// target, so callers pass a struct pre-filled with defaults.
func (l *Loader) Unmarshal(target any) error {
	return l.k.UnmarshalWithConf("", target, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       l.decodeHook,
			WeaklyTypedInput: true,
			ZeroFields:       true,
			Result:           target,
		},
	})
}

// Raw returns the merged configuration as a nested map.
func (l *Loader) Raw() map[string]any {
	return l.k.Raw()
}
