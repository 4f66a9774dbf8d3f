package bookconf

import (
	"github.com/yndnr/bookcfg-go/internal/infra/confloader"
	"github.com/yndnr/bookcfg-go/internal/telemetry/logger"
	"github.com/yndnr/bookcfg-go/internal/telemetry/metric"
)

type options struct {
	envPrefix   string
	overrides   map[string]any
	assignments []string
	overlays    []string
	defines     map[string]string
	logger      logger.Logger
	metrics     *metric.Registry
	strict      bool
}

// Option configures a load.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{envPrefix: confloader.DefaultEnvPrefix}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithEnvPrefix sets the prefix of environment overrides.
// An empty prefix ignores the environment.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithOverrides sets dotted-key overrides that win over every other
// source.
func WithOverrides(values map[string]any) Option {
	return func(o *options) {
		if o.overrides == nil {
			o.overrides = make(map[string]any, len(values))
		}
		for k, v := range values {
			o.overrides[k] = v
		}
	}
}

// WithAssignments adds key=value overrides as given on a command line.
// Values are typed like unquoted YAML scalars.
func WithAssignments(assignments ...string) Option {
	return func(o *options) {
		o.assignments = append(o.assignments, assignments...)
	}
}

// WithOverlays merges YAML files over the configuration file, in order,
// below the environment and explicit overrides. Overlays change
// Book.Effective and Book.Config but never Book.Document.
func WithOverlays(paths ...string) Option {
	return func(o *options) {
		o.overlays = append(o.overlays, paths...)
	}
}

// WithDefines sets values for __NAME__ placeholders in the HTML navbar
// and footer.
func WithDefines(vars map[string]string) Option {
	return func(o *options) {
		o.defines = vars
	}
}

// WithLogger sets the logger for warnings and load events.
// By default the logger from the context is used.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics records load outcomes in r.
func WithMetrics(r *metric.Registry) Option {
	return func(o *options) {
		o.metrics = r
	}
}

// WithStrict turns unrecognised keys into a ValidationError.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}
