package bookconf

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/bookcfg-go/internal/bookconf/config"
	"github.com/yndnr/bookcfg-go/internal/core/document"
	"github.com/yndnr/bookcfg-go/internal/core/domain"
	"github.com/yndnr/bookcfg-go/internal/infra/confloader"
	"github.com/yndnr/bookcfg-go/internal/telemetry/logger"
	"github.com/yndnr/bookcfg-go/internal/telemetry/metric"
)

// Book is the result of one successful load.
type Book struct {
	// Path is the file path or the name given to Parse.
	Path string

	// Document is the file content, untouched by overrides.
	Document *document.Document

	// Effective is the merged file, environment and override layers,
	// without defaults. Keys are sorted.
	Effective *document.Document

	// Config is the typed view with defaults applied.
	Config *config.Config

	// Warnings lists unrecognised and missing keys in document order.
	Warnings []domain.SchemaWarning

	// BuildID identifies this load in logs.
	BuildID string
}

// Fingerprint returns the fingerprint of the parsed document.
func (b *Book) Fingerprint() uint64 {
	return b.Document.Fingerprint()
}

// Load reads and decodes the configuration file at path.
func Load(ctx context.Context, path string, opts ...Option) (*Book, error) {
	return run(ctx, path, newOptions(opts), func(l *confloader.Loader) (*document.Document, error) {
		return l.LoadFile(path)
	})
}

// Parse decodes an in-memory configuration. name is used in diagnostics.
func Parse(ctx context.Context, name string, data []byte, opts ...Option) (*Book, error) {
	return run(ctx, name, newOptions(opts), func(l *confloader.Loader) (*document.Document, error) {
		return l.LoadBytes(name, data)
	})
}

type readFunc func(*confloader.Loader) (*document.Document, error)

func run(ctx context.Context, name string, o *options, read readFunc) (*Book, error) {
	start := time.Now()
	buildID := ulid.Make().String()

	if o.logger != nil {
		ctx = logger.WithLogger(ctx, o.logger)
	}
	ctx = logger.WithLoad(ctx, logger.Load{BuildID: buildID, File: name})
	log := logger.L(ctx)

	book, err := load(ctx, name, o, read)
	if o.metrics != nil {
		o.metrics.RecordLoad(resultLabel(err), time.Since(start))
	}
	if err != nil {
		log.Debug("configuration load failed", "error", err, "code", domain.GetErrorCode(err))
		return nil, err
	}

	book.BuildID = buildID
	for _, w := range book.Warnings {
		if o.metrics != nil {
			o.metrics.RecordWarning(string(w.Kind))
		}
		switch w.Kind {
		case domain.WarningUnknownKey:
			log.Warn("unrecognised configuration key is ignored", "key", w.Key, "line", w.Line)
		default:
			log.Debug("configuration key missing, using default", "key", w.Key)
		}
	}
	log.Info("configuration loaded",
		"title", book.Config.Title,
		"execute_notebooks", string(book.Config.Execute.Mode),
		"warnings", len(book.Warnings),
		"duration", time.Since(start),
	)
	return book, nil
}

func load(ctx context.Context, name string, o *options, read readFunc) (*Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := confloader.NewLoader(
		confloader.WithEnvPrefix(o.envPrefix),
		confloader.WithEnvFilter(config.IsKnownKey),
		confloader.WithDecodeHook(config.DecodeHook()),
	)

	doc, err := read(l)
	if err != nil {
		return nil, classify(name, err)
	}

	warnings := config.CheckKeys(doc)
	for _, path := range o.overlays {
		keys, err := l.LoadOverlay(path)
		if err != nil {
			return nil, classifyOverlay(path, err)
		}
		warnings = append(warnings, overlayWarnings(path, keys)...)
	}
	if o.strict {
		if unknown := config.UnknownKeys(warnings); len(unknown) > 0 {
			problems := make([]string, len(unknown))
			for i, w := range unknown {
				problems[i] = w.String()
			}
			return nil, &domain.ValidationError{File: name, Problems: problems}
		}
	}

	if err := l.LoadEnv(); err != nil {
		return nil, err
	}
	if err := l.LoadMap(o.overrides); err != nil {
		return nil, domain.ErrInvalidArgument.WithCause(err)
	}
	if err := l.LoadOverrides(o.assignments); err != nil {
		return nil, domain.ErrInvalidArgument.WithCause(err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.Default()
	if err := l.Unmarshal(cfg); err != nil {
		return nil, &domain.ValidationError{File: name, Cause: err}
	}
	if err := config.Verify(cfg); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			ve.File = name
		}
		return nil, err
	}
	if len(o.defines) > 0 {
		cfg = config.ExpandPlaceholders(cfg, o.defines)
	}

	effective, err := document.FromMap(name, l.Raw())
	if err != nil {
		return nil, fmt.Errorf("build merged view: %w", err)
	}

	return &Book{
		Path:      name,
		Document:  doc,
		Effective: effective,
		Config:    cfg,
		Warnings:  warnings,
	}, nil
}

// classify maps a read or parse failure onto the load error taxonomy.
func classify(name string, err error) error {
	var (
		pe *domain.ParseError
		ee *domain.EncodingError
	)
	switch {
	case errors.As(err, &pe), errors.As(err, &ee):
		return err
	case errors.Is(err, fs.ErrNotExist):
		return &domain.NotFoundError{Path: name, Cause: err}
	default:
		return &domain.ReadError{Path: name, Cause: err}
	}
}

// classifyOverlay maps an overlay failure onto the load error taxonomy.
// Overlays are decoded by koanf, so syntax errors carry a line at most.
func classifyOverlay(path string, err error) error {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &domain.NotFoundError{Path: path, Cause: err}
	case errors.As(err, &pathErr):
		return &domain.ReadError{Path: path, Cause: err}
	default:
		return document.SyntaxError(path, err)
	}
}

// overlayWarnings reports overlay keys the schema does not recognise.
func overlayWarnings(path string, keys []string) []domain.SchemaWarning {
	var out []domain.SchemaWarning
	for _, k := range keys {
		if !config.IsKnownKey(k) {
			out = append(out, domain.SchemaWarning{
				Position: domain.Position{File: path},
				Kind:     domain.WarningUnknownKey,
				Key:      k,
			})
		}
	}
	return out
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return metric.ResultOK
	case errors.Is(err, domain.ErrNotFound):
		return metric.ResultNotFound
	case errors.Is(err, domain.ErrParse):
		return metric.ResultParseError
	case errors.Is(err, domain.ErrEncoding):
		return metric.ResultEncodingError
	case errors.Is(err, domain.ErrValidation):
		return metric.ResultValidationError
	default:
		return metric.ResultReadError
	}
}
