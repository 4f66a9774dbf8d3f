package domain

import "fmt"

// WarningKind classifies a SchemaWarning.
type WarningKind string

const (
	// WarningUnknownKey marks a key the schema does not recognise.
	WarningUnknownKey WarningKind = "unknown_key"
	// WarningMissingKey marks an expected section that is absent and
	// falls back to its default.
	WarningMissingKey WarningKind = "missing_key"
)

// SchemaWarning is a non-fatal diagnostic. Loading continues and the key
// is ignored (unknown) or defaulted (missing).
type SchemaWarning struct {
	Position
	Kind WarningKind
	// Key is the dotted path, e.g. "html.use_fancy_button".
	Key string
}

func (w SchemaWarning) String() string {
	switch w.Kind {
	case WarningMissingKey:
		return fmt.Sprintf("%sexpected key %q is missing, using default", w.Position.prefix(), w.Key)
	default:
		return fmt.Sprintf("%sunrecognised key %q is ignored", w.Position.prefix(), w.Key)
	}
}
