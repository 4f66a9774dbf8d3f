// Package bookconf loads the _config.yml of a book.
//
// A load reads the file once, parses it into an ordered document, reports
// unrecognised keys as warnings and decodes the merged result into the
// typed config.Config:
//
//	book, err := bookconf.Load(ctx, "docs/_config.yml",
//		bookconf.WithLogger(log),
//		bookconf.WithOverrides(map[string]any{"execute.execute_notebooks": "off"}),
//	)
//
// Sources are merged with the priority overrides > environment > file >
// defaults. Environment and override values reach the typed Config only;
// Book.Document is always exactly what the file says.
//
// Failures are reported as the typed errors of internal/core/domain
// (NotFoundError, ParseError, EncodingError, ReadError, ValidationError).
// No partial Book is ever returned.
package bookconf
