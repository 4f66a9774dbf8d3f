package domain

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestPosition_String(t *testing.T) {
	tests := []struct {
		pos  Position
		want string
	}{
		{Position{}, ""},
		{Position{File: "_config.yml"}, "_config.yml"},
		{Position{File: "_config.yml", Line: 3}, "_config.yml:3"},
		{Position{File: "_config.yml", Line: 3, Column: 7}, "_config.yml:3:7"},
		{Position{Line: 3, Column: 7}, "3:7"},
		{Position{File: "a.yml", Column: 7}, "a.yml"},
	}
	for _, tt := range tests {
		if got := tt.pos.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestLoadErrors_Is(t *testing.T) {
	cause := fs.ErrPermission
	tests := []struct {
		name     string
		err      error
		sentinel *DomainError
	}{
		{"not found", &NotFoundError{Path: "x.yml", Cause: fs.ErrNotExist}, ErrNotFound},
		{"parse", &ParseError{Position: Position{Line: 1}, Reason: "bad"}, ErrParse},
		{"encoding", &EncodingError{Position: Position{Line: 2, Column: 9}, Offset: 18}, ErrEncoding},
		{"read", &ReadError{Path: "x.yml", Cause: cause}, ErrRead},
		{"validation", &ValidationError{Problems: []string{"p"}}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %s) = false", tt.err, tt.sentinel.Code)
			}
			if got := GetErrorCode(tt.err); got != tt.sentinel.Code {
				t.Errorf("GetErrorCode() = %q, want %q", got, tt.sentinel.Code)
			}
		})
	}

	if !errors.Is(&NotFoundError{Path: "x", Cause: fs.ErrNotExist}, fs.ErrNotExist) {
		t.Error("NotFoundError should unwrap to fs.ErrNotExist")
	}
	if !errors.Is(&ReadError{Path: "x", Cause: cause}, fs.ErrPermission) {
		t.Error("ReadError should unwrap to its cause")
	}
}

func TestLoadErrors_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "parse with position",
			err:  &ParseError{Position: Position{File: "_config.yml", Line: 3}, Reason: "mapping values are not allowed in this context"},
			want: "_config.yml:3: parse error: mapping values are not allowed in this context",
		},
		{
			name: "parse without position",
			err:  &ParseError{Reason: "multiple documents"},
			want: "parse error: multiple documents",
		},
		{
			name: "encoding",
			err:  &EncodingError{Position: Position{File: "a.yml", Line: 2, Column: 9}, Offset: 18},
			want: "a.yml:2:9: invalid text encoding: invalid UTF-8 sequence at byte offset 18",
		},
		{
			name: "not found",
			err:  &NotFoundError{Path: "book/_config.yml"},
			want: "book/_config.yml: configuration file not found",
		},
		{
			name: "single problem",
			err:  &ValidationError{File: "a.yml", Problems: []string{"execute.timeout is bad"}},
			want: "a.yml: invalid configuration: execute.timeout is bad",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Multiple(t *testing.T) {
	err := &ValidationError{Problems: []string{"first", "second"}}
	msg := err.Error()
	if !strings.Contains(msg, "\n  - first") || !strings.Contains(msg, "\n  - second") {
		t.Errorf("Error() = %q, want one problem per line", msg)
	}

	withCause := &ValidationError{Cause: errors.New("decode failed")}
	if !strings.HasSuffix(withCause.Error(), "decode failed") {
		t.Errorf("Error() = %q, want cause appended", withCause.Error())
	}
}

func TestSchemaWarning_String(t *testing.T) {
	unknown := SchemaWarning{
		Position: Position{File: "_config.yml", Line: 12},
		Kind:     WarningUnknownKey,
		Key:      "html.use_fancy_button",
	}
	if got, want := unknown.String(), `_config.yml:12: unrecognised key "html.use_fancy_button" is ignored`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	missing := SchemaWarning{Position: Position{File: "_config.yml"}, Kind: WarningMissingKey, Key: "sphinx"}
	if got, want := missing.String(), `_config.yml: expected key "sphinx" is missing, using default`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
