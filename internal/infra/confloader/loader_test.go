package confloader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yndnr/bookcfg-go/internal/core/document"
	"github.com/yndnr/bookcfg-go/internal/core/domain"
)

type testConfig struct {
	Title   string `koanf:"title"`
	Execute struct {
		Mode    string `koanf:"execute_notebooks"`
		Timeout int    `koanf:"timeout"`
	} `koanf:"execute"`
	HTML struct {
		UseEditPageButton bool `koanf:"use_edit_page_button"`
	} `koanf:"html"`
	Extra map[string]any `koanf:",remain"`
}

// get reads a dotted key from the merged layers.
func get(t *testing.T, l *Loader, key string) any {
	t.Helper()
	doc, err := document.FromMap("merged", l.Raw())
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}
	n, ok := doc.Lookup(key)
	if !ok {
		return nil
	}
	return n.Interface()
}

func getString(t *testing.T, l *Loader, key string) string {
	t.Helper()
	s, _ := get(t, l, key).(string)
	return s
}

func exists(t *testing.T, l *Loader, key string) bool {
	t.Helper()
	doc, err := document.FromMap("merged", l.Raw())
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}
	_, ok := doc.Lookup(key)
	return ok
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "_config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l == nil {
		t.Fatal("NewLoader() returned nil")
	}
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}
}

func TestNewLoader_WithOptions(t *testing.T) {
	l := NewLoader(WithEnvPrefix("TEST_"))

	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, "TEST_")
	}
}

func TestLoader_LoadFile(t *testing.T) {
	configPath := writeConfig(t, `
title: Msprime manual
execute:
  execute_notebooks: cache
  timeout: 120
html:
  use_edit_page_button: true
`)

	l := NewLoader()
	doc, err := l.LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if doc == nil {
		t.Fatal("LoadFile() returned nil document")
	}
	if doc.Name() != configPath {
		t.Errorf("doc.Name() = %q, want %q", doc.Name(), configPath)
	}

	// Verify values were loaded
	if mode := getString(t, l, "execute.execute_notebooks"); mode != "cache" {
		t.Errorf("execute.execute_notebooks = %q, want %q", mode, "cache")
	}
	if v, ok := get(t, l, "execute.timeout").(int64); !ok || v != 120 {
		t.Errorf("execute.timeout = %#v, want int64(120)", get(t, l, "execute.timeout"))
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	l := NewLoader()
	_, err := l.LoadFile("/nonexistent/_config.yml")
	if err == nil {
		t.Fatal("LoadFile() should return error for nonexistent file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadFile() error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoader_LoadFile_ParseError(t *testing.T) {
	configPath := writeConfig(t, "title: a\ntitle: b\n")

	l := NewLoader()
	_, err := l.LoadFile(configPath)

	var pe *domain.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("LoadFile() error = %v, want *domain.ParseError", err)
	}
	if pe.Line != 2 {
		t.Errorf("ParseError.Line = %d, want 2", pe.Line)
	}
}

func TestLoader_LoadBytes(t *testing.T) {
	l := NewLoader()
	doc, err := l.LoadBytes("inline.yml", []byte("title: Inline\n"))
	if err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}
	if doc.Name() != "inline.yml" {
		t.Errorf("doc.Name() = %q, want %q", doc.Name(), "inline.yml")
	}
	if got := getString(t, l, "title"); got != "Inline" {
		t.Errorf("title = %q, want %q", got, "Inline")
	}
}

func TestLoader_LoadEnv(t *testing.T) {
	// Set environment variables
	t.Setenv("BOOKCFG_EXECUTE__EXECUTE_NOTEBOOKS", "off")
	t.Setenv("BOOKCFG_EXECUTE__TIMEOUT", "60")
	t.Setenv("BOOKCFG_HTML__USE_EDIT_PAGE_BUTTON", "true")

	l := NewLoader()
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if mode := getString(t, l, "execute.execute_notebooks"); mode != "off" {
		t.Errorf("execute.execute_notebooks = %q, want %q", mode, "off")
	}
	if v, ok := get(t, l, "execute.timeout").(int64); !ok || v != 60 {
		t.Errorf("execute.timeout = %#v, want int64(60)", get(t, l, "execute.timeout"))
	}
	if v, ok := get(t, l, "html.use_edit_page_button").(bool); !ok || !v {
		t.Errorf("html.use_edit_page_button = %#v, want true", get(t, l, "html.use_edit_page_button"))
	}
}

func TestLoader_LoadEnv_CustomPrefix(t *testing.T) {
	t.Setenv("MYBOOK_TITLE", "From env")

	l := NewLoader(WithEnvPrefix("MYBOOK_"))
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if title := getString(t, l, "title"); title != "From env" {
		t.Errorf("title = %q, want %q", title, "From env")
	}
}

func TestLoader_LoadEnv_Disabled(t *testing.T) {
	t.Setenv("BOOKCFG_TITLE", "From env")

	l := NewLoader(WithEnvPrefix(""))
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if exists(t, l, "title") {
		t.Error("title should not be loaded when the prefix is empty")
	}
}

func TestLoader_LoadEnv_Filter(t *testing.T) {
	t.Setenv("BOOKCFG_TITLE", "From env")
	t.Setenv("BOOKCFG_LOG_LEVEL", "debug")

	l := NewLoader(WithEnvFilter(func(key string) bool { return key == "title" }))
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if got := getString(t, l, "title"); got != "From env" {
		t.Errorf("title = %q, want %q", got, "From env")
	}
	if exists(t, l, "log_level") {
		t.Error("log_level should be filtered out")
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"BOOKCFG_TITLE", "title"},
		{"BOOKCFG_EXECUTE__EXECUTE_NOTEBOOKS", "execute.execute_notebooks"},
		{"BOOKCFG_SPHINX__CONFIG__ISSUES_GITHUB_PATH", "sphinx.config.issues_github_path"},
		{"BOOKCFG_EXECUTE____TIMEOUT", ""},
		{"BOOKCFG_", ""},
	}
	for _, tt := range tests {
		if got := EnvKey("BOOKCFG_", tt.name); got != tt.want {
			t.Errorf("EnvKey(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestLoader_LoadMap(t *testing.T) {
	l := NewLoader()

	data := map[string]any{
		"execute.execute_notebooks": "force",
		"only_build_toc_files":      true,
	}

	if err := l.LoadMap(data); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	if mode := getString(t, l, "execute.execute_notebooks"); mode != "force" {
		t.Errorf("execute.execute_notebooks = %q, want %q", mode, "force")
	}
	if v, ok := get(t, l, "only_build_toc_files").(bool); !ok || !v {
		t.Error("only_build_toc_files should be true")
	}
}

func TestLoader_LoadOverrides(t *testing.T) {
	l := NewLoader()
	if err := l.LoadOverrides([]string{"execute.timeout=-1", "title=My = Book"}); err != nil {
		t.Fatalf("LoadOverrides() error = %v", err)
	}
	if v, ok := get(t, l, "execute.timeout").(int64); !ok || v != -1 {
		t.Errorf("execute.timeout = %#v, want int64(-1)", get(t, l, "execute.timeout"))
	}
	if got := getString(t, l, "title"); got != "My = Book" {
		t.Errorf("title = %q, want %q", got, "My = Book")
	}

	for _, bad := range []string{"novalue", "=x"} {
		if err := l.LoadOverrides([]string{bad}); err == nil {
			t.Errorf("LoadOverrides(%q) expected error", bad)
		}
	}
}

func TestLoader_Priority(t *testing.T) {
	configPath := writeConfig(t, `
title: From file
execute:
  execute_notebooks: cache
  timeout: 30
`)

	t.Setenv("BOOKCFG_EXECUTE__EXECUTE_NOTEBOOKS", "off")
	t.Setenv("BOOKCFG_EXECUTE__TIMEOUT", "60")

	l := NewLoader()
	if _, err := l.LoadFile(configPath); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if err := l.LoadOverrides([]string{"execute.timeout=90"}); err != nil {
		t.Fatalf("LoadOverrides() error = %v", err)
	}

	var cfg testConfig
	cfg.HTML.UseEditPageButton = true // default
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if cfg.Title != "From file" {
		t.Errorf("Title = %q, want %q", cfg.Title, "From file")
	}
	// Environment should override file
	if cfg.Execute.Mode != "off" {
		t.Errorf("Mode = %q, want %q (env should override file)", cfg.Execute.Mode, "off")
	}
	// Overrides win over env
	if cfg.Execute.Timeout != 90 {
		t.Errorf("Timeout = %d, want %d (override should win)", cfg.Execute.Timeout, 90)
	}
	// Defaults survive when no source sets the key
	if !cfg.HTML.UseEditPageButton {
		t.Error("UseEditPageButton default should be kept")
	}
}

func TestLoader_LoadOverlay(t *testing.T) {
	configPath := writeConfig(t, "title: From file\nexecute:\n  execute_notebooks: cache\n  timeout: 30\n")
	overlayPath := filepath.Join(t.TempDir(), "_config.local.yml")
	if err := os.WriteFile(overlayPath, []byte("execute:\n  timeout: 5\nbibtex_bibfiles: [refs.bib]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(WithEnvPrefix(""))
	if _, err := l.LoadFile(configPath); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	keys, err := l.LoadOverlay(overlayPath)
	if err != nil {
		t.Fatalf("LoadOverlay() error = %v", err)
	}

	want := []string{"bibtex_bibfiles", "execute.timeout"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("LoadOverlay() keys = %v, want %v", keys, want)
	}
	if v, ok := get(t, l, "execute.timeout").(int64); !ok || v != 5 {
		t.Errorf("execute.timeout = %#v, want int64(5)", get(t, l, "execute.timeout"))
	}
	if mode := getString(t, l, "execute.execute_notebooks"); mode != "cache" {
		t.Errorf("execute.execute_notebooks = %q, want the file value kept", mode)
	}
	if !exists(t, l, "bibtex_bibfiles") {
		t.Error("bibtex_bibfiles missing after overlay")
	}
}

func TestLoader_LoadOverlay_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(bad, []byte("execute: [\n"), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(WithEnvPrefix(""))
	if _, err := l.LoadOverlay(filepath.Join(dir, "absent.yml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing overlay error = %v, want fs.ErrNotExist", err)
	}
	_, err := l.LoadOverlay(bad)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("bad overlay error = %v, want a parse error", err)
	}
	if len(l.Raw()) != 0 {
		t.Errorf("Raw() = %v, failed overlays must not merge", l.Raw())
	}
}

func TestLoader_Unmarshal_Remain(t *testing.T) {
	l := NewLoader(WithEnvPrefix(""))
	if _, err := l.LoadBytes("x.yml", []byte("title: T\nbibtex_bibfiles: [refs.bib]\n")); err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := cfg.Extra["bibtex_bibfiles"]; !ok {
		t.Errorf("Extra = %v, want bibtex_bibfiles collected", cfg.Extra)
	}
}

func TestDocumentParser_Marshal(t *testing.T) {
	p := &documentParser{name: "x.yml"}
	if _, err := p.Marshal(map[string]any{"title": "T"}); !errors.Is(err, ErrMarshalNotSupported) {
		t.Errorf("Marshal() error = %v, want ErrMarshalNotSupported", err)
	}
}
