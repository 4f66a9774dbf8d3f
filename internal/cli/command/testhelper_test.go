package command

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

const sampleConfig = `title: Msprime manual
author: Tskit Developers
execute:
  execute_notebooks: cache
  timeout: 120
repository:
  url: https://github.com/tskit-dev/msprime
html:
  extra_navbar: msprime __MSPRIME_VERSION__
sphinx:
  extra_extensions:
    - sphinx.ext.autodoc
    - sphinx.ext.intersphinx
  config:
    intersphinx_mapping:
      python: ["https://docs.python.org/3/", null]
`

// writeConfig writes content to a _config.yml in a temporary directory.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "_config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// syncBuffer is a bytes.Buffer safe for use from several goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// runApp runs the CLI with args and returns what it wrote to its writer.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out syncBuffer
	err := runAppContext(context.Background(), &out, io.Discard, args...)
	return out.String(), err
}

func runAppContext(ctx context.Context, out, errOut io.Writer, args ...string) error {
	app := App()
	app.Writer = out
	app.ErrWriter = errOut
	return app.RunContext(ctx, append([]string{"bookcfg"}, args...))
}
