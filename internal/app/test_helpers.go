package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/specialistvlad/gptgrid/internal/gpt"
	"github.com/specialistvlad/gptgrid/internal/hcl"
	"github.com/specialistvlad/gptgrid/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// fakeGPTScript answers -h with the usage banner and writes the -t target for
// every source whose path does not contain "fail".
const fakeGPTScript = `#!/bin/sh
if [ "$1" = "-h" ]; then
  printf '%s\n\nOptions:\n  -h  Displays this help.\n' '` + gpt.Banner + `'
  exit 0
fi
echo "$*" >> "$(dirname "$0")/calls.log"
shift
src=""
out=""
while [ $# -gt 0 ]; do
  case "$1" in
    -Ssource=*) src="${1#-Ssource=}" ;;
    -t) shift; out="$1" ;;
  esac
  shift
done
case "$src" in
  *fail*)
    echo "Error: [NodeId: Subset0] The specified region must intersect with the image bounds." >&2
    exit 1 ;;
esac
echo "processed $src" > "$out"
`

// WriteFakeGPT installs a shell script standing in for gpt and returns its
// path. Tests are skipped where shell scripts cannot run.
func WriteFakeGPT(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake gpt is a shell script")
	}
	path := filepath.Join(t.TempDir(), "gpt")
	if err := os.WriteFile(path, []byte(fakeGPTScript), 0o755); err != nil {
		t.Fatalf("failed to write fake gpt: %v", err)
	}
	return path
}

// FakeGPTCalls returns the argument lines the fake gpt at path was called
// with, one per call.
func FakeGPTCalls(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(filepath.Dir(path), "calls.log"))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		t.Fatalf("failed to read fake gpt calls: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

// WritePipeline writes an HCL pipeline into a temporary directory and
// returns the file path.
func WritePipeline(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.hcl")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(content)+"\n"), 0o644); err != nil {
		t.Fatalf("failed to write pipeline: %v", err)
	}
	return path
}

// SetupAppTest creates a new app instance for system testing. Output goes to
// the first buffer, logs to the second.
func SetupAppTest(t *testing.T, cfg *Config, modules ...registry.Module) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	outBuffer, logBuffer := &SafeBuffer{}, &SafeBuffer{}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	testApp, err := NewApp(outBuffer, logBuffer, cfg, hcl.NewLoader(), modules...)
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}

	t.Cleanup(func() {
		if os.Getenv("GPTGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, outBuffer, logBuffer
}
