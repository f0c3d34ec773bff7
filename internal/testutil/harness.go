// Package testutil provides an end-to-end harness that runs the command
// line against model files written to a temporary directory.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/cashgridgo/internal/cli"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	// OutputDir is where a run command writes its files.
	OutputDir string
}

// RunIntegrationTest writes files under a temporary model directory and runs
// `run` against it. Files are given by path relative to the model directory.
func RunIntegrationTest(t *testing.T, files map[string]string, flags ...string) *HarnessResult {
	t.Helper()
	return RunCommand(t, "run", files, flags...)
}

// RunCommand writes files under a temporary model directory and runs the
// named command against it with debug text logging.
func RunCommand(t *testing.T, command string, files map[string]string, flags ...string) *HarnessResult {
	t.Helper()

	root := t.TempDir()
	modelDir := filepath.Join(root, "model")
	outDir := filepath.Join(root, "out")
	for name, content := range files {
		p := filepath.Join(modelDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return RunPath(t, command, modelDir, outDir, flags...)
}

// RunPath runs a command against an existing model path. For `run`, files
// are written to outDir.
func RunPath(t *testing.T, command, modelPath, outDir string, flags ...string) *HarnessResult {
	t.Helper()

	args := []string{command, "--log-format", "text", "--log-level", "debug"}
	if command == "run" {
		args = append(args, "--output-dir", outDir)
	}
	args = append(args, flags...)
	args = append(args, modelPath)

	out, logs := &SafeBuffer{}, &SafeBuffer{}
	err := cli.Execute(context.Background(), args, out, logs)

	if os.Getenv("CASHGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}
	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       err,
		OutputDir: outDir,
	}
}
