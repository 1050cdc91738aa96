package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/heatmap/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withConfig swaps the package config for the duration of a test.
func withConfig(t *testing.T, c *contract.Config) {
	t.Helper()
	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

func TestResolveSourceExplicitInput(t *testing.T) {
	withConfig(t, &contract.Config{InputPath: "logs/mine.csv", DataDir: "data"})

	source, err := resolveSource()
	require.NoError(t, err)
	require.NotNil(t, source)
	assert.Equal(t, "logs/mine.csv", source.Name())
}

func TestResolveSourceDiscoversSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.csv")
	require.NoError(t, os.WriteFile(path, []byte("created_at,media_type,amount\n"), 0o644))
	withConfig(t, &contract.Config{DataDir: dir})

	source, err := resolveSource()
	require.NoError(t, err)
	require.NotNil(t, source)
	assert.Equal(t, path, source.Name())
}

func TestResolveSourceDiscoveryFailureIsNotAnError(t *testing.T) {
	withConfig(t, &contract.Config{DataDir: filepath.Join(t.TempDir(), "missing")})

	source, err := resolveSource()
	assert.NoError(t, err)
	assert.Nil(t, source)
}

func TestRunWithSourceSkipsExecutorWithoutInput(t *testing.T) {
	withConfig(t, &contract.Config{DataDir: t.TempDir()})

	called := false
	err := runWithSource(func(_ context.Context, _ *contract.Config, _ contract.RecordSource) error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.False(t, called)
}

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"preview", "summary", "export", "weights", "version"} {
		assert.True(t, names[want], want)
	}
}

const commandLog = `created_at,media_type,amount
2024-01-01T09:00:00,ENUM.ANIME,1
2024-01-01T21:00:00,ENUM.PAGE,1
2024-03-15T08:30:00,ENUM.READING,700
`

// executeRoot runs the command tree with args, isolated from any config in $HOME.
func executeRoot(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	withConfig(t, &contract.Config{})
	rootCmd.SetArgs(append(args, "--color", "no"))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	return rootCmd.Execute()
}

func TestExecuteRendersImage(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "log.csv")
	require.NoError(t, os.WriteFile(logPath, []byte(commandLog), 0o644))
	outPath := filepath.Join(dir, "out.svg")

	require.NoError(t, executeRoot(t, "-i", logPath, "-o", outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte("<svg")))
	assert.True(t, bytes.Contains(data, []byte("Immersion Heatmap - 2024")))
}

func TestExecuteRejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "log.csv")
	require.NoError(t, os.WriteFile(logPath, []byte(commandLog), 0o644))
	outPath := filepath.Join(dir, "out.bmp")

	err := executeRoot(t, "-i", logPath, "-o", outPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image extension")
	assert.NoFileExists(t, outPath)
}

func TestExecuteWeightsSubcommand(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "weights.csv")

	require.NoError(t, executeRoot(t, "weights", "--format", "csv", "--output-file", outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "media,weight")
	assert.Contains(t, string(data), "ANIME,13")
}
