package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("database: [unclosed\n"), 0644))
	return cfgPath
}

// runCommand executes the root command with cfgPath and returns what it printed.
func runCommand(t *testing.T, cfgPath string, stdin string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var stdout bytes.Buffer
	rootCommand := newRootCommand()
	rootCommand.SetArgs(append([]string{"--config", cfgPath}, args...))
	rootCommand.SetIn(strings.NewReader(stdin))
	rootCommand.SetOut(&stdout)
	rootCommand.SetErr(&stdout)
	err := rootCommand.Execute()
	return stdout.String(), err
}
