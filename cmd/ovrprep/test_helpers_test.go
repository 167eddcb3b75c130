package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	dataDir    string
	outputDir  string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	dataDir := filepath.Join(base, "data")
	outputDir := filepath.Join(base, "ovr_targets")
	for _, dir := range []string{homeDir, dataDir, outputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("OVRPREP_DATA_FOLDER", "")
	t.Setenv("OVRPREP_OUTPUT_DIR", "")

	files := map[string]string{
		"train.input":  "a b a\nb c\na b b c",
		"train.target": "0\n2\n1",
		"dev.input":    "a c\nb",
		"dev.target":   "2\n2",
		"test.input":   "c",
		"test.target":  "1",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dataDir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	env := &cliTestEnv{
		baseDir:    base,
		dataDir:    dataDir,
		outputDir:  outputDir,
		configPath: filepath.Join(base, "ovrprep.toml"),
	}
	writeTestConfig(t, env, false)
	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv, manifestEnabled bool) {
	t.Helper()
	content := fmt.Sprintf(`[data]
folder = %q
train_input = "train.input"
train_target = "train.target"
dev_input = "dev.input"
dev_target = "dev.target"
test_input = "test.input"
test_target = "test.target"

[ovr]
output_dir = %q

[manifest]
enabled = %t
path = %q

[logging]
level = "error"
`, env.dataDir, env.outputDir, manifestEnabled, filepath.Join(env.baseDir, "runs.db"))
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
