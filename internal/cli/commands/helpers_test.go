package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/tsadjust/pkg/config"
)

// workspace runs the test in an empty directory with an inputs/ folder and
// no host configuration in reach.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prevDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevDir) })
	t.Setenv("HOME", filepath.Join(dir, "home"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, name := range []string{config.EnvOutputFormat, config.EnvInputDir, config.EnvOutputDir, config.EnvEncoding, config.EnvOnParseError} {
		t.Setenv(name, "")
	}
	require.NoError(t, os.MkdirAll("inputs", 0o755))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes one subcommand under a root that carries the shared flags.
func run(t *testing.T, newCmd func(*GlobalOptions) *cobra.Command, args ...string) result {
	t.Helper()
	return runContext(context.Background(), t, "", newCmd, args...)
}

func runWithInput(t *testing.T, input string, newCmd func(*GlobalOptions) *cobra.Command, args ...string) result {
	t.Helper()
	return runContext(context.Background(), t, input, newCmd, args...)
}

func runContext(ctx context.Context, t *testing.T, input string, newCmd func(*GlobalOptions) *cobra.Command, args ...string) result {
	t.Helper()

	g := &GlobalOptions{}
	root := &cobra.Command{Use: "tsadjust", SilenceUsage: true, SilenceErrors: true}
	g.AddFlags(root)
	root.AddCommand(newCmd(g))

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)

	ExitCode = ExitOK
	err := root.ExecuteContext(ctx)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
