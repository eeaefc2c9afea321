package test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/tsadjust/internal/cli"
	"github.com/ccollicutt/tsadjust/internal/cli/commands"
	"github.com/ccollicutt/tsadjust/pkg/config"
	"github.com/ccollicutt/tsadjust/pkg/detector"
	"github.com/ccollicutt/tsadjust/pkg/naming"
	"github.com/ccollicutt/tsadjust/pkg/output"
	"github.com/ccollicutt/tsadjust/pkg/processor"
)

const transcript = `Weekly sync
[00:00:00] Alice: Let's get started.
[00:03:32] Bob: Hello world
00:10:05 Carol: unbracketed timestamp
Notes with no timestamp at all.
[01:59:58] Alice: Wrapping up, see you at 12:00:00 tomorrow.
`

// sandbox isolates a test from host config files and TIMESTAMP_* variables.
func sandbox(t *testing.T) string {
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
	return dir
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// TestE2E_Pipeline runs the library pipeline the way the CLI does: load
// config, derive the output name, process the file, render the report.
func TestE2E_Pipeline(t *testing.T) {
	sandbox(t)
	write(t, "inputs/sync.txt", transcript)
	ctx := context.Background()

	cfg, err := config.Load(ctx, config.LoadOptions{})
	require.NoError(t, err)

	out := naming.OutputPath("inputs/sync.txt", 3, cfg.Files.OutputDir, cfg.OutputNaming.Scheme())
	assert.Equal(t, filepath.Join("outputs", "sync_plus_3s.txt"), out)

	p := processor.New(cfg.Registry(), 3, processor.WithParseErrorPolicy(cfg.Processing.ParseErrorPolicy()))
	stats, err := p.ProcessFile(ctx, "inputs/sync.txt", out, cfg.FileOptions())
	require.NoError(t, err)

	want := `Weekly sync
[00:00:03] Alice: Let's get started.
[00:03:35] Bob: Hello world
[00:10:08] Carol: unbracketed timestamp
Notes with no timestamp at all.
[02:00:01] Alice: Wrapping up, see you at 12:00:00 tomorrow.
`
	assert.Equal(t, want, read(t, out))
	assert.Equal(t, 6, stats.Lines)
	assert.Equal(t, 4, stats.Adjusted)
	assert.Equal(t, map[string]int{"bracketed_hms": 3, "simple_hms": 1}, stats.PerPattern)

	var buf bytes.Buffer
	report := output.NewReport("inputs/sync.txt", out, 3, stats)
	require.NoError(t, output.NewJSONFormatter(output.FormatOptions{}).Format(ctx, report, &buf))

	var decoded output.Report
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 4, decoded.Stats.Adjusted)
	assert.Empty(t, decoded.Warnings)
}

func TestE2E_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		config string
		input  string
		offset string
		want   string
	}{
		{
			name:   "shift forward",
			input:  "[00:03:32] Hello world\n",
			offset: "3",
			want:   "[00:03:35] Hello world\n",
		},
		{
			name:   "clamp at zero",
			input:  "[00:00:01] x\n",
			offset: "-5",
			want:   "[00:00:00] x\n",
		},
		{
			name: "disabled bracketed pattern passes through",
			config: `timestamp:
  input_formats:
    - name: bracketed_hms
      pattern: '\[(\d{2}):(\d{2}):(\d{2})\]'
      enabled: false
    - name: minutes_only
      pattern: '^(\d+)m\b'
      groups: [minutes]
`,
			input:  "[00:03:32] Hello world\n2m later\n",
			offset: "3",
			want:   "[00:03:32] Hello world\n[00:02:03] later\n",
		},
		{
			name: "custom template",
			config: `timestamp:
  output_format: "({hours:02d}:{minutes:02d}:{seconds:02d})"
`,
			input:  "[00:03:32] Hello\n",
			offset: "5",
			want:   "(00:03:37) Hello\n",
		},
		{
			name:   "no timestamp is byte identical",
			input:  "plain words\twith  odd   spacing \r\nand a last line without newline",
			offset: "100",
			want:   "plain words\twith  odd   spacing \r\nand a last line without newline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sandbox(t)
			if tt.config != "" {
				write(t, "tsadjust.yaml", tt.config)
			}
			write(t, "in.txt", tt.input)

			root := cli.NewRootCommand()
			var stdout bytes.Buffer
			root.SetOut(&stdout)
			root.SetErr(&stdout)
			root.SetArgs(cli.NormalizeArgs([]string{"in.txt", tt.offset, "-o", "out.txt", "-q"}))
			require.NoError(t, root.Execute(), stdout.String())

			assert.Equal(t, tt.want, read(t, "out.txt"))
		})
	}
}

func TestE2E_EnvironmentOverridesFile(t *testing.T) {
	sandbox(t)
	write(t, "config.yaml", `timestamp:
  output_format: "<{hours}h{minutes:02d}m{seconds:02d}s>"
files:
  output_dir: from-file
`)
	write(t, "in.txt", "[00:00:10] hi\n")
	t.Setenv(config.EnvOutputDir, "from-env")

	root := cli.NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"in.txt", "50"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "<0h01m00s> hi\n", read(t, filepath.Join("from-env", "in_plus_50s.txt")))
	assert.NoDirExists(t, "from-file")

	// flags beat the environment
	root = cli.NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"in.txt", "50", "--output-dir", "from-flag", "-f", "{minutes}:{seconds:02d}"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "1:00 hi\n", read(t, filepath.Join("from-flag", "in_plus_50s.txt")))
}

func TestE2E_DetectThenAdjust(t *testing.T) {
	sandbox(t)
	write(t, "inputs/talk.txt", "0h 3m 2s intro\n1h00m00s outro\n")
	ctx := context.Background()

	cfg, err := config.Load(ctx, config.LoadOptions{})
	require.NoError(t, err)

	result, err := detector.New(cfg.Registry()).DetectFromFile(ctx, "inputs/talk.txt")
	require.NoError(t, err)
	require.False(t, result.HasMatch())
	best := result.BestSuggestion()
	require.NotNil(t, best)
	assert.Equal(t, "unit_hms", best.Format.Spec.Name)

	root := cli.NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"detect", "-w", "tsadjust.yaml", "inputs/talk.txt"})
	require.NoError(t, root.Execute())

	var stdout bytes.Buffer
	root = cli.NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"adjust", "inputs/talk.txt", "60"})
	commands.ExitCode = commands.ExitOK
	require.NoError(t, root.Execute())

	assert.Equal(t, commands.ExitOK, commands.ExitCode)
	got := read(t, filepath.Join("outputs", "talk_plus_60s.txt"))
	assert.Equal(t, "[00:04:02] intro\n[01:01:00] outro\n", got)
	assert.True(t, strings.HasPrefix(stdout.String(), "Adjusted timestamps by 60 seconds."))
}
