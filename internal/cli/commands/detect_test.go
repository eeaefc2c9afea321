package commands

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/ccollicutt/tsadjust/pkg/config"
)

func TestNewDetectCommand(t *testing.T) {
	cmd := NewDetectCommand(&GlobalOptions{})

	assert.Equal(t, "detect <input>...", cmd.Use)
	for _, flag := range []string{"report", "sample", "all", "write-config"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), flag)
	}
}

func TestDetect_ConfiguredFormatMatches(t *testing.T) {
	workspace(t)
	writeFile(t, "inputs/meeting.txt", meeting)

	res := run(t, NewDetectCommand, "detect", "inputs/meeting.txt")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Lines sampled: 3")
	assert.Contains(t, res.stdout, "Lines that would be adjusted: 2")
	assert.Contains(t, res.stdout, "1. bracketed_hms: matches 2, applied 2")
	assert.Contains(t, res.stdout, "2. simple_hms: matches 2, applied 0")
	assert.Contains(t, res.stdout, "bracketed_hms_flex (disabled)")
	assert.NotContains(t, res.stdout, "Suggested Format")
	assert.Equal(t, ExitOK, ExitCode)
}

func TestDetect_HonorsEncoding(t *testing.T) {
	workspace(t)
	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().String(meeting)
	require.NoError(t, err)
	writeFile(t, "inputs/meeting.txt", utf16)

	res := run(t, NewDetectCommand, "detect", "--encoding", "utf-16le", "inputs/meeting.txt")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Lines that would be adjusted: 2")
	assert.Equal(t, ExitOK, ExitCode)
}

func TestDetect_SuggestsBuiltinFormat(t *testing.T) {
	workspace(t)
	writeFile(t, "inputs/paren.txt", "(1:02:03) hello\n(1:02:09) again\n")

	res := run(t, NewDetectCommand, "detect", "inputs/paren.txt")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "No configured format matched.")
	assert.Contains(t, res.stdout, "Suggested Format: parenthesized_hms")
	assert.Contains(t, res.stdout, "groups: [hours, minutes, seconds]")
	assert.Equal(t, ExitNoMatches, ExitCode)
}

func TestDetect_NothingDetected(t *testing.T) {
	workspace(t)
	writeFile(t, "inputs/plain.txt", "just words\n")

	res := run(t, NewDetectCommand, "detect", "inputs/plain.txt")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "No timestamp format detected.")
	assert.Equal(t, ExitNoMatches, ExitCode)
}

func TestDetect_JSON(t *testing.T) {
	workspace(t)
	writeFile(t, "inputs/a.txt", meeting)
	writeFile(t, "inputs/b.txt", "(1:02:03) hello\n")

	res := run(t, NewDetectCommand, "detect", "--report", "json", "inputs/*.txt")
	require.NoError(t, res.err)

	var out []JSONDetection
	require.NoError(t, sonic.UnmarshalString(res.stdout, &out))
	require.Len(t, out, 2)

	assert.Equal(t, "inputs/a.txt", out[0].File)
	assert.Equal(t, 2, out[0].MatchedLines)
	require.Len(t, out[0].Formats, 3)
	assert.Equal(t, 2, out[0].Formats[0].WinCount)

	assert.Equal(t, 0, out[1].MatchedLines)
	require.Len(t, out[1].Suggestions, 1)
	assert.Equal(t, "parenthesized_hms", out[1].Suggestions[0].Name)
}

func TestDetect_WriteConfig(t *testing.T) {
	workspace(t)
	writeFile(t, "inputs/paren.txt", "(1:02:03) hello\n")

	res := run(t, NewDetectCommand, "detect", "-w", "tsadjust.yaml", "inputs/paren.txt")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "wrote starter config to tsadjust.yaml")

	cfg, err := config.ReadFile("tsadjust.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Timestamp.InputFormats)
	assert.Equal(t, "parenthesized_hms", cfg.Timestamp.InputFormats[0].Name)

	// the written config now drives adjust
	res = run(t, NewAdjustCommand, "adjust", "inputs/paren.txt", "10")
	require.NoError(t, res.err)
	assert.Contains(t, readFile(t, "outputs/paren_plus_10s.txt"), "[01:02:13] hello")

	res = run(t, NewDetectCommand, "detect", "-w", "tsadjust.yaml", "inputs/paren.txt")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "will not overwrite")
}

func TestDetect_Errors(t *testing.T) {
	workspace(t)

	res := run(t, NewDetectCommand, "detect", "inputs/missing.txt")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "transcript not found")

	writeFile(t, "inputs/plain.txt", "words\n")
	res = run(t, NewDetectCommand, "detect", "-w", "new.yaml", "inputs/plain.txt")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "no timestamp format detected")

	res = run(t, NewDetectCommand, "detect", "--report", "yaml", "inputs/plain.txt")
	require.Error(t, res.err)
}
