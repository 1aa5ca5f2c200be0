package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rlcalc/internal/paths"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// isolate points the config dir at an empty temp dir and clears RLCALC_*
// overrides. It returns the config dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, dir)
	for _, key := range []string{"RLCALC_UNITS", "RLCALC_CONVERT", "RLCALC_PRECISION", "RLCALC_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	return dir
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestCalc(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"positional inches", []string{"3.25", "10", "0.015"}, "4703.75in\n"},
		{"named flags", []string{"--coreod", "3.25", "--rollod", "10", "--thickness", "0.015"}, "4703.75in\n"},
		{"short flags", []string{"-c", "3.25", "-r", "10", "-t", "0.015"}, "4703.75in\n"},
		{"flag aliases", []string{"--core-od", "3.25", "--roll-od", "10", "--thick", "0.015"}, "4703.75in\n"},
		{"mixed units", []string{"-c", "82.55mm", "-r", "254 mm", "-t", "15 mil"}, "4703.75in\n"},
		{"mixed positional and named", []string{"3.25", "10", "-t", "0.015"}, "4703.75in\n"},
		{"working units", []string{"--units", "mm", "82.55", "254", "0.381"}, "118677.28mm\n"},
		{"convert output", []string{"--convert", "yd", "3.25", "10", "0.015"}, "130.66yd\n"},
		{"precision", []string{"--precision", "4", "3.25in", "10in", "0.015in"}, "4703.7496in\n"},
		{"degenerate roll", []string{"5", "5", "0.01"}, "0.00in\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			res := run(t, "", tt.args...)
			require.Equal(t, exitSuccess, res.code, "stderr: %s", res.stderr)
			assert.Equal(t, tt.want, res.stdout)
			assert.Empty(t, res.stderr)
		})
	}
}

func TestCalcJSON(t *testing.T) {
	isolate(t)
	res := run(t, "", "--json", "3.25", "10", "0.015")
	require.Equal(t, exitSuccess, res.code, "stderr: %s", res.stderr)

	var got struct {
		CoreOD struct {
			Magnitude float64 `json:"magnitude"`
			Unit      string  `json:"unit"`
		} `json:"coreod"`
		Length struct {
			Magnitude float64 `json:"magnitude"`
			Unit      string  `json:"unit"`
		} `json:"length"`
		Wraps     int    `json:"wraps"`
		Formatted string `json:"formatted"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, 3.25, got.CoreOD.Magnitude)
	assert.Equal(t, "in", got.CoreOD.Unit)
	assert.InDelta(t, 4703.749600587324, got.Length.Magnitude, 1e-9)
	assert.Equal(t, "in", got.Length.Unit)
	assert.Equal(t, 226, got.Wraps)
	assert.Equal(t, "4703.75in", got.Formatted)
}

func TestCalcValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing thickness", []string{"3.25", "10"}, "thickness: missing field"},
		{"nothing given", nil, "coreod: missing field"},
		{"unknown unit token", []string{"3.25", "10", "0.015xyz"}, `invalid units: "xyz"`},
		{"malformed number", []string{"3.25", "ten", "0.015"}, "malformed number"},
		{"zero core", []string{"0", "10", "0.015"}, `coreod must be positive: "0"`},
		{"zero thickness", []string{"3.25", "10", "0"}, "invalid geometry"},
		{"roll smaller than core", []string{"10", "3.25", "0.015"}, "invalid geometry"},
		{"flag and argument for one field", []string{"-c", "3", "3.25", "10", "0.015"}, "coreod given both"},
		{"too many arguments", []string{"1", "2", "3", "4"}, "accepts at most 3 arg(s)"},
		{"unknown working unit", []string{"--units", "furlongs", "1", "2", "0.1"}, "furlongs"},
		{"unknown output unit", []string{"--convert", "furlongs", "1", "2", "0.1"}, "furlongs"},
		{"unknown flag", []string{"--bogus"}, "unknown flag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			res := run(t, "", tt.args...)
			assert.Equal(t, exitUserError, res.code)
			assert.Empty(t, res.stdout, "no partial output on failure")
			assert.Contains(t, res.stderr, tt.wantErr)
		})
	}
}

func TestCalcUsesConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("units: mm\nprecision: 1\n"), 0o644))

	res := run(t, "", "82.55", "254", "0.381")
	require.Equal(t, exitSuccess, res.code, "stderr: %s", res.stderr)
	assert.Equal(t, "118677.3mm\n", res.stdout)

	res = run(t, "", "--units", "in", "--precision", "2", "3.25", "10", "0.015")
	require.Equal(t, exitSuccess, res.code, "stderr: %s", res.stderr)
	assert.Equal(t, "4703.75in\n", res.stdout, "flags override the file")
}

func TestCalcUsesEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("RLCALC_CONVERT", "yd")

	res := run(t, "", "3.25", "10", "0.015")
	require.Equal(t, exitSuccess, res.code, "stderr: %s", res.stderr)
	assert.Equal(t, "130.66yd\n", res.stdout)
}

func TestConfigErrorsExitCodes(t *testing.T) {
	t.Run("invalid value is a user error", func(t *testing.T) {
		dir := isolate(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("units: parsecs\n"), 0o644))
		res := run(t, "", "3.25", "10", "0.015")
		assert.Equal(t, exitUserError, res.code)
		assert.Contains(t, res.stderr, "config: units")
	})

	t.Run("unreadable file is a system error", func(t *testing.T) {
		dir := isolate(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("units: [in\n"), 0o644))
		res := run(t, "", "3.25", "10", "0.015")
		assert.Equal(t, exitSysError, res.code)
		assert.Empty(t, res.stdout)
	})
}

func TestDebugLoggingGoesToStderr(t *testing.T) {
	isolate(t)
	res := run(t, "", "--log-level", "debug", "3.25", "10", "0.015")
	require.Equal(t, exitSuccess, res.code, "stderr: %s", res.stderr)
	assert.Equal(t, "4703.75in\n", res.stdout)
	assert.Contains(t, res.stderr, "resolved roll")
	assert.Contains(t, res.stderr, "wraps=226")
}

func TestConvertCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"inch to mm", []string{"convert", "3.25in", "mm"}, "82.55mm\n"},
		{"mil to inch", []string{"convert", "15 mil", "in"}, "0.015in\n"},
		{"meter to yard", []string{"convert", "1m", "yards"}, "1.09361329834yd\n"},
		{"bare number in working units", []string{"--units", "ft", "convert", "3", "yd"}, "1yd\n"},
		{"fixed precision", []string{"--precision", "3", "convert", "1m", "in"}, "39.370in\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			res := run(t, "", tt.args...)
			require.Equal(t, exitSuccess, res.code, "stderr: %s", res.stderr)
			assert.Equal(t, tt.want, res.stdout)
		})
	}
}

func TestConvertCmdErrors(t *testing.T) {
	isolate(t)

	res := run(t, "", "convert", "1in", "furlongs")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, `invalid units: "furlongs"`)

	res = run(t, "", "convert", "1xyz", "mm")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, `invalid units: "xyz"`)

	res = run(t, "", "convert", "1in")
	assert.Equal(t, exitUserError, res.code)
}

func TestUnitsCmd(t *testing.T) {
	isolate(t)
	res := run(t, "", "units")
	require.Equal(t, exitSuccess, res.code, "stderr: %s", res.stderr)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[0], "SUFFIX")
	assert.Contains(t, lines[1], "mil")
	assert.Contains(t, lines[2], `in  `)
	assert.Contains(t, lines[2], `"`)
	assert.Contains(t, lines[3], "'")
	assert.Contains(t, lines[7], "1000")
}

func TestInteractiveCmd(t *testing.T) {
	isolate(t)
	res := run(t, "roll 12\nunits mm\nquit\n", "interactive")
	require.Equal(t, exitSuccess, res.code, "stderr: %s", res.stderr)
	assert.Contains(t, res.stdout, "Roll Length: 4703.75in")
	assert.Contains(t, res.stdout, "[x] Milimeters")
	assert.Contains(t, res.stdout, "304.8")
}

func TestInteractiveCmdStartsInWorkingUnits(t *testing.T) {
	isolate(t)
	res := run(t, "quit\n", "--units", "mm", "i")
	require.Equal(t, exitSuccess, res.code, "stderr: %s", res.stderr)
	assert.Contains(t, res.stdout, "[82.55]")
	assert.Contains(t, res.stdout, "[x] Milimeters")
}

func TestConfigCmd(t *testing.T) {
	dir := isolate(t)

	res := run(t, "", "config", "init")
	require.Equal(t, exitSuccess, res.code, "stderr: %s", res.stderr)
	assert.Contains(t, res.stdout, "wrote "+filepath.Join(dir, "config.yaml"))

	res = run(t, "", "config", "init")
	require.Equal(t, exitSuccess, res.code, "stderr: %s", res.stderr)
	assert.Contains(t, res.stdout, "already exists")

	res = run(t, "", "--convert", "m", "config", "show")
	require.Equal(t, exitSuccess, res.code, "stderr: %s", res.stderr)
	assert.Contains(t, res.stdout, "units: in")
	assert.Contains(t, res.stdout, "convert: m")
	assert.Contains(t, res.stdout, "precision: 2")
}

func TestVersionCmd(t *testing.T) {
	res := run(t, "", "version")
	require.Equal(t, exitSuccess, res.code)
	assert.Contains(t, res.stdout, "rlcalc v")
	assert.Contains(t, res.stdout, "module: github.com/mesh-intelligence/rlcalc")
}
