package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rlcalc/pkg/units"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileBase), []byte(content), 0o644))
	return dir
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	v, err := Load(t.TempDir())
	require.NoError(t, err)

	s, err := Decode(v)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
	assert.Equal(t, units.Inch, s.OutputUnit())
}

func TestLoadFromFile(t *testing.T) {
	dir := writeConfig(t, "units: mm\nconvert: m\nprecision: 3\nlog_level: debug\n")

	v, err := Load(dir)
	require.NoError(t, err)
	s, err := Decode(v)
	require.NoError(t, err)

	assert.Equal(t, units.Milimeter, s.Units)
	require.NotNil(t, s.Convert)
	assert.Equal(t, units.Meter, *s.Convert)
	assert.Equal(t, units.Meter, s.OutputUnit())
	assert.Equal(t, 3, s.Precision)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestPrecedence(t *testing.T) {
	dir := writeConfig(t, "units: mm\nprecision: 3\n")

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("RLCALC_UNITS", "cm")
		v, err := Load(dir)
		require.NoError(t, err)
		s, err := Decode(v)
		require.NoError(t, err)
		assert.Equal(t, units.Centimeter, s.Units)
		assert.Equal(t, 3, s.Precision)
	})

	t.Run("flag overrides env and file", func(t *testing.T) {
		t.Setenv("RLCALC_UNITS", "cm")

		u := units.DefaultUnit
		precision := DefaultPrecision
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		fs.Var(&u, "units", "")
		fs.IntVar(&precision, "precision", DefaultPrecision, "")
		require.NoError(t, fs.Parse([]string{"--units", "yd"}))

		v, err := Load(dir)
		require.NoError(t, err)
		require.NoError(t, BindFlags(v, fs, map[string]string{
			KeyUnits:     "units",
			KeyPrecision: "precision",
		}))

		s, err := Decode(v)
		require.NoError(t, err)
		assert.Equal(t, units.Yard, s.Units)
		assert.Equal(t, 3, s.Precision, "unset flag must not shadow the file")
	})
}

func TestBindFlagsUnknownFlag(t *testing.T) {
	v, err := Load(t.TempDir())
	require.NoError(t, err)
	err = BindFlags(v, pflag.NewFlagSet("test", pflag.ContinueOnError), map[string]string{KeyUnits: "units"})
	assert.Error(t, err)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"unknown units", "units: furlongs\n", units.ErrInvalidUnits},
		{"unknown convert", "convert: parsecs\n", units.ErrInvalidUnits},
		{"negative precision", "precision: -1\n", ErrInvalidPrecision},
		{"huge precision", "precision: 40\n", ErrInvalidPrecision},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Load(writeConfig(t, tt.content))
			require.NoError(t, err)
			_, err = Decode(v)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	_, err := Load(writeConfig(t, "units: [mm\n"))
	assert.Error(t, err)
}

func TestWriteDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "rlcalc")

	path, created, err := WriteDefault(dir)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, filepath.Join(dir, FileBase), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "units: in")
	assert.NotContains(t, string(data), "convert")

	v, err := Load(dir)
	require.NoError(t, err)
	s, err := Decode(v)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)

	require.NoError(t, os.WriteFile(path, []byte("units: ft\n"), 0o644))
	_, created, err = WriteDefault(dir)
	require.NoError(t, err)
	assert.False(t, created, "existing config must be kept")

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "units: ft\n", string(data))
}
