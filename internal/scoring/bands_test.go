package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBands_DefaultIsValid(t *testing.T) {
	require.NoError(t, DefaultBands().Validate())
}

func TestBands_Grade(t *testing.T) {
	bands := DefaultBands()
	tests := []struct {
		pct  int
		want string
	}{
		{100, "Advanced"},
		{80, "Advanced"},
		{79, "Upper-Intermediate"},
		{60, "Upper-Intermediate"},
		{40, "Intermediate"},
		{39, "Below Pass"},
		{0, "Below Pass"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bands.Grade(tt.pct).Name, "pct %d", tt.pct)
	}
}

func TestBands_EveryPercentageHasOneBand(t *testing.T) {
	bands := DefaultBands()
	for pct := 0; pct <= 100; pct++ {
		matches := 0
		for i, b := range bands {
			upper := 101
			if i > 0 {
				upper = bands[i-1].MinPercent
			}
			if pct >= b.MinPercent && pct < upper {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "pct %d", pct)
	}
}

func TestBands_ValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		bands   Bands
		wantErr string
	}{
		{"empty", Bands{}, "at least one band"},
		{"missing name", Bands{{MinPercent: 0}}, "name is required"},
		{"duplicate", Bands{{Name: "X", MinPercent: 50}, {Name: "X", MinPercent: 0}}, "duplicate name"},
		{"not descending", Bands{{Name: "A", MinPercent: 40}, {Name: "B", MinPercent: 40}, {Name: "C"}}, "must be below"},
		{"out of range", Bands{{Name: "A", MinPercent: 120}, {Name: "B"}}, "out of range"},
		{"gap at bottom", Bands{{Name: "A", MinPercent: 50}, {Name: "B", MinPercent: 10}}, "must start at 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bands.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseBands(t *testing.T) {
	data := []byte(`
bands:
  - name: Pass
    min_percent: 50
    pass: true
  - name: Fail
    min_percent: 0
`)
	bands, err := ParseBands(data)
	require.NoError(t, err)
	require.Len(t, bands, 2)
	assert.True(t, bands[0].Pass)
	assert.Equal(t, "Fail", bands.Grade(49).Name)
}

func TestParseBands_Invalid(t *testing.T) {
	_, err := ParseBands([]byte("bands:\n  - name: Only\n    min_percent: 10\n"))
	assert.ErrorContains(t, err, "must start at 0")

	_, err = ParseBands([]byte("bands: ["))
	assert.ErrorContains(t, err, "parse bands")
}

func TestConfigFromFile(t *testing.T) {
	cfg, err := ConfigFromFile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBands(), cfg.Bands)

	path := filepath.Join(t.TempDir(), "bands.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bands:\n  - name: All\n    min_percent: 0\n    pass: true\n"), 0o644))

	cfg, err = ConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "All", cfg.Bands.Grade(0).Name)

	_, err = ConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read bands file")
}

func TestBands_PassMark(t *testing.T) {
	assert.Equal(t, 40, DefaultBands().PassMark())
	assert.Equal(t, 101, Bands{{Name: "Fail", MinPercent: 0}}.PassMark())
}
