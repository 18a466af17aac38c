package main

import (
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasalvit/svg2gcode"
)

func TestParseOrigin(t *testing.T) {
	p, err := parseOrigin(" 1.5, -2 ")
	require.NoError(t, err)
	assert.Equal(t, svg2gcode.Pt(1.5, -2), p)

	for _, in := range []string{"", "1", "1,2,3", "a,1", "1,b"} {
		_, err := parseOrigin(in)
		_, ok := err.(*svg2gcode.ConfigError)
		assert.True(t, ok, "%q: got %v", in, err)
	}
}

func TestDimensions(t *testing.T) {
	dims, err := dimensions("210mm", "")
	require.NoError(t, err)
	require.NotNil(t, dims[0])
	assert.Equal(t, svg2gcode.UnitMm, dims[0].Unit)
	assert.Nil(t, dims[1])

	_, err = dimensions("", "tall")
	ce, ok := err.(*svg2gcode.ConfigError)
	require.True(t, ok)
	assert.Equal(t, "height", ce.Field)
}

func TestApplyFlagsOnlyTouchesSetFlags(t *testing.T) {
	require.NoError(t, flag.Set("feedrate", "1200"))
	require.NoError(t, flag.Set("dpi", "254"))
	require.NoError(t, flag.Set("origin", "3,4"))
	require.NoError(t, flag.Set("comment-style", "semicolon"))
	require.NoError(t, flag.Set("tolerance", "5"))

	base := svg2gcode.DefaultSettings()
	s, err := applyFlags(base, map[string]bool{
		"feedrate":      true,
		"dpi":           true,
		"origin":        true,
		"comment-style": true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1200.0, s.Conversion.Feedrate)
	assert.InDelta(t, 0.1, s.Conversion.Resolution, 1e-12)
	assert.Equal(t, svg2gcode.Pt(3, 4), s.Conversion.Origin)
	assert.Equal(t, svg2gcode.CommentSemicolon, s.Postprocess.CommentStyle)
	// tolerance was changed but not marked as set on the command line
	assert.Equal(t, base.Conversion.Tolerance, s.Conversion.Tolerance)
}

func TestLoadSettings(t *testing.T) {
	dir, err := ioutil.TempDir("", "svg2gcode")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	jsonPath := filepath.Join(dir, "settings.json")
	require.NoError(t, ioutil.WriteFile(jsonPath, []byte(`{"version": 2, "conversion": {"tolerance": 0.1, "feedrate": 50, "resolution": 2}}`), 0644))
	s, err := loadSettings(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 2.0, s.Conversion.Resolution)

	tomlPath := filepath.Join(dir, "settings.toml")
	require.NoError(t, ioutil.WriteFile(tomlPath, []byte("version = 4\n[conversion]\ntolerance = 0.1\nfeedrate = 50.0\nresolution = 1.0\n"), 0644))
	s, err = loadSettings(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, 50.0, s.Conversion.Feedrate)

	_, err = loadSettings(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}
