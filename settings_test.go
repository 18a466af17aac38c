package svg2gcode

import (
	"bytes"
	"testing"

	"github.com/cheekybits/is"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var v1Settings = SettingsV1{
	Version: V1,
	Conversion: ConversionConfigV1{
		Tolerance: 0.01,
		Feedrate:  1200,
		DPI:       96,
	},
	Machine: MachineConfigV1{
		CircularInterpolation: true,
		ToolOnSequence:        "M3",
		ToolOffSequence:       "M5",
	},
	Postprocess: PostprocessConfigV1{LineNumbers: true},
}

func TestDefaultSettingsAreValid(t *testing.T) {
	is := is.New(t)
	s := DefaultSettings()
	is.NoErr(s.Validate())
	is.Equal(s.Version, LatestVersion)
	is.Equal(s.SchemaVersion(), LatestVersion)
}

func TestUpgradeFromV1(t *testing.T) {
	up, err := TryUpgrade(v1Settings, LatestVersion)
	require.NoError(t, err)
	s, ok := up.(Settings)
	require.True(t, ok, "got %T", up)

	assert.Equal(t, V4, s.Version)
	assert.InDelta(t, 25.4/96, s.Conversion.Resolution, 1e-12)
	assert.Equal(t, 0.01, s.Conversion.Tolerance)
	assert.Equal(t, 1200.0, s.Conversion.Feedrate)
	assert.Equal(t, OriginNone, s.Conversion.OriginPolicy)
	assert.True(t, s.Machine.SupportedFunctionality.CircularInterpolation)
	assert.Equal(t, "M3", s.Machine.ToolOnSequence)
	assert.Equal(t, "M5", s.Machine.ToolOffSequence)
	assert.True(t, s.Postprocess.LineNumbers)
	assert.Equal(t, 1, s.Postprocess.LineNumberStart)
	assert.Equal(t, CommentParentheses, s.Postprocess.CommentStyle)
	assert.NoError(t, s.Validate())
}

func TestUpgradeIsPure(t *testing.T) {
	before := v1Settings
	a, err := TryUpgrade(v1Settings, LatestVersion)
	require.NoError(t, err)
	b, err := TryUpgrade(v1Settings, LatestVersion)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, before, v1Settings)
}

func TestUpgradeStepByStep(t *testing.T) {
	v2, err := TryUpgrade(v1Settings, V2)
	require.NoError(t, err)
	assert.IsType(t, SettingsV2{}, v2)

	v3, err := TryUpgrade(v2, V3)
	require.NoError(t, err)
	assert.IsType(t, SettingsV3{}, v3)

	direct, err := TryUpgrade(v1Settings, V4)
	require.NoError(t, err)
	stepped, err := TryUpgrade(v3, V4)
	require.NoError(t, err)
	assert.Equal(t, direct, stepped)

	same, err := TryUpgrade(v3, V3)
	require.NoError(t, err)
	assert.Equal(t, v3, same)
}

func TestUpgradeFailures(t *testing.T) {
	s := DefaultSettings()
	_, err := TryUpgrade(s, V2)
	require.Error(t, err)
	ve, ok := err.(*VersionError)
	require.True(t, ok)
	assert.Equal(t, V4, ve.From)
	assert.Equal(t, V2, ve.To)
	assert.Equal(t, DefaultSettings(), s)

	_, err = TryUpgrade(v1Settings, Version(9))
	ve, ok = err.(*VersionError)
	require.True(t, ok)
	assert.Equal(t, V1, ve.From)
}

func TestUpgradeAcceptsPointers(t *testing.T) {
	v1 := v1Settings
	up, err := TryUpgrade(&v1, LatestVersion)
	require.NoError(t, err)
	want, err := TryUpgrade(v1Settings, LatestVersion)
	require.NoError(t, err)
	assert.Equal(t, want, up)

	latest := DefaultSettings()
	same, err := TryUpgrade(&latest, LatestVersion)
	require.NoError(t, err)
	assert.Equal(t, latest, same)

	_, err = TryUpgrade((*SettingsV2)(nil), LatestVersion)
	_, ok := err.(*VersionError)
	assert.True(t, ok, "nil settings: got %v", err)
}

// foreignSettings claims the first schema version without being one.
type foreignSettings struct{}

func (foreignSettings) SchemaVersion() Version { return V1 }

func TestUpgradeRejectsUnknownTypes(t *testing.T) {
	var up VersionedSettings
	var err error
	require.NotPanics(t, func() { up, err = TryUpgrade(foreignSettings{}, LatestVersion) })
	assert.Nil(t, up)
	ve, ok := err.(*VersionError)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, V1, ve.From)
	assert.Equal(t, LatestVersion, ve.To)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*Settings)
	}{
		{"conversion.tolerance", func(s *Settings) { s.Conversion.Tolerance = -1 }},
		{"conversion.feedrate", func(s *Settings) { s.Conversion.Feedrate = 0 }},
		{"conversion.resolution", func(s *Settings) { s.Conversion.Resolution = 0 }},
		{"conversion.origin_policy", func(s *Settings) { s.Conversion.OriginPolicy = "middle" }},
		{"postprocess.comment_style", func(s *Settings) { s.Postprocess.CommentStyle = "hash" }},
		{"postprocess.line_number_start", func(s *Settings) { s.Postprocess.LineNumberStart = -1 }},
	}
	for _, test := range tests {
		t.Run(test.field, func(t *testing.T) {
			s := DefaultSettings()
			test.mutate(&s)
			err := s.Validate()
			ce, ok := err.(*ConfigError)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, test.field, ce.Field)
		})
	}
}

func TestParseSettingsJSON(t *testing.T) {
	s, err := ParseSettingsJSON([]byte(`{
  "version": 1,
  "conversion": {"tolerance": 0.002, "feedrate": 300, "dpi": 96},
  "machine": {"circular_interpolation": true, "tool_on_sequence": "M3"},
  "postprocess": {"checksums": true, "line_numbers": false}
}`))
	require.NoError(t, err)
	assert.InDelta(t, 25.4/96, s.Conversion.Resolution, 1e-12)
	assert.True(t, s.Machine.SupportedFunctionality.CircularInterpolation)
	assert.True(t, s.Postprocess.Checksums)

	_, err = ParseSettingsJSON([]byte(`{"version": 4, "conversion": {"tolerance": 1, "feedrate": 1, "resolution": 1, "bogus": 2}}`))
	_, ok := errors.Cause(err).(*ConfigError)
	assert.True(t, ok, "unknown key: got %v", err)

	_, err = ParseSettingsJSON([]byte(`{"conversion": {}}`))
	_, ok = errors.Cause(err).(*ConfigError)
	assert.True(t, ok, "missing version: got %v", err)

	_, err = ParseSettingsJSON([]byte(`{"version": 7}`))
	_, ok = errors.Cause(err).(*VersionError)
	assert.True(t, ok, "unknown version: got %v", err)

	_, err = ParseSettingsJSON([]byte(`{`))
	assert.Error(t, err)
}

func TestParseSettingsTOML(t *testing.T) {
	s, err := ParseSettingsTOML(`
version = 3

[conversion]
tolerance = 0.05
feedrate = 800.0
resolution = 0.5
origin_policy = "center"

[conversion.origin]
x = 10.0
y = 20.0

[machine]
tool_off_sequence = "M5"

[machine.supported_functionality]
circular_interpolation = true

[postprocess]
line_numbers = true
`)
	require.NoError(t, err)
	assert.Equal(t, LatestVersion, s.Version)
	assert.Equal(t, 0.05, s.Conversion.Tolerance)
	assert.Equal(t, OriginCenter, s.Conversion.OriginPolicy)
	assert.Equal(t, Pt(10, 20), s.Conversion.Origin)
	assert.True(t, s.Machine.SupportedFunctionality.CircularInterpolation)
	assert.Equal(t, "M5", s.Machine.ToolOffSequence)
	assert.True(t, s.Postprocess.LineNumbers)
	assert.Equal(t, 1, s.Postprocess.LineNumberStart)

	_, err = ParseSettingsTOML("version = 4\nspeed = 3\n")
	ce, ok := errors.Cause(err).(*ConfigError)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, "speed", ce.Field)

	_, err = ParseSettingsTOML("version = 4\n[conversion]\ntolerance = 0.0\nfeedrate = 1.0\nresolution = 1.0\n")
	ce, ok = errors.Cause(err).(*ConfigError)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, "conversion.tolerance", ce.Field)
}

func TestLatestSettingsKeepDefaults(t *testing.T) {
	s, err := ParseSettingsTOML("version = 4\n[conversion]\nfeedrate = 800.0\n")
	require.NoError(t, err)
	assert.Equal(t, 800.0, s.Conversion.Feedrate)
	assert.Equal(t, DefaultSettings().Conversion.Tolerance, s.Conversion.Tolerance)
	assert.Equal(t, 1.0, s.Conversion.Resolution)
	assert.Equal(t, 1, s.Postprocess.LineNumberStart)
	assert.Equal(t, CommentParentheses, s.Postprocess.CommentStyle)

	s, err = ParseSettingsJSON([]byte(`{"version": 4, "postprocess": {"line_numbers": true}}`))
	require.NoError(t, err)
	assert.True(t, s.Postprocess.LineNumbers)
	assert.Equal(t, 1, s.Postprocess.LineNumberStart)
	assert.Equal(t, 0.002, s.Conversion.Tolerance)
}

func TestSettingsRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.Conversion.OriginPolicy = OriginUpperLeft
	s.Conversion.Origin = Pt(1, 2)
	s.Machine.BeginSequence = "G21\nG17"
	s.Postprocess.CommentStyle = CommentSemicolon

	var buf bytes.Buffer
	require.NoError(t, EncodeSettingsTOML(&buf, s))
	back, err := ParseSettingsTOML(buf.String())
	require.NoError(t, err)
	assert.Equal(t, s, back)

	buf.Reset()
	require.NoError(t, EncodeSettingsJSON(&buf, s))
	back, err = ParseSettingsJSON(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, s, back)
}
