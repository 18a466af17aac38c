package svg2gcode

import (
	"fmt"
	"math"
)

// Version identifies a settings schema.
type Version int

const (
	// V1 stores the resolution as dots per inch and the arc capability as
	// a top level machine flag.
	V1 Version = iota + 1
	// V2 stores resolution directly and groups machine capabilities.
	V2
	// V3 adds origin placement.
	V3
	// V4 adds comment formatting and the line number base.
	V4

	// LatestVersion is the schema Settings corresponds to.
	LatestVersion = V4
)

// OriginPolicy selects which point of the drawing's bounding box lands on
// the configured origin.
type OriginPolicy string

const (
	OriginNone      OriginPolicy = "none"
	OriginLowerLeft OriginPolicy = "lower-left"
	OriginCenter    OriginPolicy = "center"
	OriginUpperLeft OriginPolicy = "upper-left"
)

// CommentStyle selects how comments are written.
type CommentStyle string

const (
	CommentParentheses CommentStyle = "parentheses"
	CommentSemicolon   CommentStyle = "semicolon"
)

// ConversionConfig controls the geometry side of a conversion.
type ConversionConfig struct {
	// Tolerance is the maximum deviation of emitted moves from the true
	// curve, in device units.
	Tolerance float64 `json:"tolerance" toml:"tolerance"`
	Feedrate  float64 `json:"feedrate" toml:"feedrate"`
	// Resolution is the number of device units per document unit.
	Resolution   float64      `json:"resolution" toml:"resolution"`
	OriginPolicy OriginPolicy `json:"origin_policy" toml:"origin_policy"`
	Origin       Point        `json:"origin" toml:"origin"`
	// ExtraAttributeName names an element attribute copied into a comment
	// ahead of the element's moves.
	ExtraAttributeName string `json:"extra_attribute_name,omitempty" toml:"extra_attribute_name,omitempty"`
}

// SupportedFunctionality lists optional machine capabilities.
type SupportedFunctionality struct {
	CircularInterpolation bool `json:"circular_interpolation" toml:"circular_interpolation"`
}

// MachineConfig describes the device.
type MachineConfig struct {
	SupportedFunctionality SupportedFunctionality `json:"supported_functionality" toml:"supported_functionality"`
	ToolOnSequence         string                 `json:"tool_on_sequence,omitempty" toml:"tool_on_sequence,omitempty"`
	ToolOffSequence        string                 `json:"tool_off_sequence,omitempty" toml:"tool_off_sequence,omitempty"`
	BeginSequence          string                 `json:"begin_sequence,omitempty" toml:"begin_sequence,omitempty"`
	EndSequence            string                 `json:"end_sequence,omitempty" toml:"end_sequence,omitempty"`
}

// PostprocessConfig controls how the command stream is written out.
type PostprocessConfig struct {
	Checksums            bool         `json:"checksums" toml:"checksums"`
	LineNumbers          bool         `json:"line_numbers" toml:"line_numbers"`
	LineNumberStart      int          `json:"line_number_start" toml:"line_number_start"`
	CommentStyle         CommentStyle `json:"comment_style" toml:"comment_style"`
	NewlineBeforeComment bool         `json:"newline_before_comment" toml:"newline_before_comment"`
}

// Settings is the latest settings schema. It is the only version the
// converter accepts; older versions are upgraded with TryUpgrade.
type Settings struct {
	Version     Version           `json:"version" toml:"version"`
	Conversion  ConversionConfig  `json:"conversion" toml:"conversion"`
	Machine     MachineConfig     `json:"machine" toml:"machine"`
	Postprocess PostprocessConfig `json:"postprocess" toml:"postprocess"`
}

// SchemaVersion implements VersionedSettings.
func (Settings) SchemaVersion() Version { return V4 }

// DefaultSettings returns the defaults of the latest schema.
func DefaultSettings() Settings {
	return Settings{
		Version: LatestVersion,
		Conversion: ConversionConfig{
			Tolerance:    0.002,
			Feedrate:     300,
			Resolution:   1,
			OriginPolicy: OriginNone,
		},
		Postprocess: PostprocessConfig{
			LineNumberStart: 1,
			CommentStyle:    CommentParentheses,
		},
	}
}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return &ConfigError{Field: field, Reason: fmt.Sprintf("must be a positive number, got %v", v)}
	}
	return nil
}

// Validate checks that the settings can drive a conversion.
func (s Settings) Validate() error {
	if err := positive("conversion.tolerance", s.Conversion.Tolerance); err != nil {
		return err
	}
	if err := positive("conversion.feedrate", s.Conversion.Feedrate); err != nil {
		return err
	}
	if err := positive("conversion.resolution", s.Conversion.Resolution); err != nil {
		return err
	}
	switch s.Conversion.OriginPolicy {
	case "", OriginNone, OriginLowerLeft, OriginCenter, OriginUpperLeft:
	default:
		return &ConfigError{Field: "conversion.origin_policy", Reason: fmt.Sprintf("unknown policy %q", s.Conversion.OriginPolicy)}
	}
	switch s.Postprocess.CommentStyle {
	case "", CommentParentheses, CommentSemicolon:
	default:
		return &ConfigError{Field: "postprocess.comment_style", Reason: fmt.Sprintf("unknown style %q", s.Postprocess.CommentStyle)}
	}
	if s.Postprocess.LineNumberStart < 0 {
		return &ConfigError{Field: "postprocess.line_number_start", Reason: "must not be negative"}
	}
	return nil
}

// SettingsV3 is the third settings schema.
type SettingsV3 struct {
	Version     Version             `json:"version" toml:"version"`
	Conversion  ConversionConfigV3  `json:"conversion" toml:"conversion"`
	Machine     MachineConfig       `json:"machine" toml:"machine"`
	Postprocess PostprocessConfigV1 `json:"postprocess" toml:"postprocess"`
}

// ConversionConfigV3 is ConversionConfig without the extra attribute.
type ConversionConfigV3 struct {
	Tolerance    float64      `json:"tolerance" toml:"tolerance"`
	Feedrate     float64      `json:"feedrate" toml:"feedrate"`
	Resolution   float64      `json:"resolution" toml:"resolution"`
	OriginPolicy OriginPolicy `json:"origin_policy" toml:"origin_policy"`
	Origin       Point        `json:"origin" toml:"origin"`
}

// SchemaVersion implements VersionedSettings.
func (SettingsV3) SchemaVersion() Version { return V3 }

// SettingsV2 is the second settings schema.
type SettingsV2 struct {
	Version     Version             `json:"version" toml:"version"`
	Conversion  ConversionConfigV2  `json:"conversion" toml:"conversion"`
	Machine     MachineConfig       `json:"machine" toml:"machine"`
	Postprocess PostprocessConfigV1 `json:"postprocess" toml:"postprocess"`
}

// ConversionConfigV2 has no origin placement.
type ConversionConfigV2 struct {
	Tolerance  float64 `json:"tolerance" toml:"tolerance"`
	Feedrate   float64 `json:"feedrate" toml:"feedrate"`
	Resolution float64 `json:"resolution" toml:"resolution"`
}

// SchemaVersion implements VersionedSettings.
func (SettingsV2) SchemaVersion() Version { return V2 }

// SettingsV1 is the first settings schema.
type SettingsV1 struct {
	Version     Version             `json:"version" toml:"version"`
	Conversion  ConversionConfigV1  `json:"conversion" toml:"conversion"`
	Machine     MachineConfigV1     `json:"machine" toml:"machine"`
	Postprocess PostprocessConfigV1 `json:"postprocess" toml:"postprocess"`
}

// ConversionConfigV1 expresses resolution as dots per inch.
type ConversionConfigV1 struct {
	Tolerance float64 `json:"tolerance" toml:"tolerance"`
	Feedrate  float64 `json:"feedrate" toml:"feedrate"`
	DPI       float64 `json:"dpi" toml:"dpi"`
}

// MachineConfigV1 keeps the arc capability next to the sequences.
type MachineConfigV1 struct {
	CircularInterpolation bool   `json:"circular_interpolation" toml:"circular_interpolation"`
	ToolOnSequence        string `json:"tool_on_sequence,omitempty" toml:"tool_on_sequence,omitempty"`
	ToolOffSequence       string `json:"tool_off_sequence,omitempty" toml:"tool_off_sequence,omitempty"`
	BeginSequence         string `json:"begin_sequence,omitempty" toml:"begin_sequence,omitempty"`
	EndSequence           string `json:"end_sequence,omitempty" toml:"end_sequence,omitempty"`
}

// PostprocessConfigV1 has only the two toggles.
type PostprocessConfigV1 struct {
	Checksums   bool `json:"checksums" toml:"checksums"`
	LineNumbers bool `json:"line_numbers" toml:"line_numbers"`
}

// SchemaVersion implements VersionedSettings.
func (SettingsV1) SchemaVersion() Version { return V1 }
