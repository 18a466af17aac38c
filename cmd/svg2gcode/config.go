package main

import (
	"io/ioutil"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/vasalvit/svg2gcode"
)

// loadSettings reads a settings file, choosing the codec by extension.
func loadSettings(path string) (svg2gcode.Settings, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return svg2gcode.Settings{}, errors.Wrap(err, "read settings")
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return svg2gcode.ParseSettingsJSON(b)
	}
	return svg2gcode.ParseSettingsTOML(string(b))
}

// applyFlags copies the values of the explicitly set flags onto s.
func applyFlags(s svg2gcode.Settings, set map[string]bool) (svg2gcode.Settings, error) {
	if set["tolerance"] {
		s.Conversion.Tolerance = *flagTolerance
	}
	if set["feedrate"] {
		s.Conversion.Feedrate = *flagFeedrate
	}
	if set["dpi"] {
		if *flagDPI <= 0 {
			return s, &svg2gcode.ConfigError{Field: "dpi", Reason: "must be positive"}
		}
		s.Conversion.Resolution = 25.4 / *flagDPI
	}
	if set["resolution"] {
		s.Conversion.Resolution = *flagResolution
	}
	if set["origin"] {
		p, err := parseOrigin(*flagOrigin)
		if err != nil {
			return s, err
		}
		s.Conversion.Origin = p
	}
	if set["origin-policy"] {
		s.Conversion.OriginPolicy = svg2gcode.OriginPolicy(*flagOriginPolicy)
	}
	if set["circular"] {
		s.Machine.SupportedFunctionality.CircularInterpolation = *flagCircular
	}
	if set["on"] {
		s.Machine.ToolOnSequence = *flagToolOn
	}
	if set["off"] {
		s.Machine.ToolOffSequence = *flagToolOff
	}
	if set["begin"] {
		s.Machine.BeginSequence = *flagBegin
	}
	if set["end"] {
		s.Machine.EndSequence = *flagEnd
	}
	if set["line-numbers"] {
		s.Postprocess.LineNumbers = *flagLineNumbers
	}
	if set["checksums"] {
		s.Postprocess.Checksums = *flagChecksums
	}
	if set["comment-style"] {
		s.Postprocess.CommentStyle = svg2gcode.CommentStyle(*flagCommentStyle)
	}
	return s, nil
}

// parseOrigin parses "x,y".
func parseOrigin(s string) (svg2gcode.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return svg2gcode.Point{}, &svg2gcode.ConfigError{Field: "origin", Reason: "want x,y"}
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return svg2gcode.Point{}, &svg2gcode.ConfigError{Field: "origin", Reason: err.Error()}
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return svg2gcode.Point{}, &svg2gcode.ConfigError{Field: "origin", Reason: err.Error()}
	}
	return svg2gcode.Pt(x, y), nil
}

// dimensions parses the width and height overrides; empty means none.
func dimensions(width, height string) ([2]*svg2gcode.Length, error) {
	var dims [2]*svg2gcode.Length
	for i, v := range []string{width, height} {
		if v == "" {
			continue
		}
		l, err := svg2gcode.ParseLength(v)
		if err != nil {
			field := "width"
			if i == 1 {
				field = "height"
			}
			return dims, &svg2gcode.ConfigError{Field: field, Reason: err.Error()}
		}
		dims[i] = &l
	}
	return dims, nil
}
