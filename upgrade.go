package svg2gcode

// VersionedSettings is any settings schema version.
type VersionedSettings interface {
	SchemaVersion() Version
}

// upgradeEdge turns settings of one version into the next version. apply
// reports false when it is handed a type it does not know.
type upgradeEdge struct {
	to    Version
	apply func(VersionedSettings) (VersionedSettings, bool)
}

// upgrades maps a source version to its single outgoing edge.
var upgrades = map[Version]upgradeEdge{
	V1: {to: V2, apply: upgradeV1},
	V2: {to: V3, apply: upgradeV2},
	V3: {to: V4, apply: upgradeV3},
}

// settingsValue dereferences pointers to the known schema structs. A nil
// pointer yields nil.
func settingsValue(s VersionedSettings) VersionedSettings {
	switch p := s.(type) {
	case *SettingsV1:
		if p == nil {
			return nil
		}
		return *p
	case *SettingsV2:
		if p == nil {
			return nil
		}
		return *p
	case *SettingsV3:
		if p == nil {
			return nil
		}
		return *p
	case *Settings:
		if p == nil {
			return nil
		}
		return *p
	}
	return s
}

// TryUpgrade walks the upgrade edges from s's version until target is
// reached. Downgrades, versions without an edge and settings types the
// edges do not know fail with a *VersionError; s itself is never
// modified.
func TryUpgrade(s VersionedSettings, target Version) (VersionedSettings, error) {
	cur := settingsValue(s)
	if cur == nil {
		return nil, &VersionError{To: target}
	}
	from := cur.SchemaVersion()
	if target < from {
		return nil, &VersionError{From: from, To: target}
	}
	for cur.SchemaVersion() != target {
		edge, ok := upgrades[cur.SchemaVersion()]
		if !ok {
			return nil, &VersionError{From: from, To: target}
		}
		if cur, ok = edge.apply(cur); !ok {
			return nil, &VersionError{From: from, To: target}
		}
	}
	return cur, nil
}

func upgradeV1(vs VersionedSettings) (VersionedSettings, bool) {
	s, ok := vs.(SettingsV1)
	if !ok {
		return nil, false
	}
	resolution := 1.0
	if s.Conversion.DPI > 0 {
		resolution = 25.4 / s.Conversion.DPI
	}
	return SettingsV2{
		Version: V2,
		Conversion: ConversionConfigV2{
			Tolerance:  s.Conversion.Tolerance,
			Feedrate:   s.Conversion.Feedrate,
			Resolution: resolution,
		},
		Machine: MachineConfig{
			SupportedFunctionality: SupportedFunctionality{
				CircularInterpolation: s.Machine.CircularInterpolation,
			},
			ToolOnSequence:  s.Machine.ToolOnSequence,
			ToolOffSequence: s.Machine.ToolOffSequence,
			BeginSequence:   s.Machine.BeginSequence,
			EndSequence:     s.Machine.EndSequence,
		},
		Postprocess: s.Postprocess,
	}, true
}

func upgradeV2(vs VersionedSettings) (VersionedSettings, bool) {
	s, ok := vs.(SettingsV2)
	if !ok {
		return nil, false
	}
	return SettingsV3{
		Version: V3,
		Conversion: ConversionConfigV3{
			Tolerance:    s.Conversion.Tolerance,
			Feedrate:     s.Conversion.Feedrate,
			Resolution:   s.Conversion.Resolution,
			OriginPolicy: OriginNone,
		},
		Machine:     s.Machine,
		Postprocess: s.Postprocess,
	}, true
}

func upgradeV3(vs VersionedSettings) (VersionedSettings, bool) {
	s, ok := vs.(SettingsV3)
	if !ok {
		return nil, false
	}
	return Settings{
		Version: V4,
		Conversion: ConversionConfig{
			Tolerance:    s.Conversion.Tolerance,
			Feedrate:     s.Conversion.Feedrate,
			Resolution:   s.Conversion.Resolution,
			OriginPolicy: s.Conversion.OriginPolicy,
			Origin:       s.Conversion.Origin,
		},
		Machine: s.Machine,
		Postprocess: PostprocessConfig{
			Checksums:       s.Postprocess.Checksums,
			LineNumbers:     s.Postprocess.LineNumbers,
			LineNumberStart: 1,
			CommentStyle:    CommentParentheses,
		},
	}, true
}
