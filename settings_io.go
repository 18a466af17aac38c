package svg2gcode

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// versionProbe reads only the schema version of a settings document.
type versionProbe struct {
	Version Version `json:"version" toml:"version"`
}

// decodeVersion decodes a settings document of version v using decode,
// which fills the struct it is given.
func decodeVersion(v Version, decode func(interface{}) error) (VersionedSettings, error) {
	switch v {
	case V1:
		var s SettingsV1
		err := decode(&s)
		return s, err
	case V2:
		var s SettingsV2
		err := decode(&s)
		return s, err
	case V3:
		var s SettingsV3
		err := decode(&s)
		return s, err
	case V4:
		// keys left out keep their defaults
		s := DefaultSettings()
		err := decode(&s)
		return s, err
	}
	return nil, &VersionError{From: v, To: LatestVersion}
}

// finish brings decoded settings up to the latest schema and validates
// them.
func finish(vs VersionedSettings) (Settings, error) {
	latest, err := TryUpgrade(vs, LatestVersion)
	if err != nil {
		return Settings{}, err
	}
	s := latest.(Settings)
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func missingVersion() error {
	return &ConfigError{Field: "version", Reason: "missing schema version"}
}

// ParseSettingsJSON reads settings of any known version from JSON and
// upgrades them to the latest schema. Unknown keys are rejected.
func ParseSettingsJSON(b []byte) (Settings, error) {
	var probe versionProbe
	if err := json.Unmarshal(b, &probe); err != nil {
		return Settings{}, errors.Wrap(err, "settings json")
	}
	if probe.Version == 0 {
		return Settings{}, missingVersion()
	}
	vs, err := decodeVersion(probe.Version, func(v interface{}) error {
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return &ConfigError{Field: "settings", Reason: err.Error()}
		}
		return nil
	})
	if err != nil {
		return Settings{}, err
	}
	return finish(vs)
}

// ParseSettingsTOML reads settings of any known version from TOML and
// upgrades them to the latest schema. Unknown keys are rejected.
func ParseSettingsTOML(data string) (Settings, error) {
	var probe versionProbe
	if _, err := toml.Decode(data, &probe); err != nil {
		return Settings{}, errors.Wrap(err, "settings toml")
	}
	if probe.Version == 0 {
		return Settings{}, missingVersion()
	}
	vs, err := decodeVersion(probe.Version, func(v interface{}) error {
		md, err := toml.Decode(data, v)
		if err != nil {
			return errors.Wrap(err, "settings toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return &ConfigError{Field: undecoded[0].String(), Reason: "unknown key"}
		}
		return nil
	})
	if err != nil {
		return Settings{}, err
	}
	return finish(vs)
}

// EncodeSettingsTOML writes s as a latest-version TOML document.
func EncodeSettingsTOML(w io.Writer, s Settings) error {
	s.Version = LatestVersion
	return toml.NewEncoder(w).Encode(s)
}

// EncodeSettingsJSON writes s as a latest-version JSON document.
func EncodeSettingsJSON(w io.Writer, s Settings) error {
	s.Version = LatestVersion
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
