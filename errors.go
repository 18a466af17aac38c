package svg2gcode

import "fmt"

// DocumentError reports a document that cannot be converted: malformed
// path data or transforms, bad attribute values and unsupported elements.
type DocumentError struct {
	Element string
	ID      string
	Err     error
}

func (e *DocumentError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("<%s id=%q>: %v", e.Element, e.ID, e.Err)
	}
	return fmt.Sprintf("<%s>: %v", e.Element, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

func documentError(element, id string, err error) *DocumentError {
	return &DocumentError{Element: element, ID: id, Err: err}
}

// ConfigError reports settings or options the caller has to fix before
// retrying.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

// VersionError is returned when settings cannot be upgraded to the
// requested schema version.
type VersionError struct {
	From, To Version
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("settings: no upgrade path from version %d to %d", e.From, e.To)
}

// GeometryWarning describes geometry that was skipped without failing the
// conversion.
type GeometryWarning struct {
	Element string
	Reason  string
	At      Point
}

func (w GeometryWarning) String() string {
	return fmt.Sprintf("%s: %s at (%g, %g)", w.Element, w.Reason, w.At.X, w.At.Y)
}
