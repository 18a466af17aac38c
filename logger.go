package svg2gcode

import (
	"io"
	"strings"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/logutils"
)

var logLevels = []logutils.LogLevel{"DEBUG", "INFO", "WARN", "ERROR"}

// NewLogger returns a logger named svg2gcode that writes to w. Lines below
// level are dropped by a level filter in front of w; unknown levels mean
// INFO.
func NewLogger(level string, w io.Writer) hclog.Logger {
	min := logutils.LogLevel("INFO")
	for _, l := range logLevels {
		if string(l) == strings.ToUpper(level) {
			min = l
		}
	}
	filter := &logutils.LevelFilter{
		Levels:   logLevels,
		MinLevel: min,
		Writer:   w,
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "svg2gcode",
		Level:  hclog.Debug,
		Output: filter,
	})
}

func orNullLogger(l hclog.Logger) hclog.Logger {
	if l == nil {
		return hclog.NewNullLogger()
	}
	return l
}
