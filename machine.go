package svg2gcode

import "strings"

type toolState int

const (
	toolUnknown toolState = iota
	toolOff
	toolOn
)

// Machine tracks the tool and distance mode of the device and only emits
// a command when one of them actually changes. Both start out unknown, so
// the first request always emits.
type Machine struct {
	circular bool
	toolOn   []string
	toolOff  []string
	begin    []string
	end      []string

	tool toolState
	mode DistanceMode
}

// NewMachine returns a machine in the unknown state.
func NewMachine(cfg MachineConfig) *Machine {
	return &Machine{
		circular: cfg.SupportedFunctionality.CircularInterpolation,
		toolOn:   splitSequence(cfg.ToolOnSequence),
		toolOff:  splitSequence(cfg.ToolOffSequence),
		begin:    splitSequence(cfg.BeginSequence),
		end:      splitSequence(cfg.EndSequence),
	}
}

// splitSequence turns a user supplied snippet into program lines.
func splitSequence(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// SetTool engages or disengages the tool.
func (m *Machine) SetTool(on bool) []Command {
	want := toolOff
	if on {
		want = toolOn
	}
	if m.tool == want {
		return nil
	}
	m.tool = want
	if on {
		return []Command{ToolOn{Sequence: m.toolOn}}
	}
	return []Command{ToolOff{Sequence: m.toolOff}}
}

// SetMode switches between absolute and relative distance mode.
func (m *Machine) SetMode(mode DistanceMode) []Command {
	if m.mode == mode {
		return nil
	}
	m.mode = mode
	return []Command{SetMode{Mode: mode}}
}

// ArcCapable reports whether the device can execute circular
// interpolation moves.
func (m *Machine) ArcCapable() bool {
	return m.circular
}

// ProgramBegin returns the configured begin sequence.
func (m *Machine) ProgramBegin() []Command {
	if len(m.begin) == 0 {
		return nil
	}
	return []Command{Raw{Lines: m.begin}}
}

// ProgramEnd returns the configured end sequence.
func (m *Machine) ProgramEnd() []Command {
	if len(m.end) == 0 {
		return nil
	}
	return []Command{Raw{Lines: m.end}}
}
