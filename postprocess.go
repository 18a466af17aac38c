package svg2gcode

import (
	"strconv"
	"strings"
)

// Postprocess applies the origin offset to cmds and writes them out as
// program lines. It never reorders commands.
func Postprocess(cmds []Command, cfg PostprocessConfig, offset Point) []string {
	w := lineWriter{cfg: cfg, next: cfg.LineNumberStart}
	for _, cmd := range applyOffset(cmds, offset) {
		w.command(cmd)
	}
	return w.lines
}

// applyOffset shifts the target of every move made in absolute mode.
// Moves after a switch to relative mode are distances and stay as they
// are.
func applyOffset(cmds []Command, offset Point) []Command {
	if offset == (Point{}) {
		return cmds
	}
	out := make([]Command, len(cmds))
	mode := Absolute
	for i, cmd := range cmds {
		switch c := cmd.(type) {
		case SetMode:
			mode = c.Mode
		case LinearMove:
			if mode == Absolute {
				c.To = c.To.Add(offset)
			}
			cmd = c
		case ArcMove:
			if mode == Absolute {
				c.To = c.To.Add(offset)
			}
			cmd = c
		}
		out[i] = cmd
	}
	return out
}

type lineWriter struct {
	cfg   PostprocessConfig
	next  int
	lines []string
}

// formatNumber prints v with at most six decimals and no trailing zeros.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func axes(p Point) string {
	return "X" + formatNumber(p.X) + " Y" + formatNumber(p.Y)
}

// checksum is the XOR of all bytes of line.
func checksum(line string) byte {
	var sum byte
	for i := 0; i < len(line); i++ {
		sum ^= line[i]
	}
	return sum
}

func isCommentLine(line string) bool {
	return strings.HasPrefix(line, ";") || strings.HasPrefix(line, "(")
}

// code writes a line that the machine executes. Only these lines get
// numbers and checksums.
func (w *lineWriter) code(line string) {
	if w.cfg.LineNumbers {
		line = "N" + strconv.Itoa(w.next) + " " + line
		w.next++
	}
	if w.cfg.Checksums {
		line += "*" + strconv.Itoa(int(checksum(line)))
	}
	w.lines = append(w.lines, line)
}

var (
	parenComment = strings.NewReplacer("(", "[", ")", "]", "\r", " ", "\n", " ")
	lineComment  = strings.NewReplacer("\r", " ", "\n", " ")
)

func (w *lineWriter) comment(text string) {
	if w.cfg.NewlineBeforeComment {
		w.lines = append(w.lines, "")
	}
	if w.cfg.CommentStyle == CommentSemicolon {
		w.lines = append(w.lines, "; "+lineComment.Replace(text))
		return
	}
	w.lines = append(w.lines, "("+parenComment.Replace(text)+")")
}

func (w *lineWriter) sequence(lines []string) {
	for _, line := range lines {
		if isCommentLine(line) {
			w.lines = append(w.lines, line)
			continue
		}
		w.code(line)
	}
}

func (w *lineWriter) command(cmd Command) {
	switch c := cmd.(type) {
	case LinearMove:
		if c.Feedrate == nil {
			w.code("G0 " + axes(c.To))
			return
		}
		w.code("G1 " + axes(c.To) + " F" + formatNumber(*c.Feedrate))
	case ArcMove:
		g := "G2"
		if c.Direction == CounterClockwise {
			g = "G3"
		}
		line := g + " " + axes(c.To) + " I" + formatNumber(c.Center.X) + " J" + formatNumber(c.Center.Y)
		if c.Feedrate != nil {
			line += " F" + formatNumber(*c.Feedrate)
		}
		w.code(line)
	case SetMode:
		if c.Mode == Relative {
			w.code("G91")
			return
		}
		w.code("G90")
	case ToolOn:
		w.sequence(c.Sequence)
	case ToolOff:
		w.sequence(c.Sequence)
	case Raw:
		w.sequence(c.Lines)
	case Comment:
		w.comment(c.Text)
	}
}
