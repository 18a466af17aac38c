package svg2gcode

import (
	"testing"

	"github.com/cheekybits/is"
	"github.com/stretchr/testify/assert"
)

func TestMachineFirstRequestAlwaysEmits(t *testing.T) {
	is := is.New(t)
	m := NewMachine(MachineConfig{})

	is.Equal(len(m.SetTool(false)), 1)
	is.Equal(len(m.SetMode(Absolute)), 1)
}

func TestMachineSuppressesRepeats(t *testing.T) {
	m := NewMachine(MachineConfig{ToolOnSequence: "M3", ToolOffSequence: "M5"})

	assert.Equal(t, []Command{ToolOn{Sequence: []string{"M3"}}}, m.SetTool(true))
	assert.Empty(t, m.SetTool(true))
	assert.Equal(t, []Command{ToolOff{Sequence: []string{"M5"}}}, m.SetTool(false))
	assert.Empty(t, m.SetTool(false))

	assert.Equal(t, []Command{SetMode{Mode: Absolute}}, m.SetMode(Absolute))
	assert.Empty(t, m.SetMode(Absolute))
	assert.Equal(t, []Command{SetMode{Mode: Relative}}, m.SetMode(Relative))
	assert.Empty(t, m.SetMode(Relative))
}

func TestMachineSequences(t *testing.T) {
	m := NewMachine(MachineConfig{
		SupportedFunctionality: SupportedFunctionality{CircularInterpolation: true},
		BeginSequence:          "G21\n\n  G17  \n",
	})
	assert.True(t, m.ArcCapable())
	assert.Equal(t, []Command{Raw{Lines: []string{"G21", "G17"}}}, m.ProgramBegin())
	assert.Empty(t, m.ProgramEnd())
	assert.Equal(t, []Command{ToolOn{}}, m.SetTool(true))
}
