package state

import (
	"fmt"
	"image/color"
)

// Point is a canvas-local coordinate.
type Point struct{ X, Y float64 }

// Mode is the shape-producing behavior currently active.
type Mode int

const (
	ModeDot Mode = iota
	ModeLine
	ModeLinkedLines
	ModeCurve
	ModeLinkedCurve
)

var modeNames = [...]string{
	ModeDot:         "dot",
	ModeLine:        "line",
	ModeLinkedLines: "linkedLines",
	ModeCurve:       "curve",
	ModeLinkedCurve: "linkedCurve",
}

var modeLabels = [...]string{
	ModeDot:         "Dot",
	ModeLine:        "Line",
	ModeLinkedLines: "Linked lines",
	ModeCurve:       "Curve",
	ModeLinkedCurve: "Linked curve",
}

// Modes lists every drawing mode in menu order.
func Modes() []Mode {
	return []Mode{ModeDot, ModeLine, ModeLinkedLines, ModeCurve, ModeLinkedCurve}
}

func (m Mode) valid() bool { return m >= ModeDot && m <= ModeLinkedCurve }

func (m Mode) String() string {
	if !m.valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Label is the human readable button text for the mode.
func (m Mode) Label() string {
	if !m.valid() {
		return m.String()
	}
	return modeLabels[m]
}

// ParseMode maps a mode name ("dot", "line", "linkedLines", "curve",
// "linkedCurve") to its Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return ModeDot, fmt.Errorf("unknown drawing mode %q", s)
}

// Style is the color and stroke width applied to every render.
type Style struct {
	Color color.Color
	Width float64
}
