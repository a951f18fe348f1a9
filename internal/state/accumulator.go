package state

// ShapeKind tags the geometry carried by a Shape.
type ShapeKind int

const (
	ShapeDot ShapeKind = iota
	ShapeSegment
	ShapeCurve
)

// Shape is one complete piece of geometry ready to be committed to the
// raster surface. Which points are meaningful depends on Kind:
//
//	ShapeDot:     From is the center
//	ShapeSegment: From, To
//	ShapeCurve:   From, Control, To (quadratic Bezier)
type Shape struct {
	Kind    ShapeKind
	From    Point
	Control Point
	To      Point
}

// ControlPoint returns the quadratic Bezier control point for which the
// curve from p0 to p2 passes through mid at t=1/2.
//
//	B(1/2) = p0/4 + c/2 + p2/4  =>  c = 2*mid - p0/2 - p2/2
func ControlPoint(p0, mid, p2 Point) Point {
	return Point{
		X: 2*mid.X - 0.5*p0.X - 0.5*p2.X,
		Y: 2*mid.Y - 0.5*p0.Y - 0.5*p2.Y,
	}
}

// Accumulator buffers the points of the shape being built in the active
// mode. The zero value is a Dot accumulator with an empty buffer.
type Accumulator struct {
	mode    Mode
	pending []Point
}

// NewAccumulator returns an empty accumulator for mode m.
func NewAccumulator(m Mode) *Accumulator {
	return &Accumulator{mode: m, pending: make([]Point, 0, 3)}
}

// Mode returns the active drawing mode.
func (a *Accumulator) Mode() Mode { return a.mode }

// SetMode switches the active mode. Any in-progress buffer is discarded.
func (a *Accumulator) SetMode(m Mode) {
	a.mode = m
	a.Reset()
}

// Reset discards all pending points.
func (a *Accumulator) Reset() {
	a.pending = a.pending[:0]
}

// Pending returns a copy of the buffered points.
func (a *Accumulator) Pending() []Point {
	out := make([]Point, len(a.pending))
	copy(out, a.pending)
	return out
}

// Add feeds one point into the state machine of the active mode. It reports
// the shape to render when the point completes one.
func (a *Accumulator) Add(p Point) (Shape, bool) {
	switch a.mode {
	case ModeDot:
		return Shape{Kind: ShapeDot, From: p}, true

	case ModeLine:
		if len(a.pending) == 0 {
			a.pending = append(a.pending, p)
			return Shape{}, false
		}
		s := Shape{Kind: ShapeSegment, From: a.pending[0], To: p}
		a.Reset()
		return s, true

	case ModeLinkedLines:
		if len(a.pending) == 0 {
			a.pending = append(a.pending, p)
			return Shape{}, false
		}
		s := Shape{Kind: ShapeSegment, From: a.pending[0], To: p}
		a.pending[0] = p
		return s, true

	case ModeCurve, ModeLinkedCurve:
		a.pending = append(a.pending, p)
		if len(a.pending) < 3 {
			return Shape{}, false
		}
		p0, mid, p2 := a.pending[0], a.pending[1], a.pending[2]
		s := Shape{Kind: ShapeCurve, From: p0, Control: ControlPoint(p0, mid, p2), To: p2}
		a.Reset()
		if a.mode == ModeLinkedCurve {
			// only the endpoint carries over, not the tangent
			a.pending = append(a.pending, p2)
		}
		return s, true
	}
	return Shape{}, false
}
