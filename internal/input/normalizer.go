package input

import (
	"errors"
	"math"

	"Kreate/internal/state"
)

var (
	// ErrNoCoordinate is returned for an event without a usable position.
	ErrNoCoordinate = errors.New("input: coordinate unavailable")
	// ErrUnsupported is returned for a gesture event when no gesture
	// capability was present at initialization.
	ErrUnsupported = errors.New("input: gesture events not supported")
)

// Normalizer maps raw events to canvas-local points.
type Normalizer struct {
	origin   func() state.Point
	gestures bool
}

// NewNormalizer returns a Normalizer. origin reports the canvas's top-left
// corner in client coordinates; a nil origin means the canvas sits at the
// client origin. gestures records whether a gesture capability exists.
func NewNormalizer(origin func() state.Point, gestures bool) *Normalizer {
	if origin == nil {
		origin = func() state.Point { return state.Point{} }
	}
	return &Normalizer{origin: origin, gestures: gestures}
}

// Gestures reports whether gesture events are accepted.
func (n *Normalizer) Gestures() bool { return n.gestures }

// Normalize returns the canvas-local coordinate of ev.
func (n *Normalizer) Normalize(ev Event) (state.Point, error) {
	if ev == nil {
		return state.Point{}, ErrNoCoordinate
	}
	if ev.Family() == FamilyGesture && !n.gestures {
		return state.Point{}, ErrUnsupported
	}
	x, y, ok := ev.client()
	if !ok || !finite(x) || !finite(y) {
		return state.Point{}, ErrNoCoordinate
	}
	o := n.origin()
	return state.Point{X: x - o.X, Y: y - o.Y}, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
