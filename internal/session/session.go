// Package session holds the drawing session: the active mode and stroke
// style, the point accumulator and the surface shapes are rendered to.
//
// A Session is not safe for concurrent use. All calls must come from the
// goroutine that owns the UI event queue.
package session

import (
	"errors"
	"fmt"
	"image/color"

	"Kreate/internal/input"
	"Kreate/internal/state"
)

const (
	DefaultSize    = 5
	DefaultMinSize = 1
	DefaultMaxSize = 50
)

// ErrSizeOutOfRange is returned by SetSize for a size outside the bounds.
var ErrSizeOutOfRange = errors.New("session: size out of range")

// Renderer is the raster sink shapes are committed to.
type Renderer interface {
	Render(shape state.Shape, style state.Style)
	Clear()
}

// Session is the drawing context shared by the canvas and the menu
// controls. Every setter that changes mode or style discards the pending
// points of the shape in progress.
type Session struct {
	renderer   Renderer
	normalizer *input.Normalizer
	acc        *state.Accumulator

	color            color.Color
	size             int
	minSize, maxSize int
}

// Option configures a Session.
type Option func(*Session)

// WithMode sets the initial drawing mode.
func WithMode(m state.Mode) Option {
	return func(s *Session) { s.acc = state.NewAccumulator(m) }
}

// WithColor sets the initial stroke color.
func WithColor(c color.Color) Option {
	return func(s *Session) { s.color = c }
}

// WithSize sets the initial size and its inclusive bounds.
func WithSize(size, min, max int) Option {
	return func(s *Session) { s.size, s.minSize, s.maxSize = size, min, max }
}

// New returns a session rendering to r and locating events with n.
// Defaults: Dot mode, black, size 5 in [1, 50].
func New(r Renderer, n *input.Normalizer, opts ...Option) (*Session, error) {
	if r == nil {
		return nil, errors.New("session: nil renderer")
	}
	if n == nil {
		n = input.NewNormalizer(nil, false)
	}
	s := &Session{
		renderer:   r,
		normalizer: n,
		acc:        state.NewAccumulator(state.ModeDot),
		color:      color.Black,
		size:       DefaultSize,
		minSize:    DefaultMinSize,
		maxSize:    DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.minSize < 1 || s.minSize > s.maxSize {
		return nil, fmt.Errorf("session: invalid size bounds [%d, %d]: %w", s.minSize, s.maxSize, ErrSizeOutOfRange)
	}
	if s.size < s.minSize || s.size > s.maxSize {
		return nil, fmt.Errorf("session: size %d: %w", s.size, ErrSizeOutOfRange)
	}
	if s.color == nil {
		s.color = color.Black
	}
	return s, nil
}

// HandleInputEvent locates ev on the canvas and feeds it to the active
// mode, rendering a shape when one completes. Events without a usable
// coordinate are dropped and leave the buffer untouched.
func (s *Session) HandleInputEvent(ev input.Event) {
	p, err := s.normalizer.Normalize(ev)
	if err != nil {
		return
	}
	if shape, ok := s.acc.Add(p); ok {
		s.renderer.Render(shape, s.Style())
	}
}

// ResetAccumulatorState discards all pending points.
func (s *Session) ResetAccumulatorState() {
	s.acc.Reset()
}

// Pending returns the points buffered for the shape in progress.
func (s *Session) Pending() []state.Point { return s.acc.Pending() }

func (s *Session) Mode() state.Mode { return s.acc.Mode() }

// SetMode selects the drawing mode. The buffer is reset even when m is
// already active.
func (s *Session) SetMode(m state.Mode) {
	s.acc.SetMode(m)
}

func (s *Session) Color() color.Color { return s.color }

// SetColor selects the stroke and fill color and resets the buffer.
func (s *Session) SetColor(c color.Color) {
	if c == nil {
		c = color.Black
	}
	s.color = c
	s.ResetAccumulatorState()
}

func (s *Session) Size() int { return s.size }

// SizeBounds returns the inclusive size range.
func (s *Session) SizeBounds() (min, max int) { return s.minSize, s.maxSize }

// SetSize sets the stroke width. A change resets the buffer.
func (s *Session) SetSize(size int) error {
	if size < s.minSize || size > s.maxSize {
		return fmt.Errorf("session: size %d not in [%d, %d]: %w", size, s.minSize, s.maxSize, ErrSizeOutOfRange)
	}
	if size != s.size {
		s.size = size
		s.ResetAccumulatorState()
	}
	return nil
}

// IncreaseSize grows the width by one. At the maximum it does nothing and
// reports false.
func (s *Session) IncreaseSize() bool {
	if s.size >= s.maxSize {
		return false
	}
	s.size++
	s.ResetAccumulatorState()
	return true
}

// DecreaseSize shrinks the width by one. At the minimum it does nothing
// and reports false.
func (s *Session) DecreaseSize() bool {
	if s.size <= s.minSize {
		return false
	}
	s.size--
	s.ResetAccumulatorState()
	return true
}

// Style returns the style the next render will use.
func (s *Session) Style() state.Style {
	return state.Style{Color: s.color, Width: float64(s.size)}
}

// Clear wipes the raster surface and the buffer. It cannot be undone.
func (s *Session) Clear() {
	s.renderer.Clear()
	s.ResetAccumulatorState()
}
