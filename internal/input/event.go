// Package input turns raw pointer and gesture events into canvas-local
// coordinates.
package input

// Family identifies the device event shape an Event came from.
type Family int

const (
	FamilyPointer Family = iota
	FamilyGesture
)

// Event is a raw input event. It is implemented by PointerEvent and
// GestureEvent only.
type Event interface {
	Family() Family
	client() (x, y float64, ok bool)
}

// PointerEvent is a continuous pointer (mouse) press in client coordinates.
type PointerEvent struct {
	ClientX, ClientY float64
	HasPosition      bool
}

// NewPointerEvent returns a pointer event positioned at (x, y).
func NewPointerEvent(x, y float64) PointerEvent {
	return PointerEvent{ClientX: x, ClientY: y, HasPosition: true}
}

func (PointerEvent) Family() Family { return FamilyPointer }

func (e PointerEvent) client() (float64, float64, bool) {
	return e.ClientX, e.ClientY, e.HasPosition
}

// GestureKind distinguishes discrete gestures reported by an embedded
// device gesture API.
type GestureKind int

const (
	GestureTap GestureKind = iota
	GestureSwipe
)

func (k GestureKind) String() string {
	switch k {
	case GestureTap:
		return "tap"
	case GestureSwipe:
		return "swipe"
	}
	return "unknown"
}

// GestureEvent is a tap or swipe from a gesture source. Both kinds draw at
// the reported position, which is in window-client coordinates like
// PointerEvent.
type GestureEvent struct {
	Kind             GestureKind
	ClientX, ClientY float64
	HasPosition      bool
}

func (GestureEvent) Family() Family { return FamilyGesture }

func (e GestureEvent) client() (float64, float64, bool) {
	return e.ClientX, e.ClientY, e.HasPosition
}

// GestureSource is an optional capability delivering gesture events from
// device hardware. Start is called once at initialization; handle may be
// invoked from any goroutine.
type GestureSource interface {
	Start(handle func(Event)) error
	Close() error
}
