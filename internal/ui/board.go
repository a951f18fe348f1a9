package ui

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"Kreate/internal/input"
	"Kreate/internal/raster"
	"Kreate/internal/session"
	"Kreate/internal/state"
)

// BoardWidget is the drawing canvas. Pointer presses are fed to the
// drawing session, which commits finished shapes straight to the raster
// surface shown by the widget.
type BoardWidget struct {
	widget.BaseWidget
	session *session.Session
	surface *raster.Surface
	image   *canvas.Image
	mobile  func() bool

	// OnPress runs before every pointer press is handled.
	OnPress func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Tappable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

// NewBoardWidget creates an empty canvas. gestures reports whether a
// gesture source was injected at startup.
func NewBoardWidget(gestures bool, opts ...session.Option) (*BoardWidget, error) {
	b := &BoardWidget{
		surface: raster.New(1, 1),
		mobile:  func() bool { return fyne.CurrentDevice().IsMobile() },
	}
	s, err := session.New(b.surface, input.NewNormalizer(b.origin, gestures), opts...)
	if err != nil {
		return nil, err
	}
	b.session = s
	b.image = canvas.NewImageFromImage(b.surface.Image())
	b.image.FillMode = canvas.ImageFillStretch
	b.ExtendBaseWidget(b)
	return b, nil
}

// Session returns the drawing session behind the canvas.
func (b *BoardWidget) Session() *session.Session { return b.session }

// Surface returns the raster surface the canvas displays.
func (b *BoardWidget) Surface() *raster.Surface { return b.surface }

func (b *BoardWidget) origin() state.Point {
	p := fyne.CurrentApp().Driver().AbsolutePositionForObject(b)
	return state.Point{X: float64(p.X), Y: float64(p.Y)}
}

// HandleInputEvent draws ev and repaints. It must run on the UI goroutine.
func (b *BoardWidget) HandleInputEvent(ev input.Event) {
	b.session.HandleInputEvent(ev)
	b.image.Refresh()
}

// ClearBoard wipes every pixel and any pending points.
func (b *BoardWidget) ClearBoard() {
	b.session.Clear()
	b.image.Refresh()
}

func (b *BoardWidget) press(pos fyne.Position) {
	if b.OnPress != nil {
		b.OnPress()
	}
	b.HandleInputEvent(input.NewPointerEvent(float64(pos.X), float64(pos.Y)))
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.press(e.AbsolutePosition)
	}
}

func (b *BoardWidget) MouseUp(*desktop.MouseEvent) {}

// Tapped handles touch screens. On desktop the press is already handled by
// MouseDown.
func (b *BoardWidget) Tapped(e *fyne.PointEvent) {
	if b.mobile() {
		b.press(e.AbsolutePosition)
	}
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.board.image}
}

// Layout grows the surface to cover the widget and shows the visible part
// of it. A smaller layout only narrows the view; no pixel is dropped.
func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	w, h := int(math.Ceil(float64(size.Width))), int(math.Ceil(float64(size.Height)))
	r.board.surface.Grow(w, h)
	r.board.image.Image = r.board.surface.View(w, h)
	r.board.image.Resize(size)
	r.board.image.Refresh()
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Refresh() {
	r.background.Refresh()
	r.board.image.Refresh()
}

func (r *boardWidgetRenderer) Destroy() {}
