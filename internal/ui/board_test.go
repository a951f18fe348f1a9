package ui

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Kreate/internal/config"
	"Kreate/internal/input"
	"Kreate/internal/state"
)

func newTestLayout(t *testing.T) *Layout {
	t.Helper()
	test.NewTempApp(t)
	l, err := NewLayout(config.Default(), false)
	require.NoError(t, err)
	l.Board.Resize(fyne.NewSize(100, 100))
	return l
}

func newTestWindow(t *testing.T, gestures bool) *Layout {
	t.Helper()
	test.NewTempApp(t)
	l, err := NewLayout(config.Default(), gestures)
	require.NoError(t, err)
	w := test.NewWindow(l.Content)
	t.Cleanup(w.Close)
	w.Resize(fyne.NewSize(400, 600))
	return l
}

func absolute(b *BoardWidget, x, y float32) fyne.Position {
	o := fyne.CurrentApp().Driver().AbsolutePositionForObject(b)
	return fyne.NewPos(o.X+x, o.Y+y)
}

func press(b *BoardWidget, x, y float32, button desktop.MouseButton) {
	o := fyne.CurrentApp().Driver().AbsolutePositionForObject(b)
	b.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y), AbsolutePosition: fyne.NewPos(o.X+x, o.Y+y)},
		Button:     button,
	})
}

func painted(b *BoardWidget, x, y int) bool {
	return b.Surface().Image().RGBAAt(x, y).A != 0
}

func TestBoardSurfaceFollowsSize(t *testing.T) {
	l := newTestLayout(t)
	w, h := l.Board.Surface().Size()
	assert.Equal(t, 100, w)
	assert.Equal(t, 100, h)
}

func TestBoardDrawsDot(t *testing.T) {
	l := newTestLayout(t)
	press(l.Board, 50, 50, desktop.MouseButtonPrimary)
	assert.True(t, painted(l.Board, 50, 50))
	assert.False(t, painted(l.Board, 10, 10))
}

func TestBoardIgnoresSecondaryButton(t *testing.T) {
	l := newTestLayout(t)
	press(l.Board, 50, 50, desktop.MouseButtonSecondary)
	assert.False(t, painted(l.Board, 50, 50))
}

func TestBoardLine(t *testing.T) {
	l := newTestLayout(t)
	l.Menu.SelectMode(state.ModeLine)

	press(l.Board, 10, 50, desktop.MouseButtonPrimary)
	assert.False(t, painted(l.Board, 10, 50), "first point only buffers")
	press(l.Board, 90, 50, desktop.MouseButtonPrimary)
	assert.True(t, painted(l.Board, 50, 50))
}

func TestBoardDropsMissingCoordinate(t *testing.T) {
	l := newTestLayout(t)
	l.Menu.SelectMode(state.ModeLine)
	press(l.Board, 10, 10, desktop.MouseButtonPrimary)

	l.Board.HandleInputEvent(input.PointerEvent{})
	assert.Len(t, l.Board.Session().Pending(), 1)
}

func TestBoardResizeKeepsDrawing(t *testing.T) {
	l := newTestLayout(t)
	press(l.Board, 20, 20, desktop.MouseButtonPrimary)
	l.Board.Resize(fyne.NewSize(200, 150))

	w, h := l.Board.Surface().Size()
	assert.Equal(t, 200, w)
	assert.Equal(t, 150, h)
	assert.True(t, painted(l.Board, 20, 20))
}

func TestBoardShrinkThenGrowKeepsDrawing(t *testing.T) {
	l := newTestLayout(t)
	press(l.Board, 50, 80, desktop.MouseButtonPrimary)

	l.Board.Resize(fyne.NewSize(100, 40))
	w, h := l.Board.Surface().Size()
	assert.Equal(t, 100, w)
	assert.Equal(t, 100, h)
	assert.Equal(t, 40, l.Board.image.Image.Bounds().Dy())

	l.Board.Resize(fyne.NewSize(100, 100))
	assert.Equal(t, 100, l.Board.image.Image.Bounds().Dy())
	assert.True(t, painted(l.Board, 50, 80))
	view := l.Board.image.Image.(*image.RGBA)
	assert.NotZero(t, view.RGBAAt(50, 80).A)
}

func TestBoardMenuKeepsDrawingAtBottom(t *testing.T) {
	l := newTestWindow(t, false)
	size := l.Board.Size()
	origin := fyne.CurrentApp().Driver().AbsolutePositionForObject(l.Board)
	y := size.Height - 10
	press(l.Board, 20, y, desktop.MouseButtonPrimary)
	require.True(t, painted(l.Board, 20, int(y)))

	l.Menu.Open()
	assert.Equal(t, size, l.Board.Size())
	assert.Equal(t, origin, fyne.CurrentApp().Driver().AbsolutePositionForObject(l.Board))
	assert.True(t, l.Menu.IsOpen())

	l.Menu.Close()
	assert.Equal(t, size, l.Board.Size())
	assert.True(t, painted(l.Board, 20, int(y)))
}

func TestBoardMenuToggleRepeatedly(t *testing.T) {
	l := newTestWindow(t, false)
	y := l.Board.Size().Height - 5
	press(l.Board, 30, y, desktop.MouseButtonPrimary)

	for i := 0; i < 3; i++ {
		test.Tap(l.Menu.toggle)
		test.Tap(l.Menu.toggle)
	}
	assert.False(t, l.Menu.IsOpen())
	assert.True(t, painted(l.Board, 30, int(y)))
}

func TestBoardTappedOnMobile(t *testing.T) {
	l := newTestLayout(t)
	l.Board.mobile = func() bool { return true }
	l.Board.Tapped(&fyne.PointEvent{Position: fyne.NewPos(30, 30), AbsolutePosition: absolute(l.Board, 30, 30)})
	assert.True(t, painted(l.Board, 30, 30))
}

func TestBoardTappedIgnoredOnDesktop(t *testing.T) {
	l := newTestLayout(t)
	l.Board.mobile = func() bool { return false }
	l.Board.Tapped(&fyne.PointEvent{Position: fyne.NewPos(30, 30), AbsolutePosition: absolute(l.Board, 30, 30)})
	assert.False(t, painted(l.Board, 30, 30))
}

type fakeGestures struct {
	handle func(input.Event)
	err    error
}

func (f *fakeGestures) Start(handle func(input.Event)) error {
	if f.err != nil {
		return f.err
	}
	f.handle = handle
	return nil
}

func (f *fakeGestures) Close() error { return nil }

type fakeBridge struct{ fakeGestures }

func (*fakeBridge) URL() string { return "ws://127.0.0.1:8888/gestures" }

func TestStartGesturesPostsToBoard(t *testing.T) {
	l := newTestWindow(t, true)
	src := &fakeBridge{}
	var queued []func()
	require.NoError(t, l.StartGestures(src, func(f func()) { queued = append(queued, f) }))
	assert.Equal(t, "Gestures: ws://127.0.0.1:8888/gestures", l.Status.Text)

	// gesture positions are window-client coordinates
	at := absolute(l.Board, 40, 40)
	src.handle(input.GestureEvent{Kind: input.GestureTap, ClientX: float64(at.X), ClientY: float64(at.Y), HasPosition: true})
	require.Len(t, queued, 1)
	assert.False(t, painted(l.Board, 40, 40), "drawing waits for the UI goroutine")

	queued[0]()
	assert.True(t, painted(l.Board, 40, 40))
}

func TestStartGesturesUnavailable(t *testing.T) {
	l := newTestLayout(t)
	src := &fakeGestures{err: errors.New("listen: address in use")}
	err := l.StartGestures(src, func(f func()) { f() })
	assert.Error(t, err)
	assert.Equal(t, "Gestures unavailable", l.Status.Text)
	assert.True(t, l.Status.Visible())
}

func TestStartGesturesWithoutURL(t *testing.T) {
	l := newTestLayout(t)
	require.NoError(t, l.StartGestures(&fakeGestures{}, func(f func()) { f() }))
	assert.False(t, l.Status.Visible())
}

func TestMenuToggle(t *testing.T) {
	l := newTestLayout(t)
	m := l.Menu
	assert.False(t, m.IsOpen())
	assert.Equal(t, "OPEN", m.toggle.Text)

	test.Tap(m.toggle)
	assert.True(t, m.IsOpen())
	assert.Equal(t, "CLOSE", m.toggle.Text)

	// pressing the canvas closes the menu
	press(l.Board, 5, 5, desktop.MouseButtonPrimary)
	assert.False(t, m.IsOpen())
	assert.Equal(t, "OPEN", m.toggle.Text)
}

func TestMenuSize(t *testing.T) {
	l := newTestLayout(t)
	m := l.Menu
	s := l.Board.Session()

	test.Tap(m.increase)
	assert.Equal(t, 6, s.Size())
	assert.Equal(t, "6", m.sizeLabel.Text)

	test.Tap(m.decrease)
	test.Tap(m.decrease)
	assert.Equal(t, 4, s.Size())
	assert.Equal(t, "4", m.sizeLabel.Text)
}

func TestMenuSizeBounds(t *testing.T) {
	test.NewTempApp(t)
	cfg := config.Default()
	cfg.Brush.Size, cfg.Brush.MinSize, cfg.Brush.MaxSize = 1, 1, 2
	l, err := NewLayout(cfg, false)
	require.NoError(t, err)

	test.Tap(l.Menu.decrease)
	assert.Equal(t, "1", l.Menu.sizeLabel.Text)
	test.Tap(l.Menu.increase)
	test.Tap(l.Menu.increase)
	assert.Equal(t, "2", l.Menu.sizeLabel.Text)
}

func TestMenuModes(t *testing.T) {
	l := newTestLayout(t)
	m := l.Menu
	assert.Equal(t, widget.HighImportance, m.modes[state.ModeDot].Importance)

	test.Tap(m.modes[state.ModeCurve])
	assert.Equal(t, state.ModeCurve, l.Board.Session().Mode())
	for mode, btn := range m.modes {
		if mode == state.ModeCurve {
			assert.Equal(t, widget.HighImportance, btn.Importance)
		} else {
			assert.Equal(t, widget.MediumImportance, btn.Importance, mode.String())
		}
	}
}

func TestMenuColors(t *testing.T) {
	l := newTestLayout(t)
	m := l.Menu
	require.Len(t, m.swatches, 4)
	assert.True(t, m.swatches[0].selected, "black is selected by default")

	test.Tap(m.swatches[1])
	assert.True(t, sameColor(color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}, l.Board.Session().Color()))
	assert.False(t, m.swatches[0].selected)
	assert.True(t, m.swatches[1].selected)

	m.SelectColor(99)
	assert.True(t, m.swatches[1].selected)
}

func TestMenuClear(t *testing.T) {
	l := newTestLayout(t)
	press(l.Board, 50, 50, desktop.MouseButtonPrimary)
	require.True(t, painted(l.Board, 50, 50))

	test.Tap(l.Menu.clearButton)
	assert.False(t, painted(l.Board, 50, 50))
}

func TestLayoutStatus(t *testing.T) {
	l := newTestLayout(t)
	assert.False(t, l.Status.Visible())
	l.SetStatus("Gestures: ws://127.0.0.1:8888/gestures")
	assert.True(t, l.Status.Visible())
}

func TestScaledTheme(t *testing.T) {
	base := theme.DefaultTheme()
	assert.InDelta(t, 30, newScaledTheme(base, 1000).Size(theme.SizeNameText), 1e-3)
	assert.Equal(t, base.Size(theme.SizeNameText), newScaledTheme(base, 10).Size(theme.SizeNameText))
	assert.Equal(t, base.Size(theme.SizeNamePadding), newScaledTheme(base, 1000).Size(theme.SizeNamePadding))
}
