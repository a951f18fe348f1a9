package ui

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"Kreate/internal/config"
	"Kreate/internal/state"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	selected bool
	OnTapped func()
}

func newColorSwatch(c color.Color, tapped func()) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) SetSelected(selected bool) {
	s.selected = selected
	s.Refresh()
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	r := &swatchRenderer{swatch: s, border: border, stack: container.NewStack(rect, border)}
	r.Refresh()
	return r
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped()
	}
}

type swatchRenderer struct {
	swatch *colorSwatch
	border *canvas.Rectangle
	stack  *fyne.Container
}

func (r *swatchRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.stack} }
func (r *swatchRenderer) Layout(size fyne.Size)        { r.stack.Resize(size) }
func (r *swatchRenderer) MinSize() fyne.Size           { return r.stack.MinSize() }
func (r *swatchRenderer) Destroy()                     {}

func (r *swatchRenderer) Refresh() {
	if r.swatch.selected {
		r.border.StrokeColor = color.Black
		r.border.StrokeWidth = 4
	} else {
		r.border.StrokeColor = color.Gray{Y: 150}
		r.border.StrokeWidth = 1
	}
	r.border.Refresh()
}

// Menu is the title bar and the collapsible submenu holding the clear,
// size, mode and color controls.
type Menu struct {
	board *BoardWidget

	toggle      *widget.Button
	submenu     *fyne.Container
	overlay     *fyne.Container
	clearButton *widget.Button
	decrease    *widget.Button
	increase    *widget.Button
	sizeLabel   *widget.Label
	modes       map[state.Mode]*widget.Button
	swatches    []*colorSwatch
}

// NewMenu builds the controls for board. The submenu starts closed.
func NewMenu(board *BoardWidget, palette []config.Swatch) *Menu {
	m := &Menu{board: board, modes: make(map[state.Mode]*widget.Button)}
	s := board.Session()

	m.toggle = widget.NewButton("OPEN", m.Toggle)

	m.clearButton = widget.NewButton("Clear", board.ClearBoard)

	m.sizeLabel = widget.NewLabel(strconv.Itoa(s.Size()))
	m.decrease = widget.NewButton("-", func() {
		if s.DecreaseSize() {
			m.sizeLabel.SetText(strconv.Itoa(s.Size()))
		}
	})
	m.increase = widget.NewButton("+", func() {
		if s.IncreaseSize() {
			m.sizeLabel.SetText(strconv.Itoa(s.Size()))
		}
	})

	modeBox := container.NewHBox()
	for _, mode := range state.Modes() {
		btn := widget.NewButton(mode.Label(), func() { m.SelectMode(mode) })
		m.modes[mode] = btn
		modeBox.Add(btn)
	}

	colorBox := container.NewHBox()
	for i, sw := range palette {
		swatch := newColorSwatch(sw.Color, func() { m.SelectColor(i) })
		m.swatches = append(m.swatches, swatch)
		colorBox.Add(swatch)
	}

	controls := container.NewVBox(
		container.NewHBox(m.clearButton, widget.NewSeparator(), widget.NewLabel("Size:"), m.decrease, m.sizeLabel, m.increase),
		modeBox,
		colorBox,
	)
	panel := canvas.NewRectangle(color.White)
	panel.StrokeColor = color.Gray{Y: 150}
	panel.StrokeWidth = 1
	m.submenu = container.NewStack(panel, controls)
	m.submenu.Hide()
	m.overlay = container.NewVBox(m.submenu)

	m.markMode(s.Mode())
	m.markColor(s.Color())
	return m
}

// Header returns the title bar with the submenu toggle.
func (m *Menu) Header(title string) fyne.CanvasObject {
	heading := widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	return container.NewHBox(heading, layout.NewSpacer(), m.toggle)
}

// Submenu returns the collapsible controls on an opaque panel pinned to the
// top of a full-size layer, meant to be stacked over the board.
func (m *Menu) Submenu() fyne.CanvasObject { return m.overlay }

func (m *Menu) IsOpen() bool { return m.submenu.Visible() }

func (m *Menu) Open() {
	m.submenu.Show()
	m.overlay.Refresh()
	m.toggle.SetText("CLOSE")
}

func (m *Menu) Close() {
	m.submenu.Hide()
	m.overlay.Refresh()
	m.toggle.SetText("OPEN")
}

func (m *Menu) Toggle() {
	if m.IsOpen() {
		m.Close()
	} else {
		m.Open()
	}
}

// SelectMode activates mode and highlights its button.
func (m *Menu) SelectMode(mode state.Mode) {
	m.board.Session().SetMode(mode)
	m.markMode(mode)
}

func (m *Menu) markMode(mode state.Mode) {
	for md, btn := range m.modes {
		if md == mode {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}

// SelectColor activates the i-th palette swatch.
func (m *Menu) SelectColor(i int) {
	if i < 0 || i >= len(m.swatches) {
		return
	}
	m.board.Session().SetColor(m.swatches[i].Color)
	for j, sw := range m.swatches {
		sw.SetSelected(i == j)
	}
}

func (m *Menu) markColor(c color.Color) {
	for _, sw := range m.swatches {
		sw.SetSelected(sameColor(sw.Color, c))
	}
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}
