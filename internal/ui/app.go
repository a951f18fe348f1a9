package ui

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"Kreate/internal/config"
	"Kreate/internal/input"
	"Kreate/internal/session"
)

// Layout is the assembled window content.
type Layout struct {
	Board   *BoardWidget
	Menu    *Menu
	Status  *widget.Label
	Content fyne.CanvasObject
}

// NewLayout builds the board and its controls from cfg. gestures reports
// whether a gesture source will feed the board.
func NewLayout(cfg config.Config, gestures bool) (*Layout, error) {
	mode, err := cfg.Mode()
	if err != nil {
		return nil, err
	}
	col, err := cfg.Color()
	if err != nil {
		return nil, err
	}
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}

	board, err := NewBoardWidget(gestures,
		session.WithMode(mode),
		session.WithColor(col),
		session.WithSize(cfg.Brush.Size, cfg.Brush.MinSize, cfg.Brush.MaxSize),
	)
	if err != nil {
		return nil, fmt.Errorf("ui: create board: %w", err)
	}

	menu := NewMenu(board, palette)
	board.OnPress = func() {
		if menu.IsOpen() {
			menu.Close()
		}
	}

	status := widget.NewLabel("")
	status.Hide()

	// The submenu floats over the board so opening it moves neither the
	// canvas origin nor its size.
	center := container.NewStack(board, menu.Submenu())
	return &Layout{
		Board:   board,
		Menu:    menu,
		Status:  status,
		Content: container.NewBorder(menu.Header(cfg.Title), status, nil, nil, center),
	}, nil
}

// SetStatus shows text under the board.
func (l *Layout) SetStatus(text string) {
	l.Status.SetText(text)
	l.Status.Show()
}

// StartGestures starts src and hands every event to the board through post,
// which must run the callback on the UI goroutine. The status line reports
// where gestures come from, or that they are unavailable.
func (l *Layout) StartGestures(src input.GestureSource, post func(func())) error {
	board := l.Board
	err := src.Start(func(ev input.Event) {
		post(func() { board.HandleInputEvent(ev) })
	})
	if err != nil {
		log.Printf("[UI] Gesture source unavailable: %v", err)
		l.SetStatus("Gestures unavailable")
		return err
	}
	if u, ok := src.(interface{ URL() string }); ok {
		l.SetStatus("Gestures: " + u.URL())
	}
	return nil
}

// RunApp opens the drawing window and blocks until it closes. A non-nil
// gestures source is started once and its events are queued onto the UI
// goroutine.
func RunApp(cfg config.Config, gestures input.GestureSource) error {
	myApp := app.New()
	myApp.Settings().SetTheme(newScaledTheme(theme.DefaultTheme(), float32(cfg.Window.Width)))
	myWindow := myApp.NewWindow(cfg.Title)
	myWindow.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))

	l, err := NewLayout(cfg, gestures != nil)
	if err != nil {
		return err
	}

	if gestures != nil {
		if err := l.StartGestures(gestures, fyne.Do); err == nil {
			defer gestures.Close()
		}
	}

	myWindow.SetContent(l.Content)
	myWindow.ShowAndRun()
	return nil
}
