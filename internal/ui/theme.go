package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// fontScale is the text size as a fraction of the window width.
const fontScale = 0.03

// scaledTheme sizes text relative to the window width so the controls stay
// legible on large e-reader screens. It never shrinks below the base size.
type scaledTheme struct {
	fyne.Theme
	text float32
}

func newScaledTheme(base fyne.Theme, windowWidth float32) *scaledTheme {
	text := windowWidth * fontScale
	if min := base.Size(theme.SizeNameText); text < min {
		text = min
	}
	return &scaledTheme{Theme: base, text: text}
}

func (t *scaledTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText {
		return t.text
	}
	return t.Theme.Size(name)
}
