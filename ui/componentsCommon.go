package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// NewBoldLabel creates a left-aligned label with bold text, used for card titles.
func NewBoldLabel(text string) *widget.Label {
	return widget.NewLabelWithStyle(
		text,
		fyne.TextAlignLeading,
		fyne.TextStyle{Bold: true},
	)
}

// NewSeparator creates a horizontal separator line.
func NewSeparator() *widget.Separator {
	return widget.NewSeparator()
}
