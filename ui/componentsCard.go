package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// NewCard wraps content in a card-like container with a white background.
// Cards separate the text inputs, the background choices and the preview
// against the window gradient.
//
// Parameters:
//   - content: The fyne.CanvasObject to be displayed inside the card
//
// Returns:
//   - fyne.CanvasObject: A card container with white background and padded content
//
// Example usage:
//
//	entry := widget.NewEntry()
//	card := ui.NewCard(entry)
func NewCard(content fyne.CanvasObject) fyne.CanvasObject {
	bg := canvas.NewRectangle(CardBackgroundColor)

	// Keep the card visible even when its content is tiny
	bg.SetMinSize(fyne.NewSize(CardMinWidth, CardMinHeight))

	return container.NewStack(bg, container.NewPadded(content))
}

// NewCardWithHeader creates a card with a bold title, a separator, and content
// that fills the remaining space. Used for the preview, whose thumbnail should
// grow with the window.
//
// Parameters:
//   - title: The text to display in the card header
//   - content: The main content to display below the header
//
// Returns:
//   - fyne.CanvasObject: A card with header, separator, and content
func NewCardWithHeader(title string, content fyne.CanvasObject) fyne.CanvasObject {
	header := container.NewVBox(
		NewBoldLabel(title),
		NewSeparator(),
	)

	cardContent := container.NewBorder(
		header,  // Top border
		nil,     // Bottom border
		nil,     // Left border
		nil,     // Right border
		content, // Center content (fills remaining space)
	)

	return NewCard(cardContent)
}
