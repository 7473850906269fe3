package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
)

// NewHeader creates the application header with title and subtitle.
//
// The header includes:
// - Large, bold application name
// - Smaller subtitle describing what the editor does
// - Spacer at the bottom for layout purposes
//
// Returns:
//   - fyne.CanvasObject: A container with the formatted header content
func NewHeader() fyne.CanvasObject {
	titleText := canvas.NewText("thumbnailer", TextColorLight)
	titleText.TextSize = TitleTextSize               // Large font
	titleText.TextStyle = fyne.TextStyle{Bold: true} // Bold for emphasis
	titleText.Alignment = fyne.TextAlignCenter       // Centered

	subtitleText := canvas.NewText(
		"Type a title, pick a background, check the preview",
		TextColorLight,
	)
	subtitleText.TextSize = SubtitleTextSize
	subtitleText.Alignment = fyne.TextAlignCenter // Centered to match title

	header := container.NewVBox(
		titleText,
		subtitleText,
		layout.NewSpacer(), // Add space below header to separate from content
	)

	return header
}
