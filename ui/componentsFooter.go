package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"thumbnailer/config"
)

// NewFooter creates the application footer with the build version.
//
// Returns:
//   - fyne.CanvasObject: A centered text label for the footer
func NewFooter() fyne.CanvasObject {
	footerText := canvas.NewText(config.AppName+" "+config.Version+" · Ctrl+L logs · Ctrl+Q quit", TextColorLight)
	footerText.TextSize = FooterTextSize
	footerText.Alignment = fyne.TextAlignCenter

	return footerText
}
