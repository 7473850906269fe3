package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// Views groups the cards built by BuildMainLayout so callers (and tests)
// can reach the individual widgets.
type Views struct {
	Fields     *FieldsView
	Background *BackgroundView
	Preview    *PreviewView
}

// BuildMainLayout constructs the complete editor layout.
// This is the main entry point for creating the user interface.
// It assembles all components (header, footer, cards) into a cohesive layout
// with a gradient background.
//
// The layout structure is:
// - Background: Purple gradient (45° angle)
// - Header: Application title and subtitle (top)
// - Content Area: Two-column layout
//   - Left Column: Text fields (top) and background choices (bottom)
//   - Right Column: Thumbnail preview with refresh button and status line
//
// - Footer: Attribution text (bottom)
//
// Parameters:
//   - state: The shared editor state
//
// Returns:
//   - fyne.CanvasObject: The complete UI layout ready to be set as window content
//   - *Views: The individual views
func BuildMainLayout(state *EditorState) (fyne.CanvasObject, *Views) {
	// Create the gradient background for the window chrome
	gradient := canvas.NewLinearGradient(
		GradientStartColor, // Light purple (top-left)
		GradientEndColor,   // Dark purple (bottom-right)
		GradientAngle,      // 45 degree angle
	)

	header := NewHeader()

	// Each view is self-contained and reacts to the form and selector subscriptions
	views := &Views{
		Fields:     NewFieldsView(state),
		Background: NewBackgroundView(state),
		Preview:    NewPreviewView(state),
	}

	// Left column: inputs on top, background choices underneath
	leftColumn := container.NewVBox(
		views.Fields.Card,
		views.Background.Card,
	)

	// Preview takes the wider right column
	contentArea := container.NewBorder(
		nil, nil,
		container.NewPadded(leftColumn), // Left: fixed width from its content
		nil,
		container.NewPadded(views.Preview.Card), // Center: preview fills the rest
	)

	footer := NewFooter()

	mainLayout := container.NewBorder(
		container.NewPadded(header), // Top: Header with padding
		container.NewPadded(footer), // Bottom: Footer with padding
		nil,                         // Left: None
		nil,                         // Right: None
		contentArea,                 // Center: Main content fills remaining space
	)

	// Stack the gradient behind all content
	content := container.NewStack(gradient, mainLayout)

	return content, views
}
