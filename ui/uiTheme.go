package ui

import (
	"image/color"
)

// Theme constants define the visual appearance of the application.
// The editor chrome keeps a neutral purple gradient so the preview card,
// which carries the user's chosen background, stands out against it.

// Color palette for the application
var (
	// GradientStartColor is the lighter purple used at the start of the window background
	GradientStartColor = color.RGBA{R: 115, G: 103, B: 240, A: 255}

	// GradientEndColor is the darker purple used at the end of the window background
	GradientEndColor = color.RGBA{R: 136, G: 84, B: 208, A: 255}

	// CardBackgroundColor is the white color used for card backgrounds
	CardBackgroundColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	// TextColorLight is used for text on dark backgrounds (like the gradient)
	TextColorLight = color.White

	// PreviewDividerColor is the thin rule between the subtitle and the category
	PreviewDividerColor = color.NRGBA{R: 255, G: 255, B: 255, A: 200}
)

// Text size constants for consistent typography
const (
	// TitleTextSize is used for the main application title
	TitleTextSize = 40

	// SubtitleTextSize is used for descriptive text below titles
	SubtitleTextSize = 16

	// FooterTextSize is used for footer text
	FooterTextSize = 14

	// PreviewTitleTextSize is the thumbnail title line
	PreviewTitleTextSize = 36

	// PreviewSubtitleTextSize is the thumbnail subtitle line
	PreviewSubtitleTextSize = 18

	// PreviewCategoryTextSize is the thumbnail category line under the subtitle
	PreviewCategoryTextSize = 13
)

// Layout constants
const (
	// GradientAngle defines the angle of the window background gradient in degrees
	GradientAngle = 45

	// CardMinWidth is the minimum width for card components
	CardMinWidth = 100

	// CardMinHeight is the minimum height for card components
	CardMinHeight = 100

	// PreviewDividerRatio is the share of the preview width taken by the rule under the title
	PreviewDividerRatio = 0.5

	// PreviewDividerThickness is the height of that rule
	PreviewDividerThickness = 1

	// NoticeDuration is how long a transient notice stays in the status line (seconds)
	NoticeDuration = 4

	// DefaultWindowWidth is the initial width of the application window
	DefaultWindowWidth = 1100

	// DefaultWindowHeight is the initial height of the application window
	DefaultWindowHeight = 720
)
