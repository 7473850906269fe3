package preview

import (
	"image"
	"image/color"
	"strconv"

	"thumbnailer/models"
)

// Placeholder text shown when a field is empty.
const (
	PlaceholderTitle    = "Enter a title"
	PlaceholderSubtitle = "Enter a subtitle"
	PlaceholderCategory = "Add a category too"
)

// TextColor is the colour every preview line is drawn in.
var TextColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Line is one text row of the preview.
type Line struct {
	Text        string
	Placeholder bool // true when Text is the placeholder rather than user input
}

// Paint is a resolved background ready to be drawn.
type Paint struct {
	Kind  models.BackgroundKind
	Angle int         // Gradient only, CSS degrees
	From  color.NRGBA // Gradient start, or the flat fill colour
	To    color.NRGBA // Gradient end
	Image image.Image // Remote and uploaded images
	CSS   string      // Browser equivalent, shown in the status line
}

// View is everything the preview card displays.
type View struct {
	Title      Line
	Subtitle   Line
	Category   Line
	Background Paint
}

// Render maps the form values and the active background onto a View.
// It is a pure function: no I/O, no errors, same inputs give the same View.
func Render(fields models.FormFields, bg models.Background) View {
	return View{
		Title:      line(fields.Title, PlaceholderTitle),
		Subtitle:   line(fields.Subtitle, PlaceholderSubtitle),
		Category:   line(fields.Category, PlaceholderCategory),
		Background: paintFor(bg),
	}
}

func line(value, placeholder string) Line {
	if value == "" {
		return Line{Text: placeholder, Placeholder: true}
	}
	return Line{Text: value}
}

func paintFor(bg models.Background) Paint {
	if bg == nil {
		bg = models.DefaultBackground
	}

	switch b := bg.(type) {
	case models.Gradient:
		return Paint{
			Kind:  models.KindGradient,
			Angle: b.Angle,
			From:  ParseHexColor(b.ColorA),
			To:    ParseHexColor(b.ColorB),
			CSS:   b.CSS(),
		}
	case models.SolidColor:
		c := ParseHexColor(b.Color)
		return Paint{Kind: models.KindSolidColor, From: c, To: c, CSS: b.CSS()}
	case models.RemoteImage:
		return Paint{Kind: models.KindRemoteImage, Image: b.Image, CSS: b.CSS()}
	case models.UploadedImage:
		return Paint{Kind: models.KindUploadedImage, Image: b.Image, CSS: b.CSS()}
	}

	// Unreachable with the sealed interface; keep the default look
	return paintFor(models.DefaultBackground)
}

// ParseHexColor converts "#rrggbb" into an opaque colour.
// Malformed input yields opaque black rather than an error.
func ParseHexColor(s string) color.NRGBA {
	black := color.NRGBA{A: 0xff}
	if len(s) != 7 || s[0] != '#' {
		return black
	}

	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return black
	}

	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
