package preview

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thumbnailer/models"
)

func TestRenderShowsValueOrPlaceholder(t *testing.T) {
	t.Parallel()

	inputs := []string{"", "a", " ", "Hello", "제목을 입력해주세요", "tabs\tand\nnewlines", "Enter a title"}

	for _, s := range inputs {
		v := Render(models.FormFields{Title: s, Subtitle: s, Category: s}, nil)

		if s == "" {
			assert.Equal(t, Line{Text: PlaceholderTitle, Placeholder: true}, v.Title)
			assert.Equal(t, Line{Text: PlaceholderSubtitle, Placeholder: true}, v.Subtitle)
			assert.Equal(t, Line{Text: PlaceholderCategory, Placeholder: true}, v.Category)
			continue
		}

		assert.Equal(t, Line{Text: s}, v.Title, "input %q", s)
		assert.Equal(t, Line{Text: s}, v.Subtitle)
		assert.Equal(t, Line{Text: s}, v.Category)
	}
}

func TestRenderScenarioSolidColor(t *testing.T) {
	t.Parallel()

	fields := models.FormFields{Title: "Hello", Subtitle: "World", Category: "Demo"}
	v := Render(fields, models.SolidColor{Color: "#3a7fd1"})

	assert.Equal(t, "Hello", v.Title.Text)
	assert.Equal(t, "World", v.Subtitle.Text)
	assert.Equal(t, "Demo", v.Category.Text)
	assert.Equal(t, models.KindSolidColor, v.Background.Kind)
	assert.Equal(t, "#3a7fd1", v.Background.CSS)

	img := PaintBackground(v.Background, 64, 18)
	want := color.NRGBA{R: 0x3a, G: 0x7f, B: 0xd1, A: 0xff}
	for _, pt := range []image.Point{{0, 0}, {32, 9}, {63, 17}} {
		assert.Equal(t, want, img.NRGBAAt(pt.X, pt.Y))
	}
}

func TestRenderAfterResetShowsPlaceholders(t *testing.T) {
	t.Parallel()

	v := Render(models.FormFields{}, models.DefaultBackground)
	assert.True(t, v.Title.Placeholder)
	assert.True(t, v.Subtitle.Placeholder)
	assert.True(t, v.Category.Placeholder)
	assert.Equal(t, color.NRGBA{A: 0xff}, v.Background.From)
}

func TestRenderIsPure(t *testing.T) {
	t.Parallel()

	fields := models.FormFields{Title: "t"}
	bg := models.Gradient{Angle: 45, ColorA: "#102030", ColorB: "#a0b0c0"}
	require.Equal(t, Render(fields, bg), Render(fields, bg))
}

func TestRenderNilBackgroundUsesDefault(t *testing.T) {
	t.Parallel()

	v := Render(models.FormFields{}, nil)
	assert.Equal(t, models.KindSolidColor, v.Background.Kind)
	assert.Equal(t, "#000000", v.Background.CSS)
}

func TestParseHexColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, color.NRGBA{R: 0x3a, G: 0x7f, B: 0xd1, A: 0xff}, ParseHexColor("#3a7fd1"))
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, ParseHexColor("#FFFFFF"))

	black := color.NRGBA{A: 0xff}
	for _, bad := range []string{"", "#fff", "3a7fd1", "#3a7fdz", "#3a7fd1ff"} {
		assert.Equal(t, black, ParseHexColor(bad), bad)
	}
}
