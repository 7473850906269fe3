package validation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"thumbnailer/models"
)

func TestIsHexColor6(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"#3a7fd1":  true,
		"#000000":  true,
		"#ABCDEF":  false,
		"3a7fd1":   false,
		"#3a7fd":   false,
		"#3a7fd1f": false,
		"#3a7fg1":  false,
		"":         false,
	}

	for input, want := range cases {
		require.Equal(t, want, IsHexColor6(input), input)
	}
}

func TestValidateBackground(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateBackground(models.SolidColor{Color: "#3a7fd1"}))
	require.NoError(t, ValidateBackground(models.Gradient{Angle: 359, ColorA: "#000000", ColorB: "#ffffff"}))
	require.NoError(t, ValidateBackground(models.RemoteImage{URL: "https://images.example.com/a.jpg"}))
	require.NoError(t, ValidateBackground(models.UploadedImage{DataURI: "data:image/png;base64,iVBORw0KGgo="}))

	require.Error(t, ValidateBackground(nil))
	require.Error(t, ValidateBackground(models.SolidColor{Color: "red"}))
	require.Error(t, ValidateBackground(models.Gradient{Angle: 360, ColorA: "#000000", ColorB: "#ffffff"}))
	require.Error(t, ValidateBackground(models.Gradient{Angle: -1, ColorA: "#000000", ColorB: "#ffffff"}))
	require.Error(t, ValidateBackground(models.RemoteImage{URL: ""}))

	err := ValidateBackground(models.Gradient{Angle: 10, ColorA: "#zzzzzz", ColorB: "#ffffff"})
	require.ErrorContains(t, err, "ColorA")
	require.ErrorContains(t, err, "hexcolor6")
}
