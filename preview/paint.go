package preview

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"

	"thumbnailer/models"
)

// PaintBackground rasterises p at w×h pixels.
//
// Gradients follow CSS linear-gradient geometry: 0deg runs bottom to top,
// 90deg left to right, and the gradient line is long enough that the corners
// get exactly the end colours. Images are scaled to cover the area and
// centre-cropped, like `background-size: cover`.
func PaintBackground(p Paint, w, h int) *image.NRGBA {
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}

	switch p.Kind {
	case models.KindGradient:
		return paintGradient(p.Angle, p.From, p.To, w, h)
	case models.KindRemoteImage, models.KindUploadedImage:
		if p.Image != nil && !p.Image.Bounds().Empty() {
			return imaging.Fill(p.Image, w, h, imaging.Center, imaging.Lanczos)
		}
		return paintSolid(color.NRGBA{A: 0xff}, w, h)
	default:
		return paintSolid(p.From, w, h)
	}
}

func paintSolid(c color.NRGBA, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return dst
}

func paintGradient(angle int, from, to color.NRGBA, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	rad := float64(angle) * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)

	fw, fh := float64(w), float64(h)
	length := math.Abs(fw*dx) + math.Abs(fh*dy)
	cx, cy := fw/2, fh/2

	for y := 0; y < h; y++ {
		py := float64(y) + 0.5 - cy
		for x := 0; x < w; x++ {
			px := float64(x) + 0.5 - cx

			t := 0.5
			if length > 0 {
				t = (px*dx+py*dy)/length + 0.5
			}
			dst.SetNRGBA(x, y, lerp(from, to, clamp01(t)))
		}
	}

	return dst
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x)*(1-t) + float64(y)*t))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
