package ppm

import (
	"image"
	"image/color"
)

// Image renders g as an opaque *image.NRGBA with its origin at (0, 0).
//
// Channel values outside [0, 255] are clamped. g must be valid.
func (g Grid) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Cols(), g.Rows()))
	for y, row := range g {
		off := y * img.Stride
		for i := 0; i+2 < len(row); i += 3 {
			img.Pix[off] = clampChannel(row[i])
			img.Pix[off+1] = clampChannel(row[i+1])
			img.Pix[off+2] = clampChannel(row[i+2])
			img.Pix[off+3] = 0xff
			off += 4
		}
	}
	return img
}

// FromImage builds a grid from img using 8-bit, non-premultiplied channels.
// Alpha is discarded.
func FromImage(img image.Image) Grid {
	b := img.Bounds()
	g := NewGrid(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			g.SetPixel(x-b.Min.X, y-b.Min.Y, int(c.R), int(c.G), int(c.B))
		}
	}
	return g
}

func clampChannel(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > MaxValue:
		return MaxValue
	default:
		return uint8(v)
	}
}
