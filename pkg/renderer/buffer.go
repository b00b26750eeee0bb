package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/JoMedeiros/ray-tracing/pkg/core"
)

// Buffer is a row-major framebuffer of packed 8-bit RGB pixels. Row 0 is the
// top of the image and each row is 3*Width bytes.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBuffer allocates a black buffer
func NewBuffer(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid buffer size %dx%d", width, height)
	}
	if width > math.MaxInt/3/height {
		return nil, fmt.Errorf("buffer size %dx%d overflows", width, height)
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, 3*width*height),
	}, nil
}

// Stride returns the number of bytes per row
func (b *Buffer) Stride() int {
	return 3 * b.Width
}

// Quantize maps a [0, 1] channel to 8 bits, truncating so that an 8-bit value
// divided by 255 quantizes back to itself
func Quantize(channel float64) uint8 {
	if math.IsNaN(channel) {
		return 0
	}
	return uint8(max(0, min(255, math.Floor(255.999*channel))))
}

// Set quantizes color into pixel (x, y)
func (b *Buffer) Set(x, y int, c core.Color) {
	offset := y*b.Stride() + 3*x
	b.Pix[offset] = Quantize(c.X)
	b.Pix[offset+1] = Quantize(c.Y)
	b.Pix[offset+2] = Quantize(c.Z)
}

// At returns the RGB bytes of pixel (x, y)
func (b *Buffer) At(x, y int) [3]uint8 {
	offset := y*b.Stride() + 3*x
	return [3]uint8{b.Pix[offset], b.Pix[offset+1], b.Pix[offset+2]}
}

// Row returns the packed bytes of row y
func (b *Buffer) Row(y int) []uint8 {
	return b.Pix[y*b.Stride() : (y+1)*b.Stride()]
}

// ToRGBA converts the buffer into an opaque image for the standard encoders
func (b *Buffer) ToRGBA() *image.RGBA {
	return b.SubImage(image.Rect(0, 0, b.Width, b.Height))
}

// SubImage copies the pixels inside bounds into a new image whose origin is
// bounds.Min
func (b *Buffer) SubImage(bounds image.Rectangle) *image.RGBA {
	bounds = bounds.Intersect(image.Rect(0, 0, b.Width, b.Height))
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := b.At(x, y)
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.RGBA{R: px[0], G: px[1], B: px[2], A: 255})
		}
	}
	return img
}
