package loaders

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"

	"github.com/JoMedeiros/ray-tracing/pkg/renderer"
)

// Supported output formats
const (
	FormatPNG = "png"
	FormatJPG = "jpg"
	FormatBMP = "bmp"
	FormatTGA = "tga"
)

// JPEGQuality is the quality used for jpg output
const JPEGQuality = 95

// ParseFormat normalizes an image format name
func ParseFormat(name string) (string, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", FormatPNG:
		return FormatPNG, nil
	case FormatJPG, "jpeg":
		return FormatJPG, nil
	case FormatBMP:
		return FormatBMP, nil
	case FormatTGA:
		return FormatTGA, nil
	default:
		return "", fmt.Errorf("%w: image format %q", ErrUnknownType, name)
	}
}

// OutputPath gives name the format's extension. An extension naming another
// image format is replaced; any other extension is kept and the format's is
// appended.
func OutputPath(name, format string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return name + "." + format
	}
	current, err := ParseFormat(ext)
	if err != nil {
		return name + "." + format
	}
	if current == format {
		return name
	}
	return strings.TrimSuffix(name, ext) + "." + format
}

// SaveImage writes the buffer to path in the given format and returns the
// path actually written, which carries the format's extension
func SaveImage(path, format string, buffer *renderer.Buffer) (string, error) {
	format, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	path = OutputPath(path, format)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	w := bufio.NewWriter(file)
	err = EncodeImage(w, format, buffer)
	if err == nil {
		if err = w.Flush(); err != nil {
			err = fmt.Errorf("failed to write image: %w", err)
		}
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// Don't leave a truncated image behind
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// EncodeImage writes the buffer to w in the given format
func EncodeImage(w io.Writer, format string, buffer *renderer.Buffer) error {
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, buffer.ToRGBA())
	case FormatJPG:
		err = jpeg.Encode(w, buffer.ToRGBA(), &jpeg.Options{Quality: JPEGQuality})
	case FormatBMP:
		err = bmp.Encode(w, buffer.ToRGBA())
	case FormatTGA:
		err = tga.Encode(w, buffer.ToRGBA())
	default:
		return fmt.Errorf("%w: image format %q", ErrUnknownType, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// ContentType returns the MIME type of a format
func ContentType(format string) string {
	switch format {
	case FormatJPG:
		return "image/jpeg"
	case FormatBMP:
		return "image/bmp"
	case FormatTGA:
		return "image/x-tga"
	default:
		return "image/png"
	}
}

// LoadImage decodes a PNG, JPEG, BMP or TGA file into a buffer
func LoadImage(filename string) (*renderer.Buffer, error) {
	// Open file
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// TGA has no magic number, so it is picked by extension; other formats are
	// detected from the file header
	var img image.Image
	if strings.EqualFold(filepath.Ext(filename), "."+FormatTGA) {
		img, err = tga.Decode(bufio.NewReader(file))
	} else {
		img, _, err = image.Decode(bufio.NewReader(file))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	buffer, err := renderer.NewBuffer(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	for y := 0; y < buffer.Height; y++ {
		row := buffer.Row(y)
		for x := 0; x < buffer.Width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			row[3*x], row[3*x+1], row[3*x+2] = uint8(r>>8), uint8(g>>8), uint8(b>>8)
		}
	}

	return buffer, nil
}
