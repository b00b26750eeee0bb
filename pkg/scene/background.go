package scene

import (
	"github.com/JoMedeiros/ray-tracing/pkg/core"
)

// Background is an environment color interpolated bilinearly between four
// corner colors. (u, v) = (0, 0) is the bottom-left corner of the image.
type Background struct {
	BottomLeft  core.Color // c00
	BottomRight core.Color // c10
	TopLeft     core.Color // c01
	TopRight    core.Color // c11
}

// NewSolidBackground creates a background with a single color
func NewSolidBackground(color core.Color) *Background {
	return &Background{
		BottomLeft:  color,
		BottomRight: color,
		TopLeft:     color,
		TopRight:    color,
	}
}

// NewBackground creates a background from up to four corner colors in the
// order bottom-left, bottom-right, top-left, top-right. Missing trailing
// corners repeat the last color given; no colors at all gives white.
func NewBackground(colors ...core.Color) *Background {
	if len(colors) == 0 {
		return NewSolidBackground(core.NewVec3(1, 1, 1))
	}
	var corners [4]core.Color
	for i := range corners {
		corners[i] = colors[min(i, len(colors)-1)]
	}
	return &Background{
		BottomLeft:  corners[0],
		BottomRight: corners[1],
		TopLeft:     corners[2],
		TopRight:    corners[3],
	}
}

// Sample returns the color at (u, v), both clamped to [0, 1]
func (b *Background) Sample(u, v float64) core.Color {
	u = max(0, min(1, u))
	v = max(0, min(1, v))
	bottom := b.BottomLeft.Lerp(b.BottomRight, u)
	top := b.TopLeft.Lerp(b.TopRight, u)
	return bottom.Lerp(top, v)
}
