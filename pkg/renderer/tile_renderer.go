package renderer

import (
	"context"

	"github.com/JoMedeiros/ray-tracing/pkg/core"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      core.Scene
	camera     core.Camera
	integrator core.Integrator
	buffer     *Buffer
	spp        int
}

// NewTileRenderer creates a tile renderer writing into buffer
func NewTileRenderer(scene core.Scene, camera core.Camera, integratorInst core.Integrator, buffer *Buffer, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		scene:      scene,
		camera:     camera,
		integrator: integratorInst,
		buffer:     buffer,
		spp:        max(1, samplesPerPixel),
	}
}

// RenderTile renders every pixel of the tile into the buffer. Tiles never
// overlap, so concurrent calls on distinct tiles are safe. The context is
// checked once per row.
func (tr *TileRenderer) RenderTile(ctx context.Context, tile *Tile) (TileResult, error) {
	sampler := core.NewRandomSampler(tile.Random, tr.spp)
	bounds := tile.Bounds

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		if err := ctx.Err(); err != nil {
			return TileResult{}, err
		}
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			tr.buffer.Set(i, j, tr.samplePixel(i, j, sampler))
		}
	}

	return TileResult{Tile: tile, Samples: bounds.Dx() * bounds.Dy() * tr.spp}, nil
}

// samplePixel averages spp primary rays through pixel (i, j)
func (tr *TileRenderer) samplePixel(i, j int, sampler core.Sampler) core.Color {
	width := float64(tr.buffer.Width)
	height := float64(tr.buffer.Height)

	accum := core.Color{}
	for range tr.spp {
		offset := core.PixelOffset(sampler)
		// Screen coordinates have (0, 0) at the bottom-left; image rows grow downwards
		uv := core.NewVec2((float64(i)+offset.X)/width, 1-(float64(j)+offset.Y)/height)
		ray := tr.camera.GenerateRay(uv.X, uv.Y)
		accum = accum.Add(tr.integrator.Li(ray, uv, tr.scene, sampler))
	}
	return accum.Multiply(1.0 / float64(tr.spp))
}
