package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of primary rays traced
	SamplesPerPixel int           // Primary rays per pixel
	Tiles           int           // Number of tiles in the grid
	Workers         int           // Number of workers used
	Elapsed         time.Duration // Wall-clock render time
}

// TileCompletion reports progress after a tile finishes. The tile's pixels in
// Buffer are final and safe to read from the callback.
type TileCompletion struct {
	Tile           *Tile
	Buffer         *Buffer
	CompletedTiles int
	TotalTiles     int
}

// Progress returns the completed fraction in [0, 1]
func (tc TileCompletion) Progress() float64 {
	if tc.TotalTiles == 0 {
		return 1
	}
	return float64(tc.CompletedTiles) / float64(tc.TotalTiles)
}
