package renderer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/JoMedeiros/ray-tracing/pkg/core"
	"github.com/JoMedeiros/ray-tracing/pkg/scene"
)

// DefaultTileSize is the edge length of a square tile in pixels
const DefaultTileSize = 32

// ErrAlreadyRendered is returned when Render is called on a renderer that has
// already started
var ErrAlreadyRendered = errors.New("renderer: render already started")

// State is the lifecycle stage of a Renderer
type State int32

const (
	StateIdle State = iota
	StateRendering
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRendering:
		return "rendering"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Config contains renderer configuration
type Config struct {
	TileSize   int          // Tile edge in pixels (0 = DefaultTileSize)
	NumWorkers int          // Number of parallel workers (0 = auto-detect CPU count)
	Logger     *slog.Logger // Optional logger (nil = slog.Default())
}

// Renderer drives one render of a scene: it splits the image into tiles,
// renders them in parallel and assembles the framebuffer
type Renderer struct {
	scene      *scene.Scene
	integrator core.Integrator
	config     Config
	logger     *slog.Logger
	state      atomic.Int32
}

// NewRenderer creates a renderer for the scene and integrator
func NewRenderer(sc *scene.Scene, integratorInst core.Integrator, config Config) *Renderer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		scene:      sc,
		integrator: integratorInst,
		config:     config,
		logger:     logger,
	}
}

// State returns the current lifecycle stage
func (r *Renderer) State() State {
	return State(r.state.Load())
}

// Render renders the whole image. onTile, when non-nil, is called once per
// finished tile from the calling goroutine. A renderer renders exactly once;
// later calls return ErrAlreadyRendered. If ctx is cancelled the partial
// buffer is discarded and ctx.Err() is returned.
func (r *Renderer) Render(ctx context.Context, onTile func(TileCompletion)) (*Buffer, RenderStats, error) {
	if err := r.validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if !r.state.CompareAndSwap(int32(StateIdle), int32(StateRendering)) {
		return nil, RenderStats{}, ErrAlreadyRendered
	}
	defer r.state.Store(int32(StateDone))

	cfg := r.scene.SamplingConfig
	buffer, err := NewBuffer(cfg.Width, cfg.Height)
	if err != nil {
		return nil, RenderStats{}, err
	}

	tiles := NewTileGrid(cfg.Width, cfg.Height, r.config.TileSize, cfg.Seed)
	pool := NewWorkerPool(r.config.NumWorkers)
	tileRenderer := NewTileRenderer(r.scene, r.scene.Camera, r.integrator, buffer, cfg.SamplesPerPixel)

	stats := RenderStats{
		TotalPixels:     cfg.Width * cfg.Height,
		SamplesPerPixel: max(1, cfg.SamplesPerPixel),
		Tiles:           len(tiles),
		Workers:         pool.NumWorkers(),
	}

	r.logger.Info("render started",
		"width", cfg.Width, "height", cfg.Height,
		"spp", stats.SamplesPerPixel, "tiles", stats.Tiles, "workers", stats.Workers)

	start := time.Now()
	completed := 0
	err = pool.Run(ctx, tiles, tileRenderer.RenderTile, func(result TileResult) {
		completed++
		stats.TotalSamples += result.Samples
		if onTile != nil {
			onTile(TileCompletion{Tile: result.Tile, Buffer: buffer, CompletedTiles: completed, TotalTiles: len(tiles)})
		}
	})
	stats.Elapsed = time.Since(start)

	if err != nil {
		r.logger.Warn("render aborted", "error", err, "completed_tiles", completed, "tiles", len(tiles))
		return nil, stats, err
	}

	r.logger.Info("render finished", "elapsed", stats.Elapsed, "samples", stats.TotalSamples)
	return buffer, stats, nil
}

func (r *Renderer) validate() error {
	if r.scene == nil {
		return errors.New("renderer: nil scene")
	}
	if r.integrator == nil {
		return errors.New("renderer: nil integrator")
	}
	if err := r.scene.Validate(); err != nil {
		return fmt.Errorf("renderer: invalid scene: %w", err)
	}
	return nil
}
