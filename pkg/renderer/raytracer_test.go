package renderer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/JoMedeiros/ray-tracing/pkg/core"
	"github.com/JoMedeiros/ray-tracing/pkg/geometry"
	"github.com/JoMedeiros/ray-tracing/pkg/integrator"
	"github.com/JoMedeiros/ray-tracing/pkg/material"
	"github.com/JoMedeiros/ray-tracing/pkg/scene"
)

// MockIntegrator returns a constant color and counts calls
type MockIntegrator struct {
	returnColor core.Color
	callCount   atomic.Int64
}

func (m *MockIntegrator) Li(ray core.Ray, uv core.Vec2, scene core.Scene, sampler core.Sampler) core.Color {
	m.callCount.Add(1)
	return m.returnColor
}

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// createTestScene creates a camera at the origin looking down -Z with a 90 degree field of view
func createTestScene(t *testing.T, width, height, spp int, background *scene.Background) *scene.Scene {
	t.Helper()
	camera, err := geometry.NewPerspectiveCamera(
		core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0),
		90, float64(width)/float64(height), 1)
	if err != nil {
		t.Fatalf("camera: %v", err)
	}
	config := scene.SamplingConfig{Width: width, Height: height, SamplesPerPixel: spp, Seed: 42}
	return scene.NewScene(camera, background, config)
}

func TestRender_SphereFillingFrameIsSolidRed(t *testing.T) {
	sc := createTestScene(t, 16, 12, 1, scene.NewSolidBackground(core.NewVec3(0, 0, 1)))
	sc.Add(geometry.NewGeometricPrimitive("ball", geometry.NewSphere(core.NewVec3(0, 0, -3), 2.8), material.NewFlat(core.NewVec3(1, 0, 0))))

	flat, err := integrator.New(integrator.Config{Type: integrator.TypeFlat})
	if err != nil {
		t.Fatalf("integrator: %v", err)
	}

	buffer, stats, err := NewRenderer(sc, flat, Config{TileSize: 5, NumWorkers: 3, Logger: quietLogger}).Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for y := 0; y < buffer.Height; y++ {
		for x := 0; x < buffer.Width; x++ {
			if got := buffer.At(x, y); got != [3]uint8{255, 0, 0} {
				t.Fatalf("Pixel (%d,%d) = %v, expected red", x, y, got)
			}
		}
	}
	if stats.TotalPixels != 16*12 || stats.TotalSamples != 16*12 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestRender_EmptySceneShowsBackground(t *testing.T) {
	sc := createTestScene(t, 10, 8, 1, scene.NewSolidBackground(core.NewColor8(100, 150, 255)))

	buffer, _, err := NewRenderer(sc, integrator.NewFlatIntegrator(), Config{Logger: quietLogger}).Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for y := 0; y < buffer.Height; y++ {
		for x := 0; x < buffer.Width; x++ {
			if got := buffer.At(x, y); got != [3]uint8{100, 150, 255} {
				t.Fatalf("Pixel (%d,%d) = %v, expected (100,150,255)", x, y, got)
			}
		}
	}
}

func TestRender_BackgroundOrientation(t *testing.T) {
	black := core.NewVec3(0, 0, 0)
	white := core.NewVec3(1, 1, 1)
	// Bottom corners black, top corners white
	sc := createTestScene(t, 8, 8, 1, scene.NewBackground(black, black, white, white))

	buffer, _, err := NewRenderer(sc, integrator.NewFlatIntegrator(), Config{Logger: quietLogger}).Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	top := buffer.At(0, 0)[0]
	bottom := buffer.At(0, 7)[0]
	if top <= bottom {
		t.Errorf("Expected image row 0 to be the top of the background, top=%d bottom=%d", top, bottom)
	}
}

func TestRender_SamplesPerPixelHonoured(t *testing.T) {
	sc := createTestScene(t, 6, 4, 3, nil)
	mock := &MockIntegrator{returnColor: core.NewVec3(0.2, 0.4, 0.6)}

	buffer, stats, err := NewRenderer(sc, mock, Config{TileSize: 4, NumWorkers: 2, Logger: quietLogger}).Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if got := mock.callCount.Load(); got != 6*4*3 {
		t.Errorf("Expected %d integrator calls, got %d", 6*4*3, got)
	}
	if stats.TotalSamples != 6*4*3 {
		t.Errorf("Expected %d samples, got %d", 6*4*3, stats.TotalSamples)
	}
	if got := buffer.At(5, 3); got != [3]uint8{Quantize(0.2), Quantize(0.4), Quantize(0.6)} {
		t.Errorf("Unexpected averaged pixel %v", got)
	}
}

func TestRender_DeterministicAcrossWorkerCounts(t *testing.T) {
	render := func(workers int) []uint8 {
		sc := createTestScene(t, 24, 16, 4, scene.NewBackground(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1)))
		sc.Add(geometry.NewGeometricPrimitive("ball", geometry.NewSphere(core.NewVec3(0, 0, -3), 1), material.NewNormal()))
		buffer, _, err := NewRenderer(sc, integrator.NewNormalIntegrator(), Config{TileSize: 8, NumWorkers: workers, Logger: quietLogger}).Render(context.Background(), nil)
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		return buffer.Pix
	}

	single := render(1)
	for _, workers := range []int{2, 4, 8} {
		if !bytes.Equal(single, render(workers)) {
			t.Errorf("Render with %d workers differs from single worker", workers)
		}
	}
}

func TestRender_ReportsTileProgress(t *testing.T) {
	sc := createTestScene(t, 20, 20, 1, nil)

	var updates []TileCompletion
	_, stats, err := NewRenderer(sc, integrator.NewFlatIntegrator(), Config{TileSize: 10, Logger: quietLogger}).Render(context.Background(), func(tc TileCompletion) {
		updates = append(updates, tc)
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if len(updates) != 4 || stats.Tiles != 4 {
		t.Fatalf("Expected 4 tile updates, got %d (tiles=%d)", len(updates), stats.Tiles)
	}
	for i, update := range updates {
		if update.CompletedTiles != i+1 || update.TotalTiles != 4 {
			t.Errorf("Update %d: %+v", i, update)
		}
	}
	if updates[3].Progress() != 1 {
		t.Errorf("Expected final progress 1, got %v", updates[3].Progress())
	}
}

func TestRender_Cancelled(t *testing.T) {
	sc := createTestScene(t, 64, 64, 1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRenderer(sc, integrator.NewFlatIntegrator(), Config{TileSize: 8, Logger: quietLogger})
	buffer, _, err := r.Render(ctx, nil)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if buffer != nil {
		t.Error("Expected no buffer after cancellation")
	}
	if r.State() != StateDone {
		t.Errorf("Expected state done, got %v", r.State())
	}
}

func TestRender_OnlyOnce(t *testing.T) {
	sc := createTestScene(t, 4, 4, 1, nil)
	r := NewRenderer(sc, integrator.NewFlatIntegrator(), Config{Logger: quietLogger})

	if r.State() != StateIdle {
		t.Errorf("Expected idle renderer, got %v", r.State())
	}
	if _, _, err := r.Render(context.Background(), nil); err != nil {
		t.Fatalf("First render failed: %v", err)
	}
	if _, _, err := r.Render(context.Background(), nil); !errors.Is(err, ErrAlreadyRendered) {
		t.Errorf("Expected ErrAlreadyRendered, got %v", err)
	}
}

func TestRender_InvalidScene(t *testing.T) {
	sc := scene.NewScene(nil, nil, scene.SamplingConfig{Width: 0, Height: 10, SamplesPerPixel: 1})
	r := NewRenderer(sc, integrator.NewFlatIntegrator(), Config{Logger: quietLogger})

	if _, _, err := r.Render(context.Background(), nil); err == nil {
		t.Error("Expected validation error")
	}
	if r.State() != StateIdle {
		t.Errorf("Expected renderer to stay idle, got %v", r.State())
	}
}
