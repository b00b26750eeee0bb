package server

import (
	"time"

	"github.com/JoMedeiros/ray-tracing/pkg/renderer"
)

// Event types sent over the progress websocket
const (
	EventStatus   = "status"
	EventTile     = "tile"
	EventConsole  = "console"
	EventComplete = "complete"
	EventError    = "error"
)

// Event is one message on the progress stream
type Event struct {
	Type    string          `json:"type"`
	Status  *Status         `json:"status,omitempty"`
	Tile    *TileUpdate     `json:"tile,omitempty"`
	Console *ConsoleMessage `json:"console,omitempty"`
}

// TileUpdate represents a single finished tile
type TileUpdate struct {
	TileID     int    `json:"tileId"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Tiles finished so far (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int   `json:"totalPixels"`
	TotalSamples    int64 `json:"totalSamples"`
	SamplesPerPixel int   `json:"samplesPerPixel"`
	Tiles           int   `json:"tiles"`
	Workers         int   `json:"workers"`
	ElapsedMs       int64 `json:"elapsedMs"`
}

func newStats(stats renderer.RenderStats) *Stats {
	return &Stats{
		TotalPixels:     stats.TotalPixels,
		TotalSamples:    int64(stats.TotalSamples),
		SamplesPerPixel: stats.SamplesPerPixel,
		Tiles:           stats.Tiles,
		Workers:         stats.Workers,
		ElapsedMs:       stats.Elapsed.Milliseconds(),
	}
}

// Status describes a render job
type Status struct {
	ID              string    `json:"id"`
	State           JobState  `json:"state"`
	Progress        float64   `json:"progress"`
	CompletedTiles  int       `json:"completedTiles"`
	TotalTiles      int       `json:"totalTiles"`
	Width           int       `json:"width"`
	Height          int       `json:"height"`
	SamplesPerPixel int       `json:"samplesPerPixel"`
	Integrator      string    `json:"integrator"`
	Stats           *Stats    `json:"stats,omitempty"`
	Error           string    `json:"error,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// finalEvent is the last event of a finished job
func finalEvent(status Status) Event {
	eventType := EventComplete
	if status.State == JobFailed {
		eventType = EventError
	}
	return Event{Type: eventType, Status: &status}
}

// CreateRenderResponse is returned when a render job is accepted
type CreateRenderResponse struct {
	ID          string `json:"id"`
	StatusURL   string `json:"statusUrl"`
	ImageURL    string `json:"imageUrl"`
	ProgressURL string `json:"progressUrl"`
}

// Problem is one entry of a scene validation failure
type Problem struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error    string    `json:"error"`
	Problems []Problem `json:"problems,omitempty"`
}
