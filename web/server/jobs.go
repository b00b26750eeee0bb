package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.jetify.com/typeid/v2"

	"github.com/JoMedeiros/ray-tracing/pkg/loaders"
	"github.com/JoMedeiros/ray-tracing/pkg/renderer"
)

// PrefixRender is the typeid prefix of render job ids
const PrefixRender = "render"

// subscriberBuffer is the event backlog kept per progress subscriber
const subscriberBuffer = 256

// ErrJobNotFound is returned for ids with no registered job
var ErrJobNotFound = errors.New("render job not found")

// JobState is the lifecycle stage of a render job
type JobState string

const (
	JobRendering JobState = "rendering"
	JobDone      JobState = "done"
	JobFailed    JobState = "failed"
	JobCancelled JobState = "cancelled"
)

// Finished reports whether the job has stopped rendering
func (s JobState) Finished() bool {
	return s != JobRendering
}

// NewRenderID generates a render job id such as render_01h455vb4pex5vsknk084sn02q
func NewRenderID() string {
	return typeid.MustGenerate(PrefixRender).String()
}

// ValidateRenderID checks that id is a well-formed render job id
func ValidateRenderID(id string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != PrefixRender {
		return fmt.Errorf("expected prefix %q but got %q in id %q", PrefixRender, parsed.Prefix(), id)
	}
	return nil
}

// Job is one render running in the background
type Job struct {
	ID      string
	Created time.Time
	Setup   *loaders.Setup

	cancel context.CancelFunc
	done   chan struct{}

	mu             sync.Mutex
	state          JobState
	completedTiles int
	totalTiles     int
	stats          renderer.RenderStats
	err            error
	buffer         *renderer.Buffer
	subscribers    map[chan Event]struct{}
}

// Done is closed when the job stops rendering
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Cancel stops the render if it is still running
func (j *Job) Cancel() {
	j.cancel()
}

// Buffer returns the finished image, or nil while rendering or after failure
func (j *Job) Buffer() *renderer.Buffer {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.buffer
}

// Status returns a snapshot of the job
func (j *Job) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.statusLocked()
}

func (j *Job) statusLocked() Status {
	cfg := j.Setup.Scene.SamplingConfig
	status := Status{
		ID:              j.ID,
		State:           j.state,
		CompletedTiles:  j.completedTiles,
		TotalTiles:      j.totalTiles,
		Width:           cfg.Width,
		Height:          cfg.Height,
		SamplesPerPixel: cfg.SamplesPerPixel,
		Integrator:      j.Setup.Settings.Integrator.Type,
		CreatedAt:       j.Created,
	}
	if j.totalTiles > 0 {
		status.Progress = float64(j.completedTiles) / float64(j.totalTiles)
	}
	if j.state == JobDone {
		status.Progress = 1
		status.Stats = newStats(j.stats)
	}
	if j.err != nil {
		status.Error = j.err.Error()
	}
	return status
}

// Subscribe returns a channel of progress events that is closed when the job
// finishes, and a function to stop listening early. A finished job yields its
// final status and an already closed channel.
func (j *Job) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.state.Finished() {
		ch <- finalEvent(j.statusLocked())
		close(ch)
		return ch, func() {}
	}

	j.subscribers[ch] = struct{}{}
	return ch, func() {
		j.mu.Lock()
		defer j.mu.Unlock()
		if _, ok := j.subscribers[ch]; ok {
			delete(j.subscribers, ch)
			close(ch)
		}
	}
}

// publishLocked fans an event out to subscribers, dropping it for any whose
// backlog is full. One slot is always left for the final event.
func (j *Job) publishLocked(event Event) {
	for ch := range j.subscribers {
		if len(ch) < cap(ch)-1 {
			ch <- event
		}
	}
}

func (j *Job) publish(event Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.publishLocked(event)
}

func (j *Job) tileDone(tc renderer.TileCompletion) {
	update := TileUpdate{
		TileID:     tc.Tile.ID,
		X:          tc.Tile.Bounds.Min.X,
		Y:          tc.Tile.Bounds.Min.Y,
		Width:      tc.Tile.Bounds.Dx(),
		Height:     tc.Tile.Bounds.Dy(),
		TileNumber: tc.CompletedTiles,
		TotalTiles: tc.TotalTiles,
	}
	if data, err := encodeTilePNG(tc.Buffer, tc.Tile.Bounds); err == nil {
		update.ImageData = data
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.completedTiles = tc.CompletedTiles
	j.totalTiles = tc.TotalTiles
	j.publishLocked(Event{Type: EventTile, Tile: &update})
}

func (j *Job) finish(buffer *renderer.Buffer, stats renderer.RenderStats, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.stats = stats
	j.totalTiles = stats.Tiles
	switch {
	case err == nil:
		j.state = JobDone
		j.buffer = buffer
		j.completedTiles = stats.Tiles
	case errors.Is(err, context.Canceled):
		j.state = JobCancelled
	default:
		j.state = JobFailed
		j.err = err
	}

	final := finalEvent(j.statusLocked())
	for ch := range j.subscribers {
		ch <- final
		close(ch)
	}
	j.subscribers = nil
	close(j.done)
}

// JobStore is the in-memory registry of render jobs
type JobStore struct {
	logger   *slog.Logger
	renderer renderer.Config

	mu   sync.RWMutex
	jobs map[string]*Job
	wg   sync.WaitGroup
}

// NewJobStore creates an empty registry; every job renders with config
func NewJobStore(config renderer.Config, logger *slog.Logger) *JobStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobStore{
		logger:   logger,
		renderer: config,
		jobs:     make(map[string]*Job),
	}
}

// Start registers a job for setup and begins rendering it in the background.
// The render is cancelled when ctx is.
func (s *JobStore) Start(ctx context.Context, setup *loaders.Setup) *Job {
	ctx, cancel := context.WithCancel(ctx)
	job := &Job{
		ID:          NewRenderID(),
		Created:     time.Now(),
		Setup:       setup,
		cancel:      cancel,
		done:        make(chan struct{}),
		state:       JobRendering,
		subscribers: make(map[chan Event]struct{}),
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	logger := s.logger.With("render", job.ID)
	config := s.renderer
	config.Logger = slog.New(newConsoleHandler(logger.Handler(), job.publish))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		r := renderer.NewRenderer(setup.Scene, setup.Integrator, config)
		buffer, stats, err := r.Render(ctx, job.tileDone)
		job.finish(buffer, stats, err)
		logger.Info("render job finished", "state", job.Status().State)
	}()

	return job
}

// Get returns the job with the given id
func (s *JobStore) Get(id string) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return job, nil
}

// Remove cancels the job and drops it from the registry
func (s *JobStore) Remove(id string) (*Job, error) {
	s.mu.Lock()
	job, ok := s.jobs[id]
	delete(s.jobs, id)
	s.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	job.Cancel()
	return job, nil
}

// Len returns the number of registered jobs
func (s *JobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// Shutdown cancels every running job and waits for them to stop
func (s *JobStore) Shutdown() {
	s.mu.RLock()
	for _, job := range s.jobs {
		job.Cancel()
	}
	s.mu.RUnlock()
	s.wg.Wait()
}
