package server

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
)

const writeWait = 10 * time.Second

// handleProgress streams the job's events over a websocket: the current
// status first, then tiles and console messages, then the final status
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	job, ok := s.lookupJob(w, r)
	if !ok {
		return
	}

	logger := s.logger.With("render", job.ID, "request_id", w.Header().Get(RequestIDHeader))

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.cfg.Origins(),
	})
	if err != nil {
		logger.Error("websocket accept", "error", err)
		return
	}
	defer conn.CloseNow()

	logger = logger.With("client", uuid.New().String())
	logger.Debug("progress client connected")

	// Clients only listen; CloseRead cancels ctx when they go away
	ctx := conn.CloseRead(r.Context())

	events, unsubscribe := job.Subscribe()
	defer unsubscribe()

	status := job.Status()
	if err := writeEvent(ctx, conn, Event{Type: EventStatus, Status: &status}); err != nil {
		logger.Debug("write error", "error", err)
		return
	}

	for {
		select {
		case event, ok := <-events:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "render finished")
				logger.Debug("progress client done")
				return
			}
			if err := writeEvent(ctx, conn, event); err != nil {
				logger.Debug("write error", "error", err)
				return
			}
		case <-ctx.Done():
			logger.Debug("progress client left")
			return
		}
	}
}

func writeEvent(ctx context.Context, conn *websocket.Conn, event Event) error {
	writeCtx, cancel := context.WithTimeout(ctx, writeWait)
	defer cancel()
	return wsjson.Write(writeCtx, conn, event)
}
