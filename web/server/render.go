package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/JoMedeiros/ray-tracing/pkg/loaders"
	"github.com/JoMedeiros/ray-tracing/pkg/renderer"
)

// maxSceneBytes bounds the size of an uploaded scene document
const maxSceneBytes = 1 << 20

// handleCreateRender parses the scene document in the body and starts a job
func (s *Server) handleCreateRender(w http.ResponseWriter, r *http.Request) {
	setup, err := loaders.Parse(http.MaxBytesReader(w, r.Body, maxSceneBytes))
	if err != nil {
		var configErr *loaders.ConfigError
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			s.writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Errorf("scene document exceeds %d bytes", maxSceneBytes))
		case errors.As(err, &configErr):
			s.writeConfigError(w, r, configErr)
		default:
			s.writeError(w, r, http.StatusBadRequest, err)
		}
		return
	}

	cfg := setup.Scene.SamplingConfig
	if exceedsPixelLimit(cfg.Width, cfg.Height, s.cfg.MaxPixels) {
		s.writeError(w, r, http.StatusUnprocessableEntity,
			fmt.Errorf("image %dx%d exceeds the limit of %d pixels", cfg.Width, cfg.Height, s.cfg.MaxPixels))
		return
	}

	job := s.jobs.Start(s.baseCtx, setup)
	s.logger.Info("render job created", "render", job.ID,
		"width", cfg.Width, "height", cfg.Height, "spp", cfg.SamplesPerPixel,
		"integrator", setup.Settings.Integrator.Type)

	w.Header().Set("Location", "/api/renders/"+job.ID)
	s.writeJSON(w, http.StatusAccepted, CreateRenderResponse{
		ID:          job.ID,
		StatusURL:   "/api/renders/" + job.ID,
		ImageURL:    "/api/renders/" + job.ID + "/image",
		ProgressURL: "/ws/renders/" + job.ID,
	})
}

// handleGetRender returns the job status
func (s *Server) handleGetRender(w http.ResponseWriter, r *http.Request) {
	job, ok := s.lookupJob(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, job.Status())
}

// handleRenderImage encodes the finished image in the requested format
func (s *Server) handleRenderImage(w http.ResponseWriter, r *http.Request) {
	job, ok := s.lookupJob(w, r)
	if !ok {
		return
	}

	buffer := job.Buffer()
	if buffer == nil {
		status := job.Status()
		s.writeError(w, r, http.StatusConflict, fmt.Errorf("render %s is %s", job.ID, status.State))
		return
	}

	format := job.Setup.Settings.Output.Format
	if requested := r.URL.Query().Get("format"); requested != "" {
		parsed, err := loaders.ParseFormat(requested)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		format = parsed
	}

	var body bytes.Buffer
	if err := loaders.EncodeImage(&body, format, buffer); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", loaders.ContentType(format))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("inline; filename=%q", loaders.OutputPath(job.ID, format)))
	w.WriteHeader(http.StatusOK)
	w.Write(body.Bytes())
}

// handleDeleteRender cancels the job and forgets it
func (s *Server) handleDeleteRender(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := ValidateRenderID(id); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	job, err := s.jobs.Remove(id)
	if err != nil {
		s.writeError(w, r, http.StatusNotFound, err)
		return
	}
	s.logger.Info("render job removed", "render", job.ID)
	w.WriteHeader(http.StatusNoContent)
}

// lookupJob resolves the {id} route variable, writing the error reply itself
func (s *Server) lookupJob(w http.ResponseWriter, r *http.Request) (*Job, bool) {
	id := mux.Vars(r)["id"]
	if err := ValidateRenderID(id); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return nil, false
	}
	job, err := s.jobs.Get(id)
	if err != nil {
		s.writeError(w, r, http.StatusNotFound, err)
		return nil, false
	}
	return job, true
}

// encodeTilePNG converts one tile of the buffer to a base64-encoded PNG
// exceedsPixelLimit reports whether width*height is above limit without
// computing the product
func exceedsPixelLimit(width, height, limit int) bool {
	return width > limit/height
}

func encodeTilePNG(buffer *renderer.Buffer, bounds image.Rectangle) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, buffer.SubImage(bounds)); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
