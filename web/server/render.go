package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// TileUpdate is sent as a "tile" event after each finished tile
type TileUpdate struct {
	TileNumber int `json:"tileNumber"`
	TotalTiles int `json:"totalTiles"`
	X0         int `json:"x0"`
	Y0         int `json:"y0"`
	X1         int `json:"x1"`
	Y1         int `json:"y1"`
}

// CompleteUpdate is sent as the final "complete" event
type CompleteUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	Width           int   `json:"width"`
	Height          int   `json:"height"`
	Tiles           int   `json:"tiles"`
	Workers         int   `json:"workers"`
	PrimaryRays     int64 `json:"primaryRays"`
	ShadowRays      int64 `json:"shadowRays"`
	SecondaryRays   int64 `json:"secondaryRays"`
	MaxDepthReached int   `json:"maxDepthReached"`
	FailedPixels    int   `json:"failedPixels"`
}

func newStats(s renderer.RenderStats) Stats {
	return Stats{
		Width:           s.Width,
		Height:          s.Height,
		Tiles:           s.Tiles,
		Workers:         s.Workers,
		PrimaryRays:     s.Rays.PrimaryRays,
		ShadowRays:      s.Rays.ShadowRays,
		SecondaryRays:   s.Rays.SecondaryRays,
		MaxDepthReached: s.Rays.MaxDepthReached,
		FailedPixels:    s.FailedPixels,
	}
}

// handleRender streams tile progress and the finished image with SSE. The
// render stops between tiles when the client disconnects.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	req, sc, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	events := &sseWriter{w: w, flusher: flusher}
	opts := renderer.Options{
		Width:      req.Width,
		Height:     req.Height,
		MaxDepth:   req.MaxDepth,
		NumWorkers: s.config.Workers,
		OnTileDone: func(tc renderer.TileCompletion) {
			// Tile callbacks run on this goroutine, so writing here is safe
			events.send("tile", TileUpdate{
				TileNumber: tc.TileNumber,
				TotalTiles: tc.TotalTiles,
				X0:         tc.Bounds.Min.X,
				Y0:         tc.Bounds.Min.Y,
				X1:         tc.Bounds.Max.X,
				Y1:         tc.Bounds.Max.Y,
			})
		},
	}

	start := time.Now()
	logger.Infof("render request: scene %q at %dx%d, depth %d", req.Scene, req.Width, req.Height, req.MaxDepth)
	img, stats, err := renderer.Render(r.Context(), sc, opts)
	if err != nil {
		if errors.Is(err, renderer.ErrInterrupted) {
			logger.Infof("render of %q cancelled by client", req.Scene)
			return
		}
		events.send("error", map[string]string{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := output.EncodePNG(&buf, img); err != nil {
		events.send("error", map[string]string{"error": err.Error()})
		return
	}

	events.send("complete", CompleteUpdate{
		ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Stats:     newStats(stats),
		ElapsedMs: time.Since(start).Milliseconds(),
	})
	if events.err != nil {
		logger.Warningf("render stream for %q failed: %v", req.Scene, events.err)
	}
}

// handleImage renders a frame and responds with the PNG directly
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	req, sc, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, _, err := renderer.Render(r.Context(), sc, renderer.Options{
		Width:      req.Width,
		Height:     req.Height,
		MaxDepth:   req.MaxDepth,
		NumWorkers: s.config.Workers,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := output.EncodePNG(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warningf("failed to write image: %v", err)
	}
}

// sseWriter writes server-sent events and remembers the first error
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	err     error
}

func (e *sseWriter) send(event string, payload any) {
	if e.err != nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		e.err = err
		return
	}
	if _, err := fmt.Fprintf(e.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		e.err = err
		return
	}
	e.flusher.Flush()
}
