package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

var logger = log.New("server")

const (
	maxImageSide   = 4096
	maxRenderDepth = 32
	shutdownGrace  = 5 * time.Second
)

// Config holds the server settings
type Config struct {
	Port      int
	ScenesDir string // Directory searched for scene files; only files listed here can be rendered
	Workers   int    // Render workers per request, 0 for NumCPU
}

// Server exposes rendering and scene inspection over HTTP
type Server struct {
	config Config
}

// NewServer creates a new web server
func NewServer(config Config) *Server {
	return &Server{config: config}
}

// RenderRequest holds the parameters shared by the render and inspect endpoints
type RenderRequest struct {
	Scene    string `json:"scene"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MaxDepth int    `json:"maxDepth"`
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/image", s.handleImage)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Noticef("starting web server on http://localhost%s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		logger.Notice("shutting down web server")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sceneEntry is the JSON form of scene.SceneInfo
type sceneEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Group       string `json:"group"`
	Type        string `json:"type"`
}

// handleScenes lists the built-in scenes and the scene files directory
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	infos, err := scene.ListAllScenes(s.config.ScenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	entries := make([]sceneEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, sceneEntry{
			ID:          info.ID,
			Name:        info.Name,
			Description: info.Description,
			Group:       info.Group,
			Type:        info.Type,
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

// resolveScene loads a built-in scene or a scene file listed in the scenes
// directory. Arbitrary file paths are never opened.
func (s *Server) resolveScene(id string) (*scene.Scene, error) {
	if sc, err := scene.ByName(id); err == nil {
		return sc, nil
	}

	infos, err := scene.ListSceneFiles(s.config.ScenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range infos {
		if info.ID == id {
			return scene.NewSceneFile(info.FilePath)
		}
	}
	return nil, fmt.Errorf("unknown scene %q", id)
}

// parseRenderRequest reads the query parameters and loads the scene. Width
// and height default to the scene's recommended size.
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, *scene.Scene, error) {
	query := r.URL.Query()

	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	sc, err := s.resolveScene(req.Scene)
	if err != nil {
		return nil, nil, err
	}
	defaultWidth, defaultHeight := sc.GetImageSize()

	if req.Width, err = parseIntParam(query, "width", defaultWidth, 1, maxImageSide); err != nil {
		return nil, nil, err
	}
	if req.Height, err = parseIntParam(query, "height", defaultHeight, 1, maxImageSide); err != nil {
		return nil, nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", 5, 0, maxRenderDepth); err != nil {
		return nil, nil, err
	}
	return req, sc, nil
}

// parseIntParam parses an integer parameter with a default and inclusive bounds
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	if value < min || value > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got %d", key, min, max, value)
	}
	return value, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warningf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
