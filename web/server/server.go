package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/df07/go-volumetric-raytracer/pkg/scene"
)

// Server handles web requests for the volumetric raytracer
type Server struct {
	port      int
	scenesDir string
	staticDir string
	logger    *slog.Logger
	upgrader  websocket.Upgrader
}

// NewServer creates a new web server. Grid scenes are discovered in scenesDir.
func NewServer(port int, scenesDir, staticDir string, logger *slog.Logger) *Server {
	return &Server{
		port:      port,
		scenesDir: scenesDir,
		staticDir: staticDir,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1 << 16,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for local development
			},
		},
	}
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting web server", "url", "http://localhost"+addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and discovered grid files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the recommended settings of a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = defaultScene
	}

	sceneObj, err := scene.New(sceneName)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sampling := sceneObj.SamplingConfig
	volumeConfig := sceneObj.VolumeConfig
	s.writeJSON(w, http.StatusOK, map[string]any{
		"scene": sceneName,
		"defaults": map[string]any{
			"width":                     sampling.Width,
			"height":                    sampling.Height,
			"maxDepth":                  sampling.MaxDepth,
			"russianRouletteMinBounces": sampling.RussianRouletteMinBounces,
			"adaptiveMinSamples":        sampling.AdaptiveMinSamples,
			"adaptiveThreshold":         sampling.AdaptiveThreshold,
			"sampling":                  volumeConfig.HomogeneousSampling.String(),
			"stepSize":                  volumeConfig.StepSize,
			"maxSteps":                  volumeConfig.MaxSteps,
			"maxVolumeBounce":           volumeConfig.MaxVolumeBounce,
		},
		"limits": requestLimits,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", "error", err)
	}
}
