package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	xdraw "golang.org/x/image/draw"

	"github.com/df07/go-volumetric-raytracer/pkg/geometry"
	"github.com/df07/go-volumetric-raytracer/pkg/renderer"
	"github.com/df07/go-volumetric-raytracer/pkg/scene"
	"github.com/df07/go-volumetric-raytracer/pkg/volume"
)

const defaultScene = "fog"

// ErrInvalidRequest is returned for render requests outside the limits
var ErrInvalidRequest = errors.New("invalid render request")

type limit struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

var requestLimits = map[string]limit{
	"width":        {8, 2000},
	"height":       {8, 2000},
	"maxSamples":   {1, 10000},
	"maxPasses":    {1, 100},
	"maxDepth":     {0, 1000},
	"stepSize":     {1e-4, 10},
	"previewWidth": {0, 2000},
}

// RenderRequest is the first message a client sends on the render socket
type RenderRequest struct {
	Scene        string  `json:"scene"`        // Scene id from /api/scenes
	Width        int     `json:"width"`        // Image width
	Height       int     `json:"height"`       // Image height
	MaxSamples   int     `json:"maxSamples"`   // Maximum samples per pixel
	MaxPasses    int     `json:"maxPasses"`    // Maximum number of passes
	MaxDepth     int     `json:"maxDepth"`     // Scattering bounces per path, 0 = scene default
	Sampling     string  `json:"sampling"`     // "distance", "equiangular" or empty for the scene default
	Branched     bool    `json:"branched"`     // Always sample a scatter event in homogeneous media
	StepSize     float64 `json:"stepSize"`     // Ray-marching step, 0 = scene default
	PreviewWidth int     `json:"previewWidth"` // Downscale pass images to this width, 0 = full size
}

// applyDefaults fills unset fields
func (req *RenderRequest) applyDefaults() {
	if req.Scene == "" {
		req.Scene = defaultScene
	}
	if req.Width == 0 {
		req.Width = 400
	}
	if req.Height == 0 {
		req.Height = 225
	}
	if req.MaxSamples == 0 {
		req.MaxSamples = 64
	}
	if req.MaxPasses == 0 {
		req.MaxPasses = 7
	}
}

// Validate checks every numeric field against requestLimits
func (req *RenderRequest) Validate() error {
	checks := []struct {
		name  string
		value float64
		zero  bool // zero means "use the default" and is always allowed
	}{
		{"width", float64(req.Width), false},
		{"height", float64(req.Height), false},
		{"maxSamples", float64(req.MaxSamples), false},
		{"maxPasses", float64(req.MaxPasses), false},
		{"maxDepth", float64(req.MaxDepth), true},
		{"stepSize", req.StepSize, true},
		{"previewWidth", float64(req.PreviewWidth), true},
	}

	for _, c := range checks {
		if c.zero && c.value == 0 {
			continue
		}
		l := requestLimits[c.name]
		if c.value < l.Min || c.value > l.Max {
			return fmt.Errorf("%w: %s must be between %g and %g, got %g", ErrInvalidRequest, c.name, l.Min, l.Max, c.value)
		}
	}

	if _, err := volume.ParseSamplingMethod(req.Sampling); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// Message is the envelope for everything sent to the client
type Message struct {
	Type string `json:"type"` // "console", "pass", "error", "complete"
	Data any    `json:"data"`
}

// PassUpdate describes one completed pass
type PassUpdate struct {
	PassNumber  int    `json:"passNumber"`
	TotalPasses int    `json:"totalPasses"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	Stats       Stats  `json:"stats"`
	IsLast      bool   `json:"isLast"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int64   `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MaxSamples     int     `json:"maxSamples"`
	MinSamples     int     `json:"minSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
	Luminance      float64 `json:"luminance"`
}

var renderCounter atomic.Int64

// handleRender upgrades to a websocket, reads one RenderRequest and streams
// passes until the render completes or the client goes away
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	var req RenderRequest
	if err := conn.ReadJSON(&req); err != nil {
		s.logger.Warn("failed to read render request", "error", err)
		return
	}
	req.applyDefaults()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Single writer: gorilla connections allow one concurrent writer
	messages := make(chan Message, 16)
	writerDone := make(chan struct{})
	go s.writeMessages(conn, messages, writerDone)

	// Any read after the request means the client closed or misbehaved
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	s.render(ctx, &req, messages)
	close(messages)
	<-writerDone
}

// render runs the request and sends its messages; it returns once the last
// message has been queued
func (s *Server) render(ctx context.Context, req *RenderRequest, messages chan<- Message) {
	if err := req.Validate(); err != nil {
		messages <- Message{Type: "error", Data: err.Error()}
		return
	}

	// Queued after the console drains so "complete" or "error" is always last
	var final *Message
	defer func() {
		if final != nil {
			messages <- *final
		}
	}()

	renderID := strconv.FormatInt(renderCounter.Add(1), 10)
	consoleChan := make(chan ConsoleMessage, 64)
	logger := slog.New(NewConsoleHandler(renderID, consoleChan, s.logger.Handler(), slog.LevelInfo))

	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		for msg := range consoleChan {
			messages <- Message{Type: "console", Data: msg}
		}
	}()
	defer func() {
		close(consoleChan)
		<-consoleDone
	}()

	raytracer, err := s.setupRaytracer(req, logger)
	if err != nil {
		final = &Message{Type: "error", Data: err.Error()}
		return
	}

	startTime := time.Now()
	passChan, _, errChan := raytracer.RenderProgressive(ctx, renderer.RenderOptions{})

	for result := range passChan {
		update, err := s.passUpdate(result, req, startTime)
		if err != nil {
			messages <- Message{Type: "error", Data: err.Error()}
			continue
		}
		messages <- Message{Type: "pass", Data: update}
	}

	if err, ok := <-errChan; ok && err != nil {
		if !errors.Is(err, context.Canceled) {
			final = &Message{Type: "error", Data: err.Error()}
		}
		return
	}

	logger.Info("render complete", "elapsed", time.Since(startTime).Round(time.Millisecond))
	final = &Message{Type: "complete", Data: "Rendering completed"}
}

// setupRaytracer builds the scene with the request's overrides
func (s *Server) setupRaytracer(req *RenderRequest, logger *slog.Logger) (*renderer.ProgressiveRaytracer, error) {
	sceneObj, err := scene.New(req.Scene, geometry.CameraConfig{
		Width:       req.Width,
		AspectRatio: float64(req.Width) / float64(req.Height),
	})
	if err != nil {
		return nil, err
	}

	if req.Sampling != "" {
		method, _ := volume.ParseSamplingMethod(req.Sampling)
		sceneObj.VolumeConfig.HomogeneousSampling = method
	}
	if req.StepSize > 0 {
		sceneObj.VolumeConfig.StepSize = req.StepSize
	}
	if req.MaxDepth > 0 {
		sceneObj.SamplingConfig.MaxDepth = req.MaxDepth
	}
	sceneObj.SamplingConfig.Branched = req.Branched

	config := renderer.DefaultProgressiveConfig()
	config.MaxSamplesPerPixel = req.MaxSamples
	config.MaxPasses = req.MaxPasses
	config.InitialSamples = min(config.InitialSamples, req.MaxSamples)

	raytracer, err := renderer.NewProgressiveRaytracer(sceneObj, config)
	if err != nil {
		return nil, err
	}
	raytracer.SetLogger(logger)

	logger.Info("rendering scene", "scene", sceneObj.Name, "width", sceneObj.SamplingConfig.Width,
		"height", sceneObj.SamplingConfig.Height, "volumes", sceneObj.VolumeCount(),
		"sampling", sceneObj.VolumeConfig.HomogeneousSampling.String())
	return raytracer, nil
}

// passUpdate encodes a pass for the client
func (s *Server) passUpdate(result renderer.PassResult, req *RenderRequest, startTime time.Time) (PassUpdate, error) {
	imageData, err := imageToBase64PNG(previewImage(result.Image, req.PreviewWidth))
	if err != nil {
		return PassUpdate{}, fmt.Errorf("failed to encode image: %w", err)
	}

	return PassUpdate{
		PassNumber:  result.PassNumber,
		TotalPasses: req.MaxPasses,
		ImageData:   imageData,
		Stats: Stats{
			TotalPixels:    result.Stats.TotalPixels,
			TotalSamples:   int64(result.Stats.TotalSamples),
			AverageSamples: result.Stats.AverageSamples,
			MaxSamples:     result.Stats.MaxSamples,
			MinSamples:     result.Stats.MinSamples,
			MaxSamplesUsed: result.Stats.MaxSamplesUsed,
			Luminance:      renderer.CalculateAverageLuminance(result.Image),
		},
		IsLast:    result.IsLast,
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}, nil
}

// writeMessages is the connection's only writer
func (s *Server) writeMessages(conn *websocket.Conn, messages <-chan Message, done chan<- struct{}) {
	defer close(done)

	failed := false
	for msg := range messages {
		if failed {
			continue // drain so senders never block
		}
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(msg); err != nil {
			s.logger.Warn("failed to send message", "type", msg.Type, "error", err)
			failed = true
		}
	}

	if !failed {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
	}
}

// previewImage downscales img to width, keeping its aspect ratio
func previewImage(img *image.RGBA, width int) image.Image {
	bounds := img.Bounds()
	if width <= 0 || width >= bounds.Dx() {
		return img
	}

	height := max(1, bounds.Dy()*width/bounds.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
