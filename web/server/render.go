package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// FrameUpdate represents a single animation frame sent via SSE
type FrameUpdate struct {
	Index       int     `json:"index"`
	TotalFrames int     `json:"totalFrames"`
	SimTime     float64 `json:"simTime"`
	ImageData   string  `json:"imageData"` // Base64 encoded PNG
	Stats       Stats   `json:"stats"`
	IsComplete  bool    `json:"isComplete"`
	ElapsedMs   int64   `json:"elapsedMs"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "frame", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a single frame and returns it as a PNG
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
	}

	logger := NewWebLogger(newRenderID(), nil, c.Logger())
	pipeline, err := setupRenderingPipeline(req, logger)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer pipeline.Raytracer.Close()

	img, stats, err := pipeline.Raytracer.RenderImage(pipeline.Scene, pipeline.Camera, req.Time)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
	}

	data, err := encodePNG(img)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
	}

	header := c.Response().Header()
	header.Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	header.Set("X-Hit-Pixels", strconv.Itoa(stats.HitPixels))
	return c.Blob(http.StatusOK, "image/png", data)
}

// handleAnimate streams a frame sequence via SSE, interleaved with console messages
func (s *Server) handleAnimate(c echo.Context) error {
	w := c.Response()
	setSSEHeaders(w)

	ctx := c.Request().Context()

	// Create unified SSE event channel for thread-safe writing
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		writeSSEEvents(ctx, w, sseEventChan)
		close(writerDone)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Invalid request: %v", err))
		return nil
	}

	// Setup console logging and streaming
	consoleChan := make(chan ConsoleMessage, 50)
	webLogger := NewWebLogger(newRenderID(), consoleChan, c.Logger())
	consoleCtx, stopConsole := context.WithCancel(ctx)
	consoleDone := make(chan struct{})
	go func() {
		streamConsoleMessages(consoleCtx, consoleChan, sseEventChan)
		close(consoleDone)
	}()
	flushConsole := func() {
		stopConsole()
		<-consoleDone
		drainConsole(ctx, consoleChan, sseEventChan)
	}

	pipeline, err := setupRenderingPipeline(req, webLogger)
	if err != nil {
		flushConsole()
		sendEvent(ctx, sseEventChan, "error", err.Error())
		return nil
	}

	startTime := time.Now()
	frameChan, errChan := pipeline.Raytracer.RenderSequence(ctx, pipeline.Scene, pipeline.Camera, req.Time, req.Dt, req.Frames)

	for frame := range frameChan {
		imageData, err := imageToBase64PNG(frame.Image)
		if err != nil {
			webLogger.Printf("Error encoding frame %d: %v\n", frame.Index, err)
			continue
		}

		update := FrameUpdate{
			Index:       frame.Index,
			TotalFrames: req.Frames,
			SimTime:     frame.SimTime,
			ImageData:   imageData,
			Stats:       toStats(frame.Stats, renderer.CalculateAverageLuminance(frame.Image)),
			IsComplete:  frame.IsLast,
			ElapsedMs:   time.Since(startTime).Milliseconds(),
		}
		data, err := json.Marshal(update)
		if err != nil {
			webLogger.Printf("Error marshaling frame %d: %v\n", frame.Index, err)
			continue
		}
		sendEvent(ctx, sseEventChan, "frame", string(data))
	}

	renderErr := <-errChan
	pipeline.Raytracer.Close()
	flushConsole()

	if renderErr != nil {
		if ctx.Err() == nil {
			sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Render error: %v", renderErr))
		}
		return nil
	}

	sendEvent(ctx, sseEventChan, "complete", "Rendering completed")
	return nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// writeSSEEvents writes all SSE events from a single goroutine until the channel closes
func writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher != nil {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// sendEvent queues an event unless the client has gone away
func sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType, data string) {
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: data}:
	case <-ctx.Done():
	}
}

// streamConsoleMessages forwards console messages as SSE events until ctx is done
func streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for {
		select {
		case consoleMsg := <-consoleChan:
			forwardConsoleMessage(ctx, consoleMsg, sseEventChan)
		case <-ctx.Done():
			return
		}
	}
}

// drainConsole forwards any console messages still buffered
func drainConsole(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for {
		select {
		case consoleMsg := <-consoleChan:
			forwardConsoleMessage(ctx, consoleMsg, sseEventChan)
		default:
			return
		}
	}
}

func forwardConsoleMessage(ctx context.Context, consoleMsg ConsoleMessage, sseEventChan chan<- SSEEvent) {
	data, err := json.Marshal(consoleMsg)
	if err != nil {
		return
	}
	sendEvent(ctx, sseEventChan, "console", string(data))
}

// newRenderID returns a unique identifier for log correlation
func newRenderID() string {
	return fmt.Sprintf("render-%d", time.Now().UnixNano())
}

// encodePNG encodes an image as PNG bytes
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
