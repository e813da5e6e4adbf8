// Package batch renders a turntable: one frame per camera angle, spread
// over a worker pool, each written as a WebP file.
package batch

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/charmbracelet/log"

	"xform-kernel/internal/camera"
	"xform-kernel/internal/postprocess"
	"xform-kernel/internal/raster"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Objects     []raster.Object
	Camera      camera.Camera
	RenderSize  int
	Supersample int
	Frames      int
	Workers     int
	Seed        uint32
	Jitter      bool
	FillRatio   float64 // 0 keeps the camera framing
	Logger      *log.Logger
}

// Frame is one turntable position.
type Frame struct {
	Index int
	Angle float32 // radians about the vertical axis
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame   Frame
	Path    string
	Success bool
	Error   string
}

// Frames spreads n angles evenly over a full turn.
func Frames(n int) []Frame {
	out := make([]Frame, n)
	for i := range out {
		out[i] = Frame{Index: i, Angle: float32(2 * math.Pi * float64(i) / float64(n))}
	}
	return out
}

// Run renders every frame using a worker pool. Cancelling ctx stops
// dispatch; frames never started are reported as failed with the context
// error.
func Run(ctx context.Context, cfg Config) []Result {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	workers := max(1, cfg.Workers)

	frames := Frames(cfg.Frames)
	total := len(frames)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					logger.Info("progress", "done", p, "total", total, "fps", fmt.Sprintf("%.1f", rate))
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				results[idx] = processFrame(cfg, frames[idx])
				if !results[idx].Success {
					logger.Warn("frame failed", "frame", idx, "err", results[idx].Error)
				} else {
					logger.Debug("frame written", "frame", idx, "path", results[idx].Path)
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	sent := 0
dispatch:
	for ; sent < total; sent++ {
		select {
		case frameChan <- sent:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(frameChan)

	wg.Wait()
	close(done)

	for i := sent; i < total; i++ {
		results[i] = Result{Frame: frames[i], Error: ctx.Err().Error()}
	}

	return results
}

// RenderFrame draws one frame at the final size: supersampled, downsampled
// and optionally refitted.
func RenderFrame(cfg Config, f Frame) (*image.NRGBA, error) {
	ss := max(1, cfg.Supersample)
	img, err := raster.Render(cfg.Objects, cfg.Camera.Orbit(f.Angle), raster.Options{
		Size:   cfg.RenderSize * ss,
		Jitter: raster.Jitter{Enabled: cfg.Jitter, Seed: cfg.Seed + uint32(f.Index)},
	})
	if err != nil {
		return nil, err
	}

	// Post-processing: supersample downsample
	if ss > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize)
	}
	if cfg.FillRatio > 0 {
		img = postprocess.Fit(img, cfg.RenderSize, cfg.FillRatio)
	}
	return img, nil
}

func framePath(dir string, f Frame) string {
	return filepath.Join(dir, fmt.Sprintf("frame_%03d.webp", f.Index))
}

func processFrame(cfg Config, f Frame) Result {
	res := Result{Frame: f, Path: framePath(cfg.OutputDir, f)}

	img, err := RenderFrame(cfg, f)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	// Save as WebP
	if err := os.MkdirAll(filepath.Dir(res.Path), 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	out, err := os.Create(res.Path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer out.Close()

	if err := nativewebp.Encode(out, img, nil); err != nil {
		res.Error = fmt.Sprintf("WebP encode: %v", err)
		return res
	}

	res.Success = true
	return res
}
