package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/image/math/f32"

	"xform-kernel/internal/batch"
	"xform-kernel/internal/camera"
	"xform-kernel/internal/config"
	"xform-kernel/internal/cpucaps"
	"xform-kernel/internal/geom"
	"xform-kernel/internal/mathutil"
	"xform-kernel/internal/noise"
	"xform-kernel/internal/raster"
	"xform-kernel/internal/texture"
	"xform-kernel/internal/transform"
)

func run(ctx context.Context, logger *log.Logger, configFile string, flags config.Flags) error {
	// Load config
	var cfg config.Config
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
	}

	// CLI flags override config file
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	caps := cpucaps.Detect()
	logger.Info("cpu", "caps", caps.String(), "tier", caps.Best())

	objects, err := buildScene(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("rendering",
		"frames", cfg.Frames,
		"size", cfg.RenderSize,
		"supersample", cfg.Supersample,
		"workers", cfg.Workers,
		"output", cfg.OutputDir)

	start := time.Now()
	results := batch.Run(ctx, batch.Config{
		OutputDir:   cfg.OutputDir,
		Objects:     objects,
		Camera:      buildCamera(cfg),
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		Frames:      cfg.Frames,
		Workers:     cfg.Workers,
		Seed:        cfg.Seed,
		Jitter:      cfg.Jitter,
		FillRatio:   cfg.FillRatio,
		Logger:      logger,
	})

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	logger.Info("done", "rendered", len(results)-failed, "total", len(results),
		"elapsed", time.Since(start).Round(time.Millisecond))

	// Write manifest
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, batch.NewManifest(cfg.OutputDir, cfg.Seed, results)); err != nil {
		logger.Warn("manifest write failed", "err", err)
	} else {
		logger.Info("manifest", "path", manifestPath)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("render: %d of %d frames failed", failed, len(results))
	}
	return nil
}

func buildCamera(cfg config.Config) camera.Camera {
	return camera.Camera{
		Eye:         f32.Vec3{0, float32(cfg.Height), -float32(cfg.Distance)},
		Up:          f32.Vec3{0, 1, 0},
		FOV:         float32(mathutil.Deg2Rad(cfg.FOV)),
		Near:        float32(cfg.Near),
		Far:         float32(cfg.Far),
		Ortho:       cfg.Ortho,
		OrthoHeight: float32(cfg.OrthoHeight),
	}
}

// buildScene places the cube above a ground plane. The cube's texture
// comes from the texture directory when one is configured, otherwise from
// value noise.
func buildScene(cfg config.Config, logger *log.Logger) ([]raster.Object, error) {
	rot := f32.Vec3{
		float32(mathutil.Deg2Rad(cfg.Rotation[0])),
		float32(mathutil.Deg2Rad(cfg.Rotation[1])),
		float32(mathutil.Deg2Rad(cfg.Rotation[2])),
	}
	orient := transform.EulerXYZ(rot)
	if cfg.LegacyEuler {
		orient = transform.Euler(rot)
	}
	logger.Debug("cube orientation\n" + orient.Dump("model"))

	tex := noise.Texture(128, 8, cfg.Seed)
	if cfg.Texture != "" {
		idx := texture.BuildIndex(cfg.TextureDir)
		logger.Info("textures", "dir", cfg.TextureDir, "indexed", idx.Len())
		img, err := texture.NewCache(idx).Load(cfg.Texture)
		switch {
		case err != nil:
			return nil, err
		case img == nil:
			logger.Warn("texture not found, using noise", "name", cfg.Texture)
		default:
			tex = img
		}
	}

	return []raster.Object{
		{
			Mesh:    geom.Cube(),
			Model:   transform.Multiply(transform.Translate(0, 0.5, 0), orient),
			Texture: tex,
		},
		{
			Mesh:  geom.Plane(6, 0),
			Model: transform.Identity(),
			Color: [4]uint8{110, 115, 125, 255},
		},
	}, nil
}
