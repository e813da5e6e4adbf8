package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"xform-kernel/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:          "render",
		Short:        "Render a turntable of a transformed, textured cube to WebP",
		SilenceUsage: true,
	}

	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file (.json, .toml or .yaml)")
	f.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags := bindRenderFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), newLogger(verbose), configFile, flags())
	}
	return cmd
}

// bindRenderFlags registers the config override flags on cmd. The returned
// func collects them after parsing; seed, ortho and jitter are passed on
// only when given, so "--seed 0" or "--ortho=false" can override the file.
func bindRenderFlags(cmd *cobra.Command) func() config.Flags {
	var (
		flags         config.Flags
		seed          uint32
		ortho, jitter bool
	)

	f := cmd.Flags()
	f.StringVar(&flags.OutputDir, "output", "", "output directory (default: renders)")
	f.StringVar(&flags.TextureDir, "texture-dir", "", "directory searched for textures")
	f.StringVar(&flags.Texture, "texture", "", "texture name resolved in --texture-dir")
	f.IntVar(&flags.RenderSize, "size", 0, "output size in pixels (default: 256)")
	f.IntVar(&flags.Supersample, "supersample", 0, "supersampling factor (default: 2)")
	f.IntVar(&flags.Frames, "frames", 0, "turntable frames (default: 8)")
	f.IntVar(&flags.Workers, "workers", 0, "worker goroutines (default: NumCPU)")
	f.Uint32Var(&seed, "seed", 0, "seed for jitter and procedural texture")
	f.BoolVar(&ortho, "ortho", false, "use an orthographic camera")
	f.BoolVar(&jitter, "jitter", false, "jitter samples inside each pixel")

	return func() config.Flags {
		out := flags
		if f.Changed("seed") {
			out.Seed = &seed
		}
		if f.Changed("ortho") {
			out.Ortho = &ortho
		}
		if f.Changed("jitter") {
			out.Jitter = &jitter
		}
		return out
	}
}
