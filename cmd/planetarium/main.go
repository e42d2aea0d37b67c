// planetarium - procedurally shaded planets in your terminal.
// Renders one scene object at a time with a CPU rasterizer, either live in
// the terminal or as a single PNG/WebP snapshot.
//
// Controls:
//
//	1-7         - Select object
//	Arrows, W/S - Orbit the camera
//	A/D         - Pan left/right
//	Q/E         - Pan down/up
//	Scroll, +/- - Zoom in/out
//	X           - Toggle wireframe overlay
//	B           - Toggle bounding box overlay
//	L           - Toggle per-fragment lighting
//	R           - Reset camera
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/taigrr/planetarium/pkg/config"
	"github.com/taigrr/planetarium/pkg/models"
	"github.com/taigrr/planetarium/pkg/render"
	"github.com/taigrr/planetarium/pkg/scene"
)

var (
	configPath  = flag.String("config", "", "Scene file (.toml, .yaml or .yml); watched for changes")
	outPath     = flag.String("out", "", "Render one frame to this .png or .webp file and exit")
	frameTime   = flag.Uint("frame", 0, "Frame counter passed to shaders for -out")
	outScale    = flag.Int("scale", 1, "Integer upscale factor for -out")
	exportMesh  = flag.String("export-mesh", "", "Write the -model mesh (or the built-in sphere) as .glb and exit")
	width       = flag.Int("width", 0, "Framebuffer width (default: terminal width, 320 for -out)")
	height      = flag.Int("height", 0, "Framebuffer height (default: 2x terminal rows, 240 for -out)")
	targetFPS   = flag.Int("fps", 0, "Target FPS (default 60)")
	bgColor     = flag.String("bg", "", "Background color (#RRGGBB or R,G,B)")
	modelPath   = flag.String("model", "", "Model file (.obj, .glb) used for every object instead of the sphere")
	object      = flag.Int("object", 0, "Object to show first (1-based)")
	ambient     = flag.Float64("ambient", -1, "Ambient light in [0, 1]")
	perFragment = flag.Bool("per-fragment", false, "Light each pixel instead of each triangle")
	wireframe   = flag.Bool("wireframe", false, "Draw the wireframe overlay")
	showBounds  = flag.Bool("bounds", false, "Draw the bounding box overlay")
	logPath     = flag.String("log", "", "Write logs to this file (interactive mode logs nowhere by default)")
	debug       = flag.Bool("debug", false, "Log per-frame draw statistics")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "planetarium - procedurally shaded planets in your terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: planetarium [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  1-7          - Select object\n")
		fmt.Fprintf(os.Stderr, "  Arrows, W/S  - Orbit camera\n")
		fmt.Fprintf(os.Stderr, "  A/D, Q/E     - Pan\n")
		fmt.Fprintf(os.Stderr, "  Scroll, +/-  - Zoom\n")
		fmt.Fprintf(os.Stderr, "  X            - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  B            - Toggle bounding box\n")
		fmt.Fprintf(os.Stderr, "  L            - Toggle per-fragment lighting\n")
		fmt.Fprintf(os.Stderr, "  R            - Reset camera\n")
		fmt.Fprintf(os.Stderr, "  Esc          - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cliFlags() config.Flags {
	return config.Flags{
		Width:       *width,
		Height:      *height,
		FPS:         *targetFPS,
		Background:  *bgColor,
		Model:       *modelPath,
		Selected:    *object,
		Ambient:     *ambient,
		PerFragment: *perFragment,
	}
}

func run() error {
	headless := *outPath != "" || *exportMesh != ""
	closeLog, err := setupLogging(headless)
	if err != nil {
		return err
	}
	defer closeLog()

	if *exportMesh != "" {
		return writeMesh(*modelPath, *exportMesh)
	}

	flags := cliFlags()
	cfg, err := config.LoadResolved(*configPath, flags)
	if err != nil {
		return err
	}
	s, err := scene.Build(cfg)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	if *outPath != "" {
		return snapshot(cfg, s)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newViewer(cfg, s, flags).run(ctx)
}

// setupLogging installs the process-wide logger. Headless runs log to
// stderr; the interactive viewer owns the terminal, so it only logs when
// -log names a file.
func setupLogging(headless bool) (func(), error) {
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}

	var w io.Writer
	closeFn := func() {}
	switch {
	case *logPath != "":
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case headless:
		w = os.Stderr
	default:
		return closeFn, nil
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	render.SetLogger(logger)
	return closeFn, nil
}

// snapshot renders the selected object once and saves it.
func snapshot(cfg config.Config, s *scene.Scene) error {
	w, h := cfg.Width, cfg.Height
	if w == 0 {
		w = 320
	}
	if h == 0 {
		h = 240
	}

	fb := render.NewFramebuffer(w, h)
	p := render.NewPipeline(fb, nil)
	p.Wireframe = *wireframe
	p.ShowBounds = *showBounds

	stats := s.Render(p, scene.NewCamera(cfg), uint32(*frameTime))
	slog.Info("frame rendered", "object", s.Selected().Name, "size", fmt.Sprintf("%dx%d", w, h), "stats", stats)

	if err := fb.Save(*outPath, *outScale); err != nil {
		return err
	}
	slog.Info("saved", "path", *outPath, "scale", *outScale)
	return nil
}

// writeMesh converts a model (or the built-in sphere when src is empty) to
// binary glTF.
func writeMesh(src, dst string) error {
	mesh := models.UVSphere(scene.SphereStacks, scene.SphereSlices)
	if src != "" {
		var err error
		if mesh, err = models.LoadNormalized(src); err != nil {
			return err
		}
	}
	if err := models.SaveGLB(mesh, dst); err != nil {
		return err
	}
	slog.Info("mesh exported", "name", mesh.Name, "triangles", mesh.TriangleCount(), "path", dst)
	return nil
}
