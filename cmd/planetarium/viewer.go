package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/planetarium/pkg/config"
	"github.com/taigrr/planetarium/pkg/math3d"
	"github.com/taigrr/planetarium/pkg/render"
	"github.com/taigrr/planetarium/pkg/scene"
)

// Input impulses per key press. Orbit and zoom go through the camera
// springs so held keys accelerate smoothly and releases coast to a stop.
const (
	orbitImpulse = 0.02
	zoomImpulse  = 0.15
	panStep      = 0.1
)

// viewer is the interactive terminal front end. Everything here runs on
// the render goroutine; input and reloads arrive over channels.
type viewer struct {
	cfg   config.Config
	flags config.Flags
	scene *scene.Scene
	cam   *render.Camera

	term       *uv.Terminal
	fb         *render.Framebuffer
	pipeline   *render.Pipeline
	cols, rows int
	frame      uint32
}

func newViewer(cfg config.Config, s *scene.Scene, flags config.Flags) *viewer {
	return &viewer{
		cfg:   cfg,
		flags: flags,
		scene: s,
		cam:   scene.NewCamera(cfg),
	}
}

func (v *viewer) run(ctx context.Context) error {
	v.term = uv.DefaultTerminal()

	cols, rows, err := v.term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := v.term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	v.term.EnterAltScreen()
	v.term.HideCursor()
	defer func() {
		v.term.ExitAltScreen()
		v.term.ShowCursor()
		v.term.Shutdown(context.Background())
	}()

	v.fb = render.NewFramebuffer(1, 1)
	v.pipeline = render.NewPipeline(v.fb, nil)
	v.pipeline.Wireframe = *wireframe
	v.pipeline.ShowBounds = *showBounds
	v.resize(cols, rows)

	var (
		updates <-chan config.Config
		errs    <-chan error
	)
	if *configPath != "" {
		w, err := config.Watch(ctx, *configPath, v.flags)
		if err != nil {
			slog.Warn("config watch disabled", "err", err)
		} else {
			updates, errs = w.Updates(), w.Errors()
		}
	}

	slog.Info("viewer started", "objects", len(v.scene.Objects), "cols", cols, "rows", rows, "fps", v.cfg.FPS)

	ticker := time.NewTicker(time.Second / time.Duration(v.cfg.FPS))
	defer ticker.Stop()
	events := v.term.Events()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if v.handle(ev) {
				return nil
			}

		case cfg, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			v.reload(cfg)

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			slog.Warn("config reload failed", "err", err)

		case <-ticker.C:
			if err := v.draw(); err != nil {
				return err
			}
		}
	}
}

func (v *viewer) draw() error {
	v.cam.Update()
	stats := v.scene.Render(v.pipeline, v.cam, v.frame)
	v.frame++
	slog.Debug("frame", "n", v.frame, "stats", stats)

	v.fb.Draw(v.term, uv.Rect(0, 0, v.cols, v.rows))
	if err := v.term.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// resize fits the framebuffer to the terminal unless the config fixes a
// size.
func (v *viewer) resize(cols, rows int) {
	v.cols, v.rows = cols, rows
	v.term.Erase()
	v.term.Resize(cols, rows)

	w, h := render.FramebufferSize(cols, rows)
	if v.cfg.Width > 0 {
		w = min(w, v.cfg.Width)
	}
	if v.cfg.Height > 0 {
		h = min(h, v.cfg.Height)
	}
	v.pipeline.Resize(w, h)
}

// reload swaps in a rebuilt scene, keeping the current selection when the
// object still exists.
func (v *viewer) reload(cfg config.Config) {
	s, err := scene.Build(cfg)
	if err != nil {
		slog.Warn("config reload rejected", "err", err)
		return
	}
	if cur := v.scene.Selected(); cur != nil {
		s.SelectID(cur.ID)
	}
	v.scene = s
	v.cfg = cfg
	slog.Info("config reloaded", "objects", len(s.Objects))
}

// handle applies one terminal event and reports whether to quit.
func (v *viewer) handle(ev uv.Event) bool {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.resize(ev.Width, ev.Height)

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c"):
			return true
		case ev.MatchString("1", "2", "3", "4", "5", "6", "7"):
			for n := 1; n <= 7; n++ {
				if ev.MatchString(strconv.Itoa(n)) && v.scene.Select(n-1) {
					slog.Info("object selected", "name", v.scene.Selected().Name)
				}
			}
		case ev.MatchString("left"):
			v.cam.Spin(-orbitImpulse, 0)
		case ev.MatchString("right"):
			v.cam.Spin(orbitImpulse, 0)
		case ev.MatchString("up", "w"):
			v.cam.Spin(0, orbitImpulse)
		case ev.MatchString("down", "s"):
			v.cam.Spin(0, -orbitImpulse)
		case ev.MatchString("a"):
			v.cam.MoveCenter(math3d.V3(-panStep, 0, 0))
		case ev.MatchString("d"):
			v.cam.MoveCenter(math3d.V3(panStep, 0, 0))
		case ev.MatchString("q"):
			v.cam.MoveCenter(math3d.V3(0, -panStep, 0))
		case ev.MatchString("e"):
			v.cam.MoveCenter(math3d.V3(0, panStep, 0))
		case ev.MatchString("+", "="):
			v.cam.Push(zoomImpulse)
		case ev.MatchString("-", "_"):
			v.cam.Push(-zoomImpulse)
		case ev.MatchString("x"):
			v.pipeline.Wireframe = !v.pipeline.Wireframe
		case ev.MatchString("b"):
			v.pipeline.ShowBounds = !v.pipeline.ShowBounds
		case ev.MatchString("l"):
			if v.scene.Lighting.Mode == render.LightingFlat {
				v.scene.Lighting.Mode = render.LightingPerFragment
			} else {
				v.scene.Lighting.Mode = render.LightingFlat
			}
		case ev.MatchString("r"):
			v.cam = scene.NewCamera(v.cfg)
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			v.cam.Push(zoomImpulse)
		case uv.MouseWheelDown:
			v.cam.Push(-zoomImpulse)
		}
	}
	return false
}
