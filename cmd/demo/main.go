package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"daynight-engine/config"
	"daynight-engine/core"
	"daynight-engine/cycle"
	"daynight-engine/daynight"
	"daynight-engine/editor"
	dnio "daynight-engine/io"
	"daynight-engine/logging"
	"daynight-engine/opengl"
	"daynight-engine/profile"
	"daynight-engine/scene"
)

const fovY = 1.0472 // 60 degrees

func main() {
	configPath := flag.String("config", "", "path to the YAML config (default $DAYNIGHT_CONFIG or "+config.DefaultPath+")")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log.Format, cfg.Log.Level)

	if err := run(cfg, logger); err != nil {
		logger.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	p, err := loadProfile(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Profile %q: %d keyframes, %dh cycle, sky %s\n", p.Name, len(p.Keyframes), p.CycleHours, p.SkyMode)

	s := scene.NewScene()
	if cfg.Anchor.Scene != "" {
		anchor, err := scene.LoadAnchor(cfg.Anchor.Scene, cfg.Anchor.Node)
		if err != nil {
			return err
		}
		s.SetAnchor(anchor)
		c := s.Anchor.Compass()
		fmt.Printf("Anchor %q: north (%.2f, %.2f, %.2f)\n", anchor.Name, c.North.X, c.North.Y, c.North.Z)
	}

	// Show the editor preview state until the first tick retargets.
	if k := editor.PreviewKeyframe(p); k != nil {
		s.Sun.SetColor(k.LightColor)
		s.Sun.SetIntensity(k.LightIntensity)
	}

	window, err := core.NewWindow(core.WindowConfig{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Title:     cfg.Window.Title,
		Resizable: true,
		VSync:     cfg.Window.VSync,
	})
	if err != nil {
		return err
	}
	defer window.Destroy()

	sky, err := opengl.NewSkyRenderer()
	if err != nil {
		return err
	}
	defer sky.Destroy()

	ctrl := daynight.New(daynight.Options{
		Profile:   p,
		StartTime: cfg.Cycle.StartTime,
		Light:     s.Sun,
		Sky:       s.Sky,
		Anchor:    s.Anchor,
		LightRate: cfg.Cycle.LightRate,
		SkyRate:   cfg.Cycle.SkyRate,
		Tolerance: cfg.Cycle.Tolerance,
		Logger:    logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var reloads <-chan *profile.Profile
	if cfg.Cycle.Watch {
		w, err := dnio.WatchProfile(ctx, cfg.Cycle.Profile, logger)
		if err != nil {
			return err
		}
		reloads = w.Profiles
	}

	fmt.Println("Space=pause  R=restart  Up/Down=speed  Esc=quit")

	var (
		playback    = NewPlayback()
		overlay     DebugOverlay
		keys        = map[int]bool{}
		lastFrame   = window.Time()
		lastTitle   = time.Now()
		tickFailing bool
	)
	pressed := func(key int) bool {
		down := window.IsKeyPressed(key)
		was := keys[key]
		keys[key] = down
		return down && !was
	}

	for !window.ShouldClose() {
		window.PollEvents()
		now := window.Time()
		dt := now - lastFrame
		lastFrame = now

		if window.IsKeyPressed(core.KeyEscape) {
			break
		}
		if pressed(core.KeySpace) {
			playback.Toggle()
		}
		if pressed(core.KeyR) {
			playback.Restart()
		}
		if pressed(core.KeyUp) {
			playback.Faster()
		}
		if pressed(core.KeyDown) {
			playback.Slower()
		}

		select {
		case next, ok := <-reloads:
			if !ok {
				break
			}
			if err := placeSolar(cfg, next, time.Now()); err != nil {
				logger.Warn("reload skipped", "profile", next.Name, "error", err)
				break
			}
			ctrl.SetProfile(next)
			fmt.Printf("[Reload] %q: %d keyframes\n", next.Name, len(next.Keyframes))
		default:
		}

		elapsed, delta := playback.Advance(dt)
		if err := ctrl.AdvanceAndApply(elapsed, delta); err != nil {
			// The scene keeps its last state; report an empty profile once.
			if !tickFailing || !errors.Is(err, cycle.ErrNoKeyframes) {
				logger.Warn("tick failed", "error", err)
			}
			tickFailing = true
		} else {
			tickFailing = false
		}

		width, height := window.GetFramebufferSize()
		sky.SetViewport(width, height)
		u := opengl.UniformsFor(s.Sky, s.Sun)
		sky.BeginFrame(u.ClearColor())
		if width > 0 && height > 0 {
			sky.Draw(u, opengl.ViewFromTransform(s.Anchor.Transform, fovY, float32(width)/float32(height)))
		}
		window.SwapBuffers()

		if time.Since(lastTitle) >= time.Second {
			lastTitle = time.Now()
			status := "running"
			if !playback.Active {
				status = "PAUSED"
			}
			window.SetTitle(fmt.Sprintf("%s | %s | x%g %s", cfg.Window.Title, ctrl.FormattedTime(), playback.Speed, status))

			overlay.Clear()
			overlay.AddLine("Time: %s (%s)  speed x%g  %s", ctrl.FormattedTime(), editor.TimeLabel(ctrl.TimeOfDay()), playback.Speed, status)
			if k := ctrl.ActiveKeyframe(); k != nil {
				overlay.AddLine("Keyframe: %q  converged=%v  light runs=%d  sky runs=%d", k.Name, ctrl.Converged(), ctrl.LightRuns(), ctrl.SkyRuns())
			}
			for _, miss := range ctrl.SkyMissing() {
				overlay.AddLine("Skipped: %v", miss)
			}
			fmt.Print(overlay.GetText())
		}
	}

	fmt.Println("Exiting...")
	return nil
}
