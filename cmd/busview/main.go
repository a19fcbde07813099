package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"bus-viewer/config"
	"bus-viewer/hud"
	"bus-viewer/input"
	"bus-viewer/internal/opengl"
	"bus-viewer/logging"
	"bus-viewer/renderer"
	"bus-viewer/sim"
	"bus-viewer/window"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "busview: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("busview", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "", "config file (json, yaml or toml)")
	logPath := flags.String("log-file", "", "also write logs to this file")
	flags.String("log-level", "info", "trace, debug, info, warn or error")
	flags.Int("viewports", 1, "initial viewport layout, 1 or 4")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := viper.BindPFlag("logLevel", flags.Lookup("log-level")); err != nil {
		return fmt.Errorf("bind flag: %w", err)
	}
	if err := viper.BindPFlag("viewports", flags.Lookup("viewports")); err != nil {
		return fmt.Errorf("bind flag: %w", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	var logFile io.Writer
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logFile = f
	}
	log := logging.New(os.Stdout, logFile, cfg.LogLevel)
	log.Info().Str("config", viper.ConfigFileUsed()).Int("viewports", cfg.Viewports).Msg("starting bus viewer")

	winCfg := window.DefaultConfig()
	winCfg.Width = cfg.Window.Width
	winCfg.Height = cfg.Window.Height
	winCfg.Title = cfg.Window.Title
	winCfg.VSync = cfg.Window.VSync
	winCfg.Fullscreen = cfg.Window.Fullscreen
	win, err := window.New(winCfg)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Destroy()

	backend, err := opengl.NewRenderer(log)
	if err != nil {
		return fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}
	fbWidth, fbHeight := win.GetFramebufferSize()
	engine := renderer.NewRenderEngine(backend, win, fbWidth, fbHeight)
	engine.FrustumCulling = cfg.Render.FrustumCulling
	defer engine.Destroy()

	win.OnResize(func(width, height int) {
		engine.Resize(width, height)
		log.Debug().Int("width", width).Int("height", height).Msg("framebuffer resized")
	})

	state := sim.New(cfg.SimSettings(), log)
	tracker := input.NewTracker(win, defaultBindings())
	overlay := hud.New()

	fmt.Println("===========================================")
	fmt.Println("  Bus Viewer")
	fmt.Println("===========================================")
	for _, line := range controlsHelp {
		fmt.Println(line)
	}

	last := window.Time()
	fpsLast := last
	frames := 0
	fps := 0.0
	renderFailed := false

	for !win.ShouldClose() {
		win.PollEvents()

		now := window.Time()
		dt := float32(now - last)
		last = now

		state.Step(dt, tracker.Poll())
		if state.Quit {
			win.SetShouldClose(true)
			continue
		}

		if err := engine.RenderFrame(state); err != nil && !renderFailed {
			log.Error().Err(err).Msg("render frame")
			renderFailed = true
		}
		if state.ShowHUD {
			overlay.Update(state, fps)
			engine.DrawOverlay(overlay.Render(engine.Size()))
		}
		engine.Present()

		frames++
		if elapsed := now - fpsLast; elapsed >= 1 {
			fps = float64(frames) / elapsed
			win.SetTitle(fmt.Sprintf("%s | FPS: %.0f | %s camera", cfg.Window.Title, fps, state.Camera.Mode()))
			regions, draws, culled := engine.DrawStats()
			log.Debug().Float64("fps", fps).Int("regions", regions).Int("draws", draws).Int("culled", culled).Msg("frame stats")
			frames = 0
			fpsLast = now
		}
	}

	log.Info().Uint64("frames", state.Frames).Float64("elapsed", state.Elapsed).Msg("shutting down")
	return nil
}
