package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/oxy-viewer/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	assets := flag.String("assets", "", "asset directory or http(s) base URL (overrides config)")
	modelName := flag.String("model", "", "model name; <name>.mtl and <name>.obj are loaded (overrides config)")
	width := flag.Int("width", 0, "initial window width (overrides config)")
	height := flag.Int("height", 0, "initial window height (overrides config)")
	profile := flag.Bool("profile", false, "log FPS, draw count and heap statistics once per second")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[Viewer] %v", err)
	}
	applyFlags(&cfg, *assets, *modelName, *width, *height, *profile)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[Viewer] invalid configuration: %v", err)
	}

	// ── Window ──────────────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title+" - "+cfg.Assets.Model),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		log.Fatalf("[Viewer] failed to open window: %v", err)
	}
	defer win.Close()

	// ── Renderer ────────────────────────────────────────────────────────
	r, err := renderer.NewRenderer(win,
		renderer.WithPresentMode(presentMode(cfg.Render.PresentMode)),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Render.MSAA)),
		renderer.WithForceSoftwareRenderer(cfg.Render.ForceSoftware),
	)
	if err != nil {
		log.Fatalf("[Viewer] failed to create renderer: %v", err)
	}
	defer r.Release()

	// ── Loader ──────────────────────────────────────────────────────────
	ld := loader.NewLoader(loader.BackendTypeOBJ,
		loader.WithSource(loader.NewSource(cfg.Assets.Root)),
		loader.WithProgress(loader.LogProgress()),
		loader.WithProgressBar(os.Stderr),
	)

	// ── Viewer ──────────────────────────────────────────────────────────
	v := engine.NewViewer(win, r, ld,
		engine.WithViewerProfiling(cfg.Profile),
		engine.WithLoopOptions(engine.WithFrameLimit(cfg.Render.FrameLimit)),
		engine.WithLoadCallback(func(m model.Model, err error) {
			if err != nil {
				log.Printf("[Viewer] %s could not be loaded; showing the empty scene", cfg.Assets.Model)
				return
			}
			b := m.Bounds()
			log.Printf("[Viewer] %s bounds: min %v max %v", m.Name(), b.Min, b.Max)
		}),
	)
	defer v.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := v.LoadModel(ctx, cfg.Assets.Model); err != nil {
		log.Printf("[Viewer] load request refused: %v", err)
	}

	if err := v.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("[Viewer] render loop stopped: %v", err)
	}
	log.Printf("[Viewer] shutting down after %d frames", v.Loop().Frames())
}

// applyFlags overrides cfg with every flag that was set to a non-zero value.
func applyFlags(cfg *config.Config, assets, modelName string, width, height int, profile bool) {
	if assets != "" {
		cfg.Assets.Root = assets
	}
	if modelName != "" {
		cfg.Assets.Model = modelName
	}
	if width > 0 {
		cfg.Window.Width = width
	}
	if height > 0 {
		cfg.Window.Height = height
	}
	if profile {
		cfg.Profile = true
	}
}

func presentMode(mode string) renderer.PresentMode {
	if mode == config.PresentModeUncapped {
		return renderer.PresentModeUncapped
	}
	return renderer.PresentModeVSync
}
