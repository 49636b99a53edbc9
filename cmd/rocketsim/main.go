// cmd/rocketsim/main.go
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-rocketsim/pkg/config"
	"github.com/opd-ai/go-rocketsim/pkg/engine"
	"github.com/opd-ai/go-rocketsim/pkg/entity"
	"github.com/opd-ai/go-rocketsim/pkg/input"
	"github.com/opd-ai/go-rocketsim/pkg/logging"
	"github.com/opd-ai/go-rocketsim/pkg/render"
	engorender "github.com/opd-ai/go-rocketsim/pkg/render/engo"
	"github.com/opd-ai/go-rocketsim/pkg/telemetry"
	"github.com/opd-ai/go-rocketsim/pkg/validation"
)

// maxHeadlessTicks bounds a null-renderer run that waits for every vehicle to land
const maxHeadlessTicks = 1_000_000

type options struct {
	configPath    string
	createDefault bool
	renderer      string
	width         int
	height        int
	fullscreen    bool
	cols          int
	rows          int
	fps           int
	ticks         int
	trajectory    string
}

func main() {
	opts := parseFlags()

	// Logs go to stderr so they never interleave with terminal frames.
	logger := logging.NewLoggerWithWriter(os.Stderr, logging.ParseLevel(os.Getenv(logging.LevelEnvVar)))
	ctx := logging.WithRunID(context.Background(), logging.GenerateRunID())

	if err := run(ctx, logger, opts); err != nil {
		logger.Error(ctx, "rocketsim failed", err)
		os.Exit(1)
	}
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "rocketsim.json", "Path to configuration file")
	flag.BoolVar(&o.createDefault, "default", false, "Write the default configuration file and exit")
	flag.StringVar(&o.renderer, "renderer", "terminal", "Renderer type: 'terminal', 'engo' or 'null'")
	flag.IntVar(&o.width, "width", 0, "Viewport width (overrides config)")
	flag.IntVar(&o.height, "height", 0, "Viewport height (overrides config)")
	flag.BoolVar(&o.fullscreen, "fullscreen", false, "Run in fullscreen mode (Engo only)")
	flag.IntVar(&o.cols, "cols", 80, "Terminal frame width in characters")
	flag.IntVar(&o.rows, "rows", 24, "Terminal frame height in characters")
	flag.IntVar(&o.fps, "fps", 30, "Terminal frames per second")
	flag.IntVar(&o.ticks, "ticks", 0, "Stop after this many ticks, 0 runs until interrupted or, headless, until every vehicle landed")
	flag.StringVar(&o.trajectory, "trajectory", "", "Write a CSV trajectory to this path (overrides config)")
	flag.Parse()
	return o
}

func run(ctx context.Context, logger *logging.Logger, opts options) error {
	if opts.createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), opts.configPath); err != nil {
			return logging.WrapError(err, "create default configuration %s", opts.configPath)
		}
		logger.Info(ctx, "Created default configuration file", "config_path", opts.configPath)
		return nil
	}

	cfg, err := loadConfig(ctx, logger, opts)
	if err != nil {
		return err
	}

	sim, err := engine.NewSimulation(cfg, engine.WithLogger(logger), engine.WithContext(ctx))
	if err != nil {
		return logging.WrapError(err, "create simulation")
	}

	if path := cfg.Telemetry.TrajectoryPath; path != "" {
		rec, err := telemetry.Create(path, cfg.Telemetry.SampleEvery)
		if err != nil {
			return err
		}
		rec.Attach(sim.EventBus, sim)
		defer func() {
			if err := errors.Join(rec.Err(), rec.Close()); err != nil {
				logger.Error(ctx, "Trajectory incomplete", err, "path", path)
				return
			}
			logger.Info(ctx, "Trajectory written", "path", path, "rows", rec.Rows())
		}()
	}

	vp := entity.Viewport{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height}

	switch opts.renderer {
	case "engo":
		startEngoRenderer(sim, vp, logger, opts.fullscreen)
		return nil
	case "null":
		return runHeadless(ctx, logger, sim, render.NewNullRendererWithLogger(logger, vp), opts.ticks)
	case "terminal":
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		term := render.NewTerminalRenderer(opts.cols, opts.rows, vp, os.Stdout)
		term.SetClearScreen(true)
		return runTerminal(ctx, sim, term, readKeys(ctx, os.Stdin), opts)
	default:
		return fmt.Errorf("unknown renderer %q", opts.renderer)
	}
}

// loadConfig reads the config file when it exists and applies flag overrides
func loadConfig(ctx context.Context, logger *logging.Logger, opts options) (*config.SimulationConfig, error) {
	path := opts.configPath
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		path = ""
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, logging.WrapError(err, "load configuration %s", opts.configPath)
	}

	if opts.width > 0 {
		cfg.Viewport.Width = float64(opts.width)
	}
	if opts.height > 0 {
		cfg.Viewport.Height = float64(opts.height)
	}
	if opts.trajectory != "" {
		cfg.Telemetry.TrajectoryPath = opts.trajectory
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// startEngoRenderer opens a window and blocks until it is closed
func startEngoRenderer(sim *engine.Simulation, vp entity.Viewport, logger *logging.Logger, fullscreen bool) {
	scene := engorender.NewSimulationScene(sim, vp, logger)

	opts := engo.RunOptions{
		Title:      "Go Rocketsim",
		Width:      int(vp.Width),
		Height:     int(vp.Height),
		Fullscreen: fullscreen,
		VSync:      true,
	}

	engo.Run(opts, scene)
}

// runHeadless steps the simulation at its fixed time step as fast as possible
func runHeadless(ctx context.Context, logger *logging.Logger, sim *engine.Simulation, r *render.NullRenderer, ticks int) error {
	limit := ticks
	if limit <= 0 {
		limit = maxHeadlessTicks
	}

	sim.Start()
	for i := 0; i < limit; i++ {
		sim.Step()
		sim.Render(r)
		if ticks <= 0 && allGrounded(sim.State()) {
			break
		}
	}

	logger.Info(ctx, "Headless run finished", "state", sim.Summary(), "frames", r.Frames())
	return nil
}

func allGrounded(state engine.SimulationState) bool {
	for _, v := range state.Vehicles {
		if !v.Grounded {
			return false
		}
	}
	return true
}

// runTerminal drives ticks, frames and key presses from a single loop
func runTerminal(ctx context.Context, sim *engine.Simulation, term *render.TerminalRenderer, keys <-chan string, opts options) error {
	step := time.Duration(sim.Config().Physics.TimeStep * float64(time.Second))
	tickTicker := time.NewTicker(step)
	defer tickTicker.Stop()

	fps := max(opts.fps, 1)
	frameTicker := time.NewTicker(time.Second / time.Duration(fps))
	defer frameTicker.Stop()

	help := "keys: r reset, p pause, g gravity, d drag, t thrust, a/e exhaust, q quit (then Enter)"
	sim.Start()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			if word := strings.ToLower(strings.TrimSpace(line)); word == "q" || word == "quit" {
				return nil
			}
			sim.HandleKey(input.FromTerminal(line))
		case <-tickTicker.C:
			sim.Advance()
			if opts.ticks > 0 && sim.Params.Tick >= uint64(opts.ticks) {
				return nil
			}
		case <-frameTicker.C:
			term.SetStatus(sim.Summary() + "\n" + help)
			sim.Render(term)
		}
	}
}

// readKeys forwards sanitized lines typed on r until it is closed or ctx is
// done. Blank and malformed lines are dropped.
func readKeys(ctx context.Context, r io.Reader) <-chan string {
	keys := make(chan string)
	go func() {
		defer close(keys)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if ctx.Err() != nil {
				return
			}
			line, err := validation.SanitizeCommand(scanner.Text())
			if err != nil || line == "" {
				continue
			}
			select {
			case keys <- line:
			case <-ctx.Done():
				return
			}
		}
	}()
	return keys
}
