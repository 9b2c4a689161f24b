package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genepool/config"
	"github.com/pthm-cable/genepool/game"
	"github.com/pthm-cable/genepool/telemetry"
	"github.com/pthm-cable/genepool/tui"
	"github.com/pthm-cable/genepool/view"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	terminal := flag.Bool("tui", false, "Draw in the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")

	flag.Parse()

	cfg, err := setup(*configPath, *terminal, os.Stdout, os.Stderr)
	if err != nil {
		os.Exit(1)
	}

	opts := game.Options{
		Seed:           *seed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
	}

	switch {
	case *headless:
		err = runHeadless(cfg, opts, *maxTicks)
	case *terminal:
		err = runTerminal(cfg, opts, *maxTicks)
	default:
		err = runWindow(cfg, opts, *maxTicks)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// setup installs the JSON logger, then loads the config, so a config error
// is already reported in JSON. The terminal view owns stdout, so its logs go
// to stderr.
func setup(configPath string, terminal bool, stdout, stderr io.Writer) (*config.Config, error) {
	logOut := stdout
	if terminal {
		logOut = stderr
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return nil, err
	}
	return cfg, nil
}

// runHeadless steps the simulation as fast as possible, without frame pacing.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks int64) error {
	g, err := game.NewGame(cfg, opts)
	if err != nil {
		return err
	}
	defer closeGame(g)

	slog.Info("starting headless simulation",
		"seed", g.Seed(),
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for ctx.Err() == nil {
		g.UpdateHeadless()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick(), "population", g.Population())
			return nil
		}
	}
	slog.Info("interrupted", "tick", g.Tick(), "population", g.Population())
	return nil
}

// runTerminal draws the population as a character grid.
func runTerminal(cfg *config.Config, opts game.Options, maxTicks int64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		return err
	}
	defer closeGame(g)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if maxTicks > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		g.AddStatsSink(game.StatsFunc(func(_ telemetry.Sample, _ game.HistoryView) {
			if g.Tick() >= maxTicks {
				cancel()
			}
		}))
	}

	// Refresh at the tick rate so every due tick gets a frame
	term := tui.New(screen, g.Zones(), cfg.Derived.WorldW, cfg.Derived.WorldH)
	if err := tui.Run(ctx, term, g, g.TickInterval()); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// runWindow opens the raylib window.
func runWindow(cfg *config.Config, opts game.Options, maxTicks int64) error {
	width, height := view.WindowSize(cfg.Screen.Width, cfg.Screen.Height)
	rl.InitWindow(width, height, "Genepool")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		return err
	}
	defer closeGame(g)

	view.New(g).Run(maxTicks)
	return nil
}

func closeGame(g *game.Game) {
	if err := g.Close(); err != nil {
		slog.Error("failed to close game output", "error", err)
	}
}
