// Command blockfall plays the falling block puzzle in a window, or drives it
// with a bot when run headless.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/blockfall/autoplay"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/tetris"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	headless := flag.Bool("headless", false, "Run without graphics, driven by a bot")
	duration := flag.Duration("duration", 0, "Stop a headless run after this long (0 = until interrupted)")
	debugUI := flag.Bool("debug-ui", false, "Show the ImGui debug overlay")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logJSON := flag.Bool("log-json", false, "Log as JSON instead of text")
	flag.Parse()

	logger, err := newLogger(os.Stderr, *logLevel, *logJSON)
	if err != nil {
		slog.Error("invalid log level", "error", err)
		os.Exit(2)
	}
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	game, err := tetris.New(cfg.Tetris(), tetris.WithSeed(rngSeed), tetris.WithLogger(logger))
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}

	if *headless {
		runHeadless(game, rngSeed, cfg.Window.TPS, *duration)
		return
	}

	ebiten.SetTPS(cfg.Window.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	app := newApp(game, cfg, *debugUI)
	if err := ebiten.RunGame(app); err != nil {
		slog.Error("game exited with error", "error", err)
		os.Exit(1)
	}
	slog.Info("bye", "score", game.Score())
}

func runHeadless(game *tetris.Game, seed uint64, tps int, duration time.Duration) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	slog.Info("starting headless run", "seed", seed, "tps", tps, "duration", duration)

	driver := autoplay.NewDriver(game, seed, botInterval)
	driver.Run(ctx, time.Second/time.Duration(tps))

	stats := game.Stats()
	sent, consumed := driver.Bot.Actions()
	slog.Info("headless run finished",
		"score", game.Score(),
		"ticks", stats.Ticks,
		"locks", stats.Locks,
		"rows_cleared", stats.RowsCleared,
		"resets", stats.Resets,
		"actions_sent", sent,
		"actions_consumed", consumed,
	)
}

// botInterval is how often, in simulated seconds, the headless bot acts.
const botInterval = 0.15
