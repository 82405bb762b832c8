// Command blockfall-stress drives a bot-controlled game as fast as possible
// and reports update timings.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/autoplay"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/tetris"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Uint64("seed", 1, "RNG seed for pieces and bot")
	frameTime := flag.Duration("frame-time", time.Second/60, "Simulated time advanced per update.")
	botEvery := flag.Float64("bot-every", 0.05, "Simulated seconds between bot actions.")
	csvPath := flag.String("csv", "", "Write per-system timings to this CSV file.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	slog.Info("starting stress test", "duration", *duration, "seed", *seed)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	game, err := tetris.New(cfg.Tetris(), tetris.WithSeed(*seed), tetris.WithLogger(logger))
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	driver := autoplay.NewDriver(game, *seed, *botEvery)

	report := &Report{
		Duration:       *duration,
		Seed:           *seed,
		Width:          cfg.Board.Width,
		Height:         cfg.Board.Height,
		FrameTime:      *frameTime,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	dt := frameTime.Seconds()
	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			driver.Step(dt)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = int64(len(report.UpdateTime.Samples))
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Game = game.Stats()
	report.Score = game.Score()
	report.ActionsSent, report.ActionsConsumed = driver.Bot.Actions()

	slog.Info("simulation finished", "updates", report.TotalUpdates)

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		slog.Error("failed to generate report", "error", err)
		os.Exit(1)
	}
	fmt.Println("--- End of Report ---")

	if *csvPath != "" {
		records := systemRecords("game", game.SchedulerStats())
		records = append(records, systemRecords("driver", driver.Scheduler.GetStats())...)
		if err := writeCSV(*csvPath, records); err != nil {
			slog.Error("failed to write csv", "path", *csvPath, "error", err)
			os.Exit(1)
		}
		slog.Info("wrote system timings", "path", *csvPath, "rows", len(records))
	}
}
