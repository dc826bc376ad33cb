// Command termfight plays the simulation in a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"wirestrike/logging"
	"wirestrike/sim"
	"wirestrike/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "termfight:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML simulation config")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed of the first run")
	enemies := flag.Int("enemies", 20, "enemy ships per run (0 uses the config value)")
	logFile := flag.String("log-file", "termfight.log", "log destination; the terminal itself is the display")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger, err := logging.New(*logLevel, *logFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := sim.DefaultConfig()
	if *configPath != "" {
		if cfg, err = sim.LoadConfigFile(*configPath); err != nil {
			return err
		}
	}

	if *enemies == 0 {
		*enemies = cfg.EnemyCount
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	// terminal cells are roughly twice as tall as wide
	cols, rows := screen.Size()
	cfg.ProjectionScale = float64(min(cols, 2*rows))

	s, err := sim.New(cfg, sim.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := s.Initialize(*seed, *enemies); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := term.NewApp(screen, s, *seed, *enemies, logger)
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("terminal app stopped", zap.Error(err))
		return err
	}
	return nil
}
