// Command headless plays batches of autopiloted runs without a display and
// logs how each one ended.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wirestrike/logging"
	"wirestrike/sim"
)

type result struct {
	seed     int64
	status   sim.Status
	checksum uint64
}

func main() {
	runs := flag.Int("runs", 4, "number of runs")
	seed := flag.Int64("seed", 1, "seed of the first run; run i uses seed+i")
	enemies := flag.Int("enemies", 0, "enemy ships per run (0 uses the config value)")
	ticks := flag.Int("ticks", 20000, "tick limit per run")
	configPath := flag.String("config", "", "YAML simulation config")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger, err := logging.New(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfg := sim.DefaultConfig()
	if *configPath != "" {
		if cfg, err = sim.LoadConfigFile(*configPath); err != nil {
			logger.Fatal("load config", zap.Error(err))
		}
	}

	if *enemies == 0 {
		*enemies = cfg.EnemyCount
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := make([]result, *runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range *runs {
		runSeed := *seed + int64(i)
		g.Go(func() error {
			st, sum, err := play(ctx, cfg, runSeed, *enemies, *ticks, logger)
			if err != nil {
				return err
			}
			results[i] = result{seed: runSeed, status: st, checksum: sum}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal("headless runs failed", zap.Error(err))
	}

	won := 0
	for _, r := range results {
		if r.status.Phase == sim.PhaseWon {
			won++
		}
		logger.Info("run result",
			zap.Int64("seed", r.seed),
			zap.Stringer("outcome", r.status.Phase),
			zap.Int("kills", r.status.Kills),
			zap.Uint64("ticks", r.status.Tick),
			zap.Uint64("checksum", r.checksum),
		)
	}
	logger.Info("batch finished", zap.Int("runs", len(results)), zap.Int("won", won))
}

// play runs one autopiloted simulation until it ends, the tick limit is hit
// or ctx is cancelled.
func play(ctx context.Context, cfg sim.Config, seed int64, enemies, limit int, logger *zap.Logger) (sim.Status, uint64, error) {
	s, err := sim.New(cfg, sim.WithLogger(logger))
	if err != nil {
		return sim.Status{}, 0, err
	}
	if err := s.Initialize(seed, enemies); err != nil {
		return sim.Status{}, 0, err
	}
	if err := s.Start(); err != nil {
		return sim.Status{}, 0, err
	}

	pilot := sim.NewAutopilot(s)
	st := s.Status()
	for i := 0; i < limit && !st.Phase.Terminal(); i++ {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return st, 0, err
			}
		}
		pilot.Update()
		st = s.Tick(pilot)
	}
	return st, s.Checksum(), nil
}
