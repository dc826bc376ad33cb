package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"wirestrike/game"
	"wirestrike/logging"
	"wirestrike/sim"
)

func main() {
	config := game.DefaultConfig()

	configPath := flag.String("config", "", "YAML simulation config (defaults apply when empty)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed of the first run")
	enemies := flag.Int("enemies", 0, "enemy ships per run (0 uses the config value)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	flag.IntVar(&config.ScreenWidth, "width", config.ScreenWidth, "window width")
	flag.IntVar(&config.ScreenHeight, "height", config.ScreenHeight, "window height")
	flag.BoolVar(&config.ShowDebug, "debug", config.ShowDebug, "show the debug overlay at start (toggle with F1)")
	flag.StringVar(&config.ProfileDir, "profile-dir", "", "capture CPU profiles here when the tick rate drops")
	flag.Parse()

	logger, err := logging.New(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	simConfig := sim.DefaultConfig()
	if *configPath != "" {
		simConfig, err = sim.LoadConfigFile(*configPath)
		if err != nil {
			logger.Fatal("load config", zap.Error(err))
		}
	}

	if *enemies == 0 {
		*enemies = simConfig.EnemyCount
	}

	g, err := game.NewGame(config, simConfig, *seed, *enemies, logger)
	if err != nil {
		logger.Fatal("create game", zap.Error(err))
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle(config.Title)

	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("run game", zap.Error(err))
	}
}
