package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"wirestrike/sim"
)

// Game adapts a Simulation to ebiten's update/draw loop
type Game struct {
	sim      *sim.Simulation
	renderer *Renderer
	input    *KeyboardInput
	config   Config
	debug    DebugState
	log      *zap.Logger

	seed    int64
	enemies int

	// Performance profiling
	profiler      *Profiler
	gameStartTime time.Time
}

// NewGame creates the simulation and initializes it with seed and enemies
func NewGame(config Config, simConfig sim.Config, seed int64, enemies int, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	simConfig.ProjectionScale = config.ProjectionScale()

	s, err := sim.New(simConfig, sim.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := s.Initialize(seed, enemies); err != nil {
		return nil, err
	}

	g := &Game{
		sim:           s,
		renderer:      NewRenderer(config.ScreenWidth, config.ScreenHeight),
		input:         NewKeyboardInput(nil),
		config:        config,
		debug:         DebugState{ShowOverlay: config.ShowDebug},
		log:           log,
		seed:          seed,
		enemies:       enemies,
		gameStartTime: time.Now(),
	}
	if config.ProfileDir != "" {
		g.profiler, err = NewProfiler(config.ProfileDir, log)
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

// restart starts a fresh run with the next seed
func (g *Game) restart() error {
	g.seed++
	if err := g.sim.Initialize(g.seed, g.enemies); err != nil {
		return fmt.Errorf("restart: %w", err)
	}
	return nil
}

// startRequested reports a click or Enter press
func startRequested() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug.ShowOverlay = !g.debug.ShowOverlay
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	switch phase := g.sim.Phase(); {
	case phase == sim.PhaseAwaitingStart:
		if startRequested() {
			if err := g.sim.Start(); err != nil {
				return err
			}
		}
	case phase == sim.PhaseRunning:
		st := g.sim.Tick(g.input)
		if st.Phase.Terminal() {
			g.log.Info("run finished",
				zap.Stringer("phase", st.Phase),
				zap.Int("kills", st.Kills),
				zap.Uint64("ticks", st.Tick),
			)
		}
	case phase.Terminal():
		if startRequested() {
			if err := g.restart(); err != nil {
				return err
			}
		}
	}

	g.watchTPS()
	return nil
}

// watchTPS captures a profile when the tick rate sags after warm-up
func (g *Game) watchTPS() {
	if g.profiler == nil || time.Since(g.gameStartTime) < g.config.Warmup {
		return
	}
	tps := ebiten.ActualTPS()
	if tps >= g.config.MinTPS {
		return
	}
	reason := fmt.Sprintf("tps%.0f-entities%d", tps, g.sim.World().Len())
	if err := g.profiler.CaptureProfile(reason); err == nil {
		g.log.Warn("tick rate dropped, capturing profile", zap.Float64("tps", tps))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Bind(screen)
	g.sim.Render(g.renderer)

	if g.debug.ShowOverlay {
		for i, line := range debugLines(g.sim, ebiten.ActualTPS()) {
			ebitenutil.DebugPrintAt(screen, line, g.config.ScreenWidth-360, 10+i*16)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.ScreenWidth, g.config.ScreenHeight
}
