package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"wirestrike/sim"
)

// App drives a Simulation on a terminal screen
type App struct {
	screen   tcell.Screen
	sim      *sim.Simulation
	surface  *Surface
	keyboard *Keyboard
	log      *zap.Logger

	seed    int64
	enemies int

	// FrameTime is the interval between ticks
	FrameTime time.Duration
}

// NewApp creates an app for an initialized simulation. seed and enemies are
// reused when the player restarts after a finished run.
func NewApp(screen tcell.Screen, s *sim.Simulation, seed int64, enemies int, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		screen:    screen,
		sim:       s,
		surface:   NewSurface(screen),
		keyboard:  NewKeyboard(nil),
		log:       log,
		seed:      seed,
		enemies:   enemies,
		FrameTime: 16 * time.Millisecond,
	}
}

// Keyboard exposes the app's input state
func (a *App) Keyboard() *Keyboard { return a.keyboard }

// HandleEvent processes one terminal event and reports whether the app
// should keep running.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyEnter {
			a.startOrRestart()
			return true
		}
		a.keyboard.HandleKey(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) startOrRestart() {
	switch {
	case a.sim.Phase() == sim.PhaseAwaitingStart:
		if err := a.sim.Start(); err != nil {
			a.log.Error("start failed", zap.Error(err))
		}
	case a.sim.Phase().Terminal():
		a.seed++
		if err := a.sim.Initialize(a.seed, a.enemies); err != nil {
			a.log.Error("restart failed", zap.Error(err))
			return
		}
		a.keyboard.Release()
	}
}

// Step advances one frame: tick while running, then draw
func (a *App) Step() sim.Status {
	st := a.sim.Status()
	if st.Phase == sim.PhaseRunning {
		st = a.sim.Tick(a.keyboard)
		if st.Phase.Terminal() {
			a.log.Info("run finished",
				zap.Stringer("phase", st.Phase),
				zap.Int("kills", st.Kills),
				zap.Uint64("ticks", st.Tick),
			)
		}
	}
	a.keyboard.Advance()
	a.sim.Render(a.surface)
	a.surface.Show()
	return st
}

// Run processes events and frames until the player quits or ctx is done
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		defer close(events)
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(a.FrameTime)
	defer ticker.Stop()

	a.Step()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.Step()
		}
	}
}
