package sim

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Phase is the state of a simulation run
type Phase int

const (
	PhaseAwaitingStart Phase = iota
	PhaseRunning
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingStart:
		return "awaiting-start"
	case PhaseRunning:
		return "running"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Terminal reports whether the run is over
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// Status is returned by every tick
type Status struct {
	Phase Phase
	Kills int
	Tick  uint64
}

// Option configures a Simulation
type Option func(*Simulation)

// WithLogger sets the logger; the default discards everything
func WithLogger(l *zap.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.baseLog = l
		}
	}
}

// WithRand overrides the random source Initialize would derive from its seed
func WithRand(r *rand.Rand) Option {
	return func(s *Simulation) {
		s.fixedRand = r
	}
}

// Simulation owns one run: the world, the player's velocity buffer, counters
// and the random source. Nothing is shared between simulations, so separate
// instances may run on separate goroutines. A single Simulation is not safe
// for concurrent use.
type Simulation struct {
	cfg Config

	baseLog   *zap.Logger
	log       *zap.Logger
	fixedRand *rand.Rand
	rng       *rand.Rand
	runID     uuid.UUID
	seed      int64

	world      *World
	proj       Projector
	controller *Controller
	steering   *Steering
	resolver   *Resolver
	behaviors  behaviorPicker

	initialized  bool
	phase        Phase
	tick         uint64
	kills        int
	initialShips int
	cooldown     int
}

// New validates cfg and returns an uninitialized simulation
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	picker, err := newBehaviorPicker(cfg.BehaviorMix)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:       cfg,
		baseLog:   zap.NewNop(),
		world:     NewWorld(),
		proj:      NewProjector(cfg.ProjectionScale, cfg.RenderDistance),
		behaviors: picker,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.baseLog
	return s, nil
}

// Initialize populates a fresh world from seed and enters awaiting-start.
// A non-positive enemyCount is rejected.
func (s *Simulation) Initialize(seed int64, enemyCount int) error {
	if enemyCount <= 0 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidConfig, ErrInvalidEnemyCount, enemyCount)
	}

	s.seed = seed
	s.rng = s.fixedRand
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(seed))
	}
	s.runID = uuid.New()
	s.log = s.baseLog.With(zap.String("run", s.runID.String()), zap.Int64("seed", seed))

	s.world = NewWorld()
	s.controller = NewController(s.cfg)
	s.steering = NewSteering(s.cfg, s.rng)
	s.resolver = NewResolver(s.cfg)
	s.phase = PhaseAwaitingStart
	s.tick = 0
	s.kills = 0
	s.cooldown = 0
	s.initialShips = enemyCount

	span := s.cfg.WorldSpan
	for i := 0; i < s.cfg.StarCount; i++ {
		s.world.Add(NewStar(s.randomPoint(span)))
	}
	for i := 0; i < enemyCount; i++ {
		s.world.Add(s.spawnShip(span))
	}
	s.world.Commit()
	s.initialized = true

	s.log.Info("simulation initialized",
		zap.Int("ships", enemyCount),
		zap.Int("stars", s.cfg.StarCount),
	)
	return nil
}

func (s *Simulation) randomPoint(span float64) Point {
	return NewPoint(
		(s.rng.Float64()-0.5)*span,
		(s.rng.Float64()-0.5)*span,
		(s.rng.Float64()-0.5)*span,
	)
}

// spawnShip places a randomly oriented ship outside the spawn clearance
func (s *Simulation) spawnShip(span float64) *Ship {
	pos := s.randomPoint(span)
	for pos.Vec().Len() < s.cfg.SpawnClearance {
		pos = s.randomPoint(span)
	}
	ship := NewShip(Point{}, s.cfg.ShipSize, s.behaviors.pick(s.rng))
	ship.Rotate((s.rng.Float64()-0.5)*span, (s.rng.Float64()-0.5)*span, (s.rng.Float64()-0.5)*span)
	ship.Translate(pos.X, pos.Y, pos.Z)
	return ship
}

// Start moves an initialized simulation from awaiting-start to running
func (s *Simulation) Start() error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if s.phase == PhaseAwaitingStart {
		s.setPhase(PhaseRunning)
	}
	return nil
}

// Tick advances the simulation by one frame. The first tick after Initialize
// starts the run; ticks in a terminal phase, or before Initialize, change
// nothing.
func (s *Simulation) Tick(in Input) Status {
	if !s.initialized || s.phase.Terminal() {
		return s.Status()
	}
	if s.phase == PhaseAwaitingStart {
		s.setPhase(PhaseRunning)
	}
	if in == nil {
		in = NoInput
	}
	s.tick++

	// ships steer before anything collides; countdowns expire before the
	// resolver so a bolt never hits on the tick it runs out
	s.controller.Step(in, s.world)
	s.fireControl(in)
	s.world.Commit()

	s.steerShips()
	s.world.Commit()

	s.expire()
	s.world.Commit()

	s.resolveProjectiles()
	s.world.Commit()

	s.evaluate()
	return s.Status()
}

func (s *Simulation) fireControl(in Input) {
	if s.cooldown > 0 {
		s.cooldown--
	}
	if !in.Held(KeyFire) || s.cooldown != 0 {
		return
	}
	s.world.Add(NewProjectile(
		Point{},
		NewPoint(0, 0, s.cfg.LaserLength),
		s.cfg.LaserSplay,
		s.cfg.LaserLifetime,
	))
	s.cooldown = s.cfg.FireCooldown
	s.log.Debug("projectile fired", zap.Uint64("tick", s.tick))
}

func (s *Simulation) steerShips() {
	s.world.Each(func(e Entity) {
		ship, ok := e.(*Ship)
		if !ok {
			return
		}
		intent := s.steering.Steer(ship.Behavior, ship.Nose().Vec(), ship.Heading())
		ship.Maneuver(intent)
	})
}

// expire counts down timed entities and removes those that reach zero
func (s *Simulation) expire() {
	s.world.Each(func(e Entity) {
		c := countdownOf(e)
		if c == nil || *c <= 0 {
			return
		}
		*c--
		if *c == 0 {
			s.world.Remove(e)
			s.log.Debug("entity expired", zap.Stringer("kind", e.Kind()), zap.Uint64("tick", s.tick))
		}
	})
}

func (s *Simulation) resolveProjectiles() {
	s.world.Each(func(e Entity) {
		p, ok := e.(*Projectile)
		if !ok || Removed(p) {
			return
		}
		if n := s.resolver.Resolve(s.world, p); n > 0 {
			s.kills += n
			s.log.Debug("ships destroyed",
				zap.Int("count", n),
				zap.Int("kills", s.kills),
				zap.Uint64("tick", s.tick),
			)
		}
	})
}

// evaluate checks the win condition before the loss condition
func (s *Simulation) evaluate() {
	ships := s.world.Ships()
	if s.kills >= s.initialShips || len(ships) == 0 {
		s.setPhase(PhaseWon)
		return
	}
	for _, ship := range ships {
		if ship.Nose().Vec().Len() < s.cfg.RamDistance {
			s.setPhase(PhaseLost)
			return
		}
	}
}

func (s *Simulation) setPhase(p Phase) {
	if s.phase == p {
		return
	}
	s.log.Info("phase changed",
		zap.Stringer("from", s.phase),
		zap.Stringer("to", p),
		zap.Int("kills", s.kills),
		zap.Uint64("tick", s.tick),
	)
	s.phase = p
}

// Status returns the current phase, kill count and tick number
func (s *Simulation) Status() Status {
	return Status{Phase: s.phase, Kills: s.kills, Tick: s.tick}
}

// Phase returns the current phase
func (s *Simulation) Phase() Phase { return s.phase }

// Kills returns the number of ships destroyed so far
func (s *Simulation) Kills() int { return s.kills }

// InitialShips returns the enemy count the run was initialized with
func (s *Simulation) InitialShips() int { return s.initialShips }

// World exposes the live world to hosts and tests
func (s *Simulation) World() *World { return s.world }

// Velocity returns the player's current velocity buffer
func (s *Simulation) Velocity() Velocity {
	if s.controller == nil {
		return Velocity{}
	}
	return s.controller.Buffer
}

// Projector returns the projector used by Render
func (s *Simulation) Projector() Projector { return s.proj }

// Config returns the validated configuration
func (s *Simulation) Config() Config { return s.cfg }

// RunID identifies the current run in logs
func (s *Simulation) RunID() uuid.UUID { return s.runID }

// Checksum digests the world state
func (s *Simulation) Checksum() uint64 { return s.world.Checksum() }

// Resolve runs the collision resolver for p outside the normal tick order and
// credits any kills. It returns the number of ships destroyed.
func (s *Simulation) Resolve(p *Projectile) int {
	if !s.initialized {
		return 0
	}
	n := s.resolver.Resolve(s.world, p)
	s.world.Commit()
	s.kills += n
	return n
}
