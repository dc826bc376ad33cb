package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RenderDistance = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestInitializeRejectsNegativeEnemyCount(t *testing.T) {
	s, err := New(testConfig())
	require.NoError(t, err)

	err = s.Initialize(1, -3)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, ErrInvalidEnemyCount)
}

func TestInitializePopulatesWorld(t *testing.T) {
	cfg := testConfig()
	s := newTestSimulation(t, cfg, 1, 100)

	assert.Equal(t, PhaseAwaitingStart, s.Phase())
	assert.Equal(t, 100, s.World().Count(KindShip))
	assert.Equal(t, cfg.StarCount, s.World().Count(KindStar))
	assert.Equal(t, 100, s.InitialShips())
	for _, ship := range s.World().Ships() {
		assert.GreaterOrEqual(t, ship.Nose().Vec().Len(), cfg.SpawnClearance-cfg.ShipSize)
		assert.Equal(t, BehaviorPursueOrigin, ship.Behavior)
	}
}

func TestInitializeRejectsZeroEnemyCount(t *testing.T) {
	s, err := New(testConfig())
	require.NoError(t, err)

	err = s.Initialize(1, 0)
	assert.ErrorIs(t, err, ErrInvalidEnemyCount)
	assert.Zero(t, s.World().Count(KindShip))
	assert.ErrorIs(t, s.Start(), ErrNotInitialized)
}

func TestTickBeforeInitialize(t *testing.T) {
	s, err := New(testConfig())
	require.NoError(t, err)

	assert.Equal(t, PhaseAwaitingStart, s.Tick(NoInput).Phase)
	assert.ErrorIs(t, s.Start(), ErrNotInitialized)
	assert.Zero(t, s.Resolve(NewProjectile(Point{}, NewPoint(0, 0, 1), 0, 1)))
}

func TestFirstTickStartsRun(t *testing.T) {
	s := newTestSimulation(t, testConfig(), 1, 10)

	st := s.Tick(NoInput)
	assert.Equal(t, PhaseRunning, st.Phase)
	assert.Equal(t, uint64(1), st.Tick)
}

func TestStartIsIdempotent(t *testing.T) {
	s := newTestSimulation(t, testConfig(), 1, 10)
	require.NoError(t, s.Start())
	require.NoError(t, s.Start())
	assert.Equal(t, PhaseRunning, s.Phase())
}

func TestWonAfterEveryShipIsHit(t *testing.T) {
	s := newTestSimulation(t, testConfig(), 3, 100)
	w := s.World()

	for ships := w.Ships(); len(ships) > 0; ships = w.Ships() {
		nose := ships[0].Nose()
		bolt := NewProjectile(NewPoint(nose.X, nose.Y, nose.Z-1), nose, 0.04, 300)
		w.Add(bolt)
		w.Commit()
		require.GreaterOrEqual(t, s.Resolve(bolt), 1)
	}

	st := s.Tick(NoInput)
	assert.Equal(t, PhaseWon, st.Phase)
	assert.Equal(t, 100, st.Kills)
	assert.Equal(t, 100, s.Kills())
	assert.Zero(t, w.Count(KindShip))
}

func TestLostWhenShipReachesOrigin(t *testing.T) {
	s := newTestSimulation(t, testConfig(), 5, 100)
	placeNose(s.World().Ships()[0], Point{})

	st := s.Tick(NoInput)
	assert.Equal(t, PhaseLost, st.Phase)
	assert.Zero(t, st.Kills)
}

func TestTerminalPhaseIgnoresTicks(t *testing.T) {
	s := newTestSimulation(t, testConfig(), 5, 10)
	placeNose(s.World().Ships()[0], Point{})
	require.Equal(t, PhaseLost, s.Tick(NoInput).Phase)
	sum := s.Checksum()

	st := s.Tick(NewKeySet(KeyFire, KeyMoveForward))
	assert.Equal(t, PhaseLost, st.Phase)
	assert.Equal(t, uint64(1), st.Tick)
	assert.Equal(t, sum, s.Checksum())
	assert.Zero(t, s.World().Count(KindProjectile))
}

func TestWonWhenNoShipsRemain(t *testing.T) {
	s := newTestSimulation(t, testConfig(), 5, 3)
	for _, ship := range s.World().Ships() {
		s.World().Remove(ship)
	}
	s.World().Commit()

	st := s.Tick(NoInput)
	assert.Equal(t, PhaseWon, st.Phase)
	assert.Zero(t, st.Kills)
}

// inertSimulation has a single motionless ship with its nose at nose
func inertSimulation(t *testing.T, cfg Config, nose Point) (*Simulation, *Ship) {
	t.Helper()
	cfg.BehaviorMix = map[string]int{BehaviorInert.String(): 1}
	s := newTestSimulation(t, cfg, 9, 1)
	ship := s.World().Ships()[0]
	placeNose(ship, nose)
	return s, ship
}

func TestFireCooldown(t *testing.T) {
	cfg := testConfig()
	cfg.FireCooldown = 3
	s, _ := inertSimulation(t, cfg, NewPoint(0, 0, -50))

	fire := NewKeySet(KeyFire)
	var counts []int
	for i := 0; i < 7; i++ {
		s.Tick(fire)
		counts = append(counts, s.World().Count(KindProjectile))
	}
	assert.Equal(t, []int{1, 1, 1, 2, 2, 2, 3}, counts)
}

func TestProjectileExpiresWithoutEffect(t *testing.T) {
	cfg := testConfig()
	cfg.LaserLifetime = 2
	s, _ := inertSimulation(t, cfg, NewPoint(0, 0, -50))

	s.Tick(NewKeySet(KeyFire))
	assert.Equal(t, 1, s.World().Count(KindProjectile))
	s.Tick(NoInput)
	assert.Zero(t, s.World().Count(KindProjectile))
	assert.Zero(t, s.World().Count(KindEffect))
	assert.Zero(t, s.Kills())
	assert.Equal(t, PhaseRunning, s.Phase())
}

func TestShotDestroysShipAhead(t *testing.T) {
	cfg := testConfig()
	s, _ := inertSimulation(t, cfg, NewPoint(0, 0, 2.5))

	st := s.Tick(NewKeySet(KeyFire))
	assert.Equal(t, 1, st.Kills)
	assert.Equal(t, PhaseWon, st.Phase)
	assert.Equal(t, 1, s.World().Count(KindEffect))
	assert.Zero(t, s.World().Count(KindProjectile))
}

func TestEffectExpires(t *testing.T) {
	cfg := testConfig()
	cfg.BehaviorMix = map[string]int{BehaviorInert.String(): 1}
	s := newTestSimulation(t, cfg, 9, 2)
	ships := s.World().Ships()
	placeNose(ships[0], NewPoint(0, 0, 2.5))
	placeNose(ships[1], NewPoint(0, 0, -50))

	s.Tick(NewKeySet(KeyFire))
	require.Equal(t, 1, s.World().Count(KindEffect))
	for i := 1; i < cfg.EffectCountdown; i++ {
		s.Tick(NoInput)
		require.Equal(t, 1, s.World().Count(KindEffect), "tick %d", i)
	}
	s.Tick(NoInput)
	assert.Zero(t, s.World().Count(KindEffect))
}

func TestPlayerMotionMovesWorld(t *testing.T) {
	cfg := testConfig()
	s, ship := inertSimulation(t, cfg, NewPoint(0, 0, 40))

	s.Tick(NewKeySet(KeyMoveForward))
	assert.InDelta(t, 40-cfg.MoveAccel, ship.Nose().Z, 1e-9)
	assert.InDelta(t, cfg.MoveAccel*(1-cfg.DampRatio), s.Velocity().TZ, 1e-12)
}

func TestSameSeedSameRun(t *testing.T) {
	run := func(seed int64) (*Simulation, uint64) {
		s := newTestSimulation(t, testConfig(), seed, 30)
		in := NewKeySet(KeyMoveForward, KeyYawLeft, KeyFire)
		for i := 0; i < 60; i++ {
			s.Tick(in)
		}
		return s, s.Checksum()
	}
	a, sumA := run(11)
	b, sumB := run(11)
	_, sumC := run(12)

	assert.Equal(t, sumA, sumB)
	assert.NotEqual(t, sumA, sumC)
	assert.Equal(t, a.Status(), b.Status())
	assert.NotEqual(t, a.RunID(), b.RunID())
}

func TestWithRandOverridesSeed(t *testing.T) {
	mk := func(seed int64) uint64 {
		s, err := New(testConfig(), WithRand(rand.New(rand.NewSource(99))))
		require.NoError(t, err)
		require.NoError(t, s.Initialize(seed, 5))
		return s.Checksum()
	}
	assert.Equal(t, mk(1), mk(2))
}

func TestPhaseChangesAreLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s, err := New(testConfig(), WithLogger(zap.New(core)))
	require.NoError(t, err)
	require.NoError(t, s.Initialize(4, 5))
	s.Tick(NoInput)

	entries := logs.FilterMessage("phase changed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "running", fields["to"])
	assert.Equal(t, int64(4), fields["seed"])
	assert.Equal(t, s.RunID().String(), fields["run"])
}
