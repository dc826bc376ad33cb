package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInertBehavior(t *testing.T) {
	s := newTestSteering(DefaultConfig())
	v := s.Steer(BehaviorInert, mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 0, 1})
	assert.True(t, v.IsZero())
}

func TestForwardBehavior(t *testing.T) {
	cfg := DefaultConfig()
	s := newTestSteering(cfg)
	v := s.Steer(BehaviorForward, mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 2, 0})

	assert.Equal(t, Velocity{TY: 2 * cfg.EnemySpeed}, v)
}

func TestAlignAxisBehavior(t *testing.T) {
	cfg := DefaultConfig()
	s := newTestSteering(cfg)

	aligned := s.Steer(BehaviorAlignAxis, mgl64.Vec3{}, mgl64.Vec3{0, 0, 1})
	assert.True(t, aligned.IsZero())

	v := s.Steer(BehaviorAlignAxis, mgl64.Vec3{}, mgl64.Vec3{1, 0, 1})
	assert.Equal(t, -cfg.TurnStep, v.RY)
	assert.Zero(t, v.RX)
	assert.Zero(t, v.RZ)
	tx, ty, tz := v.Linear()
	assert.Zero(t, tx+ty+tz)

	// the chosen turn brings the heading closer to the axis
	h := PointFromVec(mgl64.Vec3{1, 0, 1})
	h.Rotate(v.RX, v.RY, v.RZ)
	assert.Less(t, angleBetween(h.Vec(), alignTarget), angleBetween(mgl64.Vec3{1, 0, 1}, alignTarget))
}

func TestPursueOriginContracts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Jitter = 0
	cfg.Roll = 0
	s := newTestSteering(cfg)

	// on the +Z axis, facing directly away from the origin
	ship := NewShip(NewPoint(0, 0, 30), 1, BehaviorPursueOrigin)
	deviation := func() float64 {
		return angleBetween(ship.Heading(), ship.Nose().Vec().Mul(-1))
	}

	prev := deviation()
	require.InDelta(t, 3.14159, prev, 1e-3)

	turns := 0
	for i := 0; i < 1000; i++ {
		v := s.Steer(ship.Behavior, ship.Nose().Vec(), ship.Heading())
		if v.RX == 0 && v.RY == 0 {
			break
		}
		ship.Maneuver(Velocity{RX: v.RX, RY: v.RY, RZ: v.RZ})
		cur := deviation()
		require.Less(t, cur, prev, "turn %d did not reduce deviation", i)
		prev = cur
		turns++
	}
	assert.Greater(t, turns, 100)
	assert.Less(t, prev, 2*cfg.TurnStep)
}

func TestPursueOriginConvergesWithRoll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Jitter = 0
	s := newTestSteering(cfg)

	ship := NewShip(NewPoint(10, -5, 30), 1, BehaviorPursueOrigin)
	ship.Rotate(0.4, 1.3, 0)
	placeNose(ship, NewPoint(10, -5, 30))
	start := angleBetween(ship.Heading(), ship.Nose().Vec().Mul(-1))

	for i := 0; i < 400; i++ {
		v := s.Steer(ship.Behavior, ship.Nose().Vec(), ship.Heading())
		ship.Maneuver(Velocity{RX: v.RX, RY: v.RY, RZ: v.RZ})
	}
	end := angleBetween(ship.Heading(), ship.Nose().Vec().Mul(-1))
	assert.Less(t, end, start)
	assert.Less(t, end, 0.1)
}

func TestPursueOriginJitterAndRoll(t *testing.T) {
	cfg := DefaultConfig()
	s := newTestSteering(cfg)

	for i := 0; i < 200; i++ {
		v := s.Steer(BehaviorPursueOrigin, mgl64.Vec3{0, 0, 20}, mgl64.Vec3{0, 0, -1})
		assert.Equal(t, cfg.Roll, v.RZ)
		assert.LessOrEqual(t, v.RX, cfg.TurnStep+cfg.Jitter/2)
		assert.GreaterOrEqual(t, v.RX, -cfg.TurnStep-cfg.Jitter/2)
		assert.InDelta(t, -cfg.EnemySpeed, v.TZ, 1e-12)
	}
}

func TestPursueOriginDegenerate(t *testing.T) {
	cfg := DefaultConfig()
	s := newTestSteering(cfg)

	atOrigin := s.Steer(BehaviorPursueOrigin, mgl64.Vec3{}, mgl64.Vec3{0, 0, 1})
	assert.Zero(t, atOrigin.RX)
	assert.Zero(t, atOrigin.RY)
	assert.Zero(t, atOrigin.RZ)
	assert.InDelta(t, cfg.EnemySpeed, atOrigin.TZ, 1e-12)

	noHeading := s.Steer(BehaviorPursueOrigin, mgl64.Vec3{0, 0, 5}, mgl64.Vec3{})
	assert.True(t, noHeading.IsZero())
	assert.True(t, finite(noHeading.TX) && finite(noHeading.RX))
}

func TestRandomWalkBounds(t *testing.T) {
	cfg := DefaultConfig()
	s := newTestSteering(cfg)

	var spread Velocity
	for i := 0; i < 1000; i++ {
		v := s.Steer(BehaviorRandomWalk, mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, 1})
		for _, lin := range []float64{v.TX, v.TY, v.TZ} {
			assert.LessOrEqual(t, lin, cfg.EnemySpeed)
			assert.GreaterOrEqual(t, lin, -cfg.EnemySpeed)
		}
		for _, ang := range []float64{v.RX, v.RY, v.RZ} {
			assert.LessOrEqual(t, ang, cfg.TurnStep)
			assert.GreaterOrEqual(t, ang, -cfg.TurnStep)
		}
		if v.TX > spread.TX {
			spread.TX = v.TX
		}
	}
	assert.Greater(t, spread.TX, cfg.EnemySpeed/2)
}

func TestSteeringIsReproducible(t *testing.T) {
	cfg := DefaultConfig()
	a := NewSteering(cfg, rand.New(rand.NewSource(42)))
	b := NewSteering(cfg, rand.New(rand.NewSource(42)))

	for i := 0; i < 50; i++ {
		nose := mgl64.Vec3{float64(i), 3, 20}
		assert.Equal(t,
			a.Steer(BehaviorPursueOrigin, nose, mgl64.Vec3{0, 1, 1}),
			b.Steer(BehaviorPursueOrigin, nose, mgl64.Vec3{0, 1, 1}),
		)
	}
}

func TestParseBehaviorKind(t *testing.T) {
	for k := BehaviorKind(0); k < behaviorCount; k++ {
		got, err := ParseBehaviorKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseBehaviorKind("kamikaze")
	assert.True(t, errors.Is(err, ErrUnknownBehavior))
}

func TestBehaviorPickerFollowsWeights(t *testing.T) {
	p, err := newBehaviorPicker(map[string]int{"inert": 1, "random-walk": 3, "forward": 0})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	counts := map[BehaviorKind]int{}
	for i := 0; i < 4000; i++ {
		counts[p.pick(rng)]++
	}
	assert.Zero(t, counts[BehaviorForward])
	assert.InDelta(t, 1000, counts[BehaviorInert], 150)
	assert.InDelta(t, 3000, counts[BehaviorRandomWalk], 150)

	_, err = newBehaviorPicker(map[string]int{"inert": 0})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
