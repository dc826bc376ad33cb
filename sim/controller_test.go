package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerClampsHeldAxis(t *testing.T) {
	cfg := DefaultConfig()
	c := NewController(cfg)
	w := NewWorld()
	held := NewKeySet(KeyMoveForward)

	for i := 0; i < 200; i++ {
		c.Step(held, w)
		assert.LessOrEqual(t, c.Buffer.TZ, cfg.MaxMove)
		assert.Greater(t, c.Buffer.TZ, 0.0)
	}
	assert.InDelta(t, cfg.MaxMove, c.Buffer.TZ, 1e-12)
}

func TestControllerReleaseStopsExactly(t *testing.T) {
	cfg := DefaultConfig()
	c := NewController(cfg)
	w := NewWorld()

	for i := 0; i < 100; i++ {
		c.Step(NewKeySet(KeyMoveBack, KeyYawLeft), w)
	}
	require.NotZero(t, c.Buffer.TZ)
	require.NotZero(t, c.Buffer.RY)

	bound := int(math.Max(
		cfg.MaxMove/(cfg.DampRatio*cfg.MoveAccel),
		cfg.MaxTurn/(cfg.DampRatio*cfg.TurnAccel),
	)) + 2
	stopped := -1
	for i := 0; i < bound; i++ {
		c.Step(NoInput, w)
		if c.Buffer.IsZero() {
			stopped = i
			break
		}
	}
	assert.GreaterOrEqual(t, stopped, 0, "buffer did not settle within %d ticks", bound)
	assert.Equal(t, Velocity{}, c.Buffer)
}

func TestControllerDampNeverCrossesZero(t *testing.T) {
	assert.Equal(t, 0.0, damp(0.003, 0.005))
	assert.Equal(t, 0.0, damp(-0.003, 0.005))
	assert.InDelta(t, 0.005, damp(0.01, 0.005), 1e-15)
	assert.InDelta(t, -0.005, damp(-0.01, 0.005), 1e-15)
}

func TestControllerMovesWorldOpposite(t *testing.T) {
	cfg := DefaultConfig()
	c := NewController(cfg)
	w := NewWorld()
	star := NewStar(NewPoint(0, 0, 10))
	w.Add(star)
	w.Commit()

	c.Step(NewKeySet(KeyMoveForward), w)
	assert.InDelta(t, 10-cfg.MoveAccel, star.Z, 1e-12)

	c.Reset()
	star.Point = NewPoint(0, 0, 10)
	c.Step(NewKeySet(KeyYawLeft), w)
	// yawing left swings what is ahead to the right
	assert.Greater(t, star.X, 0.0)
}

func TestControllerKeyAxes(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		key  Key
		want Velocity
	}{
		{KeyMoveUp, Velocity{TY: cfg.MoveAccel}},
		{KeyMoveDown, Velocity{TY: -cfg.MoveAccel}},
		{KeyMoveForward, Velocity{TZ: cfg.MoveAccel}},
		{KeyMoveBack, Velocity{TZ: -cfg.MoveAccel}},
		{KeyMoveRight, Velocity{TX: cfg.MoveAccel}},
		{KeyMoveLeft, Velocity{TX: -cfg.MoveAccel}},
		{KeyPitchUp, Velocity{RX: cfg.TurnAccel}},
		{KeyPitchDown, Velocity{RX: -cfg.TurnAccel}},
		{KeyYawLeft, Velocity{RY: cfg.TurnAccel}},
		{KeyYawRight, Velocity{RY: -cfg.TurnAccel}},
		{KeyRollRight, Velocity{RZ: cfg.TurnAccel}},
		{KeyRollLeft, Velocity{RZ: -cfg.TurnAccel}},
		{KeyFire, Velocity{}},
	}
	for _, tc := range cases {
		t.Run(tc.key.String(), func(t *testing.T) {
			c := NewController(cfg)
			c.Accelerate(NewKeySet(tc.key))
			assert.Equal(t, tc.want, c.Buffer)
		})
	}
}
