package sim

import "math"

// Velocity is a six-axis rate: translation per tick and rotation per tick in
// radians. It doubles as the intent returned by a behavior.
type Velocity struct {
	TX, TY, TZ float64
	RX, RY, RZ float64
}

// Linear returns the translational axes
func (v Velocity) Linear() (float64, float64, float64) {
	return v.TX, v.TY, v.TZ
}

// Angular returns the rotational axes
func (v Velocity) Angular() (float64, float64, float64) {
	return v.RX, v.RY, v.RZ
}

// IsZero reports whether every axis is exactly zero
func (v Velocity) IsZero() bool {
	return v == Velocity{}
}

func (v *Velocity) axes() [6]*float64 {
	return [6]*float64{&v.TX, &v.TY, &v.TZ, &v.RX, &v.RY, &v.RZ}
}

// Controller integrates held keys into the player's velocity buffer and moves
// the world opposite to it. The player never moves; the world does.
type Controller struct {
	Buffer Velocity

	moveAccel float64
	turnAccel float64
	maxMove   float64
	maxTurn   float64
	dampRatio float64
	deadzone  float64
}

// NewController creates a controller from the kinematic part of cfg
func NewController(cfg Config) *Controller {
	return &Controller{
		moveAccel: cfg.MoveAccel,
		turnAccel: cfg.TurnAccel,
		maxMove:   cfg.MaxMove,
		maxTurn:   cfg.MaxTurn,
		dampRatio: cfg.DampRatio,
		deadzone:  cfg.Deadzone,
	}
}

// Accelerate adds one quantum per held key to the matching axis
func (c *Controller) Accelerate(in Input) {
	b := &c.Buffer
	if in.Held(KeyMoveUp) {
		b.TY += c.moveAccel
	}
	if in.Held(KeyMoveDown) {
		b.TY -= c.moveAccel
	}
	if in.Held(KeyMoveForward) {
		b.TZ += c.moveAccel
	}
	if in.Held(KeyMoveBack) {
		b.TZ -= c.moveAccel
	}
	if in.Held(KeyMoveRight) {
		b.TX += c.moveAccel
	}
	if in.Held(KeyMoveLeft) {
		b.TX -= c.moveAccel
	}
	if in.Held(KeyPitchUp) {
		b.RX += c.turnAccel
	}
	if in.Held(KeyPitchDown) {
		b.RX -= c.turnAccel
	}
	if in.Held(KeyYawLeft) {
		b.RY += c.turnAccel
	}
	if in.Held(KeyYawRight) {
		b.RY -= c.turnAccel
	}
	if in.Held(KeyRollRight) {
		b.RZ += c.turnAccel
	}
	if in.Held(KeyRollLeft) {
		b.RZ -= c.turnAccel
	}
}

// Apply moves the world by the inverse of the player's motion
func (c *Controller) Apply(world *World) {
	b := c.Buffer
	world.Translate(-b.TX, -b.TY, -b.TZ)
	world.Rotate(b.RX, b.RY, b.RZ)
}

// Settle runs damping, clamping and the deadzone snap, in that order
func (c *Controller) Settle() {
	for i, axis := range c.Buffer.axes() {
		quantum, limit := c.moveAccel, c.maxMove
		if i >= 3 {
			quantum, limit = c.turnAccel, c.maxTurn
		}
		v := damp(*axis, c.dampRatio*quantum)
		v = clamp(v, limit)
		if math.Abs(v) < c.deadzone {
			v = 0
		}
		*axis = v
	}
}

// Step runs one full controller tick
func (c *Controller) Step(in Input, world *World) {
	c.Accelerate(in)
	c.Apply(world)
	c.Settle()
}

// Reset zeroes the buffer
func (c *Controller) Reset() {
	c.Buffer = Velocity{}
}

// damp moves v toward zero by amount without crossing it
func damp(v, amount float64) float64 {
	switch {
	case v > 0:
		return math.Max(0, v-amount)
	case v < 0:
		return math.Min(0, v+amount)
	}
	return 0
}

func clamp(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}
