package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// BehaviorKind selects a ship's steering policy. It is fixed at spawn time.
type BehaviorKind int

const (
	BehaviorInert BehaviorKind = iota
	BehaviorForward
	BehaviorAlignAxis
	BehaviorPursueOrigin
	BehaviorRandomWalk
	behaviorCount
)

var behaviorNames = [...]string{
	BehaviorInert:        "inert",
	BehaviorForward:      "forward",
	BehaviorAlignAxis:    "align-to-axis",
	BehaviorPursueOrigin: "pursue-origin",
	BehaviorRandomWalk:   "random-walk",
}

func (b BehaviorKind) String() string {
	if b < 0 || b >= behaviorCount {
		return fmt.Sprintf("behavior(%d)", int(b))
	}
	return behaviorNames[b]
}

// ParseBehaviorKind maps a config name back to its kind
func ParseBehaviorKind(name string) (BehaviorKind, error) {
	for k := BehaviorKind(0); k < behaviorCount; k++ {
		if behaviorNames[k] == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBehavior, name)
}

// alignTarget is the axis align-to-axis steers toward
var alignTarget = mgl64.Vec3{0, 0, 1}

// Steering evaluates behaviors. Apart from the random source it is stateless,
// so one instance serves every ship of a simulation.
type Steering struct {
	speed    float64
	turnStep float64
	deadband float64
	jitter   float64
	roll     float64
	rng      *rand.Rand
}

// NewSteering creates a steering evaluator from cfg
func NewSteering(cfg Config, rng *rand.Rand) *Steering {
	return &Steering{
		speed:    cfg.EnemySpeed,
		turnStep: cfg.TurnStep,
		deadband: cfg.Deadband,
		jitter:   cfg.Jitter,
		roll:     cfg.Roll,
		rng:      rng,
	}
}

// Steer returns the velocity intent of a ship whose nose is at nose and
// which faces along heading.
func (s *Steering) Steer(kind BehaviorKind, nose, heading mgl64.Vec3) Velocity {
	switch kind {
	case BehaviorForward:
		return s.forward(heading)
	case BehaviorAlignAxis:
		return s.alignAxis(heading)
	case BehaviorPursueOrigin:
		return s.pursueOrigin(nose, heading)
	case BehaviorRandomWalk:
		return s.randomWalk()
	}
	return Velocity{}
}

func (s *Steering) forward(heading mgl64.Vec3) Velocity {
	if !finiteVec(heading) {
		return Velocity{}
	}
	t := heading.Mul(s.speed)
	return Velocity{TX: t[0], TY: t[1], TZ: t[2]}
}

func (s *Steering) alignAxis(heading mgl64.Vec3) Velocity {
	rx, ry, _ := s.steerToward(heading, alignTarget)
	return Velocity{RX: rx, RY: ry}
}

func (s *Steering) pursueOrigin(nose, heading mgl64.Vec3) Velocity {
	v := s.forward(heading)
	if nose.Len() == 0 || !finiteVec(nose) {
		return v
	}
	rx, ry, ok := s.steerToward(heading, nose.Mul(-1))
	if !ok {
		return v
	}
	v.RX = rx + s.noise(s.jitter)
	v.RY = ry + s.noise(s.jitter)
	v.RZ = s.roll
	return v
}

func (s *Steering) randomWalk() Velocity {
	return Velocity{
		TX: s.noise(2 * s.speed),
		TY: s.noise(2 * s.speed),
		TZ: s.noise(2 * s.speed),
		RX: s.noise(2 * s.turnStep),
		RY: s.noise(2 * s.turnStep),
		RZ: s.noise(2 * s.turnStep),
	}
}

// steerToward returns the X and Y turn steps that bring heading toward
// target. The axis of the turn is heading×target; each of its X and Y
// components produces one fixed step when it leaves the deadband. A heading
// pointing away from the target with both components in the deadband still
// turns, so anti-parallel headings do not stall. ok is false when either
// vector has no direction.
func (s *Steering) steerToward(heading, target mgl64.Vec3) (rx, ry float64, ok bool) {
	hl, tl := heading.Len(), target.Len()
	if hl == 0 || tl == 0 || !finiteVec(heading) || !finiteVec(target) {
		return 0, 0, false
	}
	h, t := heading.Mul(1/hl), target.Mul(1/tl)
	axis := h.Cross(t)

	if math.Abs(axis[0]) > s.deadband {
		rx = math.Copysign(s.turnStep, axis[0])
	}
	if math.Abs(axis[1]) > s.deadband {
		ry = math.Copysign(s.turnStep, axis[1])
	}
	if rx == 0 && ry == 0 && h.Dot(t) < 0 {
		if math.Abs(axis[1]) > math.Abs(axis[0]) {
			ry = math.Copysign(s.turnStep, axis[1])
		} else {
			rx = s.turnStep
			if axis[0] < 0 {
				rx = -s.turnStep
			}
		}
	}
	return rx, ry, true
}

// noise samples uniformly from [-width/2, width/2]
func (s *Steering) noise(width float64) float64 {
	if width == 0 {
		return 0
	}
	return (s.rng.Float64() - 0.5) * width
}

func finiteVec(v mgl64.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}

// behaviorPicker rolls a behavior according to configured weights
type behaviorPicker struct {
	kinds   []BehaviorKind
	weights []int
	total   int
}

func newBehaviorPicker(mix map[string]int) (behaviorPicker, error) {
	var p behaviorPicker
	// walk kinds in declaration order so the roll does not depend on map order
	for k := BehaviorKind(0); k < behaviorCount; k++ {
		w := mix[k.String()]
		if w <= 0 {
			continue
		}
		p.kinds = append(p.kinds, k)
		p.weights = append(p.weights, w)
		p.total += w
	}
	for name := range mix {
		if _, err := ParseBehaviorKind(name); err != nil {
			return behaviorPicker{}, err
		}
	}
	if p.total == 0 {
		return behaviorPicker{}, fmt.Errorf("%w: behavior mix is empty", ErrInvalidConfig)
	}
	return p, nil
}

func (p behaviorPicker) pick(rng *rand.Rand) BehaviorKind {
	if len(p.kinds) == 1 {
		return p.kinds[0]
	}
	roll := rng.Intn(p.total)
	for i, w := range p.weights {
		if roll < w {
			return p.kinds[i]
		}
		roll -= w
	}
	return p.kinds[len(p.kinds)-1]
}
