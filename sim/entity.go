package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind identifies the variant of an Entity
type Kind int

const (
	KindStar Kind = iota
	KindShip
	KindProjectile
	KindEffect
)

func (k Kind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindShip:
		return "ship"
	case KindProjectile:
		return "projectile"
	case KindEffect:
		return "effect"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Entity is one live object in the World. The set of implementations is
// closed: *Star, *Ship, *Projectile and *Effect.
type Entity interface {
	Shape
	Kind() Kind
	state() *entityState
}

// entityState is the bookkeeping every entity carries
type entityState struct {
	removed bool
}

func (s *entityState) state() *entityState { return s }

// Removed reports whether the entity has been marked for removal
func Removed(e Entity) bool {
	return e.state().removed
}

// Star is a single background point
type Star struct {
	entityState
	Point
}

// NewStar creates a star at p
func NewStar(p Point) *Star {
	return &Star{Point: p}
}

func (*Star) Kind() Kind { return KindStar }

// Ship is an enemy craft steered by its behavior
type Ship struct {
	entityState
	Body     Solid
	Behavior BehaviorKind
}

func (*Ship) Kind() Kind { return KindShip }

func (s *Ship) Translate(dx, dy, dz float64)          { s.Body.Translate(dx, dy, dz) }
func (s *Ship) Rotate(rx, ry, rz float64)             { s.Body.Rotate(rx, ry, rz) }
func (s *Ship) Draw(proj Projector, surface Surface) { s.Body.Draw(proj, surface) }

// Nose returns the ship's reference point, the tip of its nose cone
func (s *Ship) Nose() Point {
	return s.Body.Faces[shipNoseFace].Edges[0].Start
}

// Tail returns the centre of the ship's rear face
func (s *Ship) Tail() Point {
	rear := s.Body.Faces[shipRearFace]
	var sum mgl64.Vec3
	for _, e := range rear.Edges {
		sum = sum.Add(e.Start.Vec())
	}
	return PointFromVec(sum.Mul(1 / float64(len(rear.Edges))))
}

// Heading returns nose minus tail, the unnormalised facing direction
func (s *Ship) Heading() mgl64.Vec3 {
	return s.Nose().Vec().Sub(s.Tail().Vec())
}

// Maneuver applies a velocity intent: rotate about the nose, then translate
func (s *Ship) Maneuver(v Velocity) {
	nose := s.Nose()
	if v.RX != 0 || v.RY != 0 || v.RZ != 0 {
		s.Body.Translate(-nose.X, -nose.Y, -nose.Z)
		s.Body.Rotate(v.RX, v.RY, v.RZ)
		s.Body.Translate(nose.X, nose.Y, nose.Z)
	}
	s.Body.Translate(v.TX, v.TY, v.TZ)
}

// Projectile is a laser bolt. Edges[0] runs from tail to tip; the other
// edges are decorative splay lines converging on the tip.
type Projectile struct {
	entityState
	Beam      Polygon
	Countdown int
}

func (*Projectile) Kind() Kind { return KindProjectile }

func (p *Projectile) Translate(dx, dy, dz float64)          { p.Beam.Translate(dx, dy, dz) }
func (p *Projectile) Rotate(rx, ry, rz float64)             { p.Beam.Rotate(rx, ry, rz) }
func (p *Projectile) Draw(proj Projector, surface Surface) { p.Beam.Draw(proj, surface) }

// Tip returns the leading point of the bolt
func (p *Projectile) Tip() Point {
	return p.Beam.Edges[0].End
}

// Direction returns tip minus tail of the centre segment
func (p *Projectile) Direction() mgl64.Vec3 {
	return p.Beam.Edges[0].Vector()
}

// Effect is a short-lived explosion disc
type Effect struct {
	entityState
	Center    Point
	Radius    float64
	Countdown int
}

// NewEffect creates an effect
func NewEffect(center Point, radius float64, countdown int) *Effect {
	return &Effect{Center: center, Radius: radius, Countdown: countdown}
}

func (*Effect) Kind() Kind { return KindEffect }

func (e *Effect) Translate(dx, dy, dz float64) { e.Center.Translate(dx, dy, dz) }
func (e *Effect) Rotate(rx, ry, rz float64)    { e.Center.Rotate(rx, ry, rz) }

func (e *Effect) Draw(proj Projector, surface Surface) {
	if x, y, ok := proj.Project(e.Center); ok {
		surface.FillDisc(x, y, proj.Radius(e.Center, e.Radius))
	}
}

// countdownOf returns the countdown of timed entities, or nil
func countdownOf(e Entity) *int {
	switch v := e.(type) {
	case *Projectile:
		return &v.Countdown
	case *Effect:
		return &v.Countdown
	}
	return nil
}

// rotateEntity applies a precomputed rotation to e
func rotateEntity(e Entity, m mgl64.Mat3) {
	switch v := e.(type) {
	case *Star:
		v.Point.apply(m)
	case *Ship:
		v.Body.apply(m)
	case *Projectile:
		v.Beam.apply(m)
	case *Effect:
		v.Center.apply(m)
	}
}

// pointsOf visits every point an entity owns
func pointsOf(e Entity, fn func(Point)) {
	switch v := e.(type) {
	case *Star:
		fn(v.Point)
	case *Ship:
		v.Body.Points(fn)
	case *Projectile:
		for _, s := range v.Beam.Edges {
			fn(s.Start)
			fn(s.End)
		}
	case *Effect:
		fn(v.Center)
	}
}
