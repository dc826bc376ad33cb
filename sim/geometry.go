package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape is anything in the composite geometry model: a leaf Point or a
// container that forwards every operation to the points it owns.
type Shape interface {
	Translate(dx, dy, dz float64)
	Rotate(rx, ry, rz float64)
	Draw(proj Projector, surface Surface)
}

var (
	_ Shape = (*Point)(nil)
	_ Shape = (*Segment)(nil)
	_ Shape = (*Polygon)(nil)
	_ Shape = (*Solid)(nil)
)

// RotationMatrix returns the matrix that rotates about X, then Y, then Z.
func RotationMatrix(rx, ry, rz float64) mgl64.Mat3 {
	return mgl64.Rotate3DZ(rz).Mul3(mgl64.Rotate3DY(ry)).Mul3(mgl64.Rotate3DX(rx))
}

// Point is a camera-relative position. Copies are independent.
type Point struct {
	X, Y, Z float64
}

// NewPoint creates a point
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// PointFromVec converts a mathgl vector into a point
func PointFromVec(v mgl64.Vec3) Point {
	return Point{X: v[0], Y: v[1], Z: v[2]}
}

// Vec returns the point as a mathgl vector
func (p Point) Vec() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

// DistanceTo returns the euclidean distance between two points
func (p Point) DistanceTo(o Point) float64 {
	return p.Vec().Sub(o.Vec()).Len()
}

// Finite reports whether every coordinate is a finite number
func (p Point) Finite() bool {
	return finite(p.X) && finite(p.Y) && finite(p.Z)
}

// Translate offsets the point
func (p *Point) Translate(dx, dy, dz float64) {
	p.X += dx
	p.Y += dy
	p.Z += dz
}

// Rotate rotates the point about the origin
func (p *Point) Rotate(rx, ry, rz float64) {
	p.apply(RotationMatrix(rx, ry, rz))
}

func (p *Point) apply(m mgl64.Mat3) {
	*p = PointFromVec(m.Mul3x1(p.Vec()))
}

// Draw plots the point if it is in front of the camera
func (p *Point) Draw(proj Projector, surface Surface) {
	if x, y, ok := proj.Project(*p); ok {
		surface.PlotPoint(x, y)
	}
}

// Segment is a straight edge between two owned points.
type Segment struct {
	Start, End Point
}

// NewSegment creates a segment
func NewSegment(start, end Point) Segment {
	return Segment{Start: start, End: end}
}

// Vector returns End minus Start
func (s Segment) Vector() mgl64.Vec3 {
	return s.End.Vec().Sub(s.Start.Vec())
}

// Translate offsets both endpoints
func (s *Segment) Translate(dx, dy, dz float64) {
	s.Start.Translate(dx, dy, dz)
	s.End.Translate(dx, dy, dz)
}

// Rotate rotates both endpoints about the origin
func (s *Segment) Rotate(rx, ry, rz float64) {
	s.apply(RotationMatrix(rx, ry, rz))
}

func (s *Segment) apply(m mgl64.Mat3) {
	s.Start.apply(m)
	s.End.apply(m)
}

// Draw strokes the segment when at least one endpoint is visible. The
// invisible end is passed as NaN; surfaces skip lines they cannot place.
func (s *Segment) Draw(proj Projector, surface Surface) {
	x1, y1, ok1 := proj.Project(s.Start)
	x2, y2, ok2 := proj.Project(s.End)
	if ok1 || ok2 {
		surface.StrokeLine(x1, y1, x2, y2)
	}
}

// Polygon is an ordered list of edges. Used as a ship face and as the beam
// of a projectile, where the edges need not form a closed loop.
type Polygon struct {
	Edges []Segment
}

// NewPolygon copies the given edges into a new polygon
func NewPolygon(edges ...Segment) Polygon {
	owned := make([]Segment, len(edges))
	copy(owned, edges)
	return Polygon{Edges: owned}
}

// Clone returns a deep copy
func (pg Polygon) Clone() Polygon {
	return NewPolygon(pg.Edges...)
}

func (pg *Polygon) Translate(dx, dy, dz float64) {
	for i := range pg.Edges {
		pg.Edges[i].Translate(dx, dy, dz)
	}
}

func (pg *Polygon) Rotate(rx, ry, rz float64) {
	pg.apply(RotationMatrix(rx, ry, rz))
}

func (pg *Polygon) apply(m mgl64.Mat3) {
	for i := range pg.Edges {
		pg.Edges[i].apply(m)
	}
}

func (pg *Polygon) Draw(proj Projector, surface Surface) {
	for i := range pg.Edges {
		pg.Edges[i].Draw(proj, surface)
	}
}

// Solid is a set of faces forming a wireframe body.
type Solid struct {
	Faces []Polygon
}

// NewSolid deep-copies the given faces into a new solid
func NewSolid(faces ...Polygon) Solid {
	owned := make([]Polygon, len(faces))
	for i, f := range faces {
		owned[i] = f.Clone()
	}
	return Solid{Faces: owned}
}

// Clone returns a deep copy
func (sd Solid) Clone() Solid {
	return NewSolid(sd.Faces...)
}

func (sd *Solid) Translate(dx, dy, dz float64) {
	for i := range sd.Faces {
		sd.Faces[i].Translate(dx, dy, dz)
	}
}

func (sd *Solid) Rotate(rx, ry, rz float64) {
	sd.apply(RotationMatrix(rx, ry, rz))
}

func (sd *Solid) apply(m mgl64.Mat3) {
	for i := range sd.Faces {
		sd.Faces[i].apply(m)
	}
}

func (sd *Solid) Draw(proj Projector, surface Surface) {
	for i := range sd.Faces {
		sd.Faces[i].Draw(proj, surface)
	}
}

// Points visits every owned point in order.
func (sd *Solid) Points(fn func(Point)) {
	for _, f := range sd.Faces {
		for _, e := range f.Edges {
			fn(e.Start)
			fn(e.End)
		}
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
