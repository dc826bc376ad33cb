package sim

import "math"

// Projector maps camera-relative points onto a centre-origin surface.
type Projector struct {
	// Scale is the projection distance in surface units, usually the
	// smaller surface dimension
	Scale float64

	// RenderDistance is the far bound of the visible depth range
	RenderDistance float64
}

// NewProjector creates a projector
func NewProjector(scale, renderDistance float64) Projector {
	return Projector{Scale: scale, RenderDistance: renderDistance}
}

// Visible reports whether p lies strictly between the camera and the far bound
func (pr Projector) Visible(p Point) bool {
	return p.Z > 0 && p.Z < pr.RenderDistance
}

// Project returns surface coordinates for p, with y growing downward.
// Points outside the visible range yield NaN coordinates and ok=false.
func (pr Projector) Project(p Point) (x, y float64, ok bool) {
	if !pr.Visible(p) {
		return math.NaN(), math.NaN(), false
	}
	return p.X / p.Z * pr.Scale, -(p.Y / p.Z) * pr.Scale, true
}

// Radius returns the on-surface radius of a sphere of world radius r centred
// at p, or 0 when p is not visible.
func (pr Projector) Radius(p Point, r float64) float64 {
	if !pr.Visible(p) {
		return 0
	}
	return r * pr.Scale / p.Z
}
