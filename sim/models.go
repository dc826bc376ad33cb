package sim

// Face indices of the ship model
const (
	shipNoseFace = 0
	shipRearFace = 8
)

// NewShip builds a ship of the given size centred on c, facing +Z
func NewShip(c Point, size float64, behavior BehaviorKind) *Ship {
	return &Ship{Body: ShipModel(c, size), Behavior: behavior}
}

// ShipModel builds the wireframe hull: a four-sided nose cone, a square body
// tube and two flat wings. Faces 0-3 are the nose, 4-7 the body sides, 8 the
// rear cap and 9-10 the wings.
func ShipModel(c Point, size float64) Solid {
	v := func(dx, dy, dz float64) Point {
		return NewPoint(c.X+dx*size, c.Y+dy*size, c.Z+dz*size)
	}
	var (
		nose = v(0, 0, 0.5)

		frontL = v(-0.125, 0, 0)
		frontU = v(0, -0.125, 0)
		frontR = v(0.125, 0, 0)
		frontD = v(0, 0.125, 0)

		backL = v(-0.125, 0, -0.5)
		backU = v(0, -0.125, -0.5)
		backR = v(0.125, 0, -0.5)
		backD = v(0, 0.125, -0.5)

		lWingFront = v(-0.5, 0, 0)
		lWingBack  = v(-0.25, 0, -0.5)
		lWingRoot  = v(-0.125, 0, -0.25)
		rWingFront = v(0.5, 0, 0)
		rWingBack  = v(0.25, 0, -0.5)
		rWingRoot  = v(0.125, 0, -0.25)
	)
	var (
		noseL = NewSegment(nose, frontL)
		noseU = NewSegment(nose, frontU)
		noseR = NewSegment(nose, frontR)
		noseD = NewSegment(nose, frontD)

		frontLU = NewSegment(frontL, frontU)
		frontUR = NewSegment(frontU, frontR)
		frontRD = NewSegment(frontR, frontD)
		frontDL = NewSegment(frontD, frontL)

		bodyL = NewSegment(frontL, backL)
		bodyU = NewSegment(frontU, backU)
		bodyR = NewSegment(frontR, backR)
		bodyD = NewSegment(frontD, backD)

		backLU = NewSegment(backL, backU)
		backUR = NewSegment(backU, backR)
		backRD = NewSegment(backR, backD)
		backDL = NewSegment(backD, backL)

		lWingOuter = NewSegment(lWingFront, lWingBack)
		lWingInner = NewSegment(lWingRoot, lWingFront)
		lWingRootS = NewSegment(backL, lWingRoot)
		lWingTrail = NewSegment(lWingBack, backL)
		rWingOuter = NewSegment(rWingFront, rWingBack)
		rWingInner = NewSegment(rWingRoot, rWingFront)
		rWingRootS = NewSegment(backR, rWingRoot)
		rWingTrail = NewSegment(rWingBack, backR)
	)
	return NewSolid(
		NewPolygon(noseL, frontLU, noseU),
		NewPolygon(noseU, frontUR, noseR),
		NewPolygon(noseR, frontRD, noseD),
		NewPolygon(noseD, frontDL, noseL),

		NewPolygon(frontLU, bodyU, backLU, bodyL),
		NewPolygon(frontUR, bodyR, backUR, bodyU),
		NewPolygon(frontRD, bodyD, backRD, bodyR),
		NewPolygon(frontDL, bodyL, backDL, bodyD),
		NewPolygon(backLU, backUR, backRD, backDL),

		NewPolygon(lWingOuter, lWingInner, lWingRootS, lWingTrail),
		NewPolygon(rWingOuter, rWingInner, rWingRootS, rWingTrail),
	)
}

// NewProjectile builds a bolt from start to end with four splay lines
func NewProjectile(start, end Point, splay float64, countdown int) *Projectile {
	return &Projectile{
		Beam: NewPolygon(
			NewSegment(start, end),
			NewSegment(NewPoint(start.X+splay, start.Y, start.Z), end),
			NewSegment(NewPoint(start.X, start.Y+splay, start.Z), end),
			NewSegment(NewPoint(start.X-splay, start.Y, start.Z), end),
			NewSegment(NewPoint(start.X, start.Y-splay, start.Z), end),
		),
		Countdown: countdown,
	}
}
