package sim

import "math"

// Autopilot is a scripted Input that turns the view toward the closest ship
// and fires once it sits under the crosshair. Call Update once per tick
// before passing it to Tick.
type Autopilot struct {
	sim  *Simulation
	held KeySet

	// Tolerance is the view-space slope under which the target counts as
	// centred on an axis
	Tolerance float64
}

// NewAutopilot creates an autopilot flying sim
func NewAutopilot(sim *Simulation) *Autopilot {
	return &Autopilot{sim: sim, held: KeySet{}, Tolerance: 0.02}
}

// Held implements Input
func (a *Autopilot) Held(k Key) bool {
	return a.held[k]
}

// Update chooses the keys for the coming tick
func (a *Autopilot) Update() {
	clear(a.held)

	target, ok := a.closest()
	if !ok {
		return
	}
	n := target.Nose()
	if n.Z <= 0 {
		// behind us: keep yawing until it comes round
		a.held[KeyYawRight] = true
		return
	}

	sx, sy := n.X/n.Z, n.Y/n.Z
	switch {
	case sx > a.Tolerance:
		a.held[KeyYawRight] = true
	case sx < -a.Tolerance:
		a.held[KeyYawLeft] = true
	}
	switch {
	case sy > a.Tolerance:
		a.held[KeyPitchUp] = true
	case sy < -a.Tolerance:
		a.held[KeyPitchDown] = true
	}
	if math.Abs(sx) <= a.Tolerance && math.Abs(sy) <= a.Tolerance {
		a.held[KeyFire] = true
	}
}

func (a *Autopilot) closest() (*Ship, bool) {
	var (
		best     *Ship
		bestDist = math.Inf(1)
	)
	for _, s := range a.sim.World().Ships() {
		if d := s.Nose().Vec().Len(); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best, best != nil
}
