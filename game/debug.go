package game

import (
	"fmt"

	"wirestrike/sim"
)

// DebugState holds debug flags that persist across restarts
type DebugState struct {
	ShowOverlay bool // Show tick, entity counts and velocity buffer
}

// debugLines describes the simulation state for the overlay
func debugLines(s *sim.Simulation, tps float64) []string {
	w := s.World()
	v := s.Velocity()
	st := s.Status()
	return []string{
		fmt.Sprintf("TPS %.1f  tick %d  phase %s", tps, st.Tick, st.Phase),
		fmt.Sprintf("ships %d/%d  bolts %d  effects %d  stars %d",
			w.Count(sim.KindShip), s.InitialShips(),
			w.Count(sim.KindProjectile), w.Count(sim.KindEffect), w.Count(sim.KindStar)),
		fmt.Sprintf("move  %+.3f %+.3f %+.3f", v.TX, v.TY, v.TZ),
		fmt.Sprintf("turn  %+.4f %+.4f %+.4f", v.RX, v.RY, v.RZ),
		fmt.Sprintf("sum   %016x", s.Checksum()),
		fmt.Sprintf("run   %s", s.RunID()),
	}
}
