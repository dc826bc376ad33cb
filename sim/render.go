package sim

import "fmt"

// defaultLineHeight separates text rows on surfaces without TextMetrics
const defaultLineHeight = 20

func lineHeight(surface Surface) float64 {
	if m, ok := surface.(TextMetrics); ok {
		return m.LineHeight()
	}
	return defaultLineHeight
}

// enemyCountLine is the instruction row carrying the enemy count
const enemyCountLine = 8

var startLines = []string{
	"Use Q and E to move your ship up and down.",
	"Use W and S to move your ship forward and back.",
	"Use A and D to move your ship left and right.",
	"Use U and O to spin your ship left and right.",
	"Use I and K to turn your ship up and down.",
	"Use J and L to turn your ship left and right.",
	"Use the spacebar to shoot a missile.",
	"Hit an enemy ship with a missile to destroy it.",
	"Destroy all %d of the enemy ships to win!",
	"Dodge the enemies. If one rams into you, you lose.",
	"Watch out for enemies behind you!",
	"The number of ships you killed is in the bottom left corner.",
	"",
	"Click to start.",
}

// KillText is the HUD line showing the kill counter
func KillText(kills int) string {
	return fmt.Sprintf("Enemy ships destroyed: %d", kills)
}

// Render draws the frame for the current phase: the instructions before the
// run, the scene while running and the outcome screen afterwards.
func (s *Simulation) Render(surface Surface) {
	surface.Clear()
	switch s.phase {
	case PhaseAwaitingStart:
		s.renderStart(surface)
	case PhaseRunning:
		s.renderScene(surface)
	case PhaseWon:
		s.renderOutcome(surface, "YOU WIN!")
	case PhaseLost:
		s.renderOutcome(surface, "YOU LOSE!")
	}
}

func (s *Simulation) renderScene(surface Surface) {
	// crosshair
	surface.StrokeLine(-10, 0, 10, 0)
	surface.StrokeLine(0, -10, 0, 10)

	s.world.Draw(s.proj, surface)

	w, h := surface.Size()
	surface.DrawText(KillText(s.kills), -w/2, h/2-lineHeight(surface))
}

func (s *Simulation) renderStart(surface Surface) {
	w, h := surface.Size()
	x, y := -w/2, -h/2
	lh := lineHeight(surface)
	for i, line := range startLines {
		y += lh
		if line == "" {
			continue
		}
		if i == enemyCountLine {
			line = fmt.Sprintf(line, s.initialShips)
		}
		surface.DrawText(line, x, y)
	}
}

func (s *Simulation) renderOutcome(surface Surface, banner string) {
	w, h := surface.Size()
	lh := lineHeight(surface)
	surface.DrawText(banner, -w/2, -h/2+lh)
	surface.DrawText(KillText(s.kills), -w/2, -h/2+2*lh)
}
