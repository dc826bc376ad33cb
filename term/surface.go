// Package term runs the simulation in a terminal through tcell.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"wirestrike/sim"
)

var _ sim.Surface = (*Surface)(nil)

// Surface rasterises draw calls onto a tcell screen. A terminal cell is
// roughly twice as tall as it is wide, so one row spans two surface units.
type Surface struct {
	screen tcell.Screen

	PointStyle tcell.Style
	LineStyle  tcell.Style
	DiscStyle  tcell.Style
	TextStyle  tcell.Style
}

// NewSurface wraps screen
func NewSurface(screen tcell.Screen) *Surface {
	return &Surface{
		screen:     screen,
		PointStyle: tcell.StyleDefault.Foreground(tcell.ColorWhite),
		LineStyle:  tcell.StyleDefault.Foreground(tcell.ColorGreen),
		DiscStyle:  tcell.StyleDefault.Foreground(tcell.ColorOrange),
		TextStyle:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
	}
}

func (s *Surface) Size() (float64, float64) {
	cols, rows := s.screen.Size()
	return float64(cols), float64(2 * rows)
}

// LineHeight puts consecutive text lines on consecutive rows
func (s *Surface) LineHeight() float64 {
	return 2
}

func (s *Surface) Clear() {
	s.screen.Clear()
}

// cell maps surface coordinates to a column and row
func (s *Surface) cell(x, y float64) (int, int) {
	cols, rows := s.screen.Size()
	return int(math.Floor(x + float64(cols)/2)), int(math.Floor((y + float64(rows)) / 2))
}

func (s *Surface) set(col, row int, r rune, style tcell.Style) {
	cols, rows := s.screen.Size()
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}
	s.screen.SetContent(col, row, r, nil, style)
}

func (s *Surface) PlotPoint(x, y float64) {
	if !sim.Placeable(x, y) {
		return
	}
	col, row := s.cell(x, y)
	s.set(col, row, '.', s.PointStyle)
}

func (s *Surface) StrokeLine(x1, y1, x2, y2 float64) {
	if !sim.Placeable(x1, y1, x2, y2) {
		return
	}
	w, h := s.Size()
	x1, y1, x2, y2, ok := clipLine(x1, y1, x2, y2, -w/2, -h/2, w/2, h/2)
	if !ok {
		return
	}
	c1, r1 := s.cell(x1, y1)
	c2, r2 := s.cell(x2, y2)
	bresenham(c1, r1, c2, r2, func(col, row int) {
		s.set(col, row, '*', s.LineStyle)
	})
}

func (s *Surface) FillDisc(x, y, r float64) {
	if !sim.Placeable(x, y, r) {
		return
	}
	w, h := s.Size()
	if x+r < -w/2 || x-r > w/2 || y+r < -h/2 || y-r > h/2 {
		return
	}
	cols, rows := s.screen.Size()
	c0, r0 := s.cell(x-r, y-r)
	c1, r1 := s.cell(x+r, y+r)
	c0, c1 = max(c0, 0), min(c1, cols-1)
	r0, r1 = max(r0, 0), min(r1, rows-1)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			cx := float64(col) - float64(cols)/2 + 0.5
			cy := float64(2*row) - float64(rows) + 1
			if math.Hypot(cx-x, cy-y) <= r {
				s.set(col, row, '@', s.DiscStyle)
			}
		}
	}
	col, row := s.cell(x, y)
	s.set(col, row, '@', s.DiscStyle)
}

// DrawText writes s with its baseline on the row just above y
func (s *Surface) DrawText(text string, x, y float64) {
	if !sim.Placeable(x, y) {
		return
	}
	col, row := s.cell(x, y-1)
	for _, r := range text {
		s.set(col, row, r, s.TextStyle)
		col++
	}
}

// Show flushes the frame to the terminal
func (s *Surface) Show() {
	s.screen.Show()
}

// clipLine clips a segment to the rectangle using Liang-Barsky
func clipLine(x1, y1, x2, y2, minX, minY, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	dx, dy := x2-x1, y2-y1
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x1 - minX},
		{dx, maxX - x1},
		{-dy, y1 - minY},
		{dy, maxY - y1},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x1 + t0*dx, y1 + t0*dy, x1 + t1*dx, y1 + t1*dy, true
}

func bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
