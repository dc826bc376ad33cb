package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"wirestrike/sim"
)

var _ sim.Surface = (*Renderer)(nil)

var (
	colorBackground = color.Black
	colorWire       = color.White
	colorExplosion  = color.RGBA{255, 200, 80, 255}
	colorText       = color.White
)

// Renderer is the ebiten-backed drawing surface. Bind it to the frame's
// screen image before handing it to the simulation.
type Renderer struct {
	screen *ebiten.Image
	face   *text.GoXFace
	width  float64
	height float64
}

// NewRenderer creates a renderer for a screen of the given size
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		face:   text.NewGoXFace(basicfont.Face7x13),
		width:  float64(width),
		height: float64(height),
	}
}

// Bind sets the image the next draw calls target
func (r *Renderer) Bind(screen *ebiten.Image) {
	r.screen = screen
}

// toScreen converts centre-origin coordinates to pixel coordinates
func (r *Renderer) toScreen(x, y float64) (float32, float32) {
	return float32(x + r.width/2), float32(y + r.height/2)
}

func (r *Renderer) Size() (float64, float64) {
	return r.width, r.height
}

func (r *Renderer) Clear() {
	r.screen.Fill(colorBackground)
}

func (r *Renderer) PlotPoint(x, y float64) {
	if !sim.Placeable(x, y) {
		return
	}
	sx, sy := r.toScreen(x, y)
	vector.DrawFilledRect(r.screen, sx, sy, 1, 1, colorWire, false)
}

func (r *Renderer) StrokeLine(x1, y1, x2, y2 float64) {
	if !sim.Placeable(x1, y1, x2, y2) {
		return
	}
	sx1, sy1 := r.toScreen(x1, y1)
	sx2, sy2 := r.toScreen(x2, y2)
	vector.StrokeLine(r.screen, sx1, sy1, sx2, sy2, 1, colorWire, true)
}

func (r *Renderer) FillDisc(x, y, radius float64) {
	if !sim.Placeable(x, y, radius) || radius <= 0 {
		return
	}
	sx, sy := r.toScreen(x, y)
	vector.DrawFilledCircle(r.screen, sx, sy, float32(radius), colorExplosion, true)
}

// DrawText draws s with its baseline at y
func (r *Renderer) DrawText(s string, x, y float64) {
	if !sim.Placeable(x, y) {
		return
	}
	sx, sy := r.toScreen(x, y)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(sx), float64(sy)-r.face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(colorText)
	text.Draw(r.screen, s, r.face, op)
}
