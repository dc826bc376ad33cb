package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

// recordingSurface keeps every draw call for inspection
type recordingSurface struct {
	w, h   float64
	clears int
	points [][2]float64
	lines  [][4]float64
	discs  [][3]float64
	texts  []string
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{w: 800, h: 600}
}

func (r *recordingSurface) Size() (float64, float64) { return r.w, r.h }
func (r *recordingSurface) Clear()                   { r.clears++ }
func (r *recordingSurface) PlotPoint(x, y float64) {
	r.points = append(r.points, [2]float64{x, y})
}
func (r *recordingSurface) StrokeLine(x1, y1, x2, y2 float64) {
	r.lines = append(r.lines, [4]float64{x1, y1, x2, y2})
}
func (r *recordingSurface) FillDisc(x, y, rad float64) {
	r.discs = append(r.discs, [3]float64{x, y, rad})
}
func (r *recordingSurface) DrawText(s string, _, _ float64) {
	r.texts = append(r.texts, s)
}

// testConfig is the default tuning with a sparse starfield so tests stay fast
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.StarCount = 50
	return cfg
}

func newTestSimulation(t *testing.T, cfg Config, seed int64, enemies int) *Simulation {
	t.Helper()
	s, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Initialize(seed, enemies))
	return s
}

func newTestSteering(cfg Config) *Steering {
	return NewSteering(cfg, rand.New(rand.NewSource(1)))
}

// angleBetween returns the angle in radians between a and b
func angleBetween(a, b mgl64.Vec3) float64 {
	c := a.Normalize().Dot(b.Normalize())
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

// placeNose moves a ship so its nose sits at p
func placeNose(s *Ship, p Point) {
	n := s.Nose()
	s.Translate(p.X-n.X, p.Y-n.Y, p.Z-n.Z)
}
