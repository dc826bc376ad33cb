package sim

// Surface is a 2D drawing target. Coordinates are relative to the surface
// centre with x to the right and y downward. Implementations must ignore
// any call carrying a non-finite coordinate.
type Surface interface {
	// Size returns the surface width and height
	Size() (w, h float64)
	Clear()
	PlotPoint(x, y float64)
	StrokeLine(x1, y1, x2, y2 float64)
	FillDisc(x, y, r float64)
	DrawText(s string, x, y float64)
}

// Placeable reports whether every coordinate can be placed on a surface.
func Placeable(coords ...float64) bool {
	for _, c := range coords {
		if !finite(c) {
			return false
		}
	}
	return true
}

// TextMetrics is implemented by surfaces whose text rows are not the default
// height apart.
type TextMetrics interface {
	LineHeight() float64
}
