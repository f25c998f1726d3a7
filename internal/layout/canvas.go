// Package layout computes the printable geometry of a QR-bill and emits
// drawing instructions against a minimal vector canvas. All coordinates are
// millimeters, fully resolved before they reach the canvas; the engine
// performs no I/O and holds no state across invocations.
package layout

// Canvas is the capability interface the engine draws against. The attrs
// string carries raw presentation attributes (fill, stroke, font, transform)
// so the engine never depends on a drawing backend's default styling.
type Canvas interface {
	// Line draws a straight line between two points.
	Line(x1, y1, x2, y2 float64, attrs string)

	// Rect draws an axis-aligned rectangle from its top-left corner.
	Rect(x, y, w, h float64, attrs string)

	// Text draws a single line of text with the given baseline start point.
	Text(x, y float64, s string, attrs string)

	// Path draws an SVG-style path from fully computed path data.
	Path(d string, attrs string)
}

// FontMetrics is the external lookup resolving rendered text width.
type FontMetrics interface {
	// TextWidth returns the width in millimeters of s rendered at the given
	// font size in points.
	TextWidth(s string, sizePt float64) float64
}
