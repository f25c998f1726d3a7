// Package svg renders layout drawing instructions into an SVG document.
package svg

import (
	"fmt"
	"io"

	svgo "github.com/ajstarks/svgo/float"
)

// Canvas implements layout.Canvas on top of an SVG writer. User units are
// millimeters, so the engine's coordinates pass through unchanged.
type Canvas struct {
	doc *svgo.SVG
}

// New starts an SVG document of the given physical size in millimeters.
func New(w io.Writer, widthMM, heightMM float64) *Canvas {
	doc := svgo.New(w)
	doc.Startunit(widthMM, heightMM, "mm",
		fmt.Sprintf(`viewBox="0 0 %g %g"`, widthMM, heightMM))
	return &Canvas{doc: doc}
}

// Line draws a straight line between two points.
func (c *Canvas) Line(x1, y1, x2, y2 float64, attrs string) {
	c.doc.Line(x1, y1, x2, y2, attrs)
}

// Rect draws a rectangle from its top-left corner.
func (c *Canvas) Rect(x, y, w, h float64, attrs string) {
	c.doc.Rect(x, y, w, h, attrs)
}

// Text draws a single line of text; the writer escapes XML metacharacters.
func (c *Canvas) Text(x, y float64, s string, attrs string) {
	c.doc.Text(x, y, s, attrs)
}

// Path draws a path from pre-computed path data.
func (c *Canvas) Path(d string, attrs string) {
	c.doc.Path(d, attrs)
}

// Close finishes the document. No drawing may follow.
func (c *Canvas) Close() {
	c.doc.End()
}
