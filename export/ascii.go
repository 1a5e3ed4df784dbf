package export

import (
	"math"

	"github.com/pkg/errors"

	"wirepath/canvas"
	"wirepath/core"
	"wirepath/routing"
)

// Default plot size in character cells.
const (
	DefaultCanvasWidth  = 80
	DefaultCanvasHeight = 24
)

// ASCIIExporter plots routed wires onto a character grid
type ASCIIExporter struct {
	width, height int
}

// NewASCIIExporter creates a new ASCII exporter with the given grid size
func NewASCIIExporter(width, height int) *ASCIIExporter {
	return &ASCIIExporter{width: width, height: height}
}

// Export plots the routed paths of the report
func (e *ASCIIExporter) Export(r *Report) (string, error) {
	if r == nil {
		return "", errors.New("report is nil")
	}

	c, err := Plot(r.Results, e.width, e.height)
	if err != nil {
		return "", errors.Wrap(err, "failed to plot circuit")
	}
	return c.String() + "\n", nil
}

// GetFileExtension returns the recommended file extension
func (e *ASCIIExporter) GetFileExtension() string {
	return ".txt"
}

// GetFormatName returns the format name
func (e *ASCIIExporter) GetFormatName() string {
	return "ASCII/Unicode Plot"
}

// Plot draws every routed path onto a new canvas of the given size. The
// circuit's bounding box is stretched over the whole grid with Y pointing up.
// Endpoints are marked with canvas.MarkEndpoint and detour points with
// canvas.MarkDetour. Rejected requests are not drawn.
func Plot(results []routing.Result, width, height int) (*canvas.MatrixCanvas, error) {
	return PlotFirst(results, len(results), width, height)
}

// PlotFirst is Plot restricted to the first n results. The grid is scaled to
// the whole circuit so that successive frames line up.
func PlotFirst(results []routing.Result, n, width, height int) (*canvas.MatrixCanvas, error) {
	c, err := canvas.NewMatrixCanvas(width, height)
	if err != nil {
		return nil, err
	}

	var points []core.Point
	for _, res := range results {
		points = append(points, res.Path.Points...)
	}
	if len(points) == 0 {
		return c, nil
	}
	v := newViewport(core.BoundsOf(points...), width, height)

	if n < 0 {
		n = 0
	}
	if n < len(results) {
		results = results[:n]
	}

	for _, res := range results {
		for _, s := range res.Path.Segments() {
			c.DrawLine(v.cell(s.Start), v.cell(s.End))
		}
	}

	// markers go last so that lines never hide them
	for _, res := range results {
		pts := res.Path.Points
		for i, p := range pts {
			mark := canvas.MarkDetour
			if i == 0 || i == len(pts)-1 {
				mark = canvas.MarkEndpoint
			}
			cell := v.cell(p)
			if c.Get(cell) == canvas.MarkEndpoint {
				continue
			}
			c.Mark(cell, mark)
		}
	}

	return c, nil
}

// viewport maps schematic coordinates to canvas cells.
type viewport struct {
	bounds        core.Bounds
	width, height int
}

func newViewport(b core.Bounds, width, height int) viewport {
	return viewport{bounds: b, width: width, height: height}
}

func (v viewport) cell(p core.Point) canvas.Cell {
	return canvas.Cell{
		X: scale(p.X-v.bounds.Min.X, v.bounds.Width(), v.width),
		Y: scale(v.bounds.Max.Y-p.Y, v.bounds.Height(), v.height),
	}
}

// scale maps offset in [0, span] onto [0, cells-1]. A zero span centres.
func scale(offset, span float64, cells int) int {
	if span == 0 {
		return (cells - 1) / 2
	}
	return int(math.Round(offset / span * float64(cells-1)))
}
