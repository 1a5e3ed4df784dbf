// Package core contains the fundamental types used throughout the wirepath router.
package core

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// DefaultEpsilon is the coordinate tolerance used when none is configured.
const DefaultEpsilon = 1e-9

// ErrInvalidRequest is matched by every error returned from Request.Validate.
var ErrInvalidRequest = errors.New("invalid request")

// InvalidRequestError gives the reason a request cannot be routed.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidRequest, e.Reason)
}

func (e *InvalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

// Point represents a 2D coordinate on the schematic plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Equal reports whether p and q are within eps of each other on both axes.
func (p Point) Equal(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

// String returns the point as "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Segment is a straight wire, or an obstacle left behind by one.
type Segment struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Seg is shorthand for a segment between two points.
func Seg(start, end Point) Segment {
	return Segment{Start: start, End: end}
}

// Vector returns End-Start.
func (s Segment) Vector() Point {
	return s.End.Sub(s.Start)
}

// Length returns the euclidean length of the segment.
func (s Segment) Length() float64 {
	v := s.Vector()
	return math.Hypot(v.X, v.Y)
}

// IsDegenerate reports whether both ends coincide within eps.
func (s Segment) IsDegenerate(eps float64) bool {
	return s.Start.Equal(s.End, eps)
}

// Bounds returns the axis aligned bounding box of the segment.
func (s Segment) Bounds() Bounds {
	return BoundsOf(s.Start, s.End)
}

// String returns the segment as "(x1, y1) -> (x2, y2)".
func (s Segment) String() string {
	return fmt.Sprintf("%s -> %s", s.Start, s.End)
}

// Request describes a wire to draw, before any rerouting.
type Request struct {
	Start Point `json:"from"`
	End   Point `json:"to"`
}

// Segment returns the direct segment between the request endpoints.
func (r Request) Segment() Segment {
	return Segment{Start: r.Start, End: r.End}
}

// Validate checks that every coordinate is finite and that the endpoints are
// more than eps apart. Errors are *InvalidRequestError.
func (r Request) Validate(eps float64) error {
	for _, v := range []float64{r.Start.X, r.Start.Y, r.End.X, r.End.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &InvalidRequestError{Reason: "coordinates must be finite"}
		}
	}
	if r.Segment().IsDegenerate(eps) {
		return &InvalidRequestError{Reason: "start equals end"}
	}
	return nil
}

// String returns the request as "(x1, y1) -> (x2, y2)".
func (r Request) String() string {
	return r.Segment().String()
}

// RoutedPath is the path actually drawn for a request. It holds the two request
// endpoints, or three points when a detour was inserted.
type RoutedPath struct {
	Points []Point `json:"points"`
}

// IsEmpty returns true if the path has no points.
func (p RoutedPath) IsEmpty() bool {
	return len(p.Points) == 0
}

// Detoured reports whether the path passes through an intermediate point.
func (p RoutedPath) Detoured() bool {
	return len(p.Points) > 2
}

// Segments returns the consecutive point pairs of the path.
func (p RoutedPath) Segments() []Segment {
	if len(p.Points) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(p.Points)-1)
	for i := 0; i < len(p.Points)-1; i++ {
		segs = append(segs, Segment{Start: p.Points[i], End: p.Points[i+1]})
	}
	return segs
}

// String returns the points joined by arrows.
func (p RoutedPath) String() string {
	if p.IsEmpty() {
		return "empty path"
	}
	s := p.Points[0].String()
	for _, pt := range p.Points[1:] {
		s += " -> " + pt.String()
	}
	return s
}

// Obstacle is a previously routed wire that later requests must respect.
// Seq is its position in draw order.
type Obstacle struct {
	Seq  int     `json:"seq"`
	Path []Point `json:"path"`
}

// Bounds returns the bounding box of the obstacle.
func (o Obstacle) Bounds() Bounds {
	return BoundsOf(o.Path...)
}

// Bounds represents a rectangular area.
type Bounds struct {
	Min, Max Point
}

// BoundsOf returns the smallest bounds containing every given point.
// The zero Bounds is returned for no points.
func BoundsOf(points ...Point) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

// Width returns the width of the bounds.
func (b Bounds) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the height of the bounds.
func (b Bounds) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Expand grows the bounds by d on every side.
func (b Bounds) Expand(d float64) Bounds {
	return Bounds{
		Min: Point{X: b.Min.X - d, Y: b.Min.Y - d},
		Max: Point{X: b.Max.X + d, Y: b.Max.Y + d},
	}
}
