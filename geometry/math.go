// Package geometry implements the planar math the router relies on: vector
// helpers and segment intersection.
package geometry

import (
	"math"

	"wirepath/core"
)

// Cross returns the z component of the cross product of a and b.
func Cross(a, b core.Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Dot returns the dot product of a and b.
func Dot(a, b core.Point) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Lerp returns the point at parameter t along the segment.
func Lerp(s core.Segment, t float64) core.Point {
	return s.Start.Add(s.Vector().Scale(t))
}

// OnSegment reports whether p lies on s within eps.
func OnSegment(p core.Point, s core.Segment, eps float64) bool {
	if s.IsDegenerate(eps) {
		return p.Equal(s.Start, eps)
	}
	v := s.Vector()
	w := p.Sub(s.Start)
	length := s.Length()
	if math.Abs(Cross(v, w)) > eps*length {
		return false
	}
	d := Dot(v, w)
	return d >= -eps*length && d <= length*length+eps*length
}

// snap returns the first candidate within eps of p, or p itself.
// Endpoint hits then come out exact instead of carrying rounding noise.
func snap(p core.Point, eps float64, candidates ...core.Point) core.Point {
	for _, c := range candidates {
		if p.Equal(c, eps) {
			return c
		}
	}
	return p
}
