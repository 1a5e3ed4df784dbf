package geometry

import (
	"math"

	"wirepath/core"
)

// Kind tags the shape of an intersection result.
type Kind int

const (
	// NoIntersection means the shapes do not meet.
	NoIntersection Kind = iota
	// SinglePoint means the shapes meet at exactly one point.
	SinglePoint
	// MultiPoint means the shapes meet at several isolated points.
	MultiPoint
	// Unsupported means the shapes meet in something that is not a point set,
	// such as a collinear overlap.
	Unsupported
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case NoIntersection:
		return "NoIntersection"
	case SinglePoint:
		return "SinglePoint"
	case MultiPoint:
		return "MultiPoint"
	case Unsupported:
		return "Unsupported"
	default:
		return "Unknown"
	}
}

// Intersection is the result of intersecting a segment with another shape.
//
// For SinglePoint, Points holds one point. For MultiPoint, Points holds the
// distinct points in the order the other shape's segments were visited. For
// Unsupported, Points holds the ends of the offending overlap.
type Intersection struct {
	Kind   Kind
	Points []core.Point
}

// First returns the first intersection point when the result is point typed.
func (z Intersection) First() (core.Point, bool) {
	if !z.IsPoint() || len(z.Points) == 0 {
		return core.Point{}, false
	}
	return z.Points[0], true
}

// IsPoint reports whether the result is SinglePoint or MultiPoint.
func (z Intersection) IsPoint() bool {
	return z.Kind == SinglePoint || z.Kind == MultiPoint
}

func none() Intersection {
	return Intersection{Kind: NoIntersection}
}

func single(p core.Point) Intersection {
	return Intersection{Kind: SinglePoint, Points: []core.Point{p}}
}

// Intersect intersects two segments.
//
// Zero length segments are treated as points. Collinear segments that share a
// stretch of positive length yield Unsupported; collinear segments that only
// touch at an end yield that end as a SinglePoint.
func Intersect(a, b core.Segment, eps float64) Intersection {
	aDeg, bDeg := a.IsDegenerate(eps), b.IsDegenerate(eps)
	switch {
	case aDeg && bDeg:
		if a.Start.Equal(b.Start, eps) {
			return single(a.Start)
		}
		return none()
	case aDeg:
		if OnSegment(a.Start, b, eps) {
			return single(a.Start)
		}
		return none()
	case bDeg:
		if OnSegment(b.Start, a, eps) {
			return single(b.Start)
		}
		return none()
	}

	da, db := a.Vector(), b.Vector()
	lenA, lenB := a.Length(), b.Length()
	denom := Cross(da, db)
	w := b.Start.Sub(a.Start)

	// divide out the lengths, otherwise short segments always look parallel
	if math.Abs(denom) <= eps*lenA*lenB {
		onStart := math.Abs(Cross(w, da)) <= eps*lenA
		onEnd := math.Abs(Cross(b.End.Sub(a.Start), da)) <= eps*lenA
		if onStart && onEnd {
			return collinear(a, b, eps)
		}
		// nearly parallel long segments still cross when one end is off the line
		if denom == 0 {
			return none()
		}
	}

	ta := Cross(w, db) / denom
	tb := Cross(w, da) / denom
	if !inUnit(ta, eps/lenA) || !inUnit(tb, eps/lenB) {
		return none()
	}
	p := snap(Lerp(a, ta), eps, a.Start, a.End, b.Start, b.End)
	return single(p)
}

// collinear resolves two segments known to lie on the same line.
func collinear(a, b core.Segment, eps float64) Intersection {
	da := a.Vector()
	dd := Dot(da, da)
	t0 := Dot(b.Start.Sub(a.Start), da) / dd
	t1 := Dot(b.End.Sub(a.Start), da) / dd
	lo := math.Max(0, math.Min(t0, t1))
	hi := math.Min(1, math.Max(t0, t1))
	tEps := eps / a.Length()

	switch {
	case lo > hi+tEps:
		return none()
	case hi-lo <= tEps:
		return single(snap(Lerp(a, lo), eps, a.Start, a.End, b.Start, b.End))
	default:
		return Intersection{
			Kind: Unsupported,
			Points: []core.Point{
				snap(Lerp(a, lo), eps, a.Start, a.End, b.Start, b.End),
				snap(Lerp(a, hi), eps, a.Start, a.End, b.Start, b.End),
			},
		}
	}
}

func inUnit(t, eps float64) bool {
	return t >= -eps && t <= 1+eps
}

// IntersectPath intersects a segment with a polyline.
//
// The polyline's segments are visited in order. Any overlap makes the whole
// result Unsupported. Otherwise the distinct points found are returned in visit
// order, so a vertex shared by two crossed segments counts once.
func IntersectPath(candidate core.Segment, path []core.Point, eps float64) Intersection {
	if len(path) == 1 {
		return Intersect(candidate, core.Seg(path[0], path[0]), eps)
	}

	var points []core.Point
	for _, seg := range (core.RoutedPath{Points: path}).Segments() {
		z := Intersect(candidate, seg, eps)
		switch z.Kind {
		case Unsupported:
			return z
		case SinglePoint, MultiPoint:
			for _, p := range z.Points {
				if !containsPoint(points, p, eps) {
					points = append(points, p)
				}
			}
		}
	}

	switch len(points) {
	case 0:
		return none()
	case 1:
		return single(points[0])
	default:
		return Intersection{Kind: MultiPoint, Points: points}
	}
}

func containsPoint(points []core.Point, p core.Point, eps float64) bool {
	for _, q := range points {
		if q.Equal(p, eps) {
			return true
		}
	}
	return false
}
