// Package validation checks routed results for shape errors.
package validation

import (
	"fmt"

	"wirepath/core"
	"wirepath/geometry"
	"wirepath/routing"
)

// PathValidator validates that routed paths follow the detour rules: a direct
// two point line, or one detour point between the request endpoints.
type PathValidator struct {
	// Track validation errors
	errors []ValidationError
	// Options
	policy     routing.DetourPolicy
	eps        float64
	strictMode bool // Re-check undetoured paths against earlier wires
}

// ValidationError represents a validation error for one result.
type ValidationError struct {
	Index   int
	Request core.Request
	Context string
	Message string
}

// NewPathValidator creates a new validator with default settings.
func NewPathValidator() *PathValidator {
	return &PathValidator{
		policy: routing.DetourThroughIntersection,
		eps:    core.DefaultEpsilon,
	}
}

// SetDetourPolicy sets the policy the results were routed with.
func (v *PathValidator) SetDetourPolicy(policy routing.DetourPolicy) {
	v.policy = policy
}

// SetEpsilon sets the coordinate tolerance. Non-positive values are ignored.
func (v *PathValidator) SetEpsilon(eps float64) {
	if eps > 0 {
		v.eps = eps
	}
}

// SetStrictMode enables or disables strict validation. In strict mode every
// undetoured path is checked for a point crossing with the wires before it.
func (v *PathValidator) SetStrictMode(strict bool) {
	v.strictMode = strict
}

// Validate checks routed results in order. Rejected requests are only checked
// for having no path.
func (v *PathValidator) Validate(results []routing.Result) []ValidationError {
	v.errors = nil

	var drawn []core.Segment
	for _, res := range results {
		if res.Err != nil {
			if !res.Path.IsEmpty() {
				v.addError(res, "rejected", "rejected request has a path %s", res.Path)
			}
			continue
		}

		v.checkShape(res)
		if v.strictMode && !res.Path.Detoured() && len(res.Skipped) == 0 {
			v.checkUnblocked(res, drawn)
		}
		drawn = append(drawn, res.Path.Segments()...)
	}

	return v.errors
}

// checkShape validates the point count, endpoints and detour point of a path.
func (v *PathValidator) checkShape(res routing.Result) {
	pts := res.Path.Points
	if len(pts) != 2 && len(pts) != 3 {
		v.addError(res, "shape", "path has %d points, want 2 or 3", len(pts))
		return
	}

	if !pts[0].Equal(res.Request.Start, v.eps) {
		v.addError(res, "endpoint", "path starts at %s, want %s", pts[0], res.Request.Start)
	}
	if !pts[len(pts)-1].Equal(res.Request.End, v.eps) {
		v.addError(res, "endpoint", "path ends at %s, want %s", pts[len(pts)-1], res.Request.End)
	}

	if len(pts) == 3 {
		if res.Blocker == nil {
			v.addError(res, "detour", "detoured path has no blocker")
		}
		if v.policy == routing.DetourThroughIntersection &&
			!geometry.OnSegment(pts[1], res.Request.Segment(), v.eps) {
			v.addError(res, "detour", "detour point %s is off the direct line", pts[1])
		}
	} else if res.Blocker != nil {
		v.addError(res, "detour", "blocked path was not detoured")
	}
}

// checkUnblocked reports the first earlier wire that crosses a direct path.
func (v *PathValidator) checkUnblocked(res routing.Result, drawn []core.Segment) {
	direct := res.Request.Segment()
	for _, s := range drawn {
		if s.IsDegenerate(v.eps) {
			continue
		}
		z := geometry.Intersect(direct, s, v.eps)
		if z.IsPoint() {
			p, _ := z.First()
			v.addError(res, "crossing", "direct path crosses %s at %s", s, p)
			return
		}
	}
}

// addError adds a validation error.
func (v *PathValidator) addError(res routing.Result, context, format string, args ...interface{}) {
	v.errors = append(v.errors, ValidationError{
		Index:   res.Index,
		Request: res.Request,
		Context: context,
		Message: fmt.Sprintf(format, args...),
	})
}

// CheckResults validates results routed with the given detour policy.
func CheckResults(results []routing.Result, policy routing.DetourPolicy) []ValidationError {
	v := NewPathValidator()
	v.SetDetourPolicy(policy)
	return v.Validate(results)
}

// String formats validation errors as a string.
func (e ValidationError) String() string {
	return fmt.Sprintf("#%d %s [%s]: %s", e.Index, e.Request, e.Context, e.Message)
}

// Error implements error.
func (e ValidationError) Error() string {
	return e.String()
}
