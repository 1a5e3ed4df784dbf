package routing

import (
	"fmt"

	"github.com/pkg/errors"

	"wirepath/core"
	"wirepath/geometry"
)

// Common errors
var (
	ErrInvalidRequest          = core.ErrInvalidRequest
	ErrUnsupportedIntersection = errors.New("unsupported intersection geometry")
)

// RequestError reports a request the router refused to route.
// It matches ErrInvalidRequest with errors.Is.
type RequestError struct {
	Request core.Request
	Err     error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %s: %v", e.Request, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// UnsupportedIntersectionError describes an obstacle that was skipped during
// a blocker search because it met the candidate in something other than points.
// It matches ErrUnsupportedIntersection with errors.Is.
type UnsupportedIntersectionError struct {
	Obstacle     core.Obstacle
	Intersection geometry.Intersection
}

func (e *UnsupportedIntersectionError) Error() string {
	return fmt.Sprintf("obstacle %d: %v (%s)", e.Obstacle.Seq, ErrUnsupportedIntersection, e.Intersection.Kind)
}

func (e *UnsupportedIntersectionError) Unwrap() error {
	return ErrUnsupportedIntersection
}
