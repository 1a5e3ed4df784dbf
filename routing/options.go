package routing

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ObstacleMode selects how a routed path is stored as an obstacle.
type ObstacleMode int

const (
	// SegmentObstacles stores every consecutive point pair of a routed path as
	// its own obstacle. Zero length pairs are not stored.
	SegmentObstacles ObstacleMode = iota
	// PathObstacles stores the whole routed path as a single polyline obstacle.
	PathObstacles
)

// String returns the string representation of an ObstacleMode.
func (m ObstacleMode) String() string {
	switch m {
	case SegmentObstacles:
		return "segments"
	case PathObstacles:
		return "paths"
	default:
		return "unknown"
	}
}

// ParseObstacleMode converts a string to an ObstacleMode.
func ParseObstacleMode(s string) (ObstacleMode, error) {
	switch s {
	case "segments", "segment", "":
		return SegmentObstacles, nil
	case "paths", "path":
		return PathObstacles, nil
	default:
		return 0, errors.Errorf("unknown obstacle mode: %s", s)
	}
}

// DetourPolicy selects the intermediate point of a detoured path.
type DetourPolicy int

const (
	// DetourThroughIntersection detours through the point where the direct line
	// meets the first blocking obstacle.
	DetourThroughIntersection DetourPolicy = iota
	// DetourThroughObstacleStart detours through the first vertex of the
	// blocking obstacle.
	DetourThroughObstacleStart
)

// String returns the string representation of a DetourPolicy.
func (d DetourPolicy) String() string {
	switch d {
	case DetourThroughIntersection:
		return "intersection"
	case DetourThroughObstacleStart:
		return "obstacle-start"
	default:
		return "unknown"
	}
}

// ParseDetourPolicy converts a string to a DetourPolicy.
func ParseDetourPolicy(s string) (DetourPolicy, error) {
	switch s {
	case "intersection", "":
		return DetourThroughIntersection, nil
	case "obstacle-start", "start":
		return DetourThroughObstacleStart, nil
	default:
		return 0, errors.Errorf("unknown detour policy: %s", s)
	}
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger used for per-request diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithEpsilon sets the coordinate tolerance. Non-positive values are ignored.
func WithEpsilon(eps float64) Option {
	return func(r *Router) {
		if eps > 0 {
			r.eps = eps
		}
	}
}

// WithObstacleMode sets how routed paths are recorded as obstacles.
func WithObstacleMode(mode ObstacleMode) Option {
	return func(r *Router) {
		r.mode = mode
	}
}

// WithDetourPolicy sets how the detour point is chosen.
func WithDetourPolicy(policy DetourPolicy) Option {
	return func(r *Router) {
		r.detour = policy
	}
}
