// Package routing turns a list of wire requests into routed paths. Each routed
// path becomes an obstacle for the requests after it; a request whose direct
// line meets an earlier wire is detoured through a single intermediate point.
package routing

import (
	"go.uber.org/zap"

	"wirepath/core"
	"wirepath/geometry"
)

// Blocker is the first obstacle a candidate segment runs into.
type Blocker struct {
	// Point is where the candidate meets the obstacle. For a multi point
	// intersection it is the first point found.
	Point    core.Point
	Obstacle core.Obstacle
	Kind     geometry.Kind
}

// Result is the outcome of routing one request.
type Result struct {
	Index   int
	Request core.Request
	Path    core.RoutedPath
	// Blocker is set when the path was detoured.
	Blocker *Blocker
	// Err is set when the request was rejected; Path is then empty.
	Err error
	// Skipped lists the obstacles passed over during the blocker search
	// because they met the direct line in something other than points.
	Skipped []error
}

// OK reports whether the request was routed.
func (r Result) OK() bool {
	return r.Err == nil
}

// Router owns the requests of one circuit and the obstacles drawn so far.
//
// Requests must be routed in order: each one sees only the obstacles left by
// the requests before it. A Router is not safe for concurrent use; give each
// independent circuit its own Router.
type Router struct {
	requests  []core.Request
	obstacles []core.Obstacle
	index     *obstacleIndex
	fullScan  bool

	eps    float64
	mode   ObstacleMode
	detour DetourPolicy
	logger *zap.Logger
}

// NewRouter creates a router for the given requests with an empty obstacle set.
func NewRouter(requests []core.Request, opts ...Option) *Router {
	r := &Router{
		requests: append([]core.Request(nil), requests...),
		eps:      core.DefaultEpsilon,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.index = newObstacleIndex(r.eps)
	return r
}

// Requests returns the requests the router was created with.
func (r *Router) Requests() []core.Request {
	return append([]core.Request(nil), r.requests...)
}

// Obstacles returns a copy of the obstacles recorded so far, in draw order.
func (r *Router) Obstacles() []core.Obstacle {
	out := make([]core.Obstacle, len(r.obstacles))
	for i, o := range r.obstacles {
		out[i] = core.Obstacle{Seq: o.Seq, Path: append([]core.Point(nil), o.Path...)}
	}
	return out
}

// Len returns the number of recorded obstacles.
func (r *Router) Len() int {
	return len(r.obstacles)
}

// FindFirstBlocker returns the earliest drawn obstacle that meets candidate at
// a point. Obstacles meeting it in an overlap are passed over. The router state
// is not modified.
func (r *Router) FindFirstBlocker(candidate core.Segment) (Blocker, bool) {
	b, ok, _ := r.findFirstBlocker(candidate)
	return b, ok
}

func (r *Router) findFirstBlocker(candidate core.Segment) (Blocker, bool, []error) {
	var skipped []error
	for _, seq := range r.candidates(candidate) {
		o := r.obstacles[seq]
		z := geometry.IntersectPath(candidate, o.Path, r.eps)
		switch z.Kind {
		case geometry.SinglePoint, geometry.MultiPoint:
			p, _ := z.First()
			hit := core.Obstacle{Seq: o.Seq, Path: append([]core.Point(nil), o.Path...)}
			return Blocker{Point: p, Obstacle: hit, Kind: z.Kind}, true, skipped
		case geometry.NoIntersection:
			continue
		default:
			err := &UnsupportedIntersectionError{Obstacle: o, Intersection: z}
			r.logger.Debug("skipping obstacle",
				zap.Int("obstacle", o.Seq),
				zap.Stringer("kind", z.Kind),
				zap.Error(err))
			skipped = append(skipped, err)
		}
	}
	return Blocker{}, false, skipped
}

// candidates returns the obstacles worth testing against the segment, in
// draw order. A failing index degrades to testing every obstacle.
func (r *Router) candidates(candidate core.Segment) []int {
	if !r.fullScan {
		seqs, err := r.index.candidates(candidate.Bounds())
		if err == nil {
			return seqs
		}
		r.logger.Warn("obstacle index lookup failed, scanning all obstacles", zap.Error(err))
	}
	seqs := make([]int, len(r.obstacles))
	for i := range seqs {
		seqs[i] = i
	}
	return seqs
}

// RouteRequest routes a single request against the obstacles drawn so far and
// records the resulting path as new obstacles.
//
// A request whose endpoints coincide, or that has non finite coordinates, is
// rejected with a *RequestError and leaves the router state untouched.
func (r *Router) RouteRequest(req core.Request) (core.RoutedPath, error) {
	res := r.route(-1, req)
	return res.Path, res.Err
}

// RouteAll routes every owned request in input order and returns one result
// per request. A rejected request does not stop the batch.
func (r *Router) RouteAll() []Result {
	results := make([]Result, 0, len(r.requests))
	for i, req := range r.requests {
		results = append(results, r.route(i, req))
	}
	return results
}

func (r *Router) route(index int, req core.Request) Result {
	res := Result{Index: index, Request: req}
	r.logger.Debug("drawing",
		zap.Int("index", index),
		zap.Stringer("from", req.Start),
		zap.Stringer("to", req.End))

	if err := r.validate(req); err != nil {
		r.logger.Info("request rejected", zap.Int("index", index), zap.Error(err))
		res.Err = err
		return res
	}

	direct := req.Segment()
	blocker, found, skipped := r.findFirstBlocker(direct)
	res.Skipped = skipped

	if !found {
		res.Path = core.RoutedPath{Points: []core.Point{req.Start, req.End}}
	} else {
		detour := blocker.Point
		if r.detour == DetourThroughObstacleStart {
			detour = blocker.Obstacle.Path[0]
		}
		res.Path = core.RoutedPath{Points: []core.Point{req.Start, detour, req.End}}
		res.Blocker = &blocker
		r.logger.Debug("detoured",
			zap.Int("index", index),
			zap.Int("blocker", blocker.Obstacle.Seq),
			zap.Stringer("via", detour))
	}

	r.record(res.Path)
	return res
}

func (r *Router) validate(req core.Request) error {
	if err := req.Validate(r.eps); err != nil {
		return &RequestError{Request: req, Err: err}
	}
	return nil
}

// record appends the path to the obstacle set according to the obstacle mode.
func (r *Router) record(path core.RoutedPath) {
	switch r.mode {
	case PathObstacles:
		r.add(append([]core.Point(nil), path.Points...))
	default:
		for _, s := range path.Segments() {
			if s.IsDegenerate(r.eps) {
				continue
			}
			r.add([]core.Point{s.Start, s.End})
		}
	}
}

func (r *Router) add(points []core.Point) {
	o := core.Obstacle{Seq: len(r.obstacles), Path: points}
	r.obstacles = append(r.obstacles, o)
	if err := r.index.insert(o); err != nil {
		r.logger.Warn("obstacle not indexed, falling back to full scans", zap.Int("obstacle", o.Seq), zap.Error(err))
		r.fullScan = true
	}
}
