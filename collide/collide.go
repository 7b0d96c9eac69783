package collide

import (
	"github.com/edaniels/golog"

	"go.viam.com/collide/geom"
	"go.viam.com/collide/narrowphase"
	"go.viam.com/collide/xform"
)

// Solver bundles a narrow-phase implementation with a logger, mirroring
// how the teacher's component constructors carry a golog.Logger alongside
// their actual work. A zero-value Solver falls back to GJKSolver and
// golog.Global() at call time.
type Solver struct {
	NarrowPhase narrowphase.Solver
	Logger      golog.Logger
}

// NewSolver builds a Solver with the reference GJK narrow phase.
func NewSolver(logger golog.Logger) *Solver {
	if logger == nil {
		logger = golog.Global()
	}
	return &Solver{NarrowPhase: narrowphase.GJKSolver{}, Logger: logger}
}

// Collide is the package's single external entry point: it premultiplies
// each operand by its transform, picks a traversal strategy via the
// category dispatch in matrix.go, and drives it to a CollisionResult.
func (s *Solver) Collide(g1 geom.Geometry, tf1 xform.Pose, g2 geom.Geometry, tf2 xform.Pose, req CollisionRequest) (*CollisionResult, error) {
	if g1 == nil || g2 == nil {
		return nil, ErrInvalidGeometry
	}
	a := g1.Transform(tf1)
	b := g2.Transform(tf2)

	solver := s.NarrowPhase
	if solver == nil {
		solver = narrowphase.GJKSolver{}
	}

	n, err := dispatch(a, b, solver)
	if err != nil {
		s.logger().Debugw("collide: dispatch failed", "a", a.Kind(), "b", b.Kind(), "error", err)
		return nil, err
	}

	result, err := drive(n, req)
	if err != nil {
		s.logger().Debugw("collide: traversal failed", "a", a.Kind(), "b", b.Kind(), "error", err)
		return nil, err
	}

	if req.EnableCost && req.UseApproximateCost {
		if err := s.addCostSources(a, b, result, req); err != nil {
			return nil, err
		}
	}

	s.logger().Debugw("collide: done", "a", a.Kind(), "b", b.Kind(), "contacts", len(result.Contacts))
	return result, nil
}

// Collide is the package-level convenience wrapper most callers want: a
// fresh Solver using golog.Global() and the reference GJK narrow phase.
func Collide(g1 geom.Geometry, tf1 xform.Pose, g2 geom.Geometry, tf2 xform.Pose, req CollisionRequest) (*CollisionResult, error) {
	return NewSolver(nil).Collide(g1, tf1, g2, tf2, req)
}

func (s *Solver) logger() golog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return golog.Global()
}

// addCostSources implements §4.5's cost-approximation path: when a BVH
// mesh or octree participates and the request asks for costs, the root
// bound (or the tree's bounding cube) is reported as a single CostSource
// carrying the geometry's cost density, rather than descending to every
// leaf — mirroring BVHShapeCollider::collide's enable_cost &&
// use_approximate_cost branch, which builds one Box from the root BV.
func (s *Solver) addCostSources(a, b geom.Geometry, result *CollisionResult, req CollisionRequest) error {
	for _, g := range [2]geom.Geometry{a, b} {
		if !(g.Kind().IsMesh() || g.Kind().IsOctree()) || g.CostDensity() == 0 {
			continue
		}
		min, max := g.AABB()
		ext := max.Sub(min)
		volume := ext.X * ext.Y * ext.Z
		result.addCostSource(req, CostSource{
			Min:         min,
			Max:         max,
			CostDensity: g.CostDensity(),
			TotalCost:   g.CostDensity() * volume,
		})
	}
	return nil
}
