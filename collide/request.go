// Package collide is the dispatch-and-traversal kernel: given two
// collision operands (shapes, BVH meshes, or octrees) it picks the right
// traversal strategy via a category dispatch over NodeKind, grounded on
// original_source/include/fcl/collision_func_matrix.h, and drives it with
// the recursive node protocol FCL's CollisionTraversalNode hierarchy uses.
package collide

import (
	"github.com/golang/geo/r3"

	"go.viam.com/collide/geom"
)

// noPrimitiveIndex is the primitive_index1/2 value reported when that side
// of a Contact isn't a mesh (a bare shape or an octree voxel).
const noPrimitiveIndex = -1

// Contact is one point of contact found during a collision query, the Go
// realization of spec.md §3's {geom1, geom2, primitive_index1,
// primitive_index2, position, normal, penetration_depth} record.
type Contact struct {
	// Geom1/Geom2 are the two (already-transformed) operands passed to
	// Collide, in their original order.
	Geom1, Geom2 geom.Geometry

	// Index1/Index2 are the triangle index within Geom1/Geom2 when that
	// operand is a BVH mesh, or noPrimitiveIndex otherwise.
	Index1, Index2 int

	// Position is a representative world-space contact point.
	Position r3.Vector

	// Normal points from Geom2 toward Geom1; swapping operand order
	// flips its sign.
	Normal r3.Vector

	PenetrationDepth float64
}

// CostSource attributes a cost density to a sub-region of one of the two
// operands, populated when the request asks for costs and the dispatch
// matrix takes the cost-approximation path (see §4.5).
type CostSource struct {
	Min, Max    r3.Vector
	CostDensity float64

	// TotalCost is CostDensity integrated over the AABB's volume, per
	// spec.md §3's CostSource.total_cost.
	TotalCost float64
}

// CollisionRequest configures a Collide call.
type CollisionRequest struct {
	// EnableContact asks leaf tests to populate Position/Normal on
	// Contacts; when false, only the boolean/depth outcome is recorded
	// and the narrow-phase solver skips computing witness points.
	EnableContact bool

	// CollisionBuffer is added to the shapes' surfaces before testing;
	// negative values require penetration before reporting a collision.
	CollisionBuffer float64

	// NumMaxContacts caps how many Contacts a single Collide call returns.
	NumMaxContacts int

	// EnableCost asks Collide to additionally report CostSources. They come
	// only from the approximate-cost pass over mesh and octree operands;
	// see UseApproximateCost.
	EnableCost bool

	// UseApproximateCost gates §4.5's cost-approximation path: one
	// CostSource per mesh or octree operand taken from its root bound, rather than
	// descending to every leaf. It only has an effect when EnableCost is
	// also set; EnableCost alone with UseApproximateCost false produces
	// no CostSources, since no exact per-leaf cost integration is
	// implemented (see DESIGN.md).
	UseApproximateCost bool

	// NumMaxCostSources caps how many CostSources a single call returns.
	NumMaxCostSources int
}

// DefaultCollisionRequest mirrors FCL's CollisionRequest default
// constructor: one contact, no cost sources, zero buffer.
func DefaultCollisionRequest() CollisionRequest {
	return CollisionRequest{NumMaxContacts: 1, NumMaxCostSources: 1}
}

// CollisionResult accumulates Contacts and CostSources across a traversal.
type CollisionResult struct {
	Contacts    []Contact
	CostSources []CostSource
}

// IsCollision reports whether any contact was recorded.
func (r *CollisionResult) IsCollision() bool { return len(r.Contacts) > 0 }

func (r *CollisionResult) addContact(req CollisionRequest, c Contact) {
	if req.NumMaxContacts > 0 && len(r.Contacts) >= req.NumMaxContacts {
		return
	}
	r.Contacts = append(r.Contacts, c)
}

func (r *CollisionResult) addCostSource(req CollisionRequest, c CostSource) {
	if !req.EnableCost {
		return
	}
	if req.NumMaxCostSources > 0 && len(r.CostSources) >= req.NumMaxCostSources {
		return
	}
	r.CostSources = append(r.CostSources, c)
}
