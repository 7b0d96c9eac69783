package collide

import (
	"go.viam.com/collide/geom"
	"go.viam.com/collide/mesh"
	"go.viam.com/collide/narrowphase"
	"go.viam.com/collide/octree"
)

// dispatch picks the traversal node for a (a, b) operand pair, the Go
// analogue of FCL's CollisionFunctionMatrix lookup. FCL's matrix is
// indexed by exact NodeKind pair because each cell is a distinct
// template instantiation; here a kind's *category* (shape / mesh-under-BV
// / octree) already determines which node type applies; the BV kind
// itself only selects bv.Fit's behavior inside mesh.BVHModel.Bound, so the
// matrix collapses to category pairs instead of one cell per BV variant.
func dispatch(a, b geom.Geometry, solver narrowphase.Solver) (node, error) {
	ka, kb := a.Kind(), b.Kind()

	switch {
	case ka.IsShape() && kb.IsShape():
		return &shapeShapeNode{a: a, b: b, solver: solver}, nil

	case ka.IsMesh() && kb.IsShape():
		modelA, ok := a.(*mesh.BVHModel)
		if !ok {
			return nil, ErrInvalidGeometry
		}
		return &meshShapeNode{modelA: modelA, shapeB: b, solver: solver}, nil
	case ka.IsShape() && kb.IsMesh():
		modelB, ok := b.(*mesh.BVHModel)
		if !ok {
			return nil, ErrInvalidGeometry
		}
		return &meshShapeNode{modelA: modelB, shapeB: a, solver: solver, swap: true}, nil

	case ka.IsMesh() && kb.IsMesh():
		modelA, okA := a.(*mesh.BVHModel)
		modelB, okB := b.(*mesh.BVHModel)
		if !okA || !okB {
			return nil, ErrInvalidGeometry
		}
		return &meshMeshNode{modelA: modelA, modelB: modelB, solver: solver}, nil

	case ka.IsOctree() && kb.IsShape():
		treeA, ok := a.(*octree.Geometry)
		if !ok {
			return nil, ErrInvalidGeometry
		}
		return &octreeShapeNode{treeA: treeA, shapeB: b, solver: solver}, nil
	case ka.IsShape() && kb.IsOctree():
		treeB, ok := b.(*octree.Geometry)
		if !ok {
			return nil, ErrInvalidGeometry
		}
		return &octreeShapeNode{treeA: treeB, shapeB: a, solver: solver, swap: true}, nil

	case ka.IsOctree() && kb.IsMesh():
		treeA, okA := a.(*octree.Geometry)
		modelB, okB := b.(*mesh.BVHModel)
		if !okA || !okB {
			return nil, ErrInvalidGeometry
		}
		return &octreeMeshNode{treeA: treeA, modelB: modelB, solver: solver}, nil
	case ka.IsMesh() && kb.IsOctree():
		modelA, okA := a.(*mesh.BVHModel)
		treeB, okB := b.(*octree.Geometry)
		if !okA || !okB {
			return nil, ErrInvalidGeometry
		}
		return &octreeMeshNode{treeA: treeB, modelB: modelA, solver: solver, swap: true}, nil

	case ka.IsOctree() && kb.IsOctree():
		treeA, okA := a.(*octree.Geometry)
		treeB, okB := b.(*octree.Geometry)
		if !okA || !okB {
			return nil, ErrInvalidGeometry
		}
		return &octreeOctreeNode{treeA: treeA, treeB: treeB, solver: solver}, nil

	default:
		return nil, newUnsupportedPairError(ka, kb)
	}
}
