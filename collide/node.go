package collide

import (
	"github.com/golang/geo/r3"

	"go.viam.com/collide/bv"
	"go.viam.com/collide/geom"
	"go.viam.com/collide/mesh"
	"go.viam.com/collide/narrowphase"
	"go.viam.com/collide/xform"
)

// node is the traversal-node protocol: every dispatch-matrix handler
// builds one of these for a given operand pair and calls drive on it.
// Unlike FCL's index-parameterized BVTesting/leafTesting pair, each
// concrete node owns its own recursion because Go's traversal here spans
// structurally different trees (BVHModel nodes, OcTree cubes, bare
// shapes) that don't share a single index space; see DESIGN.md.
type node interface {
	drive(result *CollisionResult, req CollisionRequest) error
}

// witnessOut returns a fresh Witness sink when req asks for one, or nil,
// so a Collide call skips the extra work of computing contact geometry
// when the caller only wants the boolean/depth outcome.
func witnessOut(req CollisionRequest) *narrowphase.Witness {
	if !req.EnableContact {
		return nil
	}
	return &narrowphase.Witness{}
}

// contactFrom builds a Contact from a narrow-phase outcome, filling
// Position/Normal from w when the caller asked for contacts.
func contactFrom(geom1, geom2 geom.Geometry, idx1, idx2 int, dist float64, w *narrowphase.Witness) Contact {
	c := Contact{Geom1: geom1, Geom2: geom2, Index1: idx1, Index2: idx2, PenetrationDepth: -dist}
	if w != nil {
		c.Position = w.Position
		c.Normal = w.Normal
	}
	return c
}

// shapeShapeNode is a leaf-only node: two convex primitives tested once
// via the narrow-phase solver.
type shapeShapeNode struct {
	a, b   geom.Geometry
	solver narrowphase.Solver
}

func (n *shapeShapeNode) drive(result *CollisionResult, req CollisionRequest) error {
	w := witnessOut(req)
	colliding, dist, err := n.solver.Collide(n.a, n.b, req.CollisionBuffer, w)
	if err != nil {
		return err
	}
	if colliding {
		result.addContact(req, contactFrom(n.a, n.b, noPrimitiveIndex, noPrimitiveIndex, dist, w))
	}
	return nil
}

// meshShapeNode walks modelA's BVH, pruning subtrees whose bound doesn't
// overlap shapeB, and leaf-tests triangles against shapeB via GJK (a
// triangle is treated as a 3-vertex Convex so narrowphase.Support works
// unmodified).
type meshShapeNode struct {
	modelA *mesh.BVHModel
	shapeB geom.Geometry
	solver narrowphase.Solver
	swap   bool // true if the original pair order was (shape, mesh)
}

func (n *meshShapeNode) drive(result *CollisionResult, req CollisionRequest) error {
	if n.modelA.Root() == nil {
		return nil
	}
	return n.driveNode(n.modelA.Root(), result, req)
}

func (n *meshShapeNode) driveNode(bn *mesh.Node, result *CollisionResult, req CollisionRequest) error {
	bound := n.modelA.Bound(bn)
	shapeVol := &bv.AABB{}
	shapeVol.Min, shapeVol.Max = n.shapeB.AABB()
	if !bound.Overlap(shapeVol) {
		return nil
	}
	if bn.IsLeaf() {
		for _, idx := range bn.Triangles() {
			tri := n.modelA.Triangle(idx)
			triGeom, err := geom.NewConvex(xform.Identity(), trianglePoints(tri), "")
			if err != nil {
				return err
			}
			// solver.Collide is always called in the original (a, b)
			// operand order: modelA is the mesh side, shapeB the shape
			// side, whichever of the two was the dispatch call's a or b.
			var geom1, geom2 geom.Geometry
			var idx1, idx2 int
			geom1, idx1, geom2, idx2 = n.modelA, idx, n.shapeB, noPrimitiveIndex
			if n.swap {
				geom1, idx1, geom2, idx2 = n.shapeB, noPrimitiveIndex, n.modelA, idx
			}
			w := witnessOut(req)
			var colliding bool
			var dist float64
			if n.swap {
				colliding, dist, err = n.solver.Collide(n.shapeB, triGeom, req.CollisionBuffer, w)
			} else {
				colliding, dist, err = n.solver.Collide(triGeom, n.shapeB, req.CollisionBuffer, w)
			}
			if err != nil {
				return err
			}
			if colliding {
				result.addContact(req, contactFrom(geom1, geom2, idx1, idx2, dist, w))
			}
		}
		return nil
	}
	if bn.Left() != nil {
		if err := n.driveNode(bn.Left(), result, req); err != nil {
			return err
		}
	}
	if bn.Right() != nil {
		if err := n.driveNode(bn.Right(), result, req); err != nil {
			return err
		}
	}
	return nil
}

// meshMeshNode is the classic bounding-volume test tree: it descends both
// BVHs in lockstep, pruning whenever the pair's bounds don't overlap, and
// leaf-tests triangle-triangle pairs once both sides bottom out.
type meshMeshNode struct {
	modelA, modelB *mesh.BVHModel
	solver         narrowphase.Solver
}

func (n *meshMeshNode) drive(result *CollisionResult, req CollisionRequest) error {
	if n.modelA.Root() == nil || n.modelB.Root() == nil {
		return nil
	}
	return n.driveNodes(n.modelA.Root(), n.modelB.Root(), result, req)
}

func (n *meshMeshNode) driveNodes(bnA, bnB *mesh.Node, result *CollisionResult, req CollisionRequest) error {
	if !n.modelA.Bound(bnA).Overlap(n.modelB.Bound(bnB)) {
		return nil
	}
	if bnA.IsLeaf() && bnB.IsLeaf() {
		for _, ia := range bnA.Triangles() {
			triA := n.modelA.Triangle(ia)
			gA, err := geom.NewConvex(xform.Identity(), trianglePoints(triA), "")
			if err != nil {
				return err
			}
			for _, ib := range bnB.Triangles() {
				triB := n.modelB.Triangle(ib)
				gB, err := geom.NewConvex(xform.Identity(), trianglePoints(triB), "")
				if err != nil {
					return err
				}
				w := witnessOut(req)
				colliding, dist, err := n.solver.Collide(gA, gB, req.CollisionBuffer, w)
				if err != nil {
					return err
				}
				if colliding {
					result.addContact(req, contactFrom(n.modelA, n.modelB, ia, ib, dist, w))
				}
			}
		}
		return nil
	}
	if bnB.IsLeaf() || (!bnA.IsLeaf() && biggerNode(bnA, bnB)) {
		if bnA.Left() != nil {
			if err := n.driveNodes(bnA.Left(), bnB, result, req); err != nil {
				return err
			}
		}
		if bnA.Right() != nil {
			if err := n.driveNodes(bnA.Right(), bnB, result, req); err != nil {
				return err
			}
		}
		return nil
	}
	if bnB.Left() != nil {
		if err := n.driveNodes(bnA, bnB.Left(), result, req); err != nil {
			return err
		}
	}
	if bnB.Right() != nil {
		if err := n.driveNodes(bnA, bnB.Right(), result, req); err != nil {
			return err
		}
	}
	return nil
}

func biggerNode(a, b *mesh.Node) bool {
	aMin, aMax := a.Bounds()
	bMin, bMax := b.Bounds()
	return aMax.Sub(aMin).Norm2() >= bMax.Sub(bMin).Norm2()
}

func trianglePoints(t *geom.Triangle) []r3.Vector {
	p := t.Points()
	// A triangle has only 3 vertices; pad a 4th coincident with the first
	// so it satisfies Convex's >=4-vertex precondition without changing
	// its support function (the duplicate is never the farthest point
	// unless it ties, which support handles like any other vertex).
	return []r3.Vector{p[0], p[1], p[2], p[0]}
}
