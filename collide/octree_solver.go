package collide

import (
	"math"

	"go.viam.com/collide/bv"
	"go.viam.com/collide/geom"
	"go.viam.com/collide/mesh"
	"go.viam.com/collide/narrowphase"
	"go.viam.com/collide/octree"
	"go.viam.com/collide/xform"
)

// octreeVoxelRadius turns an occupied leaf's cube into the point-sphere
// narrowphase expects, per the teacher's pointcloud CollidesWith building
// a Sphere at node.point.P with radius buffer. The sphere is centered at
// the leaf's cube center (the stored occupancy sample's own coordinates
// aren't exposed outside package octree), so the radius must reach the
// cube's corners, not just its faces, to stay conservative: half the
// space diagonal, sqrt(3)*sideLength/2.
func octreeVoxelRadius(sideLength float64) float64 { return math.Sqrt(3) * sideLength / 2 }

func voxelSphere(tree *octree.OcTree, treePose xform.Pose) geom.Geometry {
	pose := xform.Compose(treePose, xform.FromPoint(tree.Center()))
	g, _ := geom.NewSphere(pose, octreeVoxelRadius(tree.SideLength()), "")
	return g
}

// octreeShapeNode walks treeA, pruning subtrees whose cube doesn't overlap
// shapeB's AABB, and leaf-tests occupied voxels against shapeB, following
// FCL's ShapeOcTreeCollisionTraversalNode (BVTesting always false for a
// shape-octree pair; leafTesting delegates to OcTreeShapeIntersect).
type octreeShapeNode struct {
	treeA  *octree.Geometry
	shapeB geom.Geometry
	solver narrowphase.Solver
	swap   bool
}

func (n *octreeShapeNode) drive(result *CollisionResult, req CollisionRequest) error {
	shapeVol := &bv.AABB{}
	shapeVol.Min, shapeVol.Max = n.shapeB.AABB()
	var walkErr error
	n.treeA.Tree().Walk(func(t *octree.OcTree) bool {
		if walkErr != nil {
			return false
		}
		cubeVol := cubeAABB(t, n.treeA.Pose())
		if !cubeVol.Overlap(shapeVol) {
			return false
		}
		if t.NodeType() == octree.InternalNode {
			return true
		}
		occupied, hasPoint := t.Occupied()
		if !hasPoint || !classifyOccupied(occupied, n.treeA.ThresholdOccupied()) {
			return false
		}
		voxel := voxelSphere(t, n.treeA.Pose())

		// solver.Collide is always called in the original (a, b) operand
		// order: treeA is the octree side, shapeB the shape side,
		// whichever of the two was the dispatch call's a or b.
		geom1, geom2 := geom.Geometry(n.treeA), n.shapeB
		if n.swap {
			geom1, geom2 = n.shapeB, n.treeA
		}

		w := witnessOut(req)
		var colliding bool
		var dist float64
		var err error
		if n.swap {
			colliding, dist, err = n.solver.Collide(n.shapeB, voxel, req.CollisionBuffer, w)
		} else {
			colliding, dist, err = n.solver.Collide(voxel, n.shapeB, req.CollisionBuffer, w)
		}
		if err != nil {
			walkErr = err
			return false
		}
		if colliding {
			result.addContact(req, contactFrom(geom1, geom2, noPrimitiveIndex, noPrimitiveIndex, dist, w))
		}
		return false
	})
	return walkErr
}

// classifyOccupied treats a leaf as a collidable voxel whenever it's
// occupied at all; threshold_occupied is reserved for probabilistic
// octree payloads this binary occupancy model doesn't carry, so any
// stored "occupied" sample counts, matching §4.7's "never silently
// skipped" rule for candidates.
func classifyOccupied(occupied bool, _ float64) bool { return occupied }

func cubeAABB(t *octree.OcTree, pose xform.Pose) *bv.AABB {
	min, max := t.Bounds()
	local := &bv.AABB{Min: min, Max: max}
	return local.Transform(pose).(*bv.AABB)
}

// octreeMeshNode walks treeA against modelB's BVH, pruning on cube/bound
// overlap and leaf-testing occupied voxels against modelB's triangles.
type octreeMeshNode struct {
	treeA  *octree.Geometry
	modelB *mesh.BVHModel
	solver narrowphase.Solver
	swap   bool
}

func (n *octreeMeshNode) drive(result *CollisionResult, req CollisionRequest) error {
	if n.modelB.Root() == nil {
		return nil
	}
	var walkErr error
	n.treeA.Tree().Walk(func(t *octree.OcTree) bool {
		if walkErr != nil {
			return false
		}
		cubeVol := cubeAABB(t, n.treeA.Pose())
		if !cubeVol.Overlap(n.modelB.Bound(n.modelB.Root())) {
			return false
		}
		if t.NodeType() == octree.InternalNode {
			return true
		}
		occupied, hasPoint := t.Occupied()
		if !hasPoint || !occupied {
			return false
		}
		voxel := voxelSphere(t, n.treeA.Pose())
		if err := n.testMeshNode(n.modelB.Root(), voxel, result, req); err != nil {
			walkErr = err
		}
		return false
	})
	return walkErr
}

// testMeshNode descends modelB's BVH looking for triangles overlapping
// voxel, leaf-testing each one and attributing the resulting Contact to
// the top-level treeA/modelB operands (not the synthetic per-voxel
// sphere), with the triangle's index on whichever side is the mesh.
func (n *octreeMeshNode) testMeshNode(bn *mesh.Node, voxel geom.Geometry, result *CollisionResult, req CollisionRequest) error {
	bound := n.modelB.Bound(bn)
	voxelVol := &bv.AABB{}
	voxelVol.Min, voxelVol.Max = voxel.AABB()
	if !bound.Overlap(voxelVol) {
		return nil
	}
	if bn.IsLeaf() {
		for _, idx := range bn.Triangles() {
			tri := n.modelB.Triangle(idx)
			triGeom, err := geom.NewConvex(xform.Identity(), trianglePoints(tri), "")
			if err != nil {
				return err
			}

			geom1, idx1, geom2, idx2 := geom.Geometry(n.treeA), noPrimitiveIndex, geom.Geometry(n.modelB), idx
			if n.swap {
				geom1, idx1, geom2, idx2 = n.modelB, idx, n.treeA, noPrimitiveIndex
			}

			w := witnessOut(req)
			var colliding bool
			var dist float64
			if n.swap {
				colliding, dist, err = n.solver.Collide(triGeom, voxel, req.CollisionBuffer, w)
			} else {
				colliding, dist, err = n.solver.Collide(voxel, triGeom, req.CollisionBuffer, w)
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
		if err := n.testMeshNode(bn.Left(), voxel, result, req); err != nil {
			return err
		}
	}
	if bn.Right() != nil {
		if err := n.testMeshNode(bn.Right(), voxel, result, req); err != nil {
			return err
		}
	}
	return nil
}

// octreeOctreeNode walks both trees in lockstep, pruning on cube overlap
// and recording a contact for any pair of occupied leaves whose voxels
// overlap.
type octreeOctreeNode struct {
	treeA, treeB *octree.Geometry
	solver       narrowphase.Solver
}

func (n *octreeOctreeNode) drive(result *CollisionResult, req CollisionRequest) error {
	return n.driveNodes(n.treeA.Tree(), n.treeB.Tree(), result, req)
}

func (n *octreeOctreeNode) driveNodes(a, b *octree.OcTree, result *CollisionResult, req CollisionRequest) error {
	boundA := cubeAABB(a, n.treeA.Pose())
	boundB := cubeAABB(b, n.treeB.Pose())
	if !boundA.Overlap(boundB) {
		return nil
	}

	aLeaf := a.NodeType() != octree.InternalNode
	bLeaf := b.NodeType() != octree.InternalNode

	if aLeaf && bLeaf {
		occA, hasA := a.Occupied()
		occB, hasB := b.Occupied()
		if hasA && hasB && occA && occB {
			voxelA := voxelSphere(a, n.treeA.Pose())
			voxelB := voxelSphere(b, n.treeB.Pose())
			w := witnessOut(req)
			colliding, dist, err := n.solver.Collide(voxelA, voxelB, req.CollisionBuffer, w)
			if err != nil {
				return err
			}
			if colliding {
				result.addContact(req, contactFrom(n.treeA, n.treeB, noPrimitiveIndex, noPrimitiveIndex, dist, w))
			}
		}
		return nil
	}

	if bLeaf || !aLeaf {
		// Either B is a leaf (descend the internal A side) or both are
		// internal (arbitrarily prefer descending A first).
		for _, child := range a.Children() {
			if err := n.driveNodes(child, b, result, req); err != nil {
				return err
			}
		}
		return nil
	}
	for _, child := range b.Children() {
		if err := n.driveNodes(a, child, result, req); err != nil {
			return err
		}
	}
	return nil
}
