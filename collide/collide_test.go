package collide

import (
	"errors"
	"math"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collide/geom"
	"go.viam.com/collide/mesh"
	"go.viam.com/collide/octree"
	"go.viam.com/collide/xform"
)

func TestCollideShapeShapeOverlap(t *testing.T) {
	a, err := geom.NewSphere(xform.Identity(), 1, "a")
	test.That(t, err, test.ShouldBeNil)
	b, err := geom.NewSphere(xform.Identity(), 1, "b")
	test.That(t, err, test.ShouldBeNil)

	result, err := Collide(a, xform.Identity(), b, xform.FromPoint(r3.Vector{X: 1}), DefaultCollisionRequest())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.IsCollision(), test.ShouldBeTrue)
}

func TestCollideShapeShapeSeparated(t *testing.T) {
	a, err := geom.NewSphere(xform.Identity(), 1, "a")
	test.That(t, err, test.ShouldBeNil)
	b, err := geom.NewSphere(xform.Identity(), 1, "b")
	test.That(t, err, test.ShouldBeNil)

	result, err := Collide(a, xform.Identity(), b, xform.FromPoint(r3.Vector{X: 10}), DefaultCollisionRequest())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.IsCollision(), test.ShouldBeFalse)
}

func TestCollideNilGeometryIsInvalid(t *testing.T) {
	a, err := geom.NewSphere(xform.Identity(), 1, "a")
	test.That(t, err, test.ShouldBeNil)

	_, err = Collide(a, xform.Identity(), nil, xform.Identity(), DefaultCollisionRequest())
	test.That(t, err, test.ShouldEqual, ErrInvalidGeometry)
}

func cubeMeshData() ([]r3.Vector, [][3]int) {
	verts := []r3.Vector{
		{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
	}
	tris := [][3]int{
		{0, 1, 2}, {0, 2, 3}, {4, 5, 6}, {4, 6, 7},
		{0, 1, 5}, {0, 5, 4}, {2, 3, 7}, {2, 7, 6},
	}
	return verts, tris
}

func TestCollideMeshShapeOverlap(t *testing.T) {
	verts, tris := cubeMeshData()
	m := mesh.NewBVHModel(xform.Identity(), geom.KindBVAABB, verts, tris, "cube")

	s, err := geom.NewSphere(xform.FromPoint(r3.Vector{X: 0.5}), 1, "s")
	test.That(t, err, test.ShouldBeNil)

	result, err := Collide(m, xform.Identity(), s, xform.Identity(), DefaultCollisionRequest())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.IsCollision(), test.ShouldBeTrue)
}

func TestCollideMeshShapeSeparated(t *testing.T) {
	verts, tris := cubeMeshData()
	m := mesh.NewBVHModel(xform.Identity(), geom.KindBVAABB, verts, tris, "cube")

	s, err := geom.NewSphere(xform.FromPoint(r3.Vector{X: 20}), 1, "s")
	test.That(t, err, test.ShouldBeNil)

	result, err := Collide(m, xform.Identity(), s, xform.Identity(), DefaultCollisionRequest())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.IsCollision(), test.ShouldBeFalse)
}

func TestCollideOctreeShapeOccupiedVoxel(t *testing.T) {
	tree, err := octree.New(r3.Vector{}, 10, golog.Global())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tree.Set(r3.Vector{X: 3, Y: 3, Z: 3}, true), test.ShouldBeNil)

	og := octree.NewGeometry(tree, xform.Identity(), 0.5, 0.5, "occ")
	s, err := geom.NewSphere(xform.FromPoint(r3.Vector{X: 3, Y: 3, Z: 3}), 0.1, "s")
	test.That(t, err, test.ShouldBeNil)

	result, err := Collide(og, xform.Identity(), s, xform.Identity(), DefaultCollisionRequest())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.IsCollision(), test.ShouldBeTrue)
}

func TestCollideOctreeShapeEmptyRegion(t *testing.T) {
	tree, err := octree.New(r3.Vector{}, 10, golog.Global())
	test.That(t, err, test.ShouldBeNil)
	// Two conflicting samples force the root to split into octants, so an
	// untouched octant genuinely carries no occupancy sample.
	test.That(t, tree.Set(r3.Vector{X: 3, Y: 3, Z: 3}, true), test.ShouldBeNil)
	test.That(t, tree.Set(r3.Vector{X: -3, Y: -3, Z: -3}, false), test.ShouldBeNil)

	og := octree.NewGeometry(tree, xform.Identity(), 0.5, 0.5, "occ")
	s, err := geom.NewSphere(xform.FromPoint(r3.Vector{X: 3, Y: -3, Z: 3}), 0.1, "s")
	test.That(t, err, test.ShouldBeNil)

	result, err := Collide(og, xform.Identity(), s, xform.Identity(), DefaultCollisionRequest())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.IsCollision(), test.ShouldBeFalse)
}

func TestCollisionResultRespectsMaxContacts(t *testing.T) {
	result := &CollisionResult{}
	req := CollisionRequest{NumMaxContacts: 1}
	result.addContact(req, Contact{})
	result.addContact(req, Contact{})
	test.That(t, len(result.Contacts), test.ShouldEqual, 1)
}

// TestCollideBoxPlaneStraddle is spec.md §8 scenario (b): a box straddling
// an infinite plane at z=0 must report a contact with z≈0 and a normal
// parallel to (0,0,1).
func TestCollideBoxPlaneStraddle(t *testing.T) {
	box, err := geom.NewBox(xform.Identity(), r3.Vector{X: 2, Y: 2, Z: 2}, "box")
	test.That(t, err, test.ShouldBeNil)
	plane, err := geom.NewPlane(xform.Identity(), "plane")
	test.That(t, err, test.ShouldBeNil)

	req := DefaultCollisionRequest()
	req.EnableContact = true
	result, err := Collide(box, xform.Identity(), plane, xform.Identity(), req)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.IsCollision(), test.ShouldBeTrue)
	test.That(t, len(result.Contacts), test.ShouldEqual, 1)

	c := result.Contacts[0]
	test.That(t, c.Position.Z, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, math.Abs(c.Normal.X), test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, math.Abs(c.Normal.Y), test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, math.Abs(c.Normal.Z), test.ShouldAlmostEqual, 1, 1e-9)
}

func tetrahedronMeshData() ([]r3.Vector, [][3]int) {
	verts := []r3.Vector{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
	}
	tris := [][3]int{
		{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3},
	}
	return verts, tris
}

// TestCollideMeshOctreePrimitiveIndex is spec.md §8 scenario (d): a mesh
// vs octree contact must attribute the occupied voxel's triangle to a
// valid index into the mesh's triangle list.
func TestCollideMeshOctreePrimitiveIndex(t *testing.T) {
	verts, tris := tetrahedronMeshData()
	m := mesh.NewBVHModel(xform.Identity(), geom.KindBVAABB, verts, tris, "tetra")

	tree, err := octree.New(r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}, 0.5, golog.Global())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tree.Set(r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}, true), test.ShouldBeNil)
	og := octree.NewGeometry(tree, xform.Identity(), 0.5, 0.5, "occ")

	req := DefaultCollisionRequest()
	req.EnableContact = true
	req.NumMaxContacts = 10
	result, err := Collide(m, xform.Identity(), og, xform.Identity(), req)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.IsCollision(), test.ShouldBeTrue)

	c := result.Contacts[0]
	test.That(t, c.Index1, test.ShouldBeGreaterThanOrEqualTo, 0)
	test.That(t, c.Index1, test.ShouldBeLessThan, len(tris))
	test.That(t, c.Index2, test.ShouldEqual, noPrimitiveIndex)
}

// TestCollideApproximateCostMatchesMeshRootAABB is spec.md §8 scenario
// (e): enabling cost with use_approximate_cost set reports exactly one
// CostSource per costed operand, whose AABB is the operand's own root
// bound rather than a per-leaf breakdown.
func TestCollideApproximateCostMatchesMeshRootAABB(t *testing.T) {
	verts, tris := cubeMeshData()
	m := mesh.NewBVHModel(xform.Identity(), geom.KindBVAABB, verts, tris, "cube")
	m.SetCostDensity(2.0)

	s, err := geom.NewSphere(xform.FromPoint(r3.Vector{X: 0.5}), 1, "s")
	test.That(t, err, test.ShouldBeNil)

	req := DefaultCollisionRequest()
	req.EnableCost = true
	req.UseApproximateCost = true
	req.NumMaxCostSources = 1
	result, err := Collide(m, xform.Identity(), s, xform.Identity(), req)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(result.CostSources), test.ShouldEqual, 1)

	wantMin, wantMax := m.AABB()
	got := result.CostSources[0]
	test.That(t, got.Min, test.ShouldResemble, wantMin)
	test.That(t, got.Max, test.ShouldResemble, wantMax)
	test.That(t, got.CostDensity, test.ShouldEqual, 2.0)
}

// unknownKindGeometry is a minimal Geometry stand-in whose Kind() reports
// neither IsShape, IsMesh, nor IsOctree — the dispatch matrix genuinely
// has no handler for it. Standing in for spec.md §8 scenario (f)'s
// "octree support disabled at build time": this module has no such
// build-time toggle, so the unsupported-pair path is exercised instead
// with a Kind the matrix was never extended to cover.
type unknownKindGeometry struct{}

func (unknownKindGeometry) Kind() geom.NodeKind                        { return geom.NodeCount }
func (unknownKindGeometry) Pose() xform.Pose                           { return xform.Identity() }
func (unknownKindGeometry) AABB() (r3.Vector, r3.Vector)               { return r3.Vector{}, r3.Vector{} }
func (g unknownKindGeometry) Transform(xform.Pose) geom.Geometry       { return g }
func (unknownKindGeometry) Label() string                              { return "" }
func (unknownKindGeometry) SetLabel(string)                            {}
func (unknownKindGeometry) CostDensity() float64                       { return 0 }
func (unknownKindGeometry) ThresholdOccupied() float64                 { return 0 }
func (unknownKindGeometry) ThresholdFree() float64                     { return 0 }
func (unknownKindGeometry) String() string                             { return "unknown" }

func TestCollideUnsupportedPair(t *testing.T) {
	a := unknownKindGeometry{}
	b := unknownKindGeometry{}

	_, err := Collide(a, xform.Identity(), b, xform.Identity(), DefaultCollisionRequest())
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrUnsupported), test.ShouldBeTrue)
}
