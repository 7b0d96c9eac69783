package mesh

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collide/geom"
	"go.viam.com/collide/xform"
)

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

func TestBVHModelRootBounds(t *testing.T) {
	verts, tris := cubeMeshData()
	m := NewBVHModel(xform.Identity(), geom.KindBVAABB, verts, tris, "cube")

	test.That(t, m.Root(), test.ShouldNotBeNil)
	min, max := m.AABB()
	test.That(t, min, test.ShouldResemble, r3.Vector{X: -1, Y: -1, Z: -1})
	test.That(t, max, test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 1})
}

func TestBVHModelSplitsIntoChildrenWhenOverThreshold(t *testing.T) {
	verts, tris := cubeMeshData()
	m := NewBVHModel(xform.Identity(), geom.KindBVAABB, verts, tris, "cube")

	root := m.Root()
	test.That(t, root.IsLeaf(), test.ShouldBeFalse)
	test.That(t, root.Left(), test.ShouldNotBeNil)
	test.That(t, root.Right(), test.ShouldNotBeNil)
}

func TestBVHModelTriangleWorldSpace(t *testing.T) {
	verts, tris := cubeMeshData()
	m := NewBVHModel(xform.FromPoint(r3.Vector{X: 5}), geom.KindBVAABB, verts, tris, "cube")

	tri := m.Triangle(0)
	pts := tri.Points()
	test.That(t, pts[0].X, test.ShouldAlmostEqual, 4.0, 1e-9)
}

func TestBVHModelTransformComposesPose(t *testing.T) {
	verts, tris := cubeMeshData()
	m := NewBVHModel(xform.Identity(), geom.KindBVAABB, verts, tris, "cube")

	moved := m.Transform(xform.FromPoint(r3.Vector{X: 3})).(*BVHModel)
	test.That(t, moved.Pose().Point(), test.ShouldResemble, r3.Vector{X: 3})
	min, _ := moved.AABB()
	test.That(t, min.X, test.ShouldAlmostEqual, 2.0, 1e-9)
}
