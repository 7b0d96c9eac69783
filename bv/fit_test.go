package bv

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collide/geom"
)

func axisAlignedBoxTriangles() ([]r3.Vector, [][3]int) {
	verts := []r3.Vector{
		{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
	}
	tris := [][3]int{{0, 1, 2}, {0, 2, 3}, {4, 5, 6}, {4, 6, 7}}
	return verts, tris
}

func TestFitAABBEnclosesAllTriangles(t *testing.T) {
	verts, tris := axisAlignedBoxTriangles()
	indices := []int{0, 1, 2, 3}

	v := Fit(geom.KindBVAABB, verts, nil, tris, ModelTriangles, indices)
	aabb := v.(*AABB)
	test.That(t, aabb.Min, test.ShouldResemble, r3.Vector{X: -1, Y: -1, Z: -1})
	test.That(t, aabb.Max, test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 1})
}

func TestFitOBBAxesOrthonormal(t *testing.T) {
	verts, tris := axisAlignedBoxTriangles()
	indices := []int{0, 1, 2, 3}

	v := Fit(geom.KindBVOBB, verts, nil, tris, ModelTriangles, indices)
	obb := v.(*OBB)

	for i := 0; i < 3; i++ {
		test.That(t, obb.Axes[i].Norm(), test.ShouldAlmostEqual, 1.0, 1e-6)
	}
	test.That(t, obb.Axes[0].Dot(obb.Axes[1]), test.ShouldAlmostEqual, 0.0, 1e-6)
	test.That(t, obb.Axes[0].Dot(obb.Axes[2]), test.ShouldAlmostEqual, 0.0, 1e-6)
}

func TestFitEmptyIndicesReturnsEmptyAABB(t *testing.T) {
	verts, tris := axisAlignedBoxTriangles()
	v := Fit(geom.KindBVAABB, verts, nil, tris, ModelTriangles, nil)
	test.That(t, v.(*AABB).Min, test.ShouldResemble, r3.Vector{})
}
