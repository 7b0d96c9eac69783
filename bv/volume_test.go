package bv

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collide/geom"
	"go.viam.com/collide/xform"
)

func TestAABBOverlap(t *testing.T) {
	a := &AABB{Min: r3.Vector{}, Max: r3.Vector{X: 1, Y: 1, Z: 1}}
	b := &AABB{Min: r3.Vector{X: 0.5}, Max: r3.Vector{X: 1.5, Y: 1, Z: 1}}
	c := &AABB{Min: r3.Vector{X: 2}, Max: r3.Vector{X: 3, Y: 1, Z: 1}}

	test.That(t, a.Overlap(b), test.ShouldBeTrue)
	test.That(t, a.Overlap(c), test.ShouldBeFalse)
	test.That(t, a.Distance(c), test.ShouldAlmostEqual, 1.0, 1e-9)
}

func TestAABBMerge(t *testing.T) {
	a := &AABB{Min: r3.Vector{}, Max: r3.Vector{X: 1, Y: 1, Z: 1}}
	b := &AABB{Min: r3.Vector{X: -1}, Max: r3.Vector{X: 0.5, Y: 2, Z: 1}}

	m := a.Merge(b).(*AABB)
	test.That(t, m.Min, test.ShouldResemble, r3.Vector{X: -1, Y: 0, Z: 0})
	test.That(t, m.Max, test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 1})
}

func TestAABBTransformTranslation(t *testing.T) {
	a := &AABB{Min: r3.Vector{}, Max: r3.Vector{X: 2, Y: 2, Z: 2}}
	moved := a.Transform(xform.FromPoint(r3.Vector{X: 10})).(*AABB)
	test.That(t, moved.Min, test.ShouldResemble, r3.Vector{X: 10, Y: 0, Z: 0})
	test.That(t, moved.Max, test.ShouldResemble, r3.Vector{X: 12, Y: 2, Z: 2})
}

func TestOBBOverlapSeparated(t *testing.T) {
	a := &OBB{Center: r3.Vector{}, Axes: [3]r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}, HalfExtents: r3.Vector{X: 1, Y: 1, Z: 1}}
	b := &OBB{Center: r3.Vector{X: 10}, Axes: [3]r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}, HalfExtents: r3.Vector{X: 1, Y: 1, Z: 1}}
	test.That(t, a.Overlap(b), test.ShouldBeFalse)
	test.That(t, a.Distance(b), test.ShouldAlmostEqual, 8.0, 1e-9)
}

func TestOBBOverlapTouching(t *testing.T) {
	a := &OBB{Center: r3.Vector{}, Axes: [3]r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}, HalfExtents: r3.Vector{X: 1, Y: 1, Z: 1}}
	b := &OBB{Center: r3.Vector{X: 2}, Axes: [3]r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}, HalfExtents: r3.Vector{X: 1, Y: 1, Z: 1}}
	test.That(t, a.Overlap(b), test.ShouldBeTrue)
}

func TestKDOPOverlap(t *testing.T) {
	k1 := fitKDOPFromPoints(geom.KindBVKDOP18, kdopDirections18, []r3.Vector{{}, {X: 1, Y: 1, Z: 1}})
	k2 := fitKDOPFromPoints(geom.KindBVKDOP18, kdopDirections18, []r3.Vector{{X: 0.5, Y: 0.5, Z: 0.5}, {X: 2, Y: 2, Z: 2}})
	k3 := fitKDOPFromPoints(geom.KindBVKDOP18, kdopDirections18, []r3.Vector{{X: 10, Y: 10, Z: 10}, {X: 11, Y: 11, Z: 11}})

	test.That(t, k1.Overlap(k2), test.ShouldBeTrue)
	test.That(t, k1.Overlap(k3), test.ShouldBeFalse)
}

func TestRSSSweptGap(t *testing.T) {
	core := coreFromBounds(&AABB{Min: r3.Vector{}, Max: r3.Vector{X: 2, Y: 2, Z: 2}})
	core.Radius = 0.5
	a := &RSS{core}

	core2 := coreFromBounds(&AABB{Min: r3.Vector{X: 10}, Max: r3.Vector{X: 12, Y: 2, Z: 2}})
	core2.Radius = 0.5
	b := &RSS{core2}

	test.That(t, a.Overlap(b), test.ShouldBeFalse)
}
