package geom

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collide/xform"
)

func TestNewCapsuleDegeneratesToSphere(t *testing.T) {
	g, err := NewCapsule(xform.Identity(), 1, 2, "c")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, g.Kind(), test.ShouldEqual, KindSphere)
}

func TestNewCapsuleRejectsTooShortLength(t *testing.T) {
	_, err := NewCapsule(xform.Identity(), 2, 1, "c")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestCapsuleSegmentAndAABB(t *testing.T) {
	g, err := NewCapsule(xform.Identity(), 1, 4, "c")
	test.That(t, err, test.ShouldBeNil)
	c := g.(*Capsule)

	a, b := c.Segment()
	test.That(t, a.Z, test.ShouldAlmostEqual, -1.0, 1e-9)
	test.That(t, b.Z, test.ShouldAlmostEqual, 1.0, 1e-9)

	min, max := c.AABB()
	test.That(t, min.Z, test.ShouldAlmostEqual, -2.0, 1e-9)
	test.That(t, max.Z, test.ShouldAlmostEqual, 2.0, 1e-9)
	test.That(t, min.X, test.ShouldAlmostEqual, -1.0, 1e-9)
}

func TestConvexRequiresFourVertices(t *testing.T) {
	_, err := NewConvex(xform.Identity(), []r3.Vector{{}, {X: 1}, {Y: 1}}, "cv")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestConvexWorldVertices(t *testing.T) {
	verts := []r3.Vector{{}, {X: 1}, {Y: 1}, {Z: 1}}
	g, err := NewConvex(xform.FromPoint(r3.Vector{X: 5}), verts, "cv")
	test.That(t, err, test.ShouldBeNil)
	cv := g.(*Convex)

	world := cv.WorldVertices()
	test.That(t, world[0], test.ShouldResemble, r3.Vector{X: 5})
	test.That(t, world[1], test.ShouldResemble, r3.Vector{X: 6})
}
