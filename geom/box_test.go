package geom

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collide/xform"
)

func TestNewBoxRejectsNegativeDims(t *testing.T) {
	_, err := NewBox(xform.Identity(), r3.Vector{X: -1, Y: 1, Z: 1}, "bad")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBoxAABBAxisAligned(t *testing.T) {
	b, err := NewBox(xform.FromPoint(r3.Vector{X: 1, Y: 2, Z: 3}), r3.Vector{X: 2, Y: 4, Z: 6}, "b")
	test.That(t, err, test.ShouldBeNil)

	min, max := b.AABB()
	test.That(t, min, test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: 0})
	test.That(t, max, test.ShouldResemble, r3.Vector{X: 2, Y: 4, Z: 6})
}

func TestBoxAABBCachedAcrossCalls(t *testing.T) {
	b, err := NewBox(xform.Identity(), r3.Vector{X: 2, Y: 2, Z: 2}, "b")
	test.That(t, err, test.ShouldBeNil)

	min1, max1 := b.AABB()
	min2, max2 := b.AABB()
	test.That(t, min1, test.ShouldResemble, min2)
	test.That(t, max1, test.ShouldResemble, max2)
}

func TestBoxTransformComposesPose(t *testing.T) {
	b, err := NewBox(xform.FromPoint(r3.Vector{X: 1}), r3.Vector{X: 1, Y: 1, Z: 1}, "b")
	test.That(t, err, test.ShouldBeNil)

	moved := b.Transform(xform.FromPoint(r3.Vector{X: 10}))
	test.That(t, moved.Pose().Point(), test.ShouldResemble, r3.Vector{X: 11})
	test.That(t, moved.Label(), test.ShouldEqual, "b")
	test.That(t, moved.Kind(), test.ShouldEqual, KindBox)
}

func TestSphereAABB(t *testing.T) {
	s, err := NewSphere(xform.FromPoint(r3.Vector{X: 1, Y: 1, Z: 1}), 2, "s")
	test.That(t, err, test.ShouldBeNil)

	min, max := s.AABB()
	test.That(t, min, test.ShouldResemble, r3.Vector{X: -1, Y: -1, Z: -1})
	test.That(t, max, test.ShouldResemble, r3.Vector{X: 3, Y: 3, Z: 3})
}

func TestNewSphereRejectsNonPositiveRadius(t *testing.T) {
	_, err := NewSphere(xform.Identity(), 0, "s")
	test.That(t, err, test.ShouldNotBeNil)
}
