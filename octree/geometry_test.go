package octree

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collide/geom"
	"go.viam.com/collide/xform"
)

func TestGeometryAABBAxisAligned(t *testing.T) {
	tree, err := New(r3.Vector{X: 1, Y: 2, Z: 3}, 4, golog.Global())
	test.That(t, err, test.ShouldBeNil)

	g := NewGeometry(tree, xform.Identity(), 0.5, 0.5, "occ")
	test.That(t, g.Kind(), test.ShouldEqual, geom.KindOctree)

	min, max := g.AABB()
	test.That(t, min, test.ShouldResemble, r3.Vector{X: -1, Y: 0, Z: 1})
	test.That(t, max, test.ShouldResemble, r3.Vector{X: 3, Y: 4, Z: 5})
}

func TestGeometryTransformComposesPose(t *testing.T) {
	tree, err := New(r3.Vector{}, 2, golog.Global())
	test.That(t, err, test.ShouldBeNil)
	g := NewGeometry(tree, xform.Identity(), 0.5, 0.5, "occ")

	moved := g.Transform(xform.FromPoint(r3.Vector{X: 10})).(*Geometry)
	test.That(t, moved.Pose().Point(), test.ShouldResemble, r3.Vector{X: 10})
	test.That(t, moved.Label(), test.ShouldEqual, "occ")
}
