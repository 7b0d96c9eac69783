package octree

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestNewRejectsNonPositiveSideLength(t *testing.T) {
	_, err := New(r3.Vector{}, 0, golog.Global())
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSetAndAt(t *testing.T) {
	tree, err := New(r3.Vector{}, 10, golog.Global())
	test.That(t, err, test.ShouldBeNil)

	test.That(t, tree.Set(r3.Vector{X: 1, Y: 1, Z: 1}, true), test.ShouldBeNil)
	occ, ok := tree.At(1, 1, 1)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, occ, test.ShouldBeTrue)
	test.That(t, tree.Size(), test.ShouldEqual, 1)
}

func TestSetRejectsOutOfBoundsPoint(t *testing.T) {
	tree, err := New(r3.Vector{}, 2, golog.Global())
	test.That(t, err, test.ShouldBeNil)
	err = tree.Set(r3.Vector{X: 100}, true)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSetSplitsOnConflict(t *testing.T) {
	tree, err := New(r3.Vector{}, 10, golog.Global())
	test.That(t, err, test.ShouldBeNil)

	test.That(t, tree.Set(r3.Vector{X: 1, Y: 1, Z: 1}, true), test.ShouldBeNil)
	test.That(t, tree.Set(r3.Vector{X: -1, Y: -1, Z: -1}, false), test.ShouldBeNil)

	test.That(t, tree.NodeType(), test.ShouldEqual, InternalNode)
	occA, okA := tree.At(1, 1, 1)
	test.That(t, okA, test.ShouldBeTrue)
	test.That(t, occA, test.ShouldBeTrue)
	occB, okB := tree.At(-1, -1, -1)
	test.That(t, okB, test.ShouldBeTrue)
	test.That(t, occB, test.ShouldBeFalse)
}

func TestWalkVisitsEveryNode(t *testing.T) {
	tree, err := New(r3.Vector{}, 10, golog.Global())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tree.Set(r3.Vector{X: 1, Y: 1, Z: 1}, true), test.ShouldBeNil)
	test.That(t, tree.Set(r3.Vector{X: -1, Y: -1, Z: -1}, true), test.ShouldBeNil)

	count := 0
	tree.Walk(func(n *OcTree) bool {
		count++
		return true
	})
	test.That(t, count, test.ShouldEqual, 9) // root + 8 octants
}
