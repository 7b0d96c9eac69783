package xform

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestIdentity(t *testing.T) {
	p := Identity()
	test.That(t, p.Point(), test.ShouldResemble, r3.Vector{})
	v := r3.Vector{X: 1, Y: 2, Z: 3}
	test.That(t, p.TransformPoint(v), test.ShouldResemble, v)
}

func TestComposeInverse(t *testing.T) {
	a := New(r3.Vector{X: 1, Y: 0, Z: 0}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}))
	b := FromPoint(r3.Vector{X: 0, Y: 1, Z: 0})

	composed := Compose(a, b)
	direct := a.TransformPoint(b.TransformPoint(r3.Vector{}))
	got := composed.TransformPoint(r3.Vector{})
	test.That(t, got.X, test.ShouldAlmostEqual, direct.X, 1e-9)
	test.That(t, got.Y, test.ShouldAlmostEqual, direct.Y, 1e-9)
	test.That(t, got.Z, test.ShouldAlmostEqual, direct.Z, 1e-9)

	inv := a.Inverse()
	roundTrip := inv.TransformPoint(a.TransformPoint(r3.Vector{X: 5, Y: -2, Z: 1}))
	test.That(t, roundTrip.X, test.ShouldAlmostEqual, 5.0, 1e-9)
	test.That(t, roundTrip.Y, test.ShouldAlmostEqual, -2.0, 1e-9)
	test.That(t, roundTrip.Z, test.ShouldAlmostEqual, 1.0, 1e-9)
}

func TestAlmostEqual(t *testing.T) {
	a := Identity()
	b := New(r3.Vector{X: 1e-10}, mgl64.QuatIdent())
	test.That(t, AlmostEqual(a, b, 1e-6), test.ShouldBeTrue)
	test.That(t, AlmostEqual(a, FromPoint(r3.Vector{X: 1}), 1e-6), test.ShouldBeFalse)
}

func TestRow(t *testing.T) {
	p := New(r3.Vector{}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}))
	m := p.RotationMatrix()
	x := Row(m, 0)
	test.That(t, x.X, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, x.Y, test.ShouldAlmostEqual, -1, 1e-9)
}
