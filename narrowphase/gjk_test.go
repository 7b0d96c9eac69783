package narrowphase

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collide/geom"
	"go.viam.com/collide/xform"
)

func TestGJKSphereSphereOverlap(t *testing.T) {
	a, err := geom.NewSphere(xform.Identity(), 1, "a")
	test.That(t, err, test.ShouldBeNil)
	b, err := geom.NewSphere(xform.FromPoint(r3.Vector{X: 1.5}), 1, "b")
	test.That(t, err, test.ShouldBeNil)

	colliding, _, err := (GJKSolver{}).Collide(a, b, 0, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, colliding, test.ShouldBeTrue)
}

func TestGJKSphereSphereSeparated(t *testing.T) {
	a, err := geom.NewSphere(xform.Identity(), 1, "a")
	test.That(t, err, test.ShouldBeNil)
	b, err := geom.NewSphere(xform.FromPoint(r3.Vector{X: 5}), 1, "b")
	test.That(t, err, test.ShouldBeNil)

	colliding, dist, err := (GJKSolver{}).Collide(a, b, 0, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, colliding, test.ShouldBeFalse)
	test.That(t, dist, test.ShouldBeGreaterThan, 0)
}

func TestGJKBoxBoxOverlap(t *testing.T) {
	a, err := geom.NewBox(xform.Identity(), r3.Vector{X: 2, Y: 2, Z: 2}, "a")
	test.That(t, err, test.ShouldBeNil)
	b, err := geom.NewBox(xform.FromPoint(r3.Vector{X: 1.5}), r3.Vector{X: 2, Y: 2, Z: 2}, "b")
	test.That(t, err, test.ShouldBeNil)

	colliding, _, err := (GJKSolver{}).Collide(a, b, 0, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, colliding, test.ShouldBeTrue)
}

func TestGJKBoxBoxSeparated(t *testing.T) {
	a, err := geom.NewBox(xform.Identity(), r3.Vector{X: 2, Y: 2, Z: 2}, "a")
	test.That(t, err, test.ShouldBeNil)
	b, err := geom.NewBox(xform.FromPoint(r3.Vector{X: 10}), r3.Vector{X: 2, Y: 2, Z: 2}, "b")
	test.That(t, err, test.ShouldBeNil)

	colliding, _, err := (GJKSolver{}).Collide(a, b, 0, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, colliding, test.ShouldBeFalse)
}

func TestGJKDistanceMatchesCenterSeparation(t *testing.T) {
	a, err := geom.NewSphere(xform.Identity(), 1, "a")
	test.That(t, err, test.ShouldBeNil)
	b, err := geom.NewSphere(xform.FromPoint(r3.Vector{X: 4}), 1, "b")
	test.That(t, err, test.ShouldBeNil)

	dist, err := (GJKSolver{}).Distance(a, b)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dist, test.ShouldAlmostEqual, 2.0, 1e-6)
}

func TestSupportBoxReturnsCorner(t *testing.T) {
	b, err := geom.NewBox(xform.Identity(), r3.Vector{X: 2, Y: 2, Z: 2}, "b")
	test.That(t, err, test.ShouldBeNil)

	p := Support(b, r3.Vector{X: 1, Y: 1, Z: 1})
	test.That(t, p, test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 1})
}

func TestSupportSphereReturnsSurfacePoint(t *testing.T) {
	s, err := geom.NewSphere(xform.Identity(), 2, "s")
	test.That(t, err, test.ShouldBeNil)

	p := Support(s, r3.Vector{X: 1})
	test.That(t, p, test.ShouldResemble, r3.Vector{X: 2})
}

func TestGJKSphereSphereWitnessAtTouchingPoint(t *testing.T) {
	a, err := geom.NewSphere(xform.Identity(), 1, "a")
	test.That(t, err, test.ShouldBeNil)
	b, err := geom.NewSphere(xform.FromPoint(r3.Vector{X: 2}), 1, "b")
	test.That(t, err, test.ShouldBeNil)

	var w Witness
	colliding, _, err := (GJKSolver{}).Collide(a, b, 0, &w)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, colliding, test.ShouldBeTrue)
	test.That(t, w.Position.X, test.ShouldAlmostEqual, 1.0, 1e-6)
	test.That(t, math.Abs(w.Normal.X), test.ShouldAlmostEqual, 1.0, 1e-6)
}

func TestGJKBoxPlaneStraddleWitnessOnPlane(t *testing.T) {
	box, err := geom.NewBox(xform.Identity(), r3.Vector{X: 2, Y: 2, Z: 2}, "box")
	test.That(t, err, test.ShouldBeNil)
	plane, err := geom.NewPlane(xform.Identity(), "plane")
	test.That(t, err, test.ShouldBeNil)

	var w Witness
	colliding, dist, err := (GJKSolver{}).Collide(box, plane, 0, &w)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, colliding, test.ShouldBeTrue)
	test.That(t, dist, test.ShouldBeLessThanOrEqualTo, 0)
	test.That(t, w.Position.Z, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, math.Abs(w.Normal.Z), test.ShouldAlmostEqual, 1.0, 1e-9)
}

func TestGJKPlanePlaneUnsupported(t *testing.T) {
	a, err := geom.NewPlane(xform.Identity(), "a")
	test.That(t, err, test.ShouldBeNil)
	b, err := geom.NewPlane(xform.Identity(), "b")
	test.That(t, err, test.ShouldBeNil)

	_, _, err = (GJKSolver{}).Collide(a, b, 0, nil)
	test.That(t, err, test.ShouldNotBeNil)
}
