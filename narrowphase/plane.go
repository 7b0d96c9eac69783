package narrowphase

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/pkg/errors"

	"go.viam.com/collide/geom"
)

// errPlanePlaneUnsupported is returned when both operands of a Collide
// call are Plane/Halfspace. Neither has a meaningful support function
// (both report an unbounded AABB), so there is no closed-form test
// implemented for this pair.
var errPlanePlaneUnsupported = errors.New("narrowphase: plane/halfspace vs plane/halfspace is not supported")

// planar is implemented by geom.Plane and geom.Halfspace: both are convex
// "shapes" with an unbounded AABB, so GJK's generic support-function path
// (support.go's aabbSupport fallback over g.AABB()) would operate on ±Inf
// support points and never converge. Both get the closed-form
// signed-distance test below instead, generalizing
// spatialmath/triangle.go's triangle/plane test to any Support-bearing
// shape via this package's own Support function.
type planar interface {
	geom.Geometry
	Normal() r3.Vector
}

func asPlanar(g geom.Geometry) (planar, bool) {
	p, ok := g.(planar)
	return p, ok
}

// planeShapeCollide tests shape against p (a Plane or Halfspace) using the
// signed distance of shape's extreme support points along p's normal. swap
// is true when p was the *second* operand passed to Solver.Collide, so the
// reported contact normal (which otherwise points along p's own outward
// normal) is flipped to preserve the "normal flips sign when operands
// swap" invariant.
func planeShapeCollide(p planar, shape geom.Geometry, swap bool, collisionBuffer float64, out *Witness) (bool, float64, error) {
	if _, ok := asPlanar(shape); ok {
		return false, 0, errPlanePlaneUnsupported
	}

	normal := p.Normal()
	planePoint := p.Pose().Point()
	supportPos := Support(shape, normal)
	supportNeg := Support(shape, normal.Mul(-1))
	sMax := normal.Dot(supportPos.Sub(planePoint))
	sMin := normal.Dot(supportNeg.Sub(planePoint))

	var dist float64
	var witness r3.Vector
	if p.Kind() == geom.KindHalfspace {
		// The halfspace's solid region is normal·(x−planePoint) ≤ 0; only
		// the extreme point nearest that region matters, so overlap
		// reduces to a single signed distance, already negative on
		// penetration.
		dist = sMin
		witness = supportNeg.Sub(normal.Mul(sMin))
	} else {
		// A Plane is two-sided and zero-thickness: the minimal distance
		// shape would need to move along ±normal to clear it is
		// min(sMax, -sMin), whichever side is shallower, positive exactly
		// when shape already lies entirely to one side.
		dist = -math.Min(sMax, -sMin)
		if sMax <= -sMin {
			witness = supportPos.Sub(normal.Mul(sMax))
		} else {
			witness = supportNeg.Sub(normal.Mul(sMin))
		}
	}

	colliding := dist <= collisionBuffer
	if out != nil {
		contactNormal := normal
		if swap {
			contactNormal = contactNormal.Mul(-1)
		}
		out.Position = witness
		out.Normal = contactNormal
	}
	return colliding, dist, nil
}
