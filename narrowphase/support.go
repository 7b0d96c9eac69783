// Package narrowphase implements the exact-test layer the dispatch matrix
// in package collide calls into once broad-phase has pruned to a single
// candidate pair: support-function GJK for the generic convex-convex case,
// grounded on the teacher's gjkMinkowskiSupport/gjkClosestOn*
// family in spatialmath/box.go (the only GJK implementation present in
// the pack), generalized here from box-specific to any geom.Geometry via
// a Support method, the pattern akmonengine-feather's actor.Shape uses.
package narrowphase

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/geom"
)

// Support returns the world-space point of g farthest along direction d,
// the per-shape primitive GJK needs. Every convex primitive kind has a
// closed-form support function; unsupported kinds fall back to the AABB
// corner closest to d, which is exact only for axis-aligned boxes but
// keeps GJK from panicking on shapes this package doesn't special-case.
func Support(g geom.Geometry, d r3.Vector) r3.Vector {
	switch s := g.(type) {
	case *geom.Sphere:
		return sphereSupport(s, d)
	case *geom.Box:
		return boxSupport(s, d)
	case *geom.Ellipsoid:
		return ellipsoidSupport(s, d)
	case *geom.Capsule:
		return capsuleSupport(s, d)
	case *geom.Cylinder:
		return cylinderSupport(s, d)
	case *geom.Cone:
		return coneSupport(s, d)
	case *geom.Convex:
		return convexSupport(s, d)
	default:
		min, max := g.AABB()
		return aabbSupport(min, max, d)
	}
}

func sphereSupport(s *geom.Sphere, d r3.Vector) r3.Vector {
	c := s.Pose().Point()
	if n := d.Norm(); n > 1e-12 {
		return c.Add(d.Mul(s.Radius() / n))
	}
	return c
}

func boxSupport(b *geom.Box, d r3.Vector) r3.Vector {
	localAxes := [3]r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}
	center := b.Pose().Point()
	he := b.HalfSize()
	halves := [3]float64{he.X, he.Y, he.Z}
	result := center
	for i := 0; i < 3; i++ {
		axis := b.Pose().RotateVector(localAxes[i])
		if d.Dot(axis) >= 0 {
			result = result.Add(axis.Mul(halves[i]))
		} else {
			result = result.Sub(axis.Mul(halves[i]))
		}
	}
	return result
}

func ellipsoidSupport(e *geom.Ellipsoid, d r3.Vector) r3.Vector {
	pose := e.Pose()
	cols := [3]r3.Vector{pose.RotateVector(r3.Vector{X: 1}), pose.RotateVector(r3.Vector{Y: 1}), pose.RotateVector(r3.Vector{Z: 1})}
	center := pose.Point()
	r := e.Radii()
	radii := [3]float64{r.X, r.Y, r.Z}
	local := r3.Vector{X: cols[0].Dot(d), Y: cols[1].Dot(d), Z: cols[2].Dot(d)}
	scaled := r3.Vector{X: local.X * radii[0] * radii[0], Y: local.Y * radii[1] * radii[1], Z: local.Z * radii[2] * radii[2]}
	n := r3.Vector{X: local.X * radii[0], Y: local.Y * radii[1], Z: local.Z * radii[2]}.Norm()
	if n < 1e-12 {
		return center
	}
	worldOffset := cols[0].Mul(scaled.X / n).Add(cols[1].Mul(scaled.Y / n)).Add(cols[2].Mul(scaled.Z / n))
	return center.Add(worldOffset)
}

func capsuleSupport(c *geom.Capsule, d r3.Vector) r3.Vector {
	a, b := c.Segment()
	base := a
	if d.Dot(b.Sub(a)) > 0 {
		base = b
	}
	if n := d.Norm(); n > 1e-12 {
		return base.Add(d.Mul(c.Radius() / n))
	}
	return base
}

func cylinderSupport(c *geom.Cylinder, d r3.Vector) r3.Vector {
	zAxis := c.Pose().RotateVector(r3.Vector{Z: 1})
	center := c.Pose().Point()
	zComp := d.Dot(zAxis)
	radial := d.Sub(zAxis.Mul(zComp))
	result := center
	if zComp >= 0 {
		result = result.Add(zAxis.Mul(c.Height() / 2))
	} else {
		result = result.Sub(zAxis.Mul(c.Height() / 2))
	}
	if n := radial.Norm(); n > 1e-12 {
		result = result.Add(radial.Mul(c.Radius() / n))
	}
	return result
}

func coneSupport(c *geom.Cone, d r3.Vector) r3.Vector {
	zAxis := c.Pose().RotateVector(r3.Vector{Z: 1})
	base := c.Pose().Point()
	apex := base.Add(zAxis.Mul(c.Height()))
	zComp := d.Dot(zAxis)
	radial := d.Sub(zAxis.Mul(zComp))
	radialNorm := radial.Norm()
	// Compare projecting onto the apex vs the base rim; pick whichever
	// extends farther along d.
	apexProj := d.Dot(apex)
	var rimPoint r3.Vector
	if radialNorm > 1e-12 {
		rimPoint = base.Add(radial.Mul(c.Radius() / radialNorm))
	} else {
		rimPoint = base
	}
	rimProj := d.Dot(rimPoint)
	if apexProj >= rimProj {
		return apex
	}
	return rimPoint
}

func convexSupport(c *geom.Convex, d r3.Vector) r3.Vector {
	verts := c.WorldVertices()
	best := verts[0]
	bestDot := best.Dot(d)
	for _, v := range verts[1:] {
		if dot := v.Dot(d); dot > bestDot {
			best, bestDot = v, dot
		}
	}
	return best
}

func aabbSupport(min, max r3.Vector, d r3.Vector) r3.Vector {
	pick := func(lo, hi, c float64) float64 {
		if c >= 0 {
			return hi
		}
		return lo
	}
	return r3.Vector{
		X: pick(min.X, max.X, d.X),
		Y: pick(min.Y, max.Y, d.Y),
		Z: pick(min.Z, max.Z, d.Z),
	}
}

// boundingRadius returns a conservative bounding-sphere radius around g's
// pose, used for GJK's early-exit pre-check.
func boundingRadius(g geom.Geometry) float64 {
	min, max := g.AABB()
	if math.IsInf(min.X, -1) {
		return math.Inf(1)
	}
	c := g.Pose().Point()
	r1 := max.Sub(c).Norm()
	r2 := c.Sub(min).Norm()
	if r1 > r2 {
		return r1
	}
	return r2
}
