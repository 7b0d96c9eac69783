package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

const floatEpsilon = 1e-8

// Triangle is a single mesh face, stored as three world-space points plus
// a cached face normal. BVHModel leaves hold Triangles, not a Geometry.
type Triangle struct {
	p0, p1, p2 r3.Vector
	normal     r3.Vector
}

// NewTriangle builds a Triangle and caches its plane normal.
func NewTriangle(p0, p1, p2 r3.Vector) *Triangle {
	return &Triangle{p0: p0, p1: p1, p2: p2, normal: PlaneNormal(p0, p1, p2)}
}

// PlaneNormal returns the (non-unit-length-guaranteed) normal of the plane
// through three points, via (p1-p0) x (p2-p0), normalized.
func PlaneNormal(p0, p1, p2 r3.Vector) r3.Vector {
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	if l := n.Norm(); l > floatEpsilon {
		return n.Mul(1 / l)
	}
	return n
}

func (t *Triangle) Points() [3]r3.Vector { return [3]r3.Vector{t.p0, t.p1, t.p2} }
func (t *Triangle) Normal() r3.Vector    { return t.normal }

// AABB returns the triangle's axis-aligned bounding box.
func (t *Triangle) AABB() (r3.Vector, r3.Vector) {
	min := r3.Vector{X: fMin(t.p0.X, fMin(t.p1.X, t.p2.X)), Y: fMin(t.p0.Y, fMin(t.p1.Y, t.p2.Y)), Z: fMin(t.p0.Z, fMin(t.p1.Z, t.p2.Z))}
	max := r3.Vector{X: fMax(t.p0.X, fMax(t.p1.X, t.p2.X)), Y: fMax(t.p0.Y, fMax(t.p1.Y, t.p2.Y)), Z: fMax(t.p0.Z, fMax(t.p1.Z, t.p2.Z))}
	return min, max
}

// ClosestInsidePoint returns the closest point on the triangle's plane to
// point, along with whether that point actually lies inside the triangle
// (i.e. the point's projection overlaps the triangle's interior).
func (t *Triangle) ClosestInsidePoint(point r3.Vector) (r3.Vector, bool) {
	const eps = 1e-6
	e0 := t.p1.Sub(t.p0)
	e1 := t.p2.Sub(t.p0)
	a := e0.Norm2()
	b := e0.Dot(e1)
	c := e1.Norm2()
	d := point.Sub(t.p0)
	det := a*c - b*b
	if math.Abs(det) < floatEpsilon {
		return point, false
	}
	u := (c*e0.Dot(d) - b*e1.Dot(d)) / det
	v := (-b*e0.Dot(d) + a*e1.Dot(d)) / det
	inside := (0 <= u+eps) && (u <= 1+eps) && (0 <= v+eps) && (v <= 1+eps) && (u+v <= 1+eps)
	return t.p0.Add(e0.Mul(u)).Add(e1.Mul(v)), inside
}

// ClosestPointToPoint returns the closest point on the triangle (interior
// or boundary) to an arbitrary point in space.
func (t *Triangle) ClosestPointToPoint(point r3.Vector) r3.Vector {
	if inside, ok := t.ClosestInsidePoint(point); ok {
		return inside
	}
	closest := ClosestPointSegmentPoint(t.p0, t.p1, point)
	bestDist := point.Sub(closest).Norm2()
	if p := ClosestPointSegmentPoint(t.p1, t.p2, point); point.Sub(p).Norm2() < bestDist {
		closest, bestDist = p, point.Sub(p).Norm2()
	}
	if p := ClosestPointSegmentPoint(t.p2, t.p0, point); point.Sub(p).Norm2() < bestDist {
		closest = p
	}
	return closest
}

// ClosestPointSegmentPoint returns the closest point on segment [a,b] to p.
func ClosestPointSegmentPoint(a, b, p r3.Vector) r3.Vector {
	ab := b.Sub(a)
	denom := ab.Norm2()
	if denom < floatEpsilon {
		return a
	}
	t := p.Sub(a).Dot(ab) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Mul(t))
}

// IntersectsPlane reports whether the triangle crosses or lies on the
// plane through planePt with unit normal planeNormal.
func (t *Triangle) IntersectsPlane(planePt, planeNormal r3.Vector) bool {
	d0 := planeNormal.Dot(t.p0.Sub(planePt))
	d1 := planeNormal.Dot(t.p1.Sub(planePt))
	d2 := planeNormal.Dot(t.p2.Sub(planePt))
	if (d0 > floatEpsilon && d1 > floatEpsilon && d2 > floatEpsilon) ||
		(d0 < -floatEpsilon && d1 < -floatEpsilon && d2 < -floatEpsilon) {
		return false
	}
	return true
}
