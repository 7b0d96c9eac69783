package bv

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/geom"
	"go.viam.com/collide/xform"
)

const satEpsilon = 1e-10

// OBB is an oriented bounding box: a center, three orthonormal local axes,
// and a half-extent along each. Overlap uses the 15-axis separating-axis
// test (Ericson, Real-Time Collision Detection ch. 4.4), the same test the
// teacher's obbSATMaxGap implements for shape-level box collision.
type OBB struct {
	Center      r3.Vector
	Axes        [3]r3.Vector
	HalfExtents r3.Vector
}

func (o *OBB) Kind() geom.NodeKind { return geom.KindBVOBB }

// Bounds returns the world-space AABB enclosing the oriented box: the
// half-extent along world axis k is sum_i |Axes[i][k]| * HalfExtents[i].
func (o *OBB) Bounds() (r3.Vector, r3.Vector) {
	hx := [3]float64{o.HalfExtents.X, o.HalfExtents.Y, o.HalfExtents.Z}
	he := r3.Vector{}
	for i := 0; i < 3; i++ {
		a := o.Axes[i]
		h := hx[i]
		he.X += math.Abs(a.X) * h
		he.Y += math.Abs(a.Y) * h
		he.Z += math.Abs(a.Z) * h
	}
	return o.Center.Sub(he), o.Center.Add(he)
}

// satMaxGap returns the maximum separation gap across the 15 SAT axes for
// two oriented boxes: positive means separated by at least that distance,
// negative is penetration depth.
func satMaxGap(a, b *OBB) float64 {
	centerDist := b.Center.Sub(a.Center)
	hA := [3]float64{a.HalfExtents.X, a.HalfExtents.Y, a.HalfExtents.Z}
	hB := [3]float64{b.HalfExtents.X, b.HalfExtents.Y, b.HalfExtents.Z}

	maxGap := math.Inf(-1)
	test := func(axis r3.Vector) {
		l := axis.Norm()
		if l < satEpsilon {
			return
		}
		axis = axis.Mul(1 / l)
		dist := math.Abs(centerDist.Dot(axis))
		var extA, extB float64
		for i := 0; i < 3; i++ {
			extA += hA[i] * math.Abs(a.Axes[i].Dot(axis))
			extB += hB[i] * math.Abs(b.Axes[i].Dot(axis))
		}
		gap := dist - (extA + extB)
		if gap > maxGap {
			maxGap = gap
		}
	}

	for i := 0; i < 3; i++ {
		test(a.Axes[i])
		test(b.Axes[i])
		for j := 0; j < 3; j++ {
			test(a.Axes[i].Cross(b.Axes[j]))
		}
	}
	return maxGap
}

func (o *OBB) Overlap(other Volume) bool {
	return satMaxGap(o, mustOBB(other)) <= 0
}

func (o *OBB) Distance(other Volume) float64 {
	gap := satMaxGap(o, mustOBB(other))
	if gap <= 0 {
		return 0
	}
	return gap
}

// Merge conservatively rebounds as an axis-aligned box enclosing both
// operands' world AABBs; oriented boxes do not merge losslessly.
func (o *OBB) Merge(other Volume) Volume {
	aMin, aMax := o.Bounds()
	bMin, bMax := other.Bounds()
	min := r3.Vector{X: math.Min(aMin.X, bMin.X), Y: math.Min(aMin.Y, bMin.Y), Z: math.Min(aMin.Z, bMin.Z)}
	max := r3.Vector{X: math.Max(aMax.X, bMax.X), Y: math.Max(aMax.Y, bMax.Y), Z: math.Max(aMax.Z, bMax.Z)}
	center := min.Add(max).Mul(0.5)
	return &OBB{
		Center:      center,
		Axes:        [3]r3.Vector{{X: 1}, {Y: 1}, {Z: 1}},
		HalfExtents: max.Sub(min).Mul(0.5),
	}
}

func (o *OBB) Transform(toPremultiply xform.Pose) Volume {
	m := toPremultiply.RotationMatrix()
	rows := [3]r3.Vector{xform.Row(m, 0), xform.Row(m, 1), xform.Row(m, 2)}
	axes := [3]r3.Vector{}
	for i := 0; i < 3; i++ {
		axes[i] = rotateAxis(rows, o.Axes[i])
	}
	return &OBB{
		Center:      toPremultiply.TransformPoint(o.Center),
		Axes:        axes,
		HalfExtents: o.HalfExtents,
	}
}

// rotateAxis applies the rotation matrix given as its three rows to v.
func rotateAxis(rows [3]r3.Vector, v r3.Vector) r3.Vector {
	return r3.Vector{X: rows[0].Dot(v), Y: rows[1].Dot(v), Z: rows[2].Dot(v)}
}

func mustOBB(v Volume) *OBB {
	if o, ok := v.(*OBB); ok {
		return o
	}
	min, max := v.Bounds()
	center := min.Add(max).Mul(0.5)
	return &OBB{
		Center:      center,
		Axes:        [3]r3.Vector{{X: 1}, {Y: 1}, {Z: 1}},
		HalfExtents: max.Sub(min).Mul(0.5),
	}
}
