package bv

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/geom"
	"go.viam.com/collide/xform"
)

// obbCore is the oriented-box part shared by RSS, kIOS and OBBRSS: each of
// those BVs is an OBB swollen by a uniform radius, following FCL's
// "rectangle swept sphere" construction.
type obbCore struct {
	Center      r3.Vector
	Axes        [3]r3.Vector
	HalfExtents r3.Vector
	Radius      float64
}

func (c *obbCore) obb() *OBB { return &OBB{Center: c.Center, Axes: c.Axes, HalfExtents: c.HalfExtents} }

func (c *obbCore) bounds() (r3.Vector, r3.Vector) {
	min, max := c.obb().Bounds()
	r := r3.Vector{X: c.Radius, Y: c.Radius, Z: c.Radius}
	return min.Sub(r), max.Add(r)
}

// sweptGap returns the separation between two radius-swollen oriented
// boxes: the core OBB SAT gap, minus both swelling radii.
func sweptGap(a, b *obbCore) float64 {
	return satMaxGap(a.obb(), b.obb()) - a.Radius - b.Radius
}

func (c *obbCore) transform(toPremultiply xform.Pose) obbCore {
	t := c.obb().Transform(toPremultiply).(*OBB)
	return obbCore{Center: t.Center, Axes: t.Axes, HalfExtents: t.HalfExtents, Radius: c.Radius}
}

// RSS is a rectangle swept sphere: an OBB inflated by a uniform radius.
// The dispatch does not pick a traversal by BV kind, so an RSS mesh is
// traversed the same way as an AABB mesh.
type RSS struct{ obbCore }

func (r *RSS) Kind() geom.NodeKind             { return geom.KindBVRSS }
func (r *RSS) Bounds() (r3.Vector, r3.Vector)  { return r.bounds() }
func (r *RSS) Overlap(other Volume) bool       { return sweptGap(&r.obbCore, &mustRSS(other).obbCore) <= 0 }
func (r *RSS) Distance(other Volume) float64 {
	g := sweptGap(&r.obbCore, &mustRSS(other).obbCore)
	if g <= 0 {
		return 0
	}
	return g
}
func (r *RSS) Merge(other Volume) Volume { return mergeAsAABB(r, other, geom.KindBVRSS) }
func (r *RSS) Transform(toPremultiply xform.Pose) Volume {
	t := r.obbCore.transform(toPremultiply)
	return &RSS{t}
}

// OBBRSS combines an OBB with an RSS; FCL uses it so the oriented
// traversal can fall back to the cheaper RSS test when the tighter OBB
// test isn't needed. Here it behaves identically to RSS and only keeps its
// own NodeKind; the dispatch does not select a traversal by BV kind.
type OBBRSS struct{ obbCore }

func (o *OBBRSS) Kind() geom.NodeKind            { return geom.KindBVOBBRSS }
func (o *OBBRSS) Bounds() (r3.Vector, r3.Vector) { return o.bounds() }
func (o *OBBRSS) Overlap(other Volume) bool {
	return sweptGap(&o.obbCore, &mustOBBRSS(other).obbCore) <= 0
}
func (o *OBBRSS) Distance(other Volume) float64 {
	g := sweptGap(&o.obbCore, &mustOBBRSS(other).obbCore)
	if g <= 0 {
		return 0
	}
	return g
}
func (o *OBBRSS) Merge(other Volume) Volume { return mergeAsAABB(o, other, geom.KindBVOBBRSS) }
func (o *OBBRSS) Transform(toPremultiply xform.Pose) Volume {
	t := o.obbCore.transform(toPremultiply)
	return &OBBRSS{t}
}

// KIOS stands in for FCL's kIOS bound, an intersection of a few spheres.
// Here it is an oriented-box core swollen by one uniform radius, the same
// shape as RSS; no multi-sphere bound is built.
type KIOS struct{ obbCore }

func (k *KIOS) Kind() geom.NodeKind            { return geom.KindBVkIOS }
func (k *KIOS) Bounds() (r3.Vector, r3.Vector) { return k.bounds() }
func (k *KIOS) Overlap(other Volume) bool {
	return sweptGap(&k.obbCore, &mustKIOS(other).obbCore) <= 0
}
func (k *KIOS) Distance(other Volume) float64 {
	g := sweptGap(&k.obbCore, &mustKIOS(other).obbCore)
	if g <= 0 {
		return 0
	}
	return g
}
func (k *KIOS) Merge(other Volume) Volume { return mergeAsAABB(k, other, geom.KindBVkIOS) }
func (k *KIOS) Transform(toPremultiply xform.Pose) Volume {
	t := k.obbCore.transform(toPremultiply)
	return &KIOS{t}
}

func mergeAsAABB(a, b Volume, kind geom.NodeKind) Volume {
	aMin, aMax := a.Bounds()
	bMin, bMax := b.Bounds()
	min := r3.Vector{X: math.Min(aMin.X, bMin.X), Y: math.Min(aMin.Y, bMin.Y), Z: math.Min(aMin.Z, bMin.Z)}
	max := r3.Vector{X: math.Max(aMax.X, bMax.X), Y: math.Max(aMax.Y, bMax.Y), Z: math.Max(aMax.Z, bMax.Z)}
	center := min.Add(max).Mul(0.5)
	core := obbCore{Center: center, Axes: [3]r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}, HalfExtents: max.Sub(min).Mul(0.5)}
	switch kind {
	case geom.KindBVRSS:
		return &RSS{core}
	case geom.KindBVOBBRSS:
		return &OBBRSS{core}
	default:
		return &KIOS{core}
	}
}

func mustRSS(v Volume) *RSS {
	if r, ok := v.(*RSS); ok {
		return r
	}
	return &RSS{coreFromBounds(v)}
}

func mustOBBRSS(v Volume) *OBBRSS {
	if o, ok := v.(*OBBRSS); ok {
		return o
	}
	return &OBBRSS{coreFromBounds(v)}
}

func mustKIOS(v Volume) *KIOS {
	if k, ok := v.(*KIOS); ok {
		return k
	}
	return &KIOS{coreFromBounds(v)}
}

func coreFromBounds(v Volume) obbCore {
	min, max := v.Bounds()
	return obbCore{
		Center:      min.Add(max).Mul(0.5),
		Axes:        [3]r3.Vector{{X: 1}, {Y: 1}, {Z: 1}},
		HalfExtents: max.Sub(min).Mul(0.5),
	}
}
