package bv

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/geom"
	"go.viam.com/collide/xform"
)

// AABB is an axis-aligned bounding box, the default BVHModel bound.
type AABB struct {
	Min, Max r3.Vector
}

func (a *AABB) Kind() geom.NodeKind { return geom.KindBVAABB }

func (a *AABB) Bounds() (r3.Vector, r3.Vector) { return a.Min, a.Max }

// Overlap reports whether two AABBs intersect, touching faces counted as
// overlapping, mirroring the teacher's aabbOverlap.
func (a *AABB) Overlap(other Volume) bool {
	o := mustAABB(other)
	return aabbOverlap(a.Min, a.Max, o.Min, o.Max)
}

func aabbOverlap(min1, max1, min2, max2 r3.Vector) bool {
	return min1.X <= max2.X && max1.X >= min2.X &&
		min1.Y <= max2.Y && max1.Y >= min2.Y &&
		min1.Z <= max2.Z && max1.Z >= min2.Z
}

// Distance returns the Euclidean separation between two AABBs, 0 if they
// overlap, mirroring the teacher's aabbDistance.
func (a *AABB) Distance(other Volume) float64 {
	o := mustAABB(other)
	return aabbDistance(a.Min, a.Max, o.Min, o.Max)
}

func aabbDistance(min1, max1, min2, max2 r3.Vector) float64 {
	dx := axisGap(min1.X, max1.X, min2.X, max2.X)
	dy := axisGap(min1.Y, max1.Y, min2.Y, max2.Y)
	dz := axisGap(min1.Z, max1.Z, min2.Z, max2.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func axisGap(min1, max1, min2, max2 float64) float64 {
	if max1 < min2 {
		return min2 - max1
	}
	if max2 < min1 {
		return min1 - max2
	}
	return 0
}

func (a *AABB) Merge(other Volume) Volume {
	o := mustAABB(other)
	return &AABB{
		Min: r3.Vector{X: math.Min(a.Min.X, o.Min.X), Y: math.Min(a.Min.Y, o.Min.Y), Z: math.Min(a.Min.Z, o.Min.Z)},
		Max: r3.Vector{X: math.Max(a.Max.X, o.Max.X), Y: math.Max(a.Max.Y, o.Max.Y), Z: math.Max(a.Max.Z, o.Max.Z)},
	}
}

// Transform conservatively re-bounds the box after a rigid transform, via
// the half-extent-times-abs-rotation technique, mirroring transformAABB.
func (a *AABB) Transform(toPremultiply xform.Pose) Volume {
	min, max := transformAABB(a.Min, a.Max, toPremultiply)
	return &AABB{Min: min, Max: max}
}

func transformAABB(min, max r3.Vector, pose xform.Pose) (r3.Vector, r3.Vector) {
	center := min.Add(max).Mul(0.5)
	halfExtent := max.Sub(min).Mul(0.5)
	newCenter := pose.TransformPoint(center)

	m := pose.RotationMatrix()
	newHalf := r3.Vector{}
	he := [3]float64{halfExtent.X, halfExtent.Y, halfExtent.Z}
	for i := 0; i < 3; i++ {
		row := xform.Row(m, i)
		abs := [3]float64{math.Abs(row.X), math.Abs(row.Y), math.Abs(row.Z)}
		v := abs[0]*he[0] + abs[1]*he[1] + abs[2]*he[2]
		switch i {
		case 0:
			newHalf.X = v
		case 1:
			newHalf.Y = v
		case 2:
			newHalf.Z = v
		}
	}
	return newCenter.Sub(newHalf), newCenter.Add(newHalf)
}

func mustAABB(v Volume) *AABB {
	if a, ok := v.(*AABB); ok {
		return a
	}
	min, max := v.Bounds()
	return &AABB{Min: min, Max: max}
}
