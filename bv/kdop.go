package bv

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/geom"
	"go.viam.com/collide/xform"
)

// kdopDirections16/18/24 are the slab normal directions (one per plane
// pair) for each k-DOP variant, k/2 directions for k slabs. 18-DOP is the
// 3 face normals plus the 6 edge diagonals; 24-DOP additionally adds 3 of
// the 4 corner diagonals (all but x+y+z); 16-DOP drops the y-z edge
// diagonal from the 18-DOP set, matching FCL's reduced variant.
var (
	kdopDirections18 = buildKDOP18Dirs()
	kdopDirections24 = append(buildKDOP18Dirs(), buildKDOPCornerDirs()...)
	kdopDirections16 = buildKDOP16Dirs()
)

func buildKDOP18Dirs() []r3.Vector {
	dirs := []r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}
	signs := []float64{1, -1}
	for _, sx := range signs {
		dirs = append(dirs, r3.Vector{X: sx, Y: 1}, r3.Vector{X: sx, Z: 1})
	}
	for _, sy := range signs {
		dirs = append(dirs, r3.Vector{Y: sy, Z: 1})
	}
	return normalizeAll(dirs)
}

func buildKDOPCornerDirs() []r3.Vector {
	dirs := make([]r3.Vector, 0, 4)
	for _, sx := range []float64{1, -1} {
		for _, sy := range []float64{1, -1} {
			if sx == 1 && sy == 1 {
				continue
			}
			dirs = append(dirs, r3.Vector{X: sx, Y: sy, Z: 1})
		}
	}
	return normalizeAll(dirs)
}

func buildKDOP16Dirs() []r3.Vector {
	dirs := []r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}
	for _, sx := range []float64{1, -1} {
		dirs = append(dirs, r3.Vector{X: sx, Y: 1}, r3.Vector{X: sx, Z: 1})
	}
	dirs = append(dirs, r3.Vector{Y: 1, Z: 1})
	return normalizeAll(dirs)
}

func normalizeAll(vs []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(vs))
	for i, v := range vs {
		out[i] = v.Normalize()
	}
	return out
}

// KDOP is a k-discrete-orientation-polytope: for each direction in Dirs, a
// [Min[i], Max[i]] projection interval. Overlap/Distance check every slab.
type KDOP struct {
	kind geom.NodeKind
	Dirs []r3.Vector
	Min  []float64
	Max  []float64
}

func (d *KDOP) Kind() geom.NodeKind { return d.kind }

func (d *KDOP) Bounds() (r3.Vector, r3.Vector) {
	min := r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for i, dir := range d.Dirs {
		if dir == (r3.Vector{X: 1}) || dir == (r3.Vector{Y: 1}) || dir == (r3.Vector{Z: 1}) {
			lo, hi := d.Min[i], d.Max[i]
			switch {
			case dir.X == 1:
				min.X, max.X = fMinB(min.X, lo), fMaxB(max.X, hi)
			case dir.Y == 1:
				min.Y, max.Y = fMinB(min.Y, lo), fMaxB(max.Y, hi)
			case dir.Z == 1:
				min.Z, max.Z = fMinB(min.Z, lo), fMaxB(max.Z, hi)
			}
		}
	}
	return min, max
}

func fMinB(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
func fMaxB(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Overlap reports whether every slab interval overlaps; a k-DOP pair is
// disjoint as soon as one slab's intervals don't, just like an AABB.
func (d *KDOP) Overlap(other Volume) bool {
	o := mustKDOP(other, d)
	for i := range d.Dirs {
		if d.Max[i] < o.Min[i] || o.Max[i] < d.Min[i] {
			return false
		}
	}
	return true
}

func (d *KDOP) Distance(other Volume) float64 {
	o := mustKDOP(other, d)
	maxGap := 0.0
	for i := range d.Dirs {
		gap := axisGap(d.Min[i], d.Max[i], o.Min[i], o.Max[i])
		if gap > maxGap {
			maxGap = gap
		}
	}
	return maxGap
}

func (d *KDOP) Merge(other Volume) Volume {
	o := mustKDOP(other, d)
	min := make([]float64, len(d.Dirs))
	max := make([]float64, len(d.Dirs))
	for i := range d.Dirs {
		min[i] = fMinB(d.Min[i], o.Min[i])
		max[i] = fMaxB(d.Max[i], o.Max[i])
	}
	return &KDOP{kind: d.kind, Dirs: d.Dirs, Min: min, Max: max}
}

// Transform re-projects the enclosing world AABB's 8 corners onto every
// slab direction; oriented k-DOP tracking is not implemented (see
// DESIGN.md), so a transformed k-DOP is rebuilt conservatively from its
// own rotated AABB corners.
func (d *KDOP) Transform(toPremultiply xform.Pose) Volume {
	min, max := d.Bounds()
	corners := aabbCorners(min, max)
	worldCorners := make([]r3.Vector, len(corners))
	for i, c := range corners {
		worldCorners[i] = toPremultiply.TransformPoint(c)
	}
	return fitKDOPFromPoints(d.kind, d.Dirs, worldCorners)
}

func aabbCorners(min, max r3.Vector) []r3.Vector {
	return []r3.Vector{
		{X: min.X, Y: min.Y, Z: min.Z}, {X: min.X, Y: min.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: min.Z}, {X: min.X, Y: max.Y, Z: max.Z},
		{X: max.X, Y: min.Y, Z: min.Z}, {X: max.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: min.Z}, {X: max.X, Y: max.Y, Z: max.Z},
	}
}

func fitKDOPFromPoints(kind geom.NodeKind, dirs []r3.Vector, points []r3.Vector) *KDOP {
	min := make([]float64, len(dirs))
	max := make([]float64, len(dirs))
	for i, dir := range dirs {
		min[i], max[i] = math.Inf(1), math.Inf(-1)
		for _, p := range points {
			proj := dir.Dot(p)
			min[i] = fMinB(min[i], proj)
			max[i] = fMaxB(max[i], proj)
		}
	}
	return &KDOP{kind: kind, Dirs: dirs, Min: min, Max: max}
}

func mustKDOP(v Volume, like *KDOP) *KDOP {
	if k, ok := v.(*KDOP); ok {
		return k
	}
	min, max := v.Bounds()
	return fitKDOPFromPoints(like.kind, like.Dirs, aabbCorners(min, max))
}
