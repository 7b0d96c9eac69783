package bv

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/geom"
)

// ModelType distinguishes a triangle-soup BVHModel from a point-cloud one,
// mirroring FCL's BVHModelType used to pick the fitter's accumulation loop.
type ModelType int

const (
	ModelTriangles ModelType = iota
	ModelPointCloud
)

// Kind selects which BV variant Fit builds.
type Kind = geom.NodeKind

// Fit computes the bounding volume of `kind` that encloses a subset of a
// mesh's data, selected by indices. When modelType is ModelTriangles,
// indices select triangles (each contributing 3 vertices via triIndices);
// when ModelPointCloud, indices select vertices directly. prevVerts, if
// non-nil, is folded in too so the fit also encloses the previous frame's
// positions, exactly as BVFitter<BV>::fit does for deformable meshes.
func Fit(kind Kind, verts, prevVerts []r3.Vector, triIndices [][3]int, modelType ModelType, indices []int) Volume {
	points := collectPoints(verts, prevVerts, triIndices, modelType, indices)
	if len(points) == 0 {
		return &AABB{}
	}

	switch kind {
	case geom.KindBVAABB:
		return fitAABB(points)
	case geom.KindBVOBB:
		return fitOBB(points)
	case geom.KindBVRSS:
		core := fitOBBCore(points)
		return &RSS{core}
	case geom.KindBVOBBRSS:
		core := fitOBBCore(points)
		return &OBBRSS{core}
	case geom.KindBVkIOS:
		core := fitOBBCore(points)
		return &KIOS{core}
	case geom.KindBVKDOP16:
		return fitKDOPFromPoints(geom.KindBVKDOP16, kdopDirections16, points)
	case geom.KindBVKDOP18:
		return fitKDOPFromPoints(geom.KindBVKDOP18, kdopDirections18, points)
	case geom.KindBVKDOP24:
		return fitKDOPFromPoints(geom.KindBVKDOP24, kdopDirections24, points)
	default:
		return fitAABB(points)
	}
}

func collectPoints(verts, prevVerts []r3.Vector, triIndices [][3]int, modelType ModelType, indices []int) []r3.Vector {
	var points []r3.Vector
	switch modelType {
	case ModelTriangles:
		for _, idx := range indices {
			tri := triIndices[idx]
			for _, vi := range tri {
				points = append(points, verts[vi])
				if prevVerts != nil {
					points = append(points, prevVerts[vi])
				}
			}
		}
	case ModelPointCloud:
		for _, idx := range indices {
			points = append(points, verts[idx])
			if prevVerts != nil {
				points = append(points, prevVerts[idx])
			}
		}
	}
	return points
}

func fitAABB(points []r3.Vector) *AABB {
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = r3.Vector{X: fMinB(min.X, p.X), Y: fMinB(min.Y, p.Y), Z: fMinB(min.Z, p.Z)}
		max = r3.Vector{X: fMaxB(max.X, p.X), Y: fMaxB(max.Y, p.Y), Z: fMaxB(max.Z, p.Z)}
	}
	return &AABB{Min: min, Max: max}
}

// fitOBB fits an oriented box via PCA: the covariance matrix of the point
// set gives the principal axes, and the points' extent along those axes
// gives the half-extents, the same construction FCL's
// BVFitter<OBBd>::fit uses internally.
func fitOBB(points []r3.Vector) *OBB {
	core := fitOBBCore(points)
	return core.obb()
}

func fitOBBCore(points []r3.Vector) obbCore {
	mean := r3.Vector{}
	for _, p := range points {
		mean = mean.Add(p)
	}
	mean = mean.Mul(1 / float64(len(points)))

	var cxx, cxy, cxz, cyy, cyz, czz float64
	for _, p := range points {
		d := p.Sub(mean)
		cxx += d.X * d.X
		cxy += d.X * d.Y
		cxz += d.X * d.Z
		cyy += d.Y * d.Y
		cyz += d.Y * d.Z
		czz += d.Z * d.Z
	}
	n := float64(len(points))
	cxx, cxy, cxz, cyy, cyz, czz = cxx/n, cxy/n, cxz/n, cyy/n, cyz/n, czz/n

	axes := jacobiEigenvectors3x3(cxx, cxy, cxz, cyy, cyz, czz)

	halfExtent := r3.Vector{}
	first := true
	var lo, hi [3]float64
	for _, p := range points {
		d := p.Sub(mean)
		proj := [3]float64{d.Dot(axes[0]), d.Dot(axes[1]), d.Dot(axes[2])}
		if first {
			lo, hi = proj, proj
			first = false
			continue
		}
		for i := 0; i < 3; i++ {
			lo[i] = math.Min(lo[i], proj[i])
			hi[i] = math.Max(hi[i], proj[i])
		}
	}
	center := mean
	for i := 0; i < 3; i++ {
		mid := (lo[i] + hi[i]) / 2
		center = center.Add(axes[i].Mul(mid))
		switch i {
		case 0:
			halfExtent.X = (hi[i] - lo[i]) / 2
		case 1:
			halfExtent.Y = (hi[i] - lo[i]) / 2
		case 2:
			halfExtent.Z = (hi[i] - lo[i]) / 2
		}
	}

	radius := 0.0
	for _, p := range points {
		if r := p.Sub(center).Norm(); r > radius {
			radius = r
		}
	}
	boxCorner := math.Sqrt(halfExtent.X*halfExtent.X + halfExtent.Y*halfExtent.Y + halfExtent.Z*halfExtent.Z)
	sweep := math.Max(0, radius-boxCorner)

	return obbCore{Center: center, Axes: [3]r3.Vector{axes[0], axes[1], axes[2]}, HalfExtents: halfExtent, Radius: sweep}
}

// jacobiEigenvectors3x3 returns the eigenvectors of a symmetric 3x3
// covariance matrix via a handful of cyclic Jacobi rotations, sufficient
// for bounding-volume PCA where exactness doesn't matter.
func jacobiEigenvectors3x3(xx, xy, xz, yy, yz, zz float64) [3]r3.Vector {
	a := [3][3]float64{{xx, xy, xz}, {xy, yy, yz}, {xz, yz, zz}}
	v := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	for sweep := 0; sweep < 12; sweep++ {
		for p := 0; p < 2; p++ {
			for q := p + 1; q < 3; q++ {
				if math.Abs(a[p][q]) < 1e-12 {
					continue
				}
				theta := (a[q][q] - a[p][p]) / (2 * a[p][q])
				t := sign(theta) / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				c := 1 / math.Sqrt(t*t+1)
				s := t * c

				app, aqq, apq := a[p][p], a[q][q], a[p][q]
				a[p][p] = c*c*app - 2*s*c*apq + s*s*aqq
				a[q][q] = s*s*app + 2*s*c*apq + c*c*aqq
				a[p][q], a[q][p] = 0, 0
				for r := 0; r < 3; r++ {
					if r != p && r != q {
						arp, arq := a[r][p], a[r][q]
						a[r][p] = c*arp - s*arq
						a[p][r] = a[r][p]
						a[r][q] = s*arp + c*arq
						a[q][r] = a[r][q]
					}
				}
				for r := 0; r < 3; r++ {
					vrp, vrq := v[r][p], v[r][q]
					v[r][p] = c*vrp - s*vrq
					v[r][q] = s*vrp + c*vrq
				}
			}
		}
	}

	axes := [3]r3.Vector{
		{X: v[0][0], Y: v[1][0], Z: v[2][0]},
		{X: v[0][1], Y: v[1][1], Z: v[2][1]},
		{X: v[0][2], Y: v[1][2], Z: v[2][2]},
	}
	for i := range axes {
		axes[i] = axes[i].Normalize()
	}
	// Re-orthogonalize the third axis via cross product to guard against
	// drift from the fixed sweep count above.
	axes[2] = axes[0].Cross(axes[1]).Normalize()
	return axes
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
