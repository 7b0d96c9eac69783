package narrowphase

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/pkg/errors"

	"go.viam.com/collide/geom"
)

// Witness carries the narrow-phase contact geometry for a pair: a
// representative contact position and the separating-axis normal. Solver
// implementations only populate it when the caller passes a non-nil
// pointer, mirroring CollisionRequest.EnableContact skipping the extra
// work upstream.
type Witness struct {
	Position r3.Vector
	Normal   r3.Vector
}

// Solver is the narrow-phase exact test the dispatch matrix in package
// collide invokes once broad-phase admits a shape-shape pair. Collide
// reports whether a and b are in contact within collisionBuffer of each
// other, and a signed separation (negative on penetration, matching the
// teacher's box-vs-box distance convention). out is filled in with a
// witness point/normal when non-nil, the Go shape of FCL's
// shapeIntersect(..., out_contacts) parameter.
type Solver interface {
	Collide(a, b geom.Geometry, collisionBuffer float64, out *Witness) (bool, float64, error)
}

// GJKSolver is the reference Solver: a support-function GJK, generalized
// from the teacher's box-only gjkMinkowskiSupport/gjkClosestOn* family to
// any pair of geom.Geometry via the package-level Support function, with
// a closed-form fallback for Plane/Halfspace operands (plane.go), whose
// unbounded AABB this GJK loop cannot support-map.
type GJKSolver struct{}

const (
	gjkMaxIter = 64
	gjkEps     = 1e-10
)

// gjkPoint is one Minkowski-difference vertex together with the witness
// points on a and b whose difference produced it, so the simplex
// reduction that finds the closest point to the origin can reconstruct a
// contact position/normal via the same affine combination.
type gjkPoint struct {
	w      r3.Vector
	pa, pb r3.Vector
}

func minkowskiSupportPoint(a, b geom.Geometry, d r3.Vector) gjkPoint {
	pa := Support(a, d)
	pb := Support(b, d.Mul(-1))
	return gjkPoint{w: pa.Sub(pb), pa: pa, pb: pb}
}

// Collide runs GJK on the Minkowski difference of a and b.
func (GJKSolver) Collide(a, b geom.Geometry, collisionBuffer float64, out *Witness) (bool, float64, error) {
	if pa, ok := asPlanar(a); ok {
		return planeShapeCollide(pa, b, false, collisionBuffer, out)
	}
	if pb, ok := asPlanar(b); ok {
		return planeShapeCollide(pb, a, true, collisionBuffer, out)
	}

	centerDist := b.Pose().Point().Sub(a.Pose().Point())

	if ra, rb := boundingRadius(a), boundingRadius(b); !math.IsInf(ra, 1) && !math.IsInf(rb, 1) {
		if dist := centerDist.Norm() - (ra + rb); dist > collisionBuffer {
			return false, dist, nil
		}
	}

	d := centerDist
	if d.Norm2() < 1e-20 {
		d = r3.Vector{X: 1}
	}

	p0 := minkowskiSupportPoint(a, b, d)
	simplex := []gjkPoint{p0}
	v := p0.w
	witnessA, witnessB := p0.pa, p0.pb
	mu := 0.0

	for iter := 0; iter < gjkMaxIter; iter++ {
		vv := v.Norm2()
		if vv < 1e-20 {
			setWitness(out, witnessA, witnessB, centerDist)
			return true, -1, nil
		}
		vNorm := math.Sqrt(vv)

		d = v.Mul(-1)
		wp := minkowskiSupportPoint(a, b, d)
		w := wp.w

		if lb := v.Dot(w) / vNorm; lb > mu {
			mu = lb
		}
		if mu > collisionBuffer {
			setWitness(out, witnessA, witnessB, centerDist)
			return false, mu, nil
		}
		if vv-v.Dot(w) <= gjkEps*vv {
			break
		}

		simplex = append(simplex, wp)
		pts := make([]r3.Vector, len(simplex))
		for i, s := range simplex {
			pts[i] = s.w
		}

		var keepIdx []int
		var weights []float64
		switch len(simplex) {
		case 2:
			v, keepIdx, weights = closestOnSegment(pts[0], pts[1])
		case 3:
			v, keepIdx, weights = closestOnTriangle(pts[0], pts[1], pts[2])
		case 4:
			v, keepIdx, weights = closestOnTetrahedron(pts)
		default:
			return false, 0, errors.Errorf("gjk: invalid simplex size %d", len(simplex))
		}

		if len(keepIdx) == 4 {
			// The origin lies inside the tetrahedron: genuine deep
			// penetration. This support-only GJK has no EPA stage to
			// resolve an exact penetration manifold, so the witness
			// falls back to the simplex centroid on each side.
			witnessA, witnessB = r3.Vector{}, r3.Vector{}
			for _, s := range simplex {
				witnessA = witnessA.Add(s.pa.Mul(0.25))
				witnessB = witnessB.Add(s.pb.Mul(0.25))
			}
			setWitness(out, witnessA, witnessB, centerDist)
			return true, -1, nil
		}

		reduced := make([]gjkPoint, len(keepIdx))
		witnessA, witnessB = r3.Vector{}, r3.Vector{}
		for k, idx := range keepIdx {
			reduced[k] = simplex[idx]
			witnessA = witnessA.Add(simplex[idx].pa.Mul(weights[k]))
			witnessB = witnessB.Add(simplex[idx].pb.Mul(weights[k]))
		}
		simplex = reduced
	}

	finalDist := v.Norm()
	setWitness(out, witnessA, witnessB, centerDist)
	if finalDist > collisionBuffer {
		return false, finalDist, nil
	}
	return true, finalDist, nil
}

// setWitness derives a contact position/normal from the witness points a
// GJK simplex reduction reconstructed on each operand. Normal points from
// b's witness toward a's witness; when the two coincide (the exact
// touching case, where the Minkowski-difference boundary passes through
// the origin) that difference is degenerate, so centerDist — the vector
// from a's pose to b's — is used instead, still oriented from b toward a.
func setWitness(out *Witness, pa, pb, centerDist r3.Vector) {
	if out == nil {
		return
	}
	out.Position = pa.Add(pb).Mul(0.5)
	n := pa.Sub(pb)
	if nn := n.Norm(); nn > 1e-9 {
		out.Normal = n.Mul(1 / nn)
		return
	}
	if cn := centerDist.Norm(); cn > 1e-9 {
		out.Normal = centerDist.Mul(-1 / cn)
		return
	}
	out.Normal = r3.Vector{Z: 1}
}

// Distance returns the exact Euclidean separation between a and b, 0 if
// they overlap. It reruns Collide with an effectively unbounded buffer so
// GJK always converges to the true distance rather than early-exiting.
func (s GJKSolver) Distance(a, b geom.Geometry) (float64, error) {
	_, dist, err := s.Collide(a, b, math.Inf(1), nil)
	if err != nil {
		return 0, err
	}
	if dist < 0 {
		return 0, nil
	}
	return dist, nil
}

func closestOnSegment(a, b r3.Vector) (r3.Vector, []int, []float64) {
	ab := b.Sub(a)
	denom := ab.Norm2()
	if denom < 1e-30 {
		return a, []int{0}, []float64{1}
	}
	t := a.Mul(-1).Dot(ab) / denom
	if t <= 0 {
		return a, []int{0}, []float64{1}
	}
	if t >= 1 {
		return b, []int{1}, []float64{1}
	}
	return a.Add(ab.Mul(t)), []int{0, 1}, []float64{1 - t, t}
}

func closestOnTriangle(a, b, c r3.Vector) (r3.Vector, []int, []float64) {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)

	d1 := ab.Dot(ao)
	d2 := ac.Dot(ao)
	if d1 <= 0 && d2 <= 0 {
		return a, []int{0}, []float64{1}
	}

	bo := b.Mul(-1)
	d3 := ab.Dot(bo)
	d4 := ac.Dot(bo)
	if d3 >= 0 && d4 <= d3 {
		return b, []int{1}, []float64{1}
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Mul(v)), []int{0, 1}, []float64{1 - v, v}
	}

	co := c.Mul(-1)
	d5 := ab.Dot(co)
	d6 := ac.Dot(co)
	if d6 >= 0 && d5 <= d6 {
		return c, []int{2}, []float64{1}
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Mul(w)), []int{0, 2}, []float64{1 - w, w}
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w)), []int{1, 2}, []float64{1 - w, w}
	}

	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w)), []int{0, 1, 2}, []float64{1 - v - w, v, w}
}

func originInTetrahedron(pts []r3.Vector) bool {
	type face struct{ v0, v1, v2, opp int }
	faces := [4]face{{0, 1, 2, 3}, {0, 1, 3, 2}, {0, 2, 3, 1}, {1, 2, 3, 0}}
	for _, f := range faces {
		p0, p1, p2 := pts[f.v0], pts[f.v1], pts[f.v2]
		normal := p1.Sub(p0).Cross(p2.Sub(p0))
		dOrigin := normal.Dot(p0.Mul(-1))
		dOpp := normal.Dot(pts[f.opp].Sub(p0))
		if dOrigin*dOpp < 0 {
			return false
		}
	}
	return true
}

func closestOnTetrahedron(pts []r3.Vector) (r3.Vector, []int, []float64) {
	if originInTetrahedron(pts) {
		return r3.Vector{}, []int{0, 1, 2, 3}, nil
	}
	faces := [4][3]int{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}}
	bestDist := math.Inf(1)
	var bestV r3.Vector
	var bestIdx []int
	var bestW []float64
	for _, f := range faces {
		v, idx, w := closestOnTriangle(pts[f[0]], pts[f[1]], pts[f[2]])
		if d := v.Norm2(); d < bestDist {
			bestDist = d
			bestV = v
			remapped := make([]int, len(idx))
			for i, k := range idx {
				remapped[i] = f[k]
			}
			bestIdx = remapped
			bestW = w
		}
	}
	return bestV, bestIdx, bestW
}
