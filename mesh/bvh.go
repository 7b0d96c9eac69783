// Package mesh provides BVHModel, the generic triangle-mesh bounding
// volume hierarchy collision/traversal operates over. The recursive
// top-down builder and its helpers are grounded on the teacher's
// (unshipped) buildBVH/computeTrianglesAABB, reconstructed from
// spatialmath/bvh_test.go's expectations.
package mesh

import (
	"sort"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/bv"
	"go.viam.com/collide/geom"
	"go.viam.com/collide/xform"
)

// leafSplitThreshold is the maximum triangle count a leaf node may hold
// before the builder splits it, matching the "few triangles" vs "many
// triangles" boundary spatialmath/bvh_test.go exercises at 3 vs 10.
const leafSplitThreshold = 4

// Node is one node of a BVHModel's binary tree: either a leaf holding
// triangle indices, or an internal node with two children.
type Node struct {
	min, max    r3.Vector
	triangles   []int
	left, right *Node
}

// IsLeaf reports whether n holds triangles directly rather than children.
func (n *Node) IsLeaf() bool { return n.left == nil && n.right == nil }

// Bounds returns n's local-frame AABB.
func (n *Node) Bounds() (r3.Vector, r3.Vector) { return n.min, n.max }

// Triangles returns the triangle indices a leaf node holds.
func (n *Node) Triangles() []int { return n.triangles }

// Left and Right return n's children, nil for a leaf.
func (n *Node) Left() *Node  { return n.left }
func (n *Node) Right() *Node { return n.right }

// BVHModel is a triangle mesh wrapped in a bounding volume hierarchy of
// bound kind BV, following FCL's BVHModel<BV>.
type BVHModel struct {
	costProfile
	pose       xform.Pose
	kind       geom.NodeKind
	vertices   []r3.Vector
	prevVerts  []r3.Vector
	triIndices [][3]int
	root       *Node
	label      string
}

type costProfile struct {
	costDensity       float64
	thresholdOccupied float64
	thresholdFree     float64
}

func (c costProfile) CostDensity() float64       { return c.costDensity }
func (c costProfile) ThresholdOccupied() float64 { return c.thresholdOccupied }
func (c costProfile) ThresholdFree() float64     { return c.thresholdFree }

func (c *costProfile) SetCostDensity(v float64)       { c.costDensity = v }
func (c *costProfile) SetThresholdOccupied(v float64) { c.thresholdOccupied = v }
func (c *costProfile) SetThresholdFree(v float64)     { c.thresholdFree = v }

// NewBVHModel builds a BVHModel of the given BV kind from a vertex buffer
// and a triangle index buffer (each naming 3 vertex indices).
func NewBVHModel(pose xform.Pose, kind geom.NodeKind, vertices []r3.Vector, triIndices [][3]int, label string) *BVHModel {
	m := &BVHModel{pose: pose, kind: kind, vertices: vertices, triIndices: triIndices, label: label}
	indices := make([]int, len(triIndices))
	for i := range indices {
		indices[i] = i
	}
	m.root = buildBVH(vertices, triIndices, indices)
	return m
}

func (m *BVHModel) Kind() geom.NodeKind { return m.kind }
func (m *BVHModel) Pose() xform.Pose    { return m.pose }
func (m *BVHModel) Label() string       { return m.label }
func (m *BVHModel) SetLabel(l string)   { m.label = l }
func (m *BVHModel) Root() *Node         { return m.root }
func (m *BVHModel) Vertices() []r3.Vector { return m.vertices }
func (m *BVHModel) TriIndices() [][3]int  { return m.triIndices }

// Triangle returns the world-space Triangle for triangle index idx.
func (m *BVHModel) Triangle(idx int) *geom.Triangle {
	t := m.triIndices[idx]
	return geom.NewTriangle(
		m.pose.TransformPoint(m.vertices[t[0]]),
		m.pose.TransformPoint(m.vertices[t[1]]),
		m.pose.TransformPoint(m.vertices[t[2]]),
	)
}

// Bound returns the BV-kind-appropriate volume fitted to node, built via
// package bv's Fit, honoring the model's BV kind.
func (m *BVHModel) Bound(n *Node) bv.Volume {
	tris := n.triangles
	if !n.IsLeaf() {
		tris = nil
		var collect func(*Node)
		collect = func(c *Node) {
			if c == nil {
				return
			}
			tris = append(tris, c.triangles...)
			collect(c.left)
			collect(c.right)
		}
		collect(n)
	}
	v := bv.Fit(m.kind, m.vertices, m.prevVerts, m.triIndices, bv.ModelTriangles, tris)
	return v.Transform(m.pose)
}

func (m *BVHModel) AABB() (r3.Vector, r3.Vector) {
	if m.root == nil {
		return r3.Vector{}, r3.Vector{}
	}
	local := &bv.AABB{Min: m.root.min, Max: m.root.max}
	world := local.Transform(m.pose).(*bv.AABB)
	return world.Min, world.Max
}

func (m *BVHModel) Transform(toPremultiply xform.Pose) geom.Geometry {
	return &BVHModel{
		costProfile: m.costProfile,
		pose:        xform.Compose(toPremultiply, m.pose),
		kind:        m.kind,
		vertices:    m.vertices,
		prevVerts:   m.prevVerts,
		triIndices:  m.triIndices,
		root:        m.root,
		label:       m.label,
	}
}

func (m *BVHModel) String() string {
	return "Type: BVHModel | Triangles: " + itoa(len(m.triIndices))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// buildBVH recursively partitions a set of triangle indices into a binary
// tree, splitting along the axis of greatest extent and recursing until a
// node holds at most leafSplitThreshold triangles. Returns nil for an
// empty triangle set.
func buildBVH(vertices []r3.Vector, triIndices [][3]int, indices []int) *Node {
	if len(indices) == 0 {
		return nil
	}
	min, max := computeTrianglesAABB(triSubset(vertices, triIndices, indices))
	if len(indices) <= leafSplitThreshold {
		return &Node{min: min, max: max, triangles: indices}
	}

	extent := max.Sub(min)
	axis := 0
	if extent.Y > axisComponent(extent, axis) {
		axis = 1
	}
	if extent.Z > axisComponent(extent, axis) {
		axis = 2
	}

	sorted := append([]int{}, indices...)
	sort.Slice(sorted, func(i, j int) bool {
		return centroidComponent(vertices, triIndices[sorted[i]], axis) < centroidComponent(vertices, triIndices[sorted[j]], axis)
	})
	mid := len(sorted) / 2

	return &Node{
		min:   min,
		max:   max,
		left:  buildBVH(vertices, triIndices, sorted[:mid]),
		right: buildBVH(vertices, triIndices, sorted[mid:]),
	}
}

func axisComponent(v r3.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func centroidComponent(vertices []r3.Vector, tri [3]int, axis int) float64 {
	c := vertices[tri[0]].Add(vertices[tri[1]]).Add(vertices[tri[2]]).Mul(1.0 / 3)
	return axisComponent(c, axis)
}

func triSubset(vertices []r3.Vector, triIndices [][3]int, indices []int) []*geom.Triangle {
	out := make([]*geom.Triangle, len(indices))
	for i, idx := range indices {
		t := triIndices[idx]
		out[i] = geom.NewTriangle(vertices[t[0]], vertices[t[1]], vertices[t[2]])
	}
	return out
}

// computeTrianglesAABB returns the local-frame AABB enclosing a set of
// triangles, mirroring the teacher's computeTrianglesAABB.
func computeTrianglesAABB(triangles []*geom.Triangle) (r3.Vector, r3.Vector) {
	min, max := triangles[0].AABB()
	for _, t := range triangles[1:] {
		tMin, tMax := t.AABB()
		min = r3.Vector{X: minF(min.X, tMin.X), Y: minF(min.Y, tMin.Y), Z: minF(min.Z, tMin.Z)}
		max = r3.Vector{X: maxF(max.X, tMax.X), Y: maxF(max.Y, tMax.Y), Z: maxF(max.Z, tMax.Z)}
	}
	return min, max
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
