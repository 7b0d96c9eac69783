// Package octree provides OcTree, a sparse spatial occupancy tree used as
// one of the three collidable node families alongside convex shapes and
// BVH meshes. It is grounded on the teacher's octree/basic.go (its
// New/Set/At shape), while the NodeType, checkPointPlacement and
// splitIntoOctants helpers that octree/basic_utils_test.go exercises are
// defined nowhere in the pack and were written from scratch following
// those tests, plus pointcloud/collision_octree.go for the collision walk.
package octree

import (
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// NodeType tags what kind of node a basicOctree currently is.
type NodeType int

const (
	LeafNodeEmpty NodeType = iota
	LeafNodeFilled
	InternalNode
)

// basicOctreeNode holds either nothing (LeafNodeEmpty), one occupancy
// sample (LeafNodeFilled), or 8 children (InternalNode).
type basicOctreeNode struct {
	nodeType NodeType
	children []*OcTree
	point    r3.Vector
	occupied bool
	hasPoint bool
}

func newLeafNodeEmpty() basicOctreeNode { return basicOctreeNode{nodeType: LeafNodeEmpty} }

func newLeafNodeFilled(p r3.Vector, occupied bool) basicOctreeNode {
	return basicOctreeNode{nodeType: LeafNodeFilled, point: p, occupied: occupied, hasPoint: true}
}

func newInternalNode(children []*OcTree) basicOctreeNode {
	return basicOctreeNode{nodeType: InternalNode, children: children}
}

// OcTree is a sparse occupancy tree over an axis-aligned cube, subdividing
// into 8 octants on insertion conflicts the way the teacher's basicOctree
// does for its pointcloud storage, specialized here to binary
// occupied/free samples (per spec.md's threshold_occupied/threshold_free
// model) rather than arbitrary point data.
type OcTree struct {
	logger     golog.Logger
	node       basicOctreeNode
	center     r3.Vector
	sideLength float64
	size       int32
}

// New creates an empty OcTree over the cube centered at center with the
// given side length.
func New(center r3.Vector, sideLength float64, logger golog.Logger) (*OcTree, error) {
	if sideLength <= 0 {
		return nil, errors.Errorf("invalid side length (%.2f) for octree", sideLength)
	}
	return &OcTree{logger: logger, node: newLeafNodeEmpty(), center: center, sideLength: sideLength}, nil
}

// Size returns the number of occupancy samples stored in the tree.
func (o *OcTree) Size() int { return int(o.size) }

// Center and SideLength return the tree's bounding cube.
func (o *OcTree) Center() r3.Vector  { return o.center }
func (o *OcTree) SideLength() float64 { return o.sideLength }

// Bounds returns the world-space AABB of the tree's bounding cube.
func (o *OcTree) Bounds() (r3.Vector, r3.Vector) {
	h := o.sideLength / 2
	half := r3.Vector{X: h, Y: h, Z: h}
	return o.center.Sub(half), o.center.Add(half)
}

// Set records an occupancy sample at p, splitting leaves into octants on
// conflict exactly as the teacher's Set does for point data.
func (o *OcTree) Set(p r3.Vector, occupied bool) error {
	if !o.checkPointPlacement(p) {
		return errors.New("error point is outside the bounds of this octree")
	}

	switch o.node.nodeType {
	case InternalNode:
		for _, child := range o.node.children {
			if child.checkPointPlacement(p) {
				if err := child.Set(p, occupied); err != nil {
					return err
				}
				o.size++
				return nil
			}
		}
		return errors.New("error invalid internal node detected, please check your tree")

	case LeafNodeFilled:
		if o.node.point.ApproxEqual(p) {
			o.node.occupied = occupied
			return nil
		}
		if err := o.splitIntoOctants(); err != nil {
			return errors.Errorf("error in splitting octree into new octants: %v", err)
		}
		return o.Set(p, occupied)

	case LeafNodeEmpty:
		o.size++
		o.node = newLeafNodeFilled(p, occupied)
	}
	return nil
}

// At reports the occupancy sample at x,y,z, if any.
func (o *OcTree) At(x, y, z float64) (bool, bool) {
	p := r3.Vector{X: x, Y: y, Z: z}
	if !o.checkPointPlacement(p) {
		return false, false
	}
	switch o.node.nodeType {
	case InternalNode:
		for _, child := range o.node.children {
			if occ, ok := child.At(x, y, z); ok {
				return occ, true
			}
		}
	case LeafNodeFilled:
		if o.node.point.ApproxEqual(p) {
			return o.node.occupied, true
		}
	}
	return false, false
}

// checkPointPlacement reports whether p falls within this node's cube,
// inclusive on both the lower and the upper bound. A point on a face
// shared by two octants therefore fits both, and callers take the first
// child that fits.
func (o *OcTree) checkPointPlacement(p r3.Vector) bool {
	h := o.sideLength / 2
	return p.X >= o.center.X-h && p.X <= o.center.X+h &&
		p.Y >= o.center.Y-h && p.Y <= o.center.Y+h &&
		p.Z >= o.center.Z-h && p.Z <= o.center.Z+h
}

// octantOffsets are the 8 signed unit offsets from a cube's center to its
// octants' centers.
var octantOffsets = [8]r3.Vector{
	{X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: 1},
	{X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1},
}

// splitIntoOctants converts a filled leaf into an internal node with 8
// empty-or-filled children, re-inserting the leaf's own sample into
// whichever child now contains it.
func (o *OcTree) splitIntoOctants() error {
	if o.node.nodeType != LeafNodeFilled && o.node.nodeType != LeafNodeEmpty {
		return errors.New("error cannot split a non-leaf node")
	}
	prev := o.node
	quarter := o.sideLength / 4
	children := make([]*OcTree, 8)
	for i, offset := range octantOffsets {
		children[i] = &OcTree{
			logger:     o.logger,
			node:       newLeafNodeEmpty(),
			center:     o.center.Add(offset.Mul(quarter)),
			sideLength: o.sideLength / 2,
		}
	}
	o.node = newInternalNode(children)
	if prev.nodeType == LeafNodeFilled {
		for _, child := range children {
			if child.checkPointPlacement(prev.point) {
				child.node = newLeafNodeFilled(prev.point, prev.occupied)
				break
			}
		}
	}
	return nil
}

// Walk calls visit on every node in depth-first order; visit returning
// false stops the walk from descending into that node's children.
func (o *OcTree) Walk(visit func(*OcTree) bool) {
	if !visit(o) {
		return
	}
	if o.node.nodeType == InternalNode {
		for _, child := range o.node.children {
			child.Walk(visit)
		}
	}
}

// NodeType reports this node's current type.
func (o *OcTree) NodeType() NodeType { return o.node.nodeType }

// Occupied reports this leaf's occupancy sample and whether it has one.
func (o *OcTree) Occupied() (bool, bool) { return o.node.occupied, o.node.hasPoint }

// Children returns this internal node's 8 children, nil otherwise.
func (o *OcTree) Children() []*OcTree { return o.node.children }
