package geom

import (
	"fmt"
	"sync"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/xform"
)

// boxVertices lists the box's 8 corners in its own local frame, scaled by
// half-extent before use. Mirrors the teacher's boxVertices table.
var boxVertices = [8]r3.Vector{
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: -1, Y: -1, Z: -1},
}

// Box is a rectangular prism fully described by a pose and a half-extent.
type Box struct {
	costProfile
	pose     xform.Pose
	halfSize r3.Vector
	label    string

	once    sync.Once
	aabbMin r3.Vector
	aabbMax r3.Vector
}

// NewBox instantiates a Box. Zero dimensions are allowed (degenerate bounding
// boxes); negative dimensions are not.
func NewBox(pose xform.Pose, dims r3.Vector, label string) (Geometry, error) {
	if dims.X < 0 || dims.Y < 0 || dims.Z < 0 {
		return nil, newBadDimensionsError(&Box{})
	}
	return &Box{pose: pose, halfSize: dims.Mul(0.5), label: label}, nil
}

func (b *Box) Kind() NodeKind  { return KindBox }
func (b *Box) Pose() xform.Pose { return b.pose }
func (b *Box) Label() string    { return b.label }
func (b *Box) SetLabel(l string) { b.label = l }

func (b *Box) String() string {
	p := b.pose.Point()
	return fmt.Sprintf("Type: Box | Position: X:%.1f, Y:%.1f, Z:%.1f | Dims: X:%.1f, Y:%.1f, Z:%.1f",
		p.X, p.Y, p.Z, 2*b.halfSize.X, 2*b.halfSize.Y, 2*b.halfSize.Z)
}

// HalfSize returns the box's half-extent along its own local axes.
func (b *Box) HalfSize() r3.Vector { return b.halfSize }

func (b *Box) AABB() (r3.Vector, r3.Vector) {
	b.once.Do(b.computeAABB)
	return b.aabbMin, b.aabbMax
}

func (b *Box) computeAABB() {
	min := r3.Vector{}
	max := r3.Vector{}
	for i, v := range boxVertices {
		local := r3.Vector{X: v.X * b.halfSize.X, Y: v.Y * b.halfSize.Y, Z: v.Z * b.halfSize.Z}
		world := b.pose.TransformPoint(local)
		if i == 0 {
			min, max = world, world
			continue
		}
		min = r3.Vector{X: fMin(min.X, world.X), Y: fMin(min.Y, world.Y), Z: fMin(min.Z, world.Z)}
		max = r3.Vector{X: fMax(max.X, world.X), Y: fMax(max.Y, world.Y), Z: fMax(max.Z, world.Z)}
	}
	b.aabbMin, b.aabbMax = min, max
}

func (b *Box) Transform(toPremultiply xform.Pose) Geometry {
	return &Box{
		costProfile: b.costProfile,
		pose:        xform.Compose(toPremultiply, b.pose),
		halfSize:    b.halfSize,
		label:       b.label,
	}
}

func fMin(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func fMax(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
