package geom

import (
	"fmt"
	"sync"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/xform"
)

// Capsule is a cylinder with hemispherical caps, fully described by a pose
// (its center), a radius, and a total tip-to-tip length. Mirrors the teacher's
// capsule: segA/segB/center are precomputed once at construction time.
type Capsule struct {
	costProfile
	pose   xform.Pose
	radius float64
	length float64
	label  string

	segA, segB, center r3.Vector

	once    sync.Once
	aabbMin r3.Vector
	aabbMax r3.Vector
}

// NewCapsule instantiates a Capsule. Degenerates to a Sphere when
// length == 2*radius, following the teacher's NewCapsule.
func NewCapsule(pose xform.Pose, radius, length float64, label string) (Geometry, error) {
	if radius <= 0 || length <= 0 {
		return nil, newBadDimensionsError(&Capsule{})
	}
	if length < radius*2 {
		return nil, errBadCapsuleLength(length, radius)
	}
	if length == radius*2 {
		return NewSphere(pose, radius, label)
	}
	segA := pose.TransformPoint(r3.Vector{X: 0, Y: 0, Z: -length/2 + radius})
	segB := pose.TransformPoint(r3.Vector{X: 0, Y: 0, Z: length/2 - radius})
	return &Capsule{
		pose: pose, radius: radius, length: length, label: label,
		segA: segA, segB: segB, center: pose.Point(),
	}, nil
}

func (c *Capsule) Kind() NodeKind   { return KindCapsule }
func (c *Capsule) Pose() xform.Pose { return c.pose }
func (c *Capsule) Label() string    { return c.label }
func (c *Capsule) SetLabel(l string) { c.label = l }
func (c *Capsule) Radius() float64  { return c.radius }
func (c *Capsule) Length() float64  { return c.length }

// Segment returns the two endpoints of the capsule's inner line segment.
func (c *Capsule) Segment() (r3.Vector, r3.Vector) { return c.segA, c.segB }

func (c *Capsule) String() string {
	p := c.pose.Point()
	return fmt.Sprintf("Type: Capsule | Position: X:%.1f, Y:%.1f, Z:%.1f | Radius: %.1f | Length: %.1f",
		p.X, p.Y, p.Z, c.radius, c.length)
}

func (c *Capsule) AABB() (r3.Vector, r3.Vector) {
	c.once.Do(c.computeAABB)
	return c.aabbMin, c.aabbMax
}

func (c *Capsule) computeAABB() {
	r := r3.Vector{X: c.radius, Y: c.radius, Z: c.radius}
	min := r3.Vector{
		X: fMin(c.segA.X, c.segB.X) - r.X,
		Y: fMin(c.segA.Y, c.segB.Y) - r.Y,
		Z: fMin(c.segA.Z, c.segB.Z) - r.Z,
	}
	max := r3.Vector{
		X: fMax(c.segA.X, c.segB.X) + r.X,
		Y: fMax(c.segA.Y, c.segB.Y) + r.Y,
		Z: fMax(c.segA.Z, c.segB.Z) + r.Z,
	}
	c.aabbMin, c.aabbMax = min, max
}

func (c *Capsule) Transform(toPremultiply xform.Pose) Geometry {
	pose := xform.Compose(toPremultiply, c.pose)
	segA := toPremultiply.TransformPoint(c.segA)
	segB := toPremultiply.TransformPoint(c.segB)
	return &Capsule{
		costProfile: c.costProfile,
		pose:        pose,
		radius:      c.radius,
		length:      c.length,
		label:       c.label,
		segA:        segA,
		segB:        segB,
		center:      pose.Point(),
	}
}
