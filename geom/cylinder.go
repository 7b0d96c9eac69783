package geom

import (
	"fmt"
	"math"
	"sync"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/xform"
)

// Cylinder is a right circular cylinder, fully described by a pose (its
// center), a radius and a total height along its local Z axis.
type Cylinder struct {
	costProfile
	pose   xform.Pose
	radius float64
	height float64
	label  string

	once    sync.Once
	aabbMin r3.Vector
	aabbMax r3.Vector
}

// NewCylinder instantiates a Cylinder.
func NewCylinder(pose xform.Pose, radius, height float64, label string) (Geometry, error) {
	if radius <= 0 || height <= 0 {
		return nil, newBadDimensionsError(&Cylinder{})
	}
	return &Cylinder{pose: pose, radius: radius, height: height, label: label}, nil
}

func (c *Cylinder) Kind() NodeKind   { return KindCylinder }
func (c *Cylinder) Pose() xform.Pose { return c.pose }
func (c *Cylinder) Label() string    { return c.label }
func (c *Cylinder) SetLabel(l string) { c.label = l }
func (c *Cylinder) Radius() float64  { return c.radius }
func (c *Cylinder) Height() float64  { return c.height }

func (c *Cylinder) String() string {
	p := c.pose.Point()
	return fmt.Sprintf("Type: Cylinder | Position: X:%.1f, Y:%.1f, Z:%.1f | Radius: %.1f | Height: %.1f",
		p.X, p.Y, p.Z, c.radius, c.height)
}

func (c *Cylinder) AABB() (r3.Vector, r3.Vector) {
	c.once.Do(c.computeAABB)
	return c.aabbMin, c.aabbMax
}

// computeAABB conservatively bounds a rotated cylinder by its bounding
// sphere, same approximation the teacher's fitting code uses for shapes
// with no closed-form oriented extent.
func (c *Cylinder) computeAABB() {
	boundingR := math.Hypot(c.radius, c.height/2)
	center := c.pose.Point()
	r := r3.Vector{X: boundingR, Y: boundingR, Z: boundingR}
	c.aabbMin, c.aabbMax = center.Sub(r), center.Add(r)
}

func (c *Cylinder) Transform(toPremultiply xform.Pose) Geometry {
	return &Cylinder{
		costProfile: c.costProfile,
		pose:        xform.Compose(toPremultiply, c.pose),
		radius:      c.radius,
		height:      c.height,
		label:       c.label,
	}
}
