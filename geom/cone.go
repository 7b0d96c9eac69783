package geom

import (
	"fmt"
	"math"
	"sync"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/xform"
)

// Cone is a right circular cone, fully described by a pose (its base
// center), a base radius, and a height along its local Z axis.
type Cone struct {
	costProfile
	pose   xform.Pose
	radius float64
	height float64
	label  string

	once    sync.Once
	aabbMin r3.Vector
	aabbMax r3.Vector
}

// NewCone instantiates a Cone.
func NewCone(pose xform.Pose, radius, height float64, label string) (Geometry, error) {
	if radius <= 0 || height <= 0 {
		return nil, newBadDimensionsError(&Cone{})
	}
	return &Cone{pose: pose, radius: radius, height: height, label: label}, nil
}

func (c *Cone) Kind() NodeKind   { return KindCone }
func (c *Cone) Pose() xform.Pose { return c.pose }
func (c *Cone) Label() string    { return c.label }
func (c *Cone) SetLabel(l string) { c.label = l }
func (c *Cone) Radius() float64  { return c.radius }
func (c *Cone) Height() float64  { return c.height }

func (c *Cone) String() string {
	p := c.pose.Point()
	return fmt.Sprintf("Type: Cone | Position: X:%.1f, Y:%.1f, Z:%.1f | Radius: %.1f | Height: %.1f",
		p.X, p.Y, p.Z, c.radius, c.height)
}

func (c *Cone) AABB() (r3.Vector, r3.Vector) {
	c.once.Do(c.computeAABB)
	return c.aabbMin, c.aabbMax
}

func (c *Cone) computeAABB() {
	// Bounding sphere centered midway between the apex and the base rim,
	// same conservative approach used for Cylinder.
	mid := c.pose.TransformPoint(r3.Vector{X: 0, Y: 0, Z: c.height / 2})
	boundingR := math.Hypot(c.radius, c.height/2)
	r := r3.Vector{X: boundingR, Y: boundingR, Z: boundingR}
	c.aabbMin, c.aabbMax = mid.Sub(r), mid.Add(r)
}

func (c *Cone) Transform(toPremultiply xform.Pose) Geometry {
	return &Cone{
		costProfile: c.costProfile,
		pose:        xform.Compose(toPremultiply, c.pose),
		radius:      c.radius,
		height:      c.height,
		label:       c.label,
	}
}
