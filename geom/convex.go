package geom

import (
	"fmt"
	"sync"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/xform"
)

// Convex is an arbitrary convex polyhedron, described by its pose and the
// vertex set in the geometry's own local frame. Collision/support queries
// against a Convex iterate its vertex set directly; no half-edge or face
// structure is retained, matching the minimal closed-form shapes this
// package otherwise provides.
type Convex struct {
	costProfile
	pose     xform.Pose
	vertices []r3.Vector
	label    string

	once    sync.Once
	aabbMin r3.Vector
	aabbMax r3.Vector
}

// NewConvex instantiates a Convex from a set of local-frame vertices. The
// caller is responsible for the vertex set actually describing a convex
// hull; no validation is performed beyond requiring at least 4 points.
func NewConvex(pose xform.Pose, vertices []r3.Vector, label string) (Geometry, error) {
	if len(vertices) < 4 {
		return nil, newBadDimensionsError(&Convex{})
	}
	return &Convex{pose: pose, vertices: vertices, label: label}, nil
}

func (c *Convex) Kind() NodeKind   { return KindConvex }
func (c *Convex) Pose() xform.Pose { return c.pose }
func (c *Convex) Label() string    { return c.label }
func (c *Convex) SetLabel(l string) { c.label = l }

// Vertices returns the convex hull's vertices in its own local frame.
func (c *Convex) Vertices() []r3.Vector { return c.vertices }

// WorldVertices returns the convex hull's vertices transformed into world
// space, used by the GJK/SAT-GJK narrow-phase support function.
func (c *Convex) WorldVertices() []r3.Vector {
	out := make([]r3.Vector, len(c.vertices))
	for i, v := range c.vertices {
		out[i] = c.pose.TransformPoint(v)
	}
	return out
}

func (c *Convex) String() string {
	p := c.pose.Point()
	return fmt.Sprintf("Type: Convex | Position: X:%.1f, Y:%.1f, Z:%.1f | Vertices: %d", p.X, p.Y, p.Z, len(c.vertices))
}

func (c *Convex) AABB() (r3.Vector, r3.Vector) {
	c.once.Do(c.computeAABB)
	return c.aabbMin, c.aabbMax
}

func (c *Convex) computeAABB() {
	var min, max r3.Vector
	for i, v := range c.vertices {
		world := c.pose.TransformPoint(v)
		if i == 0 {
			min, max = world, world
			continue
		}
		min = r3.Vector{X: fMin(min.X, world.X), Y: fMin(min.Y, world.Y), Z: fMin(min.Z, world.Z)}
		max = r3.Vector{X: fMax(max.X, world.X), Y: fMax(max.Y, world.Y), Z: fMax(max.Z, world.Z)}
	}
	c.aabbMin, c.aabbMax = min, max
}

func (c *Convex) Transform(toPremultiply xform.Pose) Geometry {
	return &Convex{
		costProfile: c.costProfile,
		pose:        xform.Compose(toPremultiply, c.pose),
		vertices:    c.vertices,
		label:       c.label,
	}
}
