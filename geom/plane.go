package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/xform"
)

// Plane is an infinite, zero-thickness plane described by a pose whose
// local Z axis is the plane normal.
type Plane struct {
	costProfile
	pose  xform.Pose
	label string
}

// NewPlane instantiates a Plane whose normal is the local Z axis of pose.
func NewPlane(pose xform.Pose, label string) (Geometry, error) {
	return &Plane{pose: pose, label: label}, nil
}

func (p *Plane) Kind() NodeKind   { return KindPlane }
func (p *Plane) Pose() xform.Pose { return p.pose }
func (p *Plane) Label() string    { return p.label }
func (p *Plane) SetLabel(l string) { p.label = l }

// Normal returns the plane's world-space unit normal: the image of the
// local Z axis under p's rotation (the rotation matrix's third column,
// not its third row — those only agree for symmetric rotations).
func (p *Plane) Normal() r3.Vector {
	return p.pose.RotateVector(r3.Vector{Z: 1})
}

func (p *Plane) String() string {
	n := p.Normal()
	return fmt.Sprintf("Type: Plane | Normal: X:%.2f, Y:%.2f, Z:%.2f", n.X, n.Y, n.Z)
}

// AABB is unbounded on every axis, whatever the plane's orientation.
func (p *Plane) AABB() (r3.Vector, r3.Vector) {
	inf := math.Inf(1)
	return r3.Vector{X: -inf, Y: -inf, Z: -inf}, r3.Vector{X: inf, Y: inf, Z: inf}
}

func (p *Plane) Transform(toPremultiply xform.Pose) Geometry {
	return &Plane{costProfile: p.costProfile, pose: xform.Compose(toPremultiply, p.pose), label: p.label}
}
