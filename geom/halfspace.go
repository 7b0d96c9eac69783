package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/xform"
)

// Halfspace is the solid region on the negative side of an infinite plane,
// described by a pose whose local Z axis points away from the solid region
// (out of the surface), per FCL's Halfspace convention.
type Halfspace struct {
	costProfile
	pose  xform.Pose
	label string
}

// NewHalfspace instantiates a Halfspace.
func NewHalfspace(pose xform.Pose, label string) (Geometry, error) {
	return &Halfspace{pose: pose, label: label}, nil
}

func (h *Halfspace) Kind() NodeKind   { return KindHalfspace }
func (h *Halfspace) Pose() xform.Pose { return h.pose }
func (h *Halfspace) Label() string    { return h.label }
func (h *Halfspace) SetLabel(l string) { h.label = l }

// Normal returns the halfspace's outward-facing world-space unit normal:
// the image of the local Z axis under h's rotation (the rotation matrix's
// third column, not its third row — those only agree for symmetric
// rotations).
func (h *Halfspace) Normal() r3.Vector {
	return h.pose.RotateVector(r3.Vector{Z: 1})
}

func (h *Halfspace) String() string {
	n := h.Normal()
	return fmt.Sprintf("Type: Halfspace | Normal: X:%.2f, Y:%.2f, Z:%.2f", n.X, n.Y, n.Z)
}

func (h *Halfspace) AABB() (r3.Vector, r3.Vector) {
	inf := math.Inf(1)
	return r3.Vector{X: -inf, Y: -inf, Z: -inf}, r3.Vector{X: inf, Y: inf, Z: inf}
}

func (h *Halfspace) Transform(toPremultiply xform.Pose) Geometry {
	return &Halfspace{costProfile: h.costProfile, pose: xform.Compose(toPremultiply, h.pose), label: h.label}
}
