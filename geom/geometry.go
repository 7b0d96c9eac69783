package geom

import (
	"github.com/golang/geo/r3"

	"go.viam.com/collide/xform"
)

// Geometry is the polymorphic collision operand described in spec.md §3.
// It is the Go realization of the teacher's (never-checked-in) spatialmath
// Geometry interface, reconstructed from the method sets box.go and
// capsule.go actually implement (Pose, Transform, String, label
// get/set) plus the three cost/occupancy scalars spec.md calls out.
type Geometry interface {
	// Kind reports the NodeKind discriminant; it must match the concrete type.
	Kind() NodeKind

	// Pose returns the geometry's world-space pose.
	Pose() xform.Pose

	// AABB returns the cached world-space axis-aligned bounding box.
	AABB() (min, max r3.Vector)

	// Transform returns a copy of the geometry premultiplied by toPremultiply.
	Transform(toPremultiply xform.Pose) Geometry

	// Label/SetLabel identify the geometry for diagnostics, per box.go's
	// Label()/SetLabel() pair.
	Label() string
	SetLabel(string)

	// CostDensity, ThresholdOccupied and ThresholdFree are the three
	// cost/occupancy scalars spec.md §3 calls out on CollisionGeometry.
	CostDensity() float64
	ThresholdOccupied() float64
	ThresholdFree() float64

	String() string
}

// costProfile is embedded by every concrete shape to carry the three
// cost/occupancy scalars without repeating the boilerplate accessors.
type costProfile struct {
	costDensity       float64
	thresholdOccupied float64
	thresholdFree     float64
}

func (c costProfile) CostDensity() float64       { return c.costDensity }
func (c costProfile) ThresholdOccupied() float64 { return c.thresholdOccupied }
func (c costProfile) ThresholdFree() float64     { return c.thresholdFree }

// SetCostDensity lets callers override the default zero cost density; the
// cost-approximation path in package collide reads it through CostDensity.
func (c *costProfile) SetCostDensity(v float64)       { c.costDensity = v }
func (c *costProfile) SetThresholdOccupied(v float64) { c.thresholdOccupied = v }
func (c *costProfile) SetThresholdFree(v float64)     { c.thresholdFree = v }
