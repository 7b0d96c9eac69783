// Package bv provides the bounding-volume types used to build and traverse
// BVHModel trees: AABB, OBB, RSS, kIOS, OBBRSS, and the axis-aligned k-DOP
// family (16/18/24 slabs). Every volume implements Volume, and Fit builds
// one from a set of triangles or points the way FCL's BVFitter<BV> does.
package bv

import (
	"github.com/golang/geo/r3"

	"go.viam.com/collide/geom"
	"go.viam.com/collide/xform"
)

// Volume is a bounding volume usable as a BVHModel node bound.
type Volume interface {
	// Kind reports which of the 8 BV NodeKinds this volume realizes.
	Kind() geom.NodeKind

	// Bounds returns the volume's enclosing world-space AABB, used to
	// re-fit a volume of another kind before an overlap or merge; it is not
	// used as a pre-check before an oriented overlap test.
	Bounds() (min, max r3.Vector)

	// Overlap reports whether this volume and other intersect.
	Overlap(other Volume) bool

	// Distance returns the separation between this volume and other, or 0
	// if they overlap.
	Distance(other Volume) float64

	// Merge returns a volume of the same kind enclosing both this volume
	// and other. For AABB and the k-DOPs it is the tightest one; the
	// oriented kinds are merged as an axis-aligned box over both Bounds.
	Merge(other Volume) Volume

	// Transform returns a copy of this volume premultiplied by toPremultiply.
	Transform(toPremultiply xform.Pose) Volume
}
