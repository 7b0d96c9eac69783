package geom

import (
	"fmt"
	"math"
	"sync"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/xform"
)

// Ellipsoid is a sphere scaled independently along its own three axes,
// fully described by a pose and three semi-axis lengths.
type Ellipsoid struct {
	costProfile
	pose      xform.Pose
	radii     r3.Vector
	label     string

	once    sync.Once
	aabbMin r3.Vector
	aabbMax r3.Vector
}

// NewEllipsoid instantiates an Ellipsoid from its three semi-axis lengths.
func NewEllipsoid(pose xform.Pose, radii r3.Vector, label string) (Geometry, error) {
	if radii.X <= 0 || radii.Y <= 0 || radii.Z <= 0 {
		return nil, newBadDimensionsError(&Ellipsoid{})
	}
	return &Ellipsoid{pose: pose, radii: radii, label: label}, nil
}

func (e *Ellipsoid) Kind() NodeKind   { return KindEllipsoid }
func (e *Ellipsoid) Pose() xform.Pose { return e.pose }
func (e *Ellipsoid) Label() string    { return e.label }
func (e *Ellipsoid) SetLabel(l string) { e.label = l }
func (e *Ellipsoid) Radii() r3.Vector { return e.radii }

func (e *Ellipsoid) String() string {
	p := e.pose.Point()
	return fmt.Sprintf("Type: Ellipsoid | Position: X:%.1f, Y:%.1f, Z:%.1f | Radii: X:%.1f, Y:%.1f, Z:%.1f",
		p.X, p.Y, p.Z, e.radii.X, e.radii.Y, e.radii.Z)
}

// AABB supports the world-space extent of a rotated ellipsoid along each
// world axis: for axis i, extent = sqrt(sum_j (R[i][j] * radii[j])^2).
func (e *Ellipsoid) AABB() (r3.Vector, r3.Vector) {
	e.once.Do(e.computeAABB)
	return e.aabbMin, e.aabbMax
}

func (e *Ellipsoid) computeAABB() {
	m := e.pose.RotationMatrix()
	center := e.pose.Point()
	extent := r3.Vector{}
	radii := [3]float64{e.radii.X, e.radii.Y, e.radii.Z}
	for i := 0; i < 3; i++ {
		row := xform.Row(m, i)
		axes := [3]float64{row.X, row.Y, row.Z}
		sum := 0.0
		for j := 0; j < 3; j++ {
			sum += (axes[j] * radii[j]) * (axes[j] * radii[j])
		}
		v := math.Sqrt(sum)
		switch i {
		case 0:
			extent.X = v
		case 1:
			extent.Y = v
		case 2:
			extent.Z = v
		}
	}
	e.aabbMin, e.aabbMax = center.Sub(extent), center.Add(extent)
}

func (e *Ellipsoid) Transform(toPremultiply xform.Pose) Geometry {
	return &Ellipsoid{
		costProfile: e.costProfile,
		pose:        xform.Compose(toPremultiply, e.pose),
		radii:       e.radii,
		label:       e.label,
	}
}
