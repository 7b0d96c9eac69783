package geom

import (
	"fmt"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/xform"
)

// Sphere is a ball fully described by a pose (its center) and a radius.
type Sphere struct {
	costProfile
	pose   xform.Pose
	radius float64
	label  string
}

// NewSphere instantiates a Sphere.
func NewSphere(pose xform.Pose, radius float64, label string) (Geometry, error) {
	if radius <= 0 {
		return nil, newBadDimensionsError(&Sphere{})
	}
	return &Sphere{pose: pose, radius: radius, label: label}, nil
}

func (s *Sphere) Kind() NodeKind   { return KindSphere }
func (s *Sphere) Pose() xform.Pose { return s.pose }
func (s *Sphere) Label() string    { return s.label }
func (s *Sphere) SetLabel(l string) { s.label = l }
func (s *Sphere) Radius() float64  { return s.radius }

func (s *Sphere) String() string {
	p := s.pose.Point()
	return fmt.Sprintf("Type: Sphere | Position: X:%.1f, Y:%.1f, Z:%.1f | Radius: %.1f", p.X, p.Y, p.Z, s.radius)
}

func (s *Sphere) AABB() (r3.Vector, r3.Vector) {
	c := s.pose.Point()
	r := r3.Vector{X: s.radius, Y: s.radius, Z: s.radius}
	return c.Sub(r), c.Add(r)
}

func (s *Sphere) Transform(toPremultiply xform.Pose) Geometry {
	return &Sphere{
		costProfile: s.costProfile,
		pose:        xform.Compose(toPremultiply, s.pose),
		radius:      s.radius,
		label:       s.label,
	}
}
