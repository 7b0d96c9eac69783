// Package xform provides the rigid-transform primitive the collision kernel
// is built on top of. Spec-wise this is the "assumed available" Transform3;
// it is implemented here rather than imported so the module has no
// dependency on the teacher's much larger intra-module spatialmath stack.
package xform

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Pose is a rigid rotation+translation transform, represented as a position
// and a unit quaternion, mirroring akmonengine-feather's actor.Transform.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Identity returns the zero transform: no rotation, no translation.
func Identity() Pose {
	return Pose{Position: mgl64.Vec3{0, 0, 0}, Rotation: mgl64.QuatIdent()}
}

// FromPoint returns a pure-translation pose.
func FromPoint(p r3.Vector) Pose {
	return Pose{Position: mgl64.Vec3{p.X, p.Y, p.Z}, Rotation: mgl64.QuatIdent()}
}

// New builds a pose from a position and a rotation quaternion.
func New(p r3.Vector, rot mgl64.Quat) Pose {
	return Pose{Position: mgl64.Vec3{p.X, p.Y, p.Z}, Rotation: rot}
}

// Point returns the translation component as an r3.Vector.
func (p Pose) Point() r3.Vector {
	return r3.Vector{X: p.Position.X(), Y: p.Position.Y(), Z: p.Position.Z()}
}

// RotationMatrix returns the 3x3 rotation matrix equivalent to p's quaternion.
func (p Pose) RotationMatrix() mgl64.Mat3 {
	return p.Rotation.Normalize().Mat4().Mat3()
}

// Row returns the i'th row of the rotation matrix: world axis i expressed
// in the rotated frame. The image of local axis i is the i'th column
// instead (use RotateVector on the unit axis).
func Row(m mgl64.Mat3, i int) r3.Vector {
	return r3.Vector{X: m.At(i, 0), Y: m.At(i, 1), Z: m.At(i, 2)}
}

// RotateVector applies only p's rotation to v, with no translation —
// for direction vectors such as axes and normals, where p.TransformPoint
// would wrongly add the translation component.
func (p Pose) RotateVector(v r3.Vector) r3.Vector {
	rotated := p.Rotation.Normalize().Rotate(mgl64.Vec3{v.X, v.Y, v.Z})
	return r3.Vector{X: rotated.X(), Y: rotated.Y(), Z: rotated.Z()}
}

// TransformPoint maps a point from p's local frame into the parent frame.
func (p Pose) TransformPoint(v r3.Vector) r3.Vector {
	rotated := p.Rotation.Rotate(mgl64.Vec3{v.X, v.Y, v.Z})
	return r3.Vector{
		X: rotated.X() + p.Position.X(),
		Y: rotated.Y() + p.Position.Y(),
		Z: rotated.Z() + p.Position.Z(),
	}
}

// Compose returns the pose that first applies `inner` and then `outer`,
// i.e. outer ∘ inner — premultiplying inner by outer, following the
// teacher's Compose(toPremultiply, original) convention.
func Compose(outer, inner Pose) Pose {
	rot := outer.Rotation.Mul(inner.Rotation).Normalize()
	pos := outer.Rotation.Rotate(inner.Position).Add(outer.Position)
	return Pose{Position: pos, Rotation: rot}
}

// Inverse returns the pose that undoes p.
func (p Pose) Inverse() Pose {
	inv := p.Rotation.Inverse().Normalize()
	pos := inv.Rotate(p.Position.Mul(-1))
	return Pose{Position: pos, Rotation: inv}
}

// AlmostEqual reports whether two poses are within eps of one another,
// componentwise on position and on the quaternion's vector+scalar parts.
func AlmostEqual(a, b Pose, eps float64) bool {
	d := a.Position.Sub(b.Position)
	if d.Len() > eps {
		return false
	}
	qa, qb := a.Rotation.Normalize(), b.Rotation.Normalize()
	// Quaternions q and -q represent the same rotation.
	diff := qa.Sub(qb)
	negDiff := qa.Add(qb)
	return quatNorm(diff) <= eps || quatNorm(negDiff) <= eps
}

func quatNorm(q mgl64.Quat) float64 {
	v := q.V
	return mgl64.Vec4{v.X(), v.Y(), v.Z(), q.W}.Len()
}
