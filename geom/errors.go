package geom

import "github.com/pkg/errors"

// newBadDimensionsError mirrors the teacher's newBadGeometryDimensionsError:
// raised when a primitive is constructed with a non-positive size.
func newBadDimensionsError(g Geometry) error {
	return errors.Errorf("cannot create a %s with non-positive dimensions", g.Kind())
}

// newUnsupportedPairError mirrors the teacher's newCollisionTypeUnsupportedError.
func newUnsupportedPairError(a, b Geometry) error {
	return errors.Errorf("collision between %s and %s is not supported", a.Kind(), b.Kind())
}

// errBadCapsuleLength mirrors the teacher's newBadCapsuleLengthError.
func errBadCapsuleLength(length, radius float64) error {
	return errors.Errorf("capsule length %f is smaller than twice its radius %f", length, radius)
}
