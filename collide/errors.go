package collide

import (
	"github.com/pkg/errors"

	"go.viam.com/collide/geom"
)

// ErrUnsupported is returned when the dispatch matrix has no handler
// registered for a (kindA, kindB) pair, mirroring FCL's unregistered
// CollisionFunctionMatrix cell (a nullptr std::function).
var ErrUnsupported = errors.New("collide: unsupported geometry pair")

// ErrInvalidGeometry is returned when an operand fails a precondition a
// handler requires (e.g. a nil operand, or a Kind() that does not match the
// operand's concrete type). An empty BVHModel or octree is not an error.
var ErrInvalidGeometry = errors.New("collide: invalid geometry")

func newUnsupportedPairError(a, b geom.NodeKind) error {
	return errors.Wrapf(ErrUnsupported, "%s vs %s", a, b)
}
