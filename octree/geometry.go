package octree

import (
	"fmt"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/geom"
	"go.viam.com/collide/xform"
)

// Geometry wraps an OcTree as a geom.Geometry collision operand, carrying
// the pose the tree's local cube is placed at plus the occupancy cost
// profile spec.md's octree collision path reads (cost_density,
// threshold_occupied, threshold_free).
type Geometry struct {
	tree              *OcTree
	pose              xform.Pose
	label             string
	costDensity       float64
	thresholdOccupied float64
	thresholdFree     float64
}

// NewGeometry wraps tree for collision, with the given occupancy
// thresholds following FCL's OcTree::getOccupancyThres()/getFreeThres().
func NewGeometry(tree *OcTree, pose xform.Pose, thresholdOccupied, thresholdFree float64, label string) *Geometry {
	return &Geometry{tree: tree, pose: pose, label: label, thresholdOccupied: thresholdOccupied, thresholdFree: thresholdFree}
}

func (g *Geometry) Kind() geom.NodeKind   { return geom.KindOctree }
func (g *Geometry) Pose() xform.Pose      { return g.pose }
func (g *Geometry) Label() string         { return g.label }
func (g *Geometry) SetLabel(l string)     { g.label = l }
func (g *Geometry) Tree() *OcTree         { return g.tree }

func (g *Geometry) CostDensity() float64       { return g.costDensity }
func (g *Geometry) ThresholdOccupied() float64 { return g.thresholdOccupied }
func (g *Geometry) ThresholdFree() float64     { return g.thresholdFree }
func (g *Geometry) SetCostDensity(v float64)   { g.costDensity = v }

func (g *Geometry) String() string {
	return fmt.Sprintf("Type: OcTree | Samples: %d | SideLength: %.2f", g.tree.Size(), g.tree.SideLength())
}

func (g *Geometry) AABB() (r3.Vector, r3.Vector) {
	min, max := g.tree.Bounds()
	center := min.Add(max).Mul(0.5)
	halfExtent := max.Sub(min).Mul(0.5)
	worldCenter := g.pose.TransformPoint(center)
	m := g.pose.RotationMatrix()
	newHalf := r3.Vector{}
	he := [3]float64{halfExtent.X, halfExtent.Y, halfExtent.Z}
	for i := 0; i < 3; i++ {
		row := xform.Row(m, i)
		v := absF(row.X)*he[0] + absF(row.Y)*he[1] + absF(row.Z)*he[2]
		switch i {
		case 0:
			newHalf.X = v
		case 1:
			newHalf.Y = v
		case 2:
			newHalf.Z = v
		}
	}
	return worldCenter.Sub(newHalf), worldCenter.Add(newHalf)
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func (g *Geometry) Transform(toPremultiply xform.Pose) geom.Geometry {
	return &Geometry{
		tree:              g.tree,
		pose:              xform.Compose(toPremultiply, g.pose),
		label:             g.label,
		costDensity:       g.costDensity,
		thresholdOccupied: g.thresholdOccupied,
		thresholdFree:     g.thresholdFree,
	}
}
