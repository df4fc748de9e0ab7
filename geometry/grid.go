package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a point or direction serialized as [x, y, z].
type Vec3 [3]float64

func FromR3(v r3.Vec) Vec3 { return Vec3{v.X, v.Y, v.Z} }

func (v Vec3) R3() r3.Vec { return r3.Vec{X: v[0], Y: v[1], Z: v[2]} }

// SimulationGeometry describes the sampled box. Exactly one of Division and
// CellSize selects the discretization; only CellSize supports the
// potential stage since it needs a uniform step.
type SimulationGeometry struct {
	Plane           Plane   `json:"plane"`
	Begin           Vec3    `json:"begin"`
	End             Vec3    `json:"end"`
	Division        *[3]int `json:"division,omitempty"`
	CellSize        float64 `json:"cell_size,omitempty"`
	PotentialConst1 float64 `json:"potential_compute_const_1,omitempty"`
	PotentialConst2 float64 `json:"potential_compute_const_2,omitempty"`
}

func (sg SimulationGeometry) UsesCellSize() bool {
	return sg.Division == nil && sg.CellSize > 0
}

// Grid holds the three physical axes plus the permutation that puts the
// plane's depth axis first. Pad is the number of extra samples on each
// side of every axis.
type Grid struct {
	Plane Plane
	Perm  Permutation
	Axes  [3]Axis // physical order
	Pad   int
}

func NewGrid(sg SimulationGeometry) (g *Grid, err error) {
	var (
		perm Permutation
	)
	if perm, err = CanonicalOrder(sg.Plane); err != nil {
		return
	}
	g = &Grid{Plane: sg.Plane, Perm: perm}
	switch {
	case sg.Division != nil:
		for n := 0; n < 3; n++ {
			if sg.Division[n] < 1 {
				return nil, fmt.Errorf("division count %d on axis %d is not positive", sg.Division[n], n)
			}
			g.Axes[n] = NewDivisionAxis(sg.Division[n], sg.Begin[n], sg.End[n])
		}
	case sg.CellSize > 0:
		for n := 0; n < 3; n++ {
			g.Axes[n] = NewUniformAxis(sg.CellSize, sg.Begin[n], sg.End[n])
		}
		g.Pad = 1
	default:
		return nil, fmt.Errorf("simulation geometry has neither division counts nor a positive cell size")
	}
	return
}

// Shape is the padded sample count per physical axis.
func (g *Grid) Shape() (shape [3]int) {
	for n := 0; n < 3; n++ {
		shape[n] = g.Axes[n].Count + 2*g.Pad
	}
	return
}

// CanonicalShape is Shape in (depth, cross 1, cross 2) order.
func (g *Grid) CanonicalShape() [3]int {
	return g.Perm.Ints(g.Shape())
}

// DepthCount is the nominal (unpadded) number of depth samples.
func (g *Grid) DepthCount() int {
	return g.Axes[g.Perm[0]].Count
}

// Point returns the physical location of a padded storage index.
func (g *Grid) Point(phys [3]int) r3.Vec {
	return r3.Vec{
		X: g.Axes[0].Coord(phys[0] - g.Pad),
		Y: g.Axes[1].Coord(phys[1] - g.Pad),
		Z: g.Axes[2].Coord(phys[2] - g.Pad),
	}
}

// DepthCoord is the physical coordinate of nominal depth index d.
func (g *Grid) DepthCoord(d int) float64 {
	return g.Axes[g.Perm[0]].Coord(d)
}
