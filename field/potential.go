package field

import (
	"github.com/notargets/gotrap/utils"
)

// PotentialField holds the radiation potential on the unpadded interior of
// a PressureField; border cells stay zero.
type PotentialField = utils.Array3[float64]

func CentralDifference(lo, hi complex128, step float64) complex128 {
	return (hi - lo) / complex(2*step, 0)
}

func abs2(c complex128) float64 {
	return real(c)*real(c) + imag(c)*imag(c)
}

// GradientSquared returns |dp/dx|^2, |dp/dy|^2, |dp/dz|^2 at an interior
// index using central differences.
func GradientSquared(p *PressureField, i, j, k int, step float64) (g [3]float64) {
	g[0] = abs2(CentralDifference(p.At(i-1, j, k), p.At(i+1, j, k), step))
	g[1] = abs2(CentralDifference(p.At(i, j-1, k), p.At(i, j+1, k), step))
	g[2] = abs2(CentralDifference(p.At(i, j, k-1), p.At(i, j, k+1), step))
	return
}

// ComputePotential evaluates 2*c1*|p|^2 - 2*c2*|grad p|^2 on every cell one
// step in from the border.
func ComputePotential(p *PressureField, step, c1, c2 float64) (pot *PotentialField) {
	var (
		ni, nj, nk = p.Shape[0], p.Shape[1], p.Shape[2]
	)
	pot = utils.NewArray3[float64](p.Shape)
	for i := 1; i < ni-1; i++ {
		for j := 1; j < nj-1; j++ {
			for k := 1; k < nk-1; k++ {
				g := GradientSquared(p, i, j, k, step)
				pot.Set(i, j, k, 2*c1*abs2(p.At(i, j, k))-2*c2*(g[0]+g[1]+g[2]))
			}
		}
	}
	return
}
