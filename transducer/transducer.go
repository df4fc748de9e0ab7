package transducer

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gotrap/geometry"
)

// Transducer is a circular piston radiating along the axis from Position
// toward Target. The engine only reads it.
type Transducer struct {
	ID          string        `json:"id"`
	Position    geometry.Vec3 `json:"position"`
	Target      geometry.Vec3 `json:"target"`
	Radius      float64       `json:"radius"`
	PhaseShift  float64       `json:"phase_shift"`
	LossFactor  float64       `json:"loss_factor"`
	OutputPower float64       `json:"output_power"`
	Wavelength  float64       `json:"wavelength"`
}

func (t *Transducer) WaveNumber() float64 {
	return 2 * math.Pi / t.Wavelength
}

func DistanceBetween(p, q r3.Vec) float64 {
	return r3.Norm(r3.Sub(p, q))
}

// AngleBetween is the angle at origin between the rays toward p and q.
func AngleBetween(origin, p, q r3.Vec) float64 {
	var (
		cos = r3.Cos(r3.Sub(p, origin), r3.Sub(q, origin))
	)
	// Rounding can push collinear rays just past ±1.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// Directivity is the far-field piston rolloff 2·J1(x)/x, x = k·a·sin(theta).
func (t *Transducer) Directivity(theta float64) float64 {
	var (
		x = t.WaveNumber() * t.Radius * math.Sin(theta)
	)
	if x == 0 {
		return 1
	}
	return 2 * math.J1(x) / x
}

// PointPressure is the complex pressure this transducer contributes at point.
// It diverges when point coincides with the transducer position.
func PointPressure(point r3.Vec, t *Transducer) complex128 {
	var (
		pos   = t.Position.R3()
		theta = AngleBetween(pos, t.Target.R3(), point)
		dist  = DistanceBetween(pos, point)
		k     = t.WaveNumber()
		amp   = t.OutputPower * t.LossFactor * t.Directivity(theta) / dist
	)
	return complex(amp, 0) * cmplx.Exp(complex(0, k*dist+t.PhaseShift))
}

// Superpose sums every transducer's contribution in slice order.
func Superpose(point r3.Vec, ts []Transducer) (p complex128) {
	for i := range ts {
		p += PointPressure(point, &ts[i])
	}
	return
}
