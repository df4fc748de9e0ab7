package geometry

import "math"

// LinearSample maps index on [indexBegin, indexEnd] onto [valueBegin,
// valueEnd]. A single-sample range (indexBegin == indexEnd) always returns
// the midpoint. Indices outside the range extrapolate.
func LinearSample(index, indexBegin, indexEnd int, valueBegin, valueEnd float64) float64 {
	if indexBegin == indexEnd {
		return (valueBegin + valueEnd) / 2
	}
	var (
		frac = float64(index-indexBegin) / float64(indexEnd-indexBegin)
	)
	return frac*(valueEnd-valueBegin) + valueBegin
}

type AxisStrategy uint8

const (
	// Divisions samples Count points spanning [Begin, End] inclusive.
	Divisions AxisStrategy = iota
	// UniformStep samples from Begin every Step toward End.
	UniformStep
)

// Axis is one sampled coordinate axis. Nominal indices run over
// [0, Count); Coord also accepts indices just outside for padding.
type Axis struct {
	Strategy   AxisStrategy
	Count      int
	Begin, End float64
	Step       float64 // signed, UniformStep only
}

func NewDivisionAxis(count int, begin, end float64) Axis {
	return Axis{Strategy: Divisions, Count: count, Begin: begin, End: end}
}

func NewUniformAxis(cellSize, begin, end float64) Axis {
	var (
		step = cellSize
	)
	if end < begin {
		step = -cellSize
	}
	return Axis{
		Strategy: UniformStep,
		Count:    int(math.Abs(end-begin)/cellSize) + 1,
		Begin:    begin,
		End:      end,
		Step:     step,
	}
}

func (a Axis) Coord(i int) float64 {
	if a.Strategy == UniformStep {
		return LinearSample(i, 0, 1, a.Begin, a.Begin+a.Step)
	}
	return LinearSample(i, 0, a.Count-1, a.Begin, a.End)
}
