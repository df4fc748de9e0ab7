package export

import (
	"bufio"
	"errors"
	"fmt"
	"math/cmplx"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gotrap/field"
	"github.com/notargets/gotrap/geometry"
)

var ErrExport = errors.New("failed to write output files")

type Kind uint8

const (
	KindMagnitude Kind = iota
	KindReal
	KindImag
	KindPotential
)

var (
	kindTags = []string{"abs", "real", "imag", "potential"}
	// Header titles follow the tag order above
	kindTitles = []string{
		"Pressure Complex Amplitude Value Output",
		"Pressure Complex Real Value Output",
		"Pressure Complex Imaginary Value Output",
		"Potential Field Value Output",
	}
)

func ParseKind(s string) (k Kind, err error) {
	for i, tag := range kindTags {
		if tag == s {
			return Kind(i), nil
		}
	}
	err = fmt.Errorf("unknown output kind %q", s)
	return
}

func (k Kind) String() string {
	if int(k) < len(kindTags) {
		return kindTags[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) Title() string {
	if int(k) < len(kindTitles) {
		return kindTitles[k]
	}
	return k.String()
}

// PressureKinds are the kinds derived from the complex pressure alone.
var PressureKinds = []Kind{KindMagnitude, KindReal, KindImag}

// Value reduces a complex pressure sample to the kind's real value.
func (k Kind) Value(p complex128) float64 {
	switch k {
	case KindReal:
		return real(p)
	case KindImag:
		return imag(p)
	}
	return cmplx.Abs(p)
}

// Writer names and writes slice files for one run.
type Writer struct {
	Dir   string
	RunID string
	Plane geometry.Plane
}

func (w *Writer) FileName(kind Kind, depth int) string {
	return filepath.Join(w.Dir,
		fmt.Sprintf("output%s%s_%s%d.csv", kind, w.RunID, w.Plane, depth))
}

func (w *Writer) Header(kind Kind, coord float64) string {
	return fmt.Sprintf("%s,Plane %s = %s, Row-Column Axis: %s",
		kind.Title(), w.Plane, strconv.FormatFloat(coord, 'g', -1, 64), w.Plane.AxisLabels())
}

// WriteSlice writes one 2D slice: a header line, then one line per row with
// every value followed by a comma.
func (w *Writer) WriteSlice(kind Kind, depth int, coord float64, m mat.Matrix) (fileName string, err error) {
	var (
		file *os.File
	)
	fileName = w.FileName(kind, depth)
	if file, err = os.Create(fileName); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}
	bw := bufio.NewWriter(file)
	bw.WriteString(w.Header(kind, coord))
	bw.WriteByte('\n')
	var (
		nr, nc = m.Dims()
		buf    []byte
	)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			buf = strconv.AppendFloat(buf[:0], m.At(i, j), 'g', -1, 64)
			bw.Write(buf)
			bw.WriteByte(',')
		}
		bw.WriteByte('\n')
	}
	if err = bw.Flush(); err != nil {
		file.Close()
		return "", fmt.Errorf("%w: %s: %v", ErrExport, fileName, err)
	}
	if err = file.Close(); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrExport, fileName, err)
	}
	return
}

// SlabMatrix reduces a streamed slab to a dense slice. Padding rows and
// columns are dropped.
func SlabMatrix(s *field.Slab, pad int, kind Kind) (m *mat.Dense) {
	var (
		nr, nc = s.Rows - 2*pad, s.Cols - 2*pad
	)
	m = mat.NewDense(nr, nc, nil)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			m.Set(i, j, kind.Value(s.At(i+pad, j+pad)))
		}
	}
	return
}

// PressureSlice extracts the cross-section at nominal depth d from the
// physical-order field.
func PressureSlice(p *field.PressureField, g *geometry.Grid, d int, kind Kind) (m *mat.Dense) {
	var (
		cShape = g.CanonicalShape()
		nr, nc = cShape[1] - 2*g.Pad, cShape[2] - 2*g.Pad
	)
	m = mat.NewDense(nr, nc, nil)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			idx := g.Perm.Physical([3]int{d + g.Pad, i + g.Pad, j + g.Pad})
			m.Set(i, j, kind.Value(p.AtIdx(idx)))
		}
	}
	return
}

func PotentialSlice(pot *field.PotentialField, g *geometry.Grid, d int) (m *mat.Dense) {
	var (
		cShape = g.CanonicalShape()
		nr, nc = cShape[1] - 2*g.Pad, cShape[2] - 2*g.Pad
	)
	m = mat.NewDense(nr, nc, nil)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			idx := g.Perm.Physical([3]int{d + g.Pad, i + g.Pad, j + g.Pad})
			m.Set(i, j, pot.AtIdx(idx))
		}
	}
	return
}
