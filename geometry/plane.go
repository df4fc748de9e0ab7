package geometry

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownPlane = errors.New("simulation geometry plane is invalid")

type Plane uint8

const (
	PlaneInvalid Plane = iota
	PlaneX
	PlaneY
	PlaneZ
)

var planeNames = map[Plane]string{
	PlaneX: "X",
	PlaneY: "Y",
	PlaneZ: "Z",
}

func ParsePlane(s string) Plane {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return PlaneX
	case "Y":
		return PlaneY
	case "Z":
		return PlaneZ
	}
	return PlaneInvalid
}

func (p Plane) IsValid() bool {
	_, ok := planeNames[p]
	return ok
}

func (p Plane) String() string {
	if name, ok := planeNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Plane(%d)", uint8(p))
}

// AxisLabels names the row and column axes of a cross-section taken
// perpendicular to the plane's depth axis.
func (p Plane) AxisLabels() string {
	switch p {
	case PlaneX:
		return "Y-Z"
	case PlaneY:
		return "X-Z"
	case PlaneZ:
		return "Y-X"
	}
	return "Axis Mismatched!"
}

func (p Plane) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlane, uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText keeps unknown letters as PlaneInvalid so that validation,
// not parsing, reports them.
func (p *Plane) UnmarshalText(text []byte) error {
	*p = ParsePlane(string(text))
	return nil
}

// UnmarshalJSON also takes a bare true as PlaneY. YAML 1.1 decoders read an
// unquoted Y or y as a boolean before the document is converted to JSON.
func (p *Plane) UnmarshalJSON(data []byte) error {
	var (
		v any
	)
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v := v.(type) {
	case string:
		*p = ParsePlane(v)
	case bool:
		*p = PlaneInvalid
		if v {
			*p = PlaneY
		}
	default:
		*p = PlaneInvalid
	}
	return nil
}

// Permutation maps canonical axis positions (depth, cross 1, cross 2) to
// physical axis numbers (0=X, 1=Y, 2=Z).
type Permutation [3]int

func CanonicalOrder(p Plane) (perm Permutation, err error) {
	switch p {
	case PlaneX:
		perm = Permutation{0, 1, 2}
	case PlaneY:
		perm = Permutation{1, 0, 2}
	case PlaneZ:
		perm = Permutation{2, 1, 0}
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownPlane, p)
	}
	return
}

// Vec reorders a physical vector into canonical order.
func (perm Permutation) Vec(v Vec3) (c Vec3) {
	for i := 0; i < 3; i++ {
		c[i] = v[perm[i]]
	}
	return
}

// Ints reorders a physical integer triple into canonical order.
func (perm Permutation) Ints(v [3]int) (c [3]int) {
	for i := 0; i < 3; i++ {
		c[i] = v[perm[i]]
	}
	return
}

// Physical is the inverse of Ints.
func (perm Permutation) Physical(c [3]int) (v [3]int) {
	for i := 0; i < 3; i++ {
		v[perm[i]] = c[i]
	}
	return
}
