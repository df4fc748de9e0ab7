package InputParameters

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/gotrap/export"
	"github.com/notargets/gotrap/geometry"
	"github.com/notargets/gotrap/transducer"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type ExportOptions struct {
	Kinds []string `json:"kinds,omitempty"`
}

// ConfigPacket is the transducer array plus the sampling geometry, the
// document persisted by the config layer.
type ConfigPacket struct {
	Transducers        []transducer.Transducer     `json:"transducers"`
	SimulationGeometry geometry.SimulationGeometry `json:"simulation_geometry"`
	Export             *ExportOptions              `json:"export,omitempty"`
}

func DefaultConfigPacket() *ConfigPacket {
	return &ConfigPacket{
		Transducers: []transducer.Transducer{},
		SimulationGeometry: geometry.SimulationGeometry{
			Plane:    geometry.PlaneX,
			Division: &[3]int{1, 1, 1},
		},
	}
}

func (cp *ConfigPacket) Parse(data []byte) error {
	return yaml.Unmarshal(data, cp)
}

// Load reads a JSON or YAML config file.
func Load(fileName string) (cp *ConfigPacket, err error) {
	var (
		data []byte
	)
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	cp = &ConfigPacket{}
	if err = cp.Parse(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, fileName, err)
	}
	return
}

// Save writes YAML for .yaml/.yml names and JSON otherwise.
func (cp *ConfigPacket) Save(fileName string) (err error) {
	var (
		data []byte
	)
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cp)
	default:
		data, err = json.MarshalIndent(cp, "", "  ")
	}
	if err != nil {
		return
	}
	return os.WriteFile(fileName, data, 0644)
}

func (cp *ConfigPacket) Clone() (c *ConfigPacket) {
	c = &ConfigPacket{
		Transducers:        make([]transducer.Transducer, len(cp.Transducers)),
		SimulationGeometry: cp.SimulationGeometry,
	}
	copy(c.Transducers, cp.Transducers)
	if cp.SimulationGeometry.Division != nil {
		div := *cp.SimulationGeometry.Division
		c.SimulationGeometry.Division = &div
	}
	if cp.Export != nil {
		c.Export = &ExportOptions{Kinds: append([]string(nil), cp.Export.Kinds...)}
	}
	return
}

func (cp *ConfigPacket) Print() {
	var (
		sg = cp.SimulationGeometry
	)
	fmt.Printf("[%s]\t\t\t\t= Plane\n", sg.Plane)
	fmt.Printf("%v\t\t= Begin\n", sg.Begin)
	fmt.Printf("%v\t\t= End\n", sg.End)
	if sg.Division != nil {
		fmt.Printf("%v\t\t\t= Division\n", *sg.Division)
	} else {
		fmt.Printf("%8.5f\t\t= Cell Size\n", sg.CellSize)
		fmt.Printf("%8.5f, %8.5f\t= Potential Constants\n", sg.PotentialConst1, sg.PotentialConst2)
	}
	for _, t := range cp.Transducers {
		fmt.Printf("Transducer[%s] = pos %v target %v radius %g phase %g loss %g power %g wavelength %g\n",
			t.ID, t.Position, t.Target, t.Radius, t.PhaseShift, t.LossFactor, t.OutputPower, t.Wavelength)
	}
}

// Kinds resolves the output kinds, defaulting by discretization.
func (cp *ConfigPacket) Kinds() (kinds []export.Kind, err error) {
	if cp.Export == nil || len(cp.Export.Kinds) == 0 {
		if cp.SimulationGeometry.UsesCellSize() {
			return append(append([]export.Kind{}, export.PressureKinds...), export.KindPotential), nil
		}
		return []export.Kind{export.KindMagnitude}, nil
	}
	var (
		seen = make(map[export.Kind]bool)
		k    export.Kind
	)
	for _, name := range cp.Export.Kinds {
		if k, err = export.ParseKind(name); err != nil {
			return nil, err
		}
		if k == export.KindPotential && !cp.SimulationGeometry.UsesCellSize() {
			return nil, fmt.Errorf("potential output requires a cell size geometry")
		}
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	return
}

func finite(v ...float64) bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate reports the first rule the packet breaks. A packet that fails
// must not reach the field builder.
func (cp *ConfigPacket) Validate() error {
	var (
		sg = cp.SimulationGeometry
	)
	if !sg.Plane.IsValid() {
		return invalid("plane is not one of X, Y, Z")
	}
	if !finite(sg.Begin[:]...) || !finite(sg.End[:]...) {
		return invalid("begin and end must be finite")
	}
	switch {
	case sg.Division != nil && sg.CellSize != 0:
		return invalid("division and cell_size are mutually exclusive")
	case sg.Division != nil:
		for n, div := range sg.Division {
			if div < 1 {
				return invalid("division on axis %d is not positive", n)
			}
		}
	case sg.CellSize <= 0 || !finite(sg.CellSize):
		return invalid("cell size is not positive")
	case !finite(sg.PotentialConst1, sg.PotentialConst2):
		return invalid("potential constants must be finite")
	}
	for _, t := range cp.Transducers {
		if t.Position == t.Target {
			return invalid("transducer %q position equals its target", t.ID)
		}
		if !finite(t.Position[:]...) || !finite(t.Target[:]...) || !finite(t.PhaseShift) {
			return invalid("transducer %q has non-finite geometry", t.ID)
		}
		if !(t.Radius > 0) || math.IsInf(t.Radius, 0) {
			return invalid("transducer %q radius is not positive", t.ID)
		}
		if !(t.Wavelength > 0) || math.IsInf(t.Wavelength, 0) {
			return invalid("transducer %q wavelength is not positive", t.ID)
		}
		if !(t.LossFactor >= 0 && t.LossFactor <= 1) {
			return invalid("transducer %q loss factor is not in range 0 and 1", t.ID)
		}
		if !(t.OutputPower >= 0 && t.OutputPower <= 1) {
			return invalid("transducer %q output power is not in range 0 and 1", t.ID)
		}
	}
	if _, err := cp.Kinds(); err != nil {
		return invalid("%v", err)
	}
	return nil
}
