package simulator

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gotrap/InputParameters"
	"github.com/notargets/gotrap/events"
	"github.com/notargets/gotrap/export"
	"github.com/notargets/gotrap/field"
	"github.com/notargets/gotrap/geometry"
	"github.com/notargets/gotrap/utils"
)

// Topic is the event topic a run reports progress on.
const Topic = "simulation"

type Options struct {
	OutputDir string
	ProcLimit int            // 0 means one worker per CPU
	Broker    *events.Broker // optional progress sink
	Logger    *log.Logger    // defaults to log.Default()
}

type Report struct {
	RunID     string
	Files     []string
	Slabs     int // nominal depth samples exported
	NonFinite int // NaN/Inf samples written, e.g. points on a transducer face
	// WorkerSlabs is the number of depth slabs, padding included, each
	// worker computed.
	WorkerSlabs []int
	Elapsed     time.Duration
}

type run struct {
	opts   Options
	packet *InputParameters.ConfigPacket
	grid   *geometry.Grid
	kinds  []export.Kind
	writer *export.Writer
	logger *log.Logger

	mu    sync.Mutex
	files []string
	bad   int
}

func NewRunID() string {
	return uuid.New().String()[:8]
}

// ComputeAndExport samples the configured box, superposes every transducer,
// derives the potential when the geometry uses a cell size, and writes one
// file per depth slice per output kind. The packet must already be valid.
func ComputeAndExport(packet *InputParameters.ConfigPacket, opts Options) (rpt *Report, err error) {
	var (
		start = time.Now()
		r     = &run{opts: opts, packet: packet, logger: opts.Logger}
	)
	if r.logger == nil {
		r.logger = log.Default()
	}
	if r.grid, err = geometry.NewGrid(packet.SimulationGeometry); err != nil {
		return nil, err
	}
	if r.kinds, err = packet.Kinds(); err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if err = os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", export.ErrExport, err)
	}
	r.writer = &export.Writer{Dir: opts.OutputDir, RunID: NewRunID(), Plane: r.grid.Plane}
	rpt = &Report{RunID: r.writer.RunID, Slabs: r.grid.DepthCount()}

	var (
		cs = r.grid.CanonicalShape()
	)
	r.logger.Printf("run %s: %d transducers, plane %s, %d x %d x %d samples, kinds %v",
		rpt.RunID, len(packet.Transducers), r.grid.Plane, cs[0], cs[1], cs[2], r.kinds)
	r.publish("started %s", rpt.RunID)

	builder := field.NewBuilder(packet.Transducers, r.grid, opts.ProcLimit)
	builder.OnSlab = func(d int) { r.publish("slab %s %d/%d", rpt.RunID, d, cs[0]) }
	for np := 0; np < builder.Partitions.ParallelDegree; np++ {
		rpt.WorkerSlabs = append(rpt.WorkerSlabs, builder.Partitions.GetBucketDimension(np))
	}
	r.logger.Printf("run %s: %d workers, slabs per worker %v", rpt.RunID, len(rpt.WorkerSlabs), rpt.WorkerSlabs)
	if r.grid.Pad == 0 {
		err = builder.Stream(r.streamSlab)
	} else {
		err = r.retained(builder)
	}
	sort.Strings(r.files)
	rpt.Files, rpt.NonFinite, rpt.Elapsed = r.files, r.bad, time.Since(start)
	if err != nil {
		r.publish("failed %s %v", rpt.RunID, err)
		return rpt, err
	}
	if rpt.NonFinite != 0 {
		r.logger.Printf("run %s: %d non-finite samples written", rpt.RunID, rpt.NonFinite)
	}
	r.logger.Printf("run %s: wrote %d files in %v, %s", rpt.RunID, len(rpt.Files), rpt.Elapsed, utils.GetMemUsage())
	r.publish("finished %s", rpt.RunID)
	return
}

func (r *run) publish(format string, args ...any) {
	if r.opts.Broker != nil {
		r.opts.Broker.Publish(Topic, fmt.Sprintf(format, args...))
	}
}

func (r *run) write(kind export.Kind, d int, m *mat.Dense) (err error) {
	var (
		fileName string
	)
	if fileName, err = r.writer.WriteSlice(kind, d, r.grid.DepthCoord(d), m); err != nil {
		return
	}
	var (
		raw = m.RawMatrix().Data
		bad = utils.CountNonFinite(raw)
	)
	r.logger.Printf("%s: min %g max %g", filepath.Base(fileName), floats.Min(raw), floats.Max(raw))
	r.mu.Lock()
	r.files = append(r.files, fileName)
	r.bad += bad
	r.mu.Unlock()
	return
}

func (r *run) streamSlab(s *field.Slab) (err error) {
	for _, kind := range r.kinds {
		if err = r.write(kind, s.Depth, export.SlabMatrix(s, 0, kind)); err != nil {
			return
		}
	}
	return
}

func (r *run) retained(builder *field.Builder) (err error) {
	var (
		pf  = builder.Build()
		pot *field.PotentialField
		sg  = r.packet.SimulationGeometry
	)
	for _, kind := range r.kinds {
		if kind == export.KindPotential {
			pot = field.ComputePotential(pf, sg.CellSize, sg.PotentialConst1, sg.PotentialConst2)
			break
		}
	}
	for d := 0; d < r.grid.DepthCount(); d++ {
		for _, kind := range r.kinds {
			var m *mat.Dense
			if kind == export.KindPotential {
				m = export.PotentialSlice(pot, r.grid, d)
			} else {
				m = export.PressureSlice(pf, r.grid, d, kind)
			}
			if err = r.write(kind, d, m); err != nil {
				return
			}
		}
	}
	return
}
