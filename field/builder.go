package field

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/notargets/gotrap/geometry"
	"github.com/notargets/gotrap/transducer"
	"github.com/notargets/gotrap/utils"
)

// PressureField is the complex pressure at every padded grid sample, stored
// in physical (X, Y, Z) order.
type PressureField = utils.Array3[complex128]

// Slab is one cross-section at a fixed depth, in canonical order: Rows
// follow the first cross axis, Cols the second.
type Slab struct {
	Depth      int // padded canonical depth index
	Rows, Cols int
	Data       []complex128
}

func (s *Slab) At(r, c int) complex128 { return s.Data[c+s.Cols*r] }

// SlabSink receives every finished slab from Stream. It is called from
// worker goroutines, concurrently for different depths, and must not
// keep the slab after returning.
type SlabSink func(s *Slab) error

type Builder struct {
	Transducers []transducer.Transducer
	Grid        *geometry.Grid
	Partitions  *utils.PartitionMap
	// OnSlab, when set, is called after each depth slab is finished.
	OnSlab func(depth int)
}

func NewBuilder(ts []transducer.Transducer, grid *geometry.Grid, procLimit int) (b *Builder) {
	var (
		depth = grid.CanonicalShape()[0]
	)
	b = &Builder{
		Transducers: ts,
		Grid:        grid,
		Partitions:  utils.NewPartitionMap(utils.ParallelDegree(procLimit, depth), depth),
	}
	return
}

func (b *Builder) computeSlab(d int, slab *Slab) {
	var (
		cShape = b.Grid.CanonicalShape()
		perm   = b.Grid.Perm
	)
	slab.Depth, slab.Rows, slab.Cols = d, cShape[1], cShape[2]
	if len(slab.Data) != slab.Rows*slab.Cols {
		slab.Data = make([]complex128, slab.Rows*slab.Cols)
	}
	for i := 0; i < slab.Rows; i++ {
		for j := 0; j < slab.Cols; j++ {
			point := b.Grid.Point(perm.Physical([3]int{d, i, j}))
			slab.Data[j+slab.Cols*i] = transducer.Superpose(point, b.Transducers)
		}
	}
}

// Build computes the whole padded field. Each worker owns a contiguous run
// of depth indices and writes only those slabs.
func (b *Builder) Build() (pf *PressureField) {
	var (
		pm   = b.Partitions
		perm = b.Grid.Perm
		wg   = sync.WaitGroup{}
	)
	pf = utils.NewArray3[complex128](b.Grid.Shape())
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			var (
				slab       Slab
				kMin, kMax = pm.GetBucketRange(np)
			)
			for d := kMin; d < kMax; d++ {
				b.computeSlab(d, &slab)
				for i := 0; i < slab.Rows; i++ {
					for j := 0; j < slab.Cols; j++ {
						pf.SetIdx(perm.Physical([3]int{d, i, j}), slab.At(i, j))
					}
				}
				if b.OnSlab != nil {
					b.OnSlab(d)
				}
			}
		}(np)
	}
	wg.Wait()
	return
}

// Stream computes slabs without retaining them. The first sink error
// cancels the run: no worker starts another slab or sink call once it is
// seen, and that error is returned after all workers exit.
func (b *Builder) Stream(sink SlabSink) error {
	var (
		pm     = b.Partitions
		g, ctx = errgroup.WithContext(context.Background())
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		np := np
		g.Go(func() error {
			var (
				slab       Slab
				kMin, kMax = pm.GetBucketRange(np)
			)
			for d := kMin; d < kMax; d++ {
				if ctx.Err() != nil {
					return nil
				}
				b.computeSlab(d, &slab)
				if ctx.Err() != nil {
					return nil
				}
				if err := sink(&slab); err != nil {
					return err
				}
				if b.OnSlab != nil {
					b.OnSlab(d)
				}
			}
			return nil
		})
	}
	return g.Wait()
}
