package geometry

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearSample(t *testing.T) {
	{ // Degenerate range returns the midpoint for any index
		assert.Equal(t, 4., LinearSample(0, 0, 0, 3, 5))
		assert.Equal(t, 4., LinearSample(0, 0, 0, 5, 3))
		assert.Equal(t, -4., LinearSample(0, 0, 0, -3, -5))
		assert.Equal(t, -4., LinearSample(0, 0, 0, -5, -3))
		assert.Equal(t, 4., LinearSample(17, 2, 2, 3, 5))
		assert.Equal(t, 4., LinearSample(-3, 2, 2, 3, 5))
	}
	{ // Exact endpoints and extrapolation
		expect := []float64{0, 100, 200, 300, 400, 500, 600}
		for i, val := range expect {
			assert.InDelta(t, val, LinearSample(i, 1, 5, 100, 500), 1.e-9)
		}
		expect = []float64{600, 500, 400, 300, 200, 100, 0}
		for i, val := range expect {
			assert.InDelta(t, val, LinearSample(i, 1, 5, 500, 100), 1.e-9)
		}
		assert.Equal(t, 0.125, LinearSample(3, 3, 11, 0.125, -7.5))
		assert.Equal(t, -7.5, LinearSample(11, 3, 11, 0.125, -7.5))
	}
	{ // Monotonic when a < b, anti-monotonic when a > b
		for i := -5; i < 20; i++ {
			assert.Less(t, LinearSample(i, 0, 9, -1, 2), LinearSample(i+1, 0, 9, -1, 2))
			assert.Greater(t, LinearSample(i, 0, 9, 2, -1), LinearSample(i+1, 0, 9, 2, -1))
		}
	}
}

func TestAxis(t *testing.T) {
	{ // Division axis spans the box inclusively
		a := NewDivisionAxis(5, -0.01, 0.01)
		assert.Equal(t, -0.01, a.Coord(0))
		assert.Equal(t, 0.01, a.Coord(4))
		assert.InDelta(t, 0., a.Coord(2), 1.e-15)
		single := NewDivisionAxis(1, 2, 4)
		assert.Equal(t, 3., single.Coord(0))
	}
	{ // Uniform axis steps by cell size, padding one step outside
		a := NewUniformAxis(0.5, 1, 3.2)
		assert.Equal(t, 5, a.Count)
		assert.Equal(t, 0.5, a.Coord(-1))
		assert.Equal(t, 1., a.Coord(0))
		assert.Equal(t, 3., a.Coord(4))
		assert.Equal(t, 3.5, a.Coord(5))
		rev := NewUniformAxis(0.5, 3, 1)
		assert.Equal(t, 5, rev.Count)
		assert.Equal(t, 3.5, rev.Coord(-1))
		assert.Equal(t, 1., rev.Coord(4))
		flat := NewUniformAxis(0.25, 2, 2)
		assert.Equal(t, 1, flat.Count)
		assert.Equal(t, 1.75, flat.Coord(-1))
		assert.Equal(t, 2.25, flat.Coord(1))
	}
}

func TestCanonicalOrder(t *testing.T) {
	var (
		phys = Vec3{10, 20, 30}
	)
	expect := map[Plane]Vec3{
		PlaneX: {10, 20, 30},
		PlaneY: {20, 10, 30},
		PlaneZ: {30, 20, 10},
	}
	for plane, canon := range expect {
		perm, err := CanonicalOrder(plane)
		require.NoError(t, err)
		assert.Equal(t, canon, perm.Vec(phys))
		for _, idx := range [][3]int{{0, 1, 2}, {4, 0, 7}, {3, 3, 1}} {
			assert.Equal(t, idx, perm.Physical(perm.Ints(idx)))
		}
	}
	_, err := CanonicalOrder(PlaneInvalid)
	assert.True(t, errors.Is(err, ErrUnknownPlane))
	_, err = CanonicalOrder(Plane(42))
	assert.True(t, errors.Is(err, ErrUnknownPlane))
}

func TestPlaneText(t *testing.T) {
	var (
		sg SimulationGeometry
	)
	require.NoError(t, json.Unmarshal([]byte(`{"plane":"y","begin":[0,0,0],"end":[1,1,1],"division":[1,2,3]}`), &sg))
	assert.Equal(t, PlaneY, sg.Plane)
	assert.Equal(t, "X-Z", sg.Plane.AxisLabels())
	assert.Equal(t, &[3]int{1, 2, 3}, sg.Division)
	assert.False(t, sg.UsesCellSize())

	require.NoError(t, json.Unmarshal([]byte(`{"plane":true}`), &sg))
	assert.Equal(t, PlaneY, sg.Plane)
	for _, doc := range []string{`{"plane":false}`, `{"plane":3}`, `{"plane":"Q"}`} {
		require.NoError(t, json.Unmarshal([]byte(doc), &sg))
		assert.Equal(t, PlaneInvalid, sg.Plane, doc)
	}
	_, err := json.Marshal(sg)
	assert.Error(t, err)

	data, err := json.Marshal(SimulationGeometry{Plane: PlaneZ, CellSize: 0.1})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"plane":"Z"`)
}

func TestGrid(t *testing.T) {
	{ // Division grid, no padding
		g, err := NewGrid(SimulationGeometry{
			Plane:    PlaneZ,
			Begin:    Vec3{-1, -2, 0},
			End:      Vec3{1, 2, 4},
			Division: &[3]int{3, 5, 9},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, g.Pad)
		assert.Equal(t, [3]int{3, 5, 9}, g.Shape())
		assert.Equal(t, [3]int{9, 5, 3}, g.CanonicalShape())
		assert.Equal(t, 9, g.DepthCount())
		assert.Equal(t, 0.5, g.DepthCoord(1))
		p := g.Point([3]int{2, 0, 8})
		assert.Equal(t, 1., p.X)
		assert.Equal(t, -2., p.Y)
		assert.Equal(t, 4., p.Z)
	}
	{ // Cell size grid is padded on every side
		g, err := NewGrid(SimulationGeometry{
			Plane:    PlaneY,
			Begin:    Vec3{0, 0, 0},
			End:      Vec3{1, 0.5, 0},
			CellSize: 0.25,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, g.Pad)
		assert.Equal(t, [3]int{7, 5, 3}, g.Shape())
		assert.Equal(t, [3]int{5, 7, 3}, g.CanonicalShape())
		assert.Equal(t, 3, g.DepthCount())
		p := g.Point([3]int{0, 0, 0})
		assert.Equal(t, -0.25, p.X)
		assert.Equal(t, -0.25, p.Y)
		assert.Equal(t, -0.25, p.Z)
	}
	{ // Errors
		_, err := NewGrid(SimulationGeometry{Plane: PlaneInvalid, CellSize: 1})
		assert.True(t, errors.Is(err, ErrUnknownPlane))
		_, err = NewGrid(SimulationGeometry{Plane: PlaneX, Division: &[3]int{1, 0, 1}})
		assert.Error(t, err)
		_, err = NewGrid(SimulationGeometry{Plane: PlaneX})
		assert.Error(t, err)
	}
}
