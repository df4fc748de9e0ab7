package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gotrap/InputParameters"
)

func TestStarterFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"array.json", "array.yaml"} {
		fileName := filepath.Join(dir, name)
		require.NoError(t, WriteStarter(fileName, false))
		assert.NoError(t, ValidateFile(fileName))
		// Existing files are kept unless forced
		assert.Error(t, WriteStarter(fileName, false))
		assert.NoError(t, WriteStarter(fileName, true))
	}
}

func TestValidateFile(t *testing.T) {
	var (
		dir      = t.TempDir()
		fileName = filepath.Join(dir, "bad.yaml")
	)
	require.NoError(t, os.WriteFile(fileName, []byte(`
transducers:
  - id: a
    position: [0, 0, 0]
    target: [0, 0, 0]
    radius: 0.005
    loss_factor: 1
    output_power: 1
    wavelength: 0.0086
simulation_geometry:
  plane: Z
  begin: [0, 0, 0]
  end: [1, 1, 1]
  division: [2, 2, 2]
`), 0644))
	err := ValidateFile(fileName)
	assert.True(t, errors.Is(err, InputParameters.ErrInvalidConfig))
	assert.Error(t, ValidateFile(filepath.Join(dir, "missing.yaml")))
}

func TestRun(t *testing.T) {
	var (
		dir       = t.TempDir()
		inputFile = filepath.Join(dir, "array.json")
		outDir    = filepath.Join(dir, "out")
	)
	cp := StarterPacket()
	cp.SimulationGeometry.Division = &[3]int{3, 3, 2}
	require.NoError(t, cp.Save(inputFile))

	rpt, err := Run(&RunModel{InputFile: inputFile, OutputDir: outDir, ProcLimit: 2, Quiet: true})
	require.NoError(t, err)
	require.Len(t, rpt.Files, 2)
	for _, fileName := range rpt.Files {
		_, err = os.Stat(fileName)
		assert.NoError(t, err)
	}

	_, err = Run(&RunModel{InputFile: filepath.Join(dir, "missing.json"), OutputDir: outDir, Quiet: true})
	assert.Error(t, err)
}

func TestRunProfiled(t *testing.T) {
	var (
		dir     = t.TempDir()
		profDir = filepath.Join(dir, "prof")
	)
	require.NoError(t, os.Mkdir(profDir, 0755))
	// A failed run still flushes a complete profile
	_, err := RunProfiled(&RunModel{
		InputFile:  filepath.Join(dir, "missing.json"),
		OutputDir:  filepath.Join(dir, "out"),
		Profile:    true,
		ProfileDir: profDir,
		Quiet:      true,
	})
	assert.Error(t, err)
	info, err := os.Stat(filepath.Join(profDir, "cpu.pprof"))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
