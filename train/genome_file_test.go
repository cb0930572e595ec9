package train

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/autopark/evo"
)

func TestGenomeFileName(t *testing.T) {
	assert.Equal(t, "genome_gen_3_fit_12.50.txt", GenomeFileName(3, 12.5))
	assert.Equal(t, "genome_gen_10_fit_-100.10.txt", GenomeFileName(10, -100.1))
}

func TestSaveAndLoadGenome(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	g := randomGenomes(1, 9)[0]

	path, err := SaveGenome(dir, g, 4, 321.125)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "genome_gen_4_fit_321.12.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, g.String(), string(data))

	loaded, err := LoadGenome(path)
	require.NoError(t, err)
	assert.Equal(t, g, loaded)
}

func TestLoadGenomeErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadGenome(filepath.Join(dir, "missing.txt"))
	assert.ErrorContains(t, err, "failed to read genome file")

	short := filepath.Join(dir, "short.txt")
	require.NoError(t, WriteGenome(short, evo.Genome{0, 1, 1}))
	_, err = LoadGenome(short)
	assert.ErrorIs(t, err, evo.ErrInvalidLength)

	bad := filepath.Join(dir, "bad.txt")
	g := randomGenomes(1, 10)[0].String()
	require.NoError(t, os.WriteFile(bad, []byte("x"+g[1:]), 0o644))
	_, err = LoadGenome(bad)
	assert.ErrorIs(t, err, evo.ErrInvalidToken)
}
