package train

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/baldhumanity/autopark/evo"
	"github.com/baldhumanity/autopark/evo/brain"
)

// GenomeFileName names the file a generation's best genome is saved under.
func GenomeFileName(generation int, fitness float64) string {
	return fmt.Sprintf("genome_gen_%d_fit_%.2f.txt", generation, fitness)
}

// SaveGenome writes genome into dir using GenomeFileName and returns the path.
func SaveGenome(dir string, genome evo.Genome, generation int, fitness float64) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create results directory '%s': %w", dir, err)
	}
	path := filepath.Join(dir, GenomeFileName(generation, fitness))
	if err := WriteGenome(path, genome); err != nil {
		return "", err
	}
	return path, nil
}

// WriteGenome stores a genome in its comma separated form.
func WriteGenome(path string, genome evo.Genome) error {
	if err := os.WriteFile(path, []byte(genome.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write genome file '%s': %w", path, err)
	}
	return nil
}

// LoadGenome reads a controller genome written by WriteGenome.
func LoadGenome(path string) (evo.Genome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read genome file '%s': %w", path, err)
	}
	g, err := evo.ParseGenome(string(data), brain.GenomeBits)
	if err != nil {
		return nil, fmt.Errorf("failed to parse genome file '%s': %w", path, err)
	}
	return g, nil
}
