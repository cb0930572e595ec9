package evo

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
)

// PopulationSaveData holds the parts of Population needed to resume a run.
// The config is not saved, it is supplied again on load.
type PopulationSaveData struct {
	Genomes     []Genome
	Generation  int
	BestGenome  Genome
	BestFitness float64
	RandState   []byte // Marshaled PCG state
}

// SaveCheckpoint saves the current state of the Population to a gzip compressed file.
func (p *Population) SaveCheckpoint(filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint file '%s': %w", filePath, err)
	}
	if err := p.writeCheckpoint(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close checkpoint file '%s': %w", filePath, err)
	}
	return nil
}

// writeCheckpoint gob-encodes the population into a gzip stream on w.
// The stream is only complete once the gzip writer has been closed.
func (p *Population) writeCheckpoint(w io.Writer) error {
	randState, err := p.src.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to marshal random state: %w", err)
	}

	saveData := PopulationSaveData{
		Genomes:     p.Genomes,
		Generation:  p.Generation,
		BestGenome:  p.BestGenome,
		BestFitness: p.BestFitness,
		RandState:   randState,
	}

	gzWriter := gzip.NewWriter(w)
	if err := gob.NewEncoder(gzWriter).Encode(saveData); err != nil {
		gzWriter.Close()
		return fmt.Errorf("failed to encode population data: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint restores a Population saved by SaveCheckpoint.
// The genomes must match the lengths described by config.
func LoadCheckpoint(checkpointPath string, config *GAConfig) (*Population, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	file, err := os.Open(checkpointPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint file '%s': %w", checkpointPath, err)
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for checkpoint: %w", err)
	}
	defer gzReader.Close()

	saveData := PopulationSaveData{}
	if err := gob.NewDecoder(gzReader).Decode(&saveData); err != nil {
		return nil, fmt.Errorf("failed to decode population data from checkpoint: %w", err)
	}

	if len(saveData.Genomes) != config.PopSize {
		return nil, fmt.Errorf("checkpoint holds %d genomes, config expects %d", len(saveData.Genomes), config.PopSize)
	}
	for i, g := range saveData.Genomes {
		if len(g) != config.GenomeLength {
			return nil, fmt.Errorf("checkpoint genome %d: %w: expected %d bits, got %d", i, ErrInvalidLength, config.GenomeLength, len(g))
		}
	}

	src := &rand.PCG{}
	if err := src.UnmarshalBinary(saveData.RandState); err != nil {
		return nil, fmt.Errorf("failed to unmarshal random state: %w", err)
	}

	return &Population{
		Config:      config,
		Genomes:     saveData.Genomes,
		Generation:  saveData.Generation,
		BestGenome:  saveData.BestGenome,
		BestFitness: saveData.BestFitness,
		src:         src,
		rng:         rand.New(src),
	}, nil
}
