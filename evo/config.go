package evo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/ini.v1"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config stores the configuration parameters for a training run.
type Config struct {
	GA       GAConfig
	Training TrainingConfig
}

// GAConfig holds parameters of the genetic algorithm itself.
type GAConfig struct {
	PopSize        int     `ini:"pop_size" validate:"gte=2"`
	GenomeLength   int     `ini:"genome_length" validate:"gte=2"`
	MutationRate   float64 `ini:"mutation_rate" validate:"gte=0,lte=1"`
	EliteSize      int     `ini:"elite_size" validate:"gte=0,ltefield=PopSize"`
	TournamentSize int     `ini:"tournament_size" validate:"gte=1,ltefield=PopSize"`
	Seed           uint64  `ini:"seed"` // 0 picks a random seed
}

// TrainingConfig holds parameters of the training loop around the algorithm.
type TrainingConfig struct {
	Generations        int    `ini:"generations" validate:"gte=1"`
	Workers            int    `ini:"workers" validate:"gte=0"` // 0 uses GOMAXPROCS
	CheckpointInterval int    `ini:"checkpoint_interval" validate:"gte=0"`
	ResultsDir         string `ini:"results_dir" validate:"required"`
}

// DefaultConfig returns the parameters used when a key is absent from the INI file.
func DefaultConfig() *Config {
	return &Config{
		GA: GAConfig{
			PopSize:        50,
			GenomeLength:   180,
			MutationRate:   0.03,
			EliteSize:      5,
			TournamentSize: 5,
		},
		Training: TrainingConfig{
			Generations: 50,
			ResultsDir:  "results",
		},
	}
}

// LoadConfig loads configuration parameters from an INI file.
func LoadConfig(filePath string) (*Config, error) {
	config, err := loadConfig(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}
	return config, nil
}

// ParseConfig reads configuration from raw INI data.
func ParseConfig(data []byte) (*Config, error) {
	return loadConfig(data)
}

func loadConfig(source any) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, source)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := cfg.Section("GA").MapTo(&config.GA); err != nil {
		return nil, fmt.Errorf("failed to map [GA] section: %w", err)
	}
	if err := cfg.Section("Training").MapTo(&config.Training); err != nil {
		return nil, fmt.Errorf("failed to map [Training] section: %w", err)
	}
	config.Training.ResultsDir = cleanIniString(config.Training.ResultsDir)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if err := c.GA.Validate(); err != nil {
		return err
	}
	return validationError(validate.Struct(&c.Training))
}

// Validate checks the algorithm parameters.
func (c *GAConfig) Validate() error {
	return validationError(validate.Struct(c))
}

// validationError turns the first validator failure into a readable config error.
func validationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("config error: %w", err)
	}
	fe := verrs[0]
	if fe.Param() != "" {
		return fmt.Errorf("config error: %s must satisfy %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Errorf("config error: %s failed %s (got %v)", fe.Namespace(), fe.Tag(), fe.Value())
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
