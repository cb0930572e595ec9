package train

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/baldhumanity/autopark/evo"
)

// Options are runtime overrides read from AUTOPARK_* environment variables.
// Nil fields leave the INI value untouched.
type Options struct {
	ConfigPath  string  `env:"CONFIG" envDefault:"configs/parking.ini"`
	Checkpoint  string  `env:"CHECKPOINT"` // resume from this checkpoint file
	ResultsDir  *string `env:"RESULTS_DIR"`
	Workers     *int    `env:"WORKERS"`
	Seed        *uint64 `env:"SEED"`
	Generations *int    `env:"GENERATIONS"`
	LogLevel    string  `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadOptions parses the environment.
func LoadOptions() (*Options, error) {
	return parseOptions(env.Options{Prefix: "AUTOPARK_"})
}

func parseOptions(opts env.Options) (*Options, error) {
	o := &Options{}
	if err := env.ParseWithOptions(o, opts); err != nil {
		aggErr := env.AggregateError{}
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}
	return o, nil
}

// Apply copies the set overrides into config and validates the result.
func (o *Options) Apply(config *evo.Config) error {
	if o.ResultsDir != nil {
		config.Training.ResultsDir = *o.ResultsDir
	}
	if o.Workers != nil {
		config.Training.Workers = *o.Workers
	}
	if o.Seed != nil {
		config.GA.Seed = *o.Seed
	}
	if o.Generations != nil {
		config.Training.Generations = *o.Generations
	}
	return config.Validate()
}

// NewLogger builds a text logger at the configured level.
func (o *Options) NewLogger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(o.LogLevel))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", o.LogLevel, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
