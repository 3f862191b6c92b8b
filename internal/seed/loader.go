package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// Loader reads one fixture file.
type Loader interface {
	// Load reads and decodes the fixture at path.
	Load(ctx context.Context, path string) (*Fixture, error)
}

// fileLoader implements Loader for the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based fixture loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a JSON or YAML fixture, optionally gzipped, from disk.
func (l *fileLoader) Load(ctx context.Context, filePath string) (*Fixture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.logger.Info().Str("file", filePath).Msg("loading seed fixture")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open seed fixture")
		return nil, fmt.Errorf("failed to open seed fixture %s: %w", filePath, err)
	}
	defer file.Close()

	f, err := Decode(file, filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to decode seed fixture")
		return nil, err
	}

	l.logger.Info().
		Str("file", filePath).
		Int("rewards", len(f.Rewards)).
		Int("add_ons", len(f.AddOns)).
		Msg("seed fixture loaded successfully")

	return f, nil
}
