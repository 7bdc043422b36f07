package roster

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"canteen/internal/model"

	"github.com/rs/zerolog"
)

// ErrPathOutsideRoot is returned for roster paths that are absolute or
// climb out of the roster directory.
var ErrPathOutsideRoot = errors.New("roster path is outside the roster directory")

// CleanPath returns path as a clean, slash-separated path relative to the
// roster directory.
func CleanPath(path string) (string, error) {
	if !filepath.IsLocal(path) {
		return "", ErrPathOutsideRoot
	}
	return filepath.ToSlash(filepath.Clean(path)), nil
}

// fileLoader implements Loader for rosters under one local directory.
type fileLoader struct {
	dir    string
	logger zerolog.Logger
}

// NewFileLoader creates a roster loader that only reads files inside dir.
func NewFileLoader(dir string, logger zerolog.Logger) Loader {
	return &fileLoader{
		dir:    dir,
		logger: logger.With().Str("component", "roster-loader").Str("roster_dir", dir).Logger(),
	}
}

// Load reads a gzipped roster file. filePath is relative to the roster
// directory; symlinks leading out of it are refused as well.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]model.Employee, error) {
	rel, err := CleanPath(filePath)
	if err != nil {
		l.logger.Warn().Str("file", filePath).Msg("rejected roster path outside the roster directory")
		return nil, err
	}

	l.logger.Info().Str("file", rel).Msg("loading roster file")

	root, err := os.OpenRoot(l.dir)
	if err != nil {
		l.logger.Error().Err(err).Msg("failed to open roster directory")
		return nil, fmt.Errorf("failed to open roster directory: %w", err)
	}
	defer root.Close()

	file, err := root.Open(rel)
	if err != nil {
		l.logger.Error().Err(err).Str("file", rel).Msg("failed to open roster file")
		return nil, fmt.Errorf("failed to open roster file %s: %w", rel, err)
	}
	defer file.Close()

	employees, err := Parse(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", rel).Msg("failed to parse roster file")
		return nil, fmt.Errorf("failed to parse roster file %s: %w", rel, err)
	}

	l.logger.Info().
		Str("file", rel).
		Int("employees_loaded", len(employees)).
		Msg("roster file loaded")

	return employees, nil
}
