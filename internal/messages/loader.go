package messages

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// maxCatalogueSize bounds how much of a catalogue file is read.
const maxCatalogueSize = 4 << 20

// fileLoader implements Loader for catalogue files on the local file system.
type fileLoader struct {
	dir    string
	logger zerolog.Logger
}

// NewFileLoader creates a loader reading catalogues from dir.
func NewFileLoader(dir string, logger zerolog.Logger) Loader {
	return &fileLoader{
		dir:    dir,
		logger: logger.With().Str("component", "messages-loader").Logger(),
	}
}

// Load reads dir/name.
func (l *fileLoader) Load(ctx context.Context, name string) (Catalogue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(l.dir, name)
	l.logger.Debug().Str("file", path).Msg("loading message catalogue")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open message catalogue")
		return nil, fmt.Errorf("failed to open message catalogue %s: %w", path, err)
	}
	defer file.Close()

	catalogue, err := decode(file, name)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to decode message catalogue")
		return nil, fmt.Errorf("failed to decode message catalogue %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("keys", len(catalogue)).
		Msg("message catalogue loaded")

	return catalogue, nil
}

// decode reads a catalogue body, transparently gunzipping *.gz names.
func decode(r io.Reader, name string) (Catalogue, error) {
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, maxCatalogueSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue: %w", err)
	}
	if n > maxCatalogueSize {
		return nil, fmt.Errorf("catalogue exceeds %d bytes", maxCatalogueSize)
	}
	return parse(buf.Bytes())
}
