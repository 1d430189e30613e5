/*
Package monopng is a library for converting images into minimal 1-bit PNG
screens for small monochrome LCD and e-paper displays.

Encoded screens are cached in a SQLite database keyed by the SHA-1 of the
source file and the encoder settings, so repeated conversions of an unchanged
tree only write files.
*/
package monopng

import (
	"log"

	"github.com/bodgit/monopng/mono"
)

// MonoPNG converts images using a shared screen cache.
type MonoPNG struct {
	db     *ScreenDB
	logger *log.Logger
	opts   []mono.Option
}

// New opens the screen cache in file and returns a converter that encodes
// with opts.
func New(file string, logger *log.Logger, opts ...mono.Option) (*MonoPNG, error) {
	db, err := NewScreenDB(file)
	if err != nil {
		return nil, err
	}

	return &MonoPNG{
		db:     db,
		logger: logger,
		opts:   append(opts, mono.WithLogger(logger)),
	}, nil
}

// Close closes the screen cache.
func (m *MonoPNG) Close() error {
	return m.db.Close()
}
