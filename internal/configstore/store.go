package configstore

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"
	"github.com/ouroboros-dev/ouroboros/internal/document"
	"github.com/ouroboros-dev/ouroboros/internal/filesystem"
	"github.com/ouroboros-dev/ouroboros/internal/logging"
)

// ParseError reports a persisted document that could not be decoded.
type ParseError struct {
	Path   string
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s (%s): %v", e.Path, e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Store loads and saves config documents through a FileSystem.
type Store struct {
	fs     filesystem.FileSystem
	logger *log.Logger
}

// New creates a Store.
func New(fs filesystem.FileSystem) *Store {
	return &Store{
		fs:     fs,
		logger: logging.New("configstore"),
	}
}

// Load reads the document at path.
//
// A missing file yields an empty document and no error. Malformed content
// yields an empty document together with a *ParseError, so callers can keep
// going with defaults after telling the user.
func (s *Store) Load(path string) (*document.Map, error) {
	codec, err := CodecFor(path)
	if err != nil {
		return document.New(), err
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return document.New(), nil
		}
		return document.New(), fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := codec.Decode(data)
	if err != nil {
		perr := &ParseError{Path: path, Format: codec.Name(), Err: err}
		s.logger.Warn("ignoring malformed config", "path", path, "error", err)
		return document.New(), perr
	}

	return doc, nil
}

// Save writes doc to path in full. The previous file is only replaced once
// the new content has been written completely.
func (s *Store) Save(doc *document.Map, path string) error {
	codec, err := CodecFor(path)
	if err != nil {
		return err
	}

	data, err := codec.Encode(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := filesystem.WriteFileAtomic(s.fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	s.logger.Debug("saved config", "path", path, "bytes", len(data))
	return nil
}

// Update loads path, applies fn to the document and saves the result. Keys fn
// does not touch are written back unchanged. A malformed existing file is not
// overwritten.
func (s *Store) Update(path string, fn func(doc *document.Map) error) error {
	doc, err := s.Load(path)
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	return s.Save(doc, path)
}
