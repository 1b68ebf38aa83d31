package pipeline

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// SkipLog records skipped rows to <kind>_skipped.csv as
// identifier,stage,reason,line. The identifier is the row's original id, or
// the raw document when it has none.
type SkipLog[R any] struct {
	NopListener[R]

	kind string
	path string
	file *os.File
	buf  *bufio.Writer
	csv  *csv.Writer
	err  error
}

// NewSkipLog returns a skip log for kind; call Create before use.
func NewSkipLog[R any](kind string) *SkipLog[R] {
	return &SkipLog[R]{kind: kind}
}

// SkipLogPath returns the skip log location for kind under dir.
func SkipLogPath(dir, kind string) string {
	return filepath.Join(dir, kind+"_skipped.csv")
}

// Create opens a fresh skip log in dir. An existing log is never overwritten.
func (s *SkipLog[R]) Create(dir string) error {
	if s.file != nil {
		return errors.New("skip log already created")
	}
	path := SkipLogPath(dir, s.kind)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("skip log %s already exists: %w", path, err)
		}
		return fmt.Errorf("create skip log: %w", err)
	}
	s.path = path
	s.file = file
	s.buf = bufio.NewWriter(file)
	s.csv = csv.NewWriter(s.buf)
	return nil
}

// Path returns the file opened by Create.
func (s *SkipLog[R]) Path() string {
	return s.path
}

// RowSkipped appends one entry. The first write failure is kept for Err.
func (s *SkipLog[R]) RowSkipped(line Line, stage, reason string) {
	if s.csv == nil || s.err != nil {
		return
	}
	if err := s.csv.Write([]string{line.Identifier(), stage, reason, strconv.Itoa(line.Number)}); err != nil {
		s.err = fmt.Errorf("write skip log: %w", err)
	}
}

// Err reports the first write failure.
func (s *SkipLog[R]) Err() error {
	return s.err
}

// Close flushes and closes the log. It is safe to call more than once.
func (s *SkipLog[R]) Close() error {
	if s.file == nil {
		return s.err
	}
	s.csv.Flush()
	err := s.csv.Error()
	if err == nil {
		err = s.buf.Flush()
	}
	if closeErr := s.file.Close(); err == nil {
		err = closeErr
	}
	s.file, s.csv, s.buf = nil, nil, nil
	if err != nil {
		return fmt.Errorf("close skip log: %w", err)
	}
	return s.err
}
