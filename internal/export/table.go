package export

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

// table is one CSV output file.
type table struct {
	path string
	file *os.File
	buf  *bufio.Writer
	csv  *csv.Writer
	rows int
}

func openTable(dir, name string, header []string) (*table, error) {
	path := filepath.Join(dir, name+".csv")
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateOutput, path)
		}
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	buf := bufio.NewWriter(file)
	t := &table{path: path, file: file, buf: buf, csv: csv.NewWriter(buf)}
	if err := t.csv.Write(header); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("write header %s: %w", path, err)
	}
	return t, nil
}

func (t *table) write(record []string) error {
	if err := t.csv.Write(record); err != nil {
		return fmt.Errorf("write %s: %w", t.path, err)
	}
	t.rows++
	return nil
}

func (t *table) close() error {
	t.csv.Flush()
	err := t.csv.Error()
	if err == nil {
		err = t.buf.Flush()
	}
	if closeErr := t.file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("close %s: %w", t.path, err)
	}
	return nil
}

// tableSet opens a group of tables and closes them together.
type tableSet struct {
	tables []*table
}

type tableSpec struct {
	name   string
	header []string
}

func openTables(dir string, specs []tableSpec) (*tableSet, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	set := &tableSet{}
	for _, spec := range specs {
		t, err := openTable(dir, spec.name, spec.header)
		if err != nil {
			_ = set.close()
			return nil, err
		}
		set.tables = append(set.tables, t)
	}
	return set, nil
}

func (s *tableSet) close() error {
	var errs []error
	for _, t := range s.tables {
		if err := t.close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.tables = nil
	return errors.Join(errs...)
}

func (s *tableSet) paths() []string {
	out := make([]string, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, t.path)
	}
	return out
}

func formatID(id int) string {
	return strconv.Itoa(id)
}

func formatString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatBool(v bool) string {
	return strconv.FormatBool(v)
}

func formatOptionalBool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}
