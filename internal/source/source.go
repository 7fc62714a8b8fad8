// Package source locates and parses the three inputs of an analysis: the
// sensor log, the bit-run table and the formation-top table.
//
// Every input is reached through a small capability interface so callers
// can substitute in-memory data for directory scans.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/runstats/internal/well"
)

// ErrNotFound is wrapped by NotFoundError.
var ErrNotFound = errors.New("no matching file")

// NotFoundError reports a directory without any file of the wanted extension.
type NotFoundError struct {
	Dir string
	Ext string
	Err error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no %s file found in folder %s: %v", e.Ext, e.Dir, e.Err)
	}
	return fmt.Sprintf("no %s file found in folder %s", e.Ext, e.Dir)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// LogSource yields one parsed well log.
type LogSource interface {
	Log() (*well.Log, error)
}

// TableSource yields one parsed table.
type TableSource interface {
	Table() (*Table, error)
}

// Table is a header plus string cells. Header names are trimmed.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Index returns the position of the named column, matching trimmed names
// case-insensitively, or -1.
func (t *Table) Index(name string) int {
	want := strings.TrimSpace(name)
	for i, h := range t.Header {
		if strings.EqualFold(strings.TrimSpace(h), want) {
			return i
		}
	}
	return -1
}

// Cell returns row[col] or "" when the row is short.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}

// Dir picks the first file, in name order, whose extension matches Ext.
// It serves both as a LogSource (LAS) and a TableSource (CSV/TSV/XLSX).
type Dir struct {
	Path string
	Ext  string
}

func (d Dir) String() string { return filepath.Join(d.Path, "*"+d.Ext) }

// Find returns the path of the first matching file.
func (d Dir) Find() (string, error) {
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return "", &NotFoundError{Dir: d.Path, Ext: d.Ext, Err: err}
	}
	ext := strings.ToLower(d.Ext)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ext) {
			return filepath.Join(d.Path, e.Name()), nil
		}
	}
	return "", &NotFoundError{Dir: d.Path, Ext: d.Ext}
}

// Log reads the first matching file as a LAS log.
func (d Dir) Log() (*well.Log, error) {
	path, err := d.Find()
	if err != nil {
		return nil, err
	}
	return LASFile(path).Log()
}

// Table reads the first matching file with the parser registered for it.
func (d Dir) Table() (*Table, error) {
	path, err := d.Find()
	if err != nil {
		return nil, err
	}
	return TableFile(path).Table()
}

// LASFile is a LogSource backed by a single file.
type LASFile string

func (f LASFile) Log() (*well.Log, error) {
	fh, err := os.Open(string(f))
	if err != nil {
		return nil, fmt.Errorf("open las: %w", err)
	}
	defer fh.Close()
	l, err := ReadLAS(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(string(f)), err)
	}
	l.Name = filepath.Base(string(f))
	return l, nil
}

// TableFile is a TableSource backed by a single file.
type TableFile string

func (f TableFile) Table() (*Table, error) {
	return ParseTableFile(string(f))
}

// StaticTable serves an in-memory table.
type StaticTable struct{ T *Table }

func (s StaticTable) Table() (*Table, error) { return s.T, nil }

// StaticLog serves an in-memory log.
type StaticLog struct{ L *well.Log }

func (s StaticLog) Log() (*well.Log, error) { return s.L, nil }
