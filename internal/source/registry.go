package source

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// TableParser turns the bytes of one file into a Table.
type TableParser interface {
	CanParse(filename string) bool
	Parse(name string, content []byte) (*Table, error)
}

var registry []TableParser

// Register adds a parser implementation to the registry.
func Register(p TableParser) {
	registry = append(registry, p)
}

// ErrUnsupported indicates a table format without a registered parser.
var ErrUnsupported = errors.New("unsupported table format")

// ParseTableFile selects a parser based on filename.
func ParseTableFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	for _, p := range registry {
		if p.CanParse(path) {
			return p.Parse(path, data)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
}

func hasSuffixFold(name string, exts ...string) bool {
	lower := strings.ToLower(name)
	for _, e := range exts {
		if strings.HasSuffix(lower, e) {
			return true
		}
	}
	return false
}

func init() {
	Register(csvParser{})
	Register(xlsxParser{})
}
