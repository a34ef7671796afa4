package parser

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/KaramelBytes/tweetsift-cli/internal/dataset"
)

// Options controls how a file is read into a table.
type Options struct {
	// Delimiter for CSV. If 0, ',' is used.
	Delimiter rune
	// NAValues are trimmed cell values read as missing. Nil means
	// dataset.DefaultNAValues.
	NAValues []string
}

// DefaultOptions returns the loader defaults.
func DefaultOptions() Options {
	return Options{Delimiter: ',', NAValues: dataset.DefaultNAValues}
}

// Loader reads a file format into a table.
type Loader interface {
	CanLoad(filename string) bool
	Load(path string, opt Options) (*dataset.Table, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// LoadFile selects a loader based on the file extension and reads path.
// Path problems and unsupported formats are reported as *dataset.ConfigError.
func LoadFile(path string, opt Options) (*dataset.Table, error) {
	if strings.TrimSpace(path) == "" {
		return nil, dataset.Configf("input", "data path cannot be empty")
	}
	var l Loader
	for _, cand := range registry {
		if cand.CanLoad(path) {
			l = cand
			break
		}
	}
	if l == nil {
		return nil, &dataset.ConfigError{Field: "input", Reason: fmt.Sprintf("could not determine loader type for file: %s", path), Err: ErrUnsupported}
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, &dataset.ConfigError{Field: "input", Reason: "cannot open data file", Err: err}
	}
	if info.IsDir() {
		return nil, dataset.Configf("input", "%s is a directory", path)
	}
	return l.Load(path, opt)
}

func init() {
	Register(csvLoader{})
}

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported data format")

// ErrTooManyFields indicates a CSV row wider than its header, usually an
// unquoted delimiter inside a text field.
var ErrTooManyFields = errors.New("row has more fields than the header")
