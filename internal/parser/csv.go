package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KaramelBytes/tweetsift-cli/internal/dataset"
)

type csvLoader struct{}

func (csvLoader) CanLoad(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}

func (csvLoader) Load(path string, opt Options) (*dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, opt)
}

// ReadCSV reads a header row followed by records. Short rows are padded with
// missing cells. A row with more fields than the header fails with
// ErrTooManyFields naming its line.
func ReadCSV(src io.Reader, opt Options) (*dataset.Table, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	if opt.Delimiter != 0 {
		r.Comma = opt.Delimiter
	}
	na := opt.NAValues
	if na == nil {
		na = dataset.DefaultNAValues
	}
	isNA := make(map[string]bool, len(na))
	for _, v := range na {
		isNA[v] = true
	}

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: csv has no header row", dataset.ErrEmptyDataset)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	ncol := len(header)

	var rows [][]dataset.Cell
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		if len(rec) > ncol {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d: %w", line, ncol, len(rec), ErrTooManyFields)
		}
		row := make([]dataset.Cell, ncol)
		for j := 0; j < ncol; j++ {
			if j >= len(rec) || isNA[strings.TrimSpace(rec[j])] {
				row[j] = dataset.Null()
				continue
			}
			row[j] = dataset.Str(rec[j])
		}
		rows = append(rows, row)
	}
	t, err := dataset.New(header, rows)
	if err != nil {
		return nil, dataset.Configf("input", "invalid csv header: %v", err)
	}
	return t, nil
}
