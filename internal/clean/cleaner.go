// Package clean implements the text-cleaning transforms. Each transform takes
// a table and a list of field names and returns a new table.
package clean

import (
	"fmt"
	"strings"
	"sync"

	"github.com/KaramelBytes/tweetsift-cli/internal/dataset"
	"github.com/KaramelBytes/tweetsift-cli/internal/utils"
	"go.uber.org/zap"
)

// Cleaner applies cleaning transforms. Fields absent from a table are
// skipped with a warning; they are never fatal.
type Cleaner struct {
	log *zap.Logger

	mu       sync.Mutex
	warnings []string
}

// New returns a Cleaner logging to log. A nil logger discards output.
func New(log *zap.Logger) *Cleaner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cleaner{log: log}
}

// Warnings returns the warnings raised so far.
func (c *Cleaner) Warnings() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.warnings))
	copy(out, c.warnings)
	return out
}

func (c *Cleaner) warn(op, field string) {
	msg := fmt.Sprintf("column %q not found, skipping %s", field, op)
	c.log.Warn("column not found", zap.String("op", op), zap.String("column", field))
	c.mu.Lock()
	c.warnings = append(c.warnings, msg)
	c.mu.Unlock()
}

// present returns the fields that exist in t, warning about the rest.
func (c *Cleaner) present(op string, t *dataset.Table, fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if !t.HasColumn(f) {
			c.warn(op, f)
			continue
		}
		out = append(out, f)
	}
	return out
}

// DropUnlabeled removes rows where any of the named fields is missing.
func (c *Cleaner) DropUnlabeled(t *dataset.Table, fields []string) *dataset.Table {
	cols := c.present("drop-unlabeled", t, fields)
	if len(cols) == 0 {
		return t
	}
	return t.Filter(func(i int) bool {
		for _, f := range cols {
			if cell, _ := t.At(i, f); !cell.Valid {
				return false
			}
		}
		return true
	})
}

// ToLowercase case-folds the named text fields. Missing values become "".
func (c *Cleaner) ToLowercase(t *dataset.Table, fields []string) *dataset.Table {
	return c.mapText("lowercase", t, fields, utils.Lower)
}

// StripPunctuation removes ASCII punctuation from the named text fields.
// Missing values become "".
func (c *Cleaner) StripPunctuation(t *dataset.Table, fields []string) *dataset.Table {
	return c.mapText("strip-punctuation", t, fields, utils.StripPunctuation)
}

// NormalizeWhitespace collapses whitespace runs to one space and trims the
// ends. Missing values become "".
func (c *Cleaner) NormalizeWhitespace(t *dataset.Table, fields []string) *dataset.Table {
	return c.mapText("normalize-whitespace", t, fields, utils.CollapseSpace)
}

// DropColumns removes the named columns.
func (c *Cleaner) DropColumns(t *dataset.Table, fields []string) *dataset.Table {
	out, absent := t.DropColumns(fields...)
	for _, f := range absent {
		c.warn("drop-columns", f)
	}
	return out
}

// KeepColumns projects t onto the named fields, in the order given. Absent
// fields are reported and left out.
func (c *Cleaner) KeepColumns(t *dataset.Table, fields []string) *dataset.Table {
	var keep []string
	seen := map[string]bool{}
	for _, f := range c.present("drop-columns", t, fields) {
		if !seen[f] {
			seen[f] = true
			keep = append(keep, f)
		}
	}
	out, err := t.Select(keep...)
	if err != nil {
		c.log.Error("select columns", zap.Strings("columns", keep), zap.Error(err))
		return t
	}
	return out
}

// DropEmptyText removes rows whose named field is missing, empty or only
// whitespace.
func (c *Cleaner) DropEmptyText(t *dataset.Table, fields []string) *dataset.Table {
	cols := c.present("drop-empty-text", t, fields)
	if len(cols) == 0 {
		return t
	}
	return t.Filter(func(i int) bool {
		for _, f := range cols {
			cell, _ := t.At(i, f)
			if !cell.Valid || strings.TrimSpace(cell.Value) == "" {
				return false
			}
		}
		return true
	})
}

func (c *Cleaner) mapText(op string, t *dataset.Table, fields []string, fn func(string) string) *dataset.Table {
	out := t
	for _, f := range c.present(op, t, fields) {
		next, err := out.MapColumn(f, func(cell dataset.Cell) dataset.Cell {
			if !cell.Valid {
				return dataset.Str("")
			}
			return dataset.Str(fn(cell.Value))
		})
		if err != nil {
			// present() guarantees the column exists
			c.log.Error("map column", zap.String("op", op), zap.Error(err))
			continue
		}
		out = next
	}
	return out
}
