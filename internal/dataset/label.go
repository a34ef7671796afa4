package dataset

import (
	"strconv"
	"strings"
)

// Label is the classification of a row.
type Label int

const (
	Missing Label = iota
	Positive
	Negative
)

// Labels lists the non-missing labels in output order.
var Labels = []Label{Positive, Negative}

func (l Label) String() string {
	switch l {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "missing"
	}
}

// DefaultNAValues mirrors the tokens pandas reads as missing by default.
var DefaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// LabelScheme maps raw label values onto Label.
type LabelScheme struct {
	Positive string
	Negative string
}

// DefaultScheme uses the corpus encoding: 1 for biased, 0 for not biased.
func DefaultScheme() LabelScheme {
	return LabelScheme{Positive: "1", Negative: "0"}
}

// Raw returns the raw code for l, or "" for Missing.
func (s LabelScheme) Raw(l Label) string {
	switch l {
	case Positive:
		return s.Positive
	case Negative:
		return s.Negative
	}
	return ""
}

// Classify maps a cell onto a Label. Values are compared trimmed, and
// numerically when both sides parse as numbers, so "1.0" matches "1".
// ok is false for a present value that matches neither code.
func (s LabelScheme) Classify(c Cell) (l Label, ok bool) {
	if !c.Valid {
		return Missing, true
	}
	v := strings.TrimSpace(c.Value)
	switch {
	case sameCode(v, s.Positive):
		return Positive, true
	case sameCode(v, s.Negative):
		return Negative, true
	}
	return Missing, false
}

// ClassifyColumn classifies every cell of the named column. It fails with a
// ConfigError on an absent column or an unrecognized value.
func (s LabelScheme) ClassifyColumn(t *Table, name string) ([]Label, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, &ConfigError{Field: name, Reason: "label column not found", Err: err}
	}
	out := make([]Label, len(col))
	for i, c := range col {
		l, ok := s.Classify(c)
		if !ok {
			return nil, Configf(name, "row %d: unrecognized label %q (expected %q or %q)", i+1, c.Value, s.Positive, s.Negative)
		}
		out[i] = l
	}
	return out, nil
}

func sameCode(v, code string) bool {
	code = strings.TrimSpace(code)
	if v == code {
		return true
	}
	a, errA := strconv.ParseFloat(v, 64)
	b, errB := strconv.ParseFloat(code, 64)
	return errA == nil && errB == nil && a == b
}
