package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/tweetsift-cli/internal/dataset"
	"github.com/KaramelBytes/tweetsift-cli/internal/utils"
	"github.com/go-gota/gota/dataframe"
)

// Profile is a markdown-friendly description of a loaded table.
type Profile struct {
	Name        string
	Rows        int
	Cols        []ColumnSummary
	MemoryBytes int
	Warnings    []string
}

// ColumnSummary captures the inferred type and basic statistics per column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|boolean|categorical|text|unknown
	NonNull int
	Missing int
	Unique  int
	// Text stats
	AvgWords float64
	AvgChars float64
	// Categorical top values
	TopValues []CategoryCount
}

type CategoryCount struct {
	Value string
	Count int
}

// categoricalLimit is the number of distinct values up to which a string
// column is reported as categorical.
const categoricalLimit = 20

// Describe profiles t. Column kinds come from gota's type detection; empty
// tables are rejected.
func Describe(name string, t *dataset.Table) (*Profile, error) {
	if t == nil || t.Len() == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	p := &Profile{Name: name, Rows: t.Len()}

	kinds, err := detectKinds(t)
	if err != nil {
		p.Warnings = append(p.Warnings, fmt.Sprintf("type detection failed: %v", err))
	}
	for j, col := range t.Columns() {
		cells, _ := t.Column(col)
		s := ColumnSummary{Name: col, Kind: "unknown"}
		cats := map[string]int{}
		var words, chars int
		for _, c := range cells {
			p.MemoryBytes += len(c.Value) + 16
			if !c.Valid {
				s.Missing++
				continue
			}
			s.NonNull++
			cats[c.Value]++
			words += utils.CountWords(c.Value)
			chars += len([]rune(c.Value))
		}
		s.Unique = len(cats)
		if j < len(kinds) {
			s.Kind = kinds[j]
		}
		if s.Kind == "string" {
			if s.Unique <= categoricalLimit {
				s.Kind = "categorical"
			} else {
				s.Kind = "text"
			}
		}
		if s.NonNull > 0 && s.Kind == "text" {
			s.AvgWords = float64(words) / float64(s.NonNull)
			s.AvgChars = float64(chars) / float64(s.NonNull)
		}
		if s.Kind != "text" && s.NonNull > 0 {
			s.TopValues = topValues(cats, 5)
		}
		p.Cols = append(p.Cols, s)
	}
	return p, nil
}

func detectKinds(t *dataset.Table) ([]string, error) {
	recs := t.Records()
	// gota reads "NaN" as missing in every column type.
	for i := 1; i < len(recs); i++ {
		for j := range recs[i] {
			if c, _ := t.At(i-1, recs[0][j]); !c.Valid {
				recs[i][j] = "NaN"
			}
		}
	}
	df := dataframe.LoadRecords(recs, dataframe.HasHeader(true), dataframe.DetectTypes(true))
	if df.Err != nil {
		return nil, df.Err
	}
	types := df.Types()
	out := make([]string, len(types))
	for i, tp := range types {
		switch string(tp) {
		case "int", "float":
			out[i] = "numeric"
		case "bool":
			out[i] = "boolean"
		case "string":
			out[i] = "string"
		default:
			out[i] = "unknown"
		}
	}
	return out, nil
}

func topValues(cats map[string]int, n int) []CategoryCount {
	tops := make([]CategoryCount, 0, len(cats))
	for k, v := range cats {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if len(tops) > n {
		tops = tops[:n]
	}
	return tops
}

// Markdown renders the profile.
func (p *Profile) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if p.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", p.Name))
	}
	b.WriteString(fmt.Sprintf("Shape: %d rows × %d columns\n", p.Rows, len(p.Cols)))
	b.WriteString(fmt.Sprintf("Memory: ~%.2f MB\n\n", float64(p.MemoryBytes)/(1024*1024)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range p.Cols {
		missPct := 0.0
		if total := c.NonNull + c.Missing; total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %d (%.1f%%), unique %d)", safeName(c.Name), c.Kind, c.NonNull, c.Missing, missPct, c.Unique))
		switch {
		case c.Kind == "text":
			b.WriteString(fmt.Sprintf(" — avg %.1f words, %.1f chars", c.AvgWords, c.AvgChars))
		case len(c.TopValues) > 0:
			b.WriteString(" — top: ")
			for i, kv := range c.TopValues {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
			}
		}
		b.WriteString("\n")
	}
	if len(p.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range p.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string {
	s = strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
	if r := []rune(s); len(r) > 40 {
		s = string(r[:37]) + "..."
	}
	return s
}
